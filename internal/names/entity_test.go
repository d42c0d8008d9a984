// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package names

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caltechlibrary/iga/internal/httputil"
	"github.com/caltechlibrary/iga/pkg/types"
)

func TestHeuristicClassifier(t *testing.T) {
	tests := []struct {
		text  string
		label string
		conf  float64
	}{
		{"Maria Lopez", LabelPerson, 0.9},
		{"Ada King Lovelace", LabelPerson, 0.6},
		{"Open Data Kit", LabelOrganization, 0.7},
		{"Acme Labs", LabelOrganization, 0.7},
		{"maria lopez", LabelOther, 0.5},
		{"Acme", LabelOther, 0.5},
		{"One Two Three Four Five", LabelOther, 0.5},
		{"R2D2 Droid", LabelOther, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			e, err := HeuristicClassifier{}.ClassifyEntity(context.Background(), tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.label, e.Label)
			assert.InDelta(t, tt.conf, e.Confidence, 1e-9)
		})
	}
}

func TestChainClassifier(t *testing.T) {
	down := &fakeClassifier{err: types.ErrUnavailable}
	up := &fakeClassifier{entity: Entity{Label: LabelPerson, Confidence: 0.7}}

	e, err := ChainClassifier{down, up}.ClassifyEntity(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, LabelPerson, e.Label)
	assert.Equal(t, 1, down.calls)

	_, err = ChainClassifier{down}.ClassifyEntity(context.Background(), "x")
	assert.ErrorIs(t, err, types.ErrUnavailable)

	_, err = ChainClassifier{}.ClassifyEntity(context.Background(), "x")
	assert.Error(t, err)
}

func TestClaudeClassifier(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		text      string
		wantLabel string
		wantErr   bool
	}{
		{"person", http.StatusOK, `{"label": "PERSON", "confidence": 0.93}`, LabelPerson, false},
		{"lowercase label", http.StatusOK, `{"label": "org", "confidence": 0.8}`, LabelOrganization, false},
		{"bad json", http.StatusOK, `I think this is a person`, "", true},
		{"server error", http.StatusInternalServerError, "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got claudeRequest
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "secret", r.Header.Get("x-api-key"))
				require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				w.WriteHeader(tt.status)
				if tt.status == http.StatusOK {
					body, _ := json.Marshal(claudeResponse{Content: []claudeContent{{Type: "text", Text: tt.text}}})
					fmt.Fprint(w, string(body))
				}
			}))
			defer ts.Close()

			orig := claudeAPIURL
			claudeAPIURL = ts.URL
			defer func() { claudeAPIURL = orig }()

			c := &ClaudeClassifier{APIKey: "secret", Client: ts.Client(), MaxRetries: 1}
			e, err := c.ClassifyEntity(context.Background(), "Maria Lopez")
			if tt.wantErr {
				assert.ErrorIs(t, err, types.ErrUnavailable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLabel, e.Label)
			assert.Equal(t, DefaultModel, got.Model)
			require.Len(t, got.Messages, 1)
			assert.Contains(t, got.Messages[0].Content, "Maria Lopez")
		})
	}
}

func init() {
	httputil.RetryBaseDelay = 0
}
