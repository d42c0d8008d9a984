// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package names

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"text/template"

	"github.com/caltechlibrary/iga/internal/httputil"
	"github.com/caltechlibrary/iga/pkg/types"
)

// entityPromptTmpl asks the model to label one name string.
var entityPromptTmpl = template.Must(template.New("entity").Parse(`You classify names found in software metadata (authors, contributors, maintainers).

Decide whether the text below names a single human person ("PERSON"), an organization, company, project, or team ("ORG"), or something else such as a user handle or a phrase ("OTHER").

Respond with a JSON object with two fields: "label" (one of "PERSON", "ORG", "OTHER") and "confidence" (a float between 0.0 and 1.0). Do not include any text outside the JSON object.

Example response:
{"label": "PERSON", "confidence": 0.93}

Text:
{{.Text}}
`))

// claudeAPIURL is the Claude API endpoint. Package-level var for test substitution.
var claudeAPIURL = "https://api.anthropic.com/v1/messages"

// DefaultModel is used when ClaudeClassifier.Model is empty.
const DefaultModel = "claude-haiku-4-5"

// ClaudeClassifier calls the Claude API to label a name as PERSON, ORG, or
// OTHER.
type ClaudeClassifier struct {
	APIKey     string
	Model      string
	MaxRetries int
	Client     *http.Client
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []claudeContent `json:"content"`
}

type claudeContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ClassifyEntity implements EntityClassifier. Any failure is reported as
// types.ErrUnavailable so callers fall back to other classifiers.
func (c *ClaudeClassifier) ClassifyEntity(ctx context.Context, text string) (Entity, error) {
	var buf bytes.Buffer
	if err := entityPromptTmpl.Execute(&buf, struct{ Text string }{Text: text}); err != nil {
		return Entity{}, fmt.Errorf("rendering prompt: %w", err)
	}

	model := c.Model
	if model == "" {
		model = DefaultModel
	}
	body, err := json.Marshal(claudeRequest{
		Model:     model,
		MaxTokens: 64,
		Messages:  []claudeMessage{{Role: "user", Content: buf.String()}},
	})
	if err != nil {
		return Entity{}, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, claudeAPIURL, bytes.NewReader(body))
	if err != nil {
		return Entity{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, c.MaxRetries)
	if err != nil {
		if ctx.Err() != nil {
			return Entity{}, ctx.Err()
		}
		return Entity{}, fmt.Errorf("%w: calling Claude API: %v", types.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Entity{}, fmt.Errorf("%w: Claude API returned %d: %s", types.ErrUnavailable, resp.StatusCode, msg)
	}

	var cResp claudeResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return Entity{}, fmt.Errorf("%w: decoding Claude response: %v", types.ErrUnavailable, err)
	}

	for _, block := range cResp.Content {
		if block.Type != "text" {
			continue
		}
		var e Entity
		if err := json.Unmarshal([]byte(strings.TrimSpace(block.Text)), &e); err != nil {
			return Entity{}, fmt.Errorf("%w: parsing entity JSON: %v", types.ErrUnavailable, err)
		}
		e.Label = strings.ToUpper(e.Label)
		return e, nil
	}
	return Entity{}, fmt.Errorf("%w: no text content in Claude API response", types.ErrUnavailable)
}
