// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package names

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Entity labels returned by an EntityClassifier.
const (
	LabelPerson       = "PERSON"
	LabelOrganization = "ORG"
	LabelOther        = "OTHER"
)

// Entity is the outcome of named-entity classification.
type Entity struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// EntityClassifier labels a short text as a person, an organization, or
// something else. Implementations return an error wrapping
// types.ErrUnavailable when they cannot answer.
type EntityClassifier interface {
	ClassifyEntity(ctx context.Context, text string) (Entity, error)
}

// HeuristicClassifier is an offline EntityClassifier. It recognizes
// personal names by shape: two to four capitalized alphabetic tokens with
// no ordinary English words, scored higher when the first token is a common
// given name.
type HeuristicClassifier struct{}

// ClassifyEntity implements EntityClassifier.
func (HeuristicClassifier) ClassifyEntity(_ context.Context, text string) (Entity, error) {
	tokens := strings.Fields(text)
	if len(tokens) < 2 || len(tokens) > 4 {
		return Entity{Label: LabelOther, Confidence: 0.5}, nil
	}
	for _, t := range tokens {
		low := strings.ToLower(strings.TrimSuffix(t, "."))
		if commonWords[low] || orgWords[low] {
			return Entity{Label: LabelOrganization, Confidence: 0.7}, nil
		}
		if !nameShaped(t) {
			return Entity{Label: LabelOther, Confidence: 0.5}, nil
		}
	}
	if givenNames[strings.ToLower(tokens[0])] {
		return Entity{Label: LabelPerson, Confidence: 0.9}, nil
	}
	return Entity{Label: LabelPerson, Confidence: 0.6}, nil
}

// nameShaped accepts capitalized words, initials, and particles, allowing
// apostrophes, hyphens, and periods inside.
func nameShaped(t string) bool {
	if particles[strings.ToLower(t)] {
		return true
	}
	first := true
	for _, r := range t {
		switch {
		case first && !unicode.IsUpper(r):
			return false
		case unicode.IsLetter(r), r == '\'', r == '-', r == '.':
		default:
			return false
		}
		first = false
	}
	return true
}

// ChainClassifier asks each classifier in turn and returns the first answer.
type ChainClassifier []EntityClassifier

// ClassifyEntity implements EntityClassifier.
func (c ChainClassifier) ClassifyEntity(ctx context.Context, text string) (Entity, error) {
	var errs []error
	for _, cl := range c {
		e, err := cl.ClassifyEntity(ctx, text)
		if err == nil {
			return e, nil
		}
		if ctx.Err() != nil {
			return Entity{}, ctx.Err()
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return Entity{}, fmt.Errorf("no entity classifier configured")
	}
	return Entity{}, errors.Join(errs...)
}
