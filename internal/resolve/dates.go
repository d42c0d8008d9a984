// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/caltechlibrary/iga/pkg/types"
)

var (
	yearOnly  = regexp.MustCompile(`^\d{4}$`)
	yearMonth = regexp.MustCompile(`^(\d{4})-(\d{1,2})$`)
)

// normalizeDate renders a free-form date as YYYY-MM-DD. A bare year or a
// year and month keeps that precision. Empty input gives "".
func normalizeDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return "", nil
	case yearOnly.MatchString(raw):
		return raw, nil
	}
	if m := yearMonth.FindStringSubmatch(raw); m != nil {
		month, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 {
			return "", fmt.Errorf("unrecognized date %q", raw)
		}
		return fmt.Sprintf("%s-%02d", m[1], month), nil
	}
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return "", fmt.Errorf("unrecognized date %q: %w", raw, err)
	}
	return t.Format(time.DateOnly), nil
}

// dayOf formats a forge timestamp as a UTC date, or "" for the zero time.
func dayOf(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.DateOnly)
}

// dateEntry builds a one-element date list for raw, or nil when raw is
// empty.
func dateEntry(raw, kind string) ([]types.Date, error) {
	d, err := normalizeDate(raw)
	if err != nil || d == "" {
		return nil, err
	}
	return []types.Date{{Date: d, Type: types.VocabRef{ID: kind}}}, nil
}

func codemetaDate(key, kind string) func(*state) ([]types.Date, error) {
	return func(s *state) ([]types.Date, error) {
		raw, err := text(s.b.CodeMeta, key)
		if err != nil {
			return nil, err
		}
		return dateEntry(raw, kind)
	}
}

func codemetaDay(key string) func(*state) (string, error) {
	return func(s *state) (string, error) {
		raw, err := text(s.b.CodeMeta, key)
		if err != nil {
			return "", err
		}
		return normalizeDate(raw)
	}
}

func cffDay(key string) func(*state) (string, error) {
	return func(s *state) (string, error) {
		raw, err := text(s.b.CFF, key)
		if err != nil {
			return "", err
		}
		return normalizeDate(raw)
	}
}
