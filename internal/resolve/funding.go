// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"strings"

	"github.com/caltechlibrary/iga/internal/identifier"
	"github.com/caltechlibrary/iga/internal/record"
	"github.com/caltechlibrary/iga/internal/source"
	"github.com/caltechlibrary/iga/pkg/types"
)

var notAvailable = []string{"n/a", "not available", "none"}

type funder struct{ name, ror string }

func parseFunder(t source.Tree) funder {
	f := funder{name: line(firstText(t, "name", "@name", "legalName"))}
	if id, ok := identifier.RecognizeAs(firstText(t, "@id", "identifier"), identifier.SchemeROR); ok {
		f.ror = id.Normalized
	}
	return f
}

// funding reads codemeta funder and funding. Multiple funders can only be
// reported alone, since funding entries cannot be matched to them.
func funding(s *state) ([]types.Funding, error) {
	cm := s.b.CodeMeta
	grants := cm.List("funding")
	for _, v := range grants {
		if str, ok := v.(string); ok && saysNotAvailable(str) {
			s.log.Verbose("codemeta.json funding says not available")
			return nil, nil
		}
	}

	var funders []funder
	for _, v := range cm.List("funder") {
		if t, ok := source.AsTree(v); ok {
			funders = append(funders, parseFunder(t))
		} else if name := line(source.AsString(v)); name != "" {
			funders = append(funders, funder{name: name})
		}
	}
	if len(funders) > 1 {
		if len(grants) > 0 {
			s.log.Verbose("codemeta.json has several funders and funding entries; skipping funding")
			return nil, nil
		}
		out := make([]types.Funding, 0, len(funders))
		for _, f := range funders {
			out = append(out, s.fundingEntry(f, nil))
		}
		return record.Dedup(out, record.FundingKey), nil
	}

	var main funder
	if len(funders) == 1 {
		main = funders[0]
	}
	var out []types.Funding
	for _, v := range grants {
		t, ok := source.AsTree(v)
		if !ok {
			// Grant numbers cannot be parsed out of free text.
			if main != (funder{}) {
				return []types.Funding{s.fundingEntry(main, nil)}, nil
			}
			return nil, nil
		}
		item := funder{}
		switch fv := t["funder"].(type) {
		case string:
			item.name = line(fv)
		case map[string]any:
			item = parseFunder(fv)
		}
		if item.name == "" {
			item.name = main.name
		}
		if item.ror == "" {
			item.ror = main.ror
		}
		if item == (funder{}) {
			continue
		}
		var award *types.Award
		title, number := line(firstText(t, "name", "@name")), firstText(t, "identifier", "@id")
		if title != "" && number != "" {
			award = &types.Award{Number: number, Title: map[string]string{"en": title}}
		}
		out = append(out, s.fundingEntry(item, award))
	}
	if len(grants) == 0 && main != (funder{}) {
		out = append(out, s.fundingEntry(main, nil))
	}
	return record.Dedup(out, record.FundingKey), nil
}

func saysNotAvailable(s string) bool {
	s = strings.ToLower(s)
	for _, na := range notAvailable {
		if strings.Contains(s, na) {
			return true
		}
	}
	return false
}

// fundingEntry names the funder, resolving a bare ROR id when possible.
func (s *state) fundingEntry(f funder, award *types.Award) types.Funding {
	name := f.name
	if name == "" && f.ror != "" {
		name = s.orgName(f.ror)
	}
	entry := types.Funding{Funder: types.Funder{Name: name}, Award: award}
	if name == "" {
		entry.Funder.ID = f.ror
	}
	return entry
}
