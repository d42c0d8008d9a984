// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package names

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caltechlibrary/iga/pkg/types"
)

type fakeClassifier struct {
	entity Entity
	err    error
	calls  int
}

func (f *fakeClassifier) ClassifyEntity(context.Context, string) (Entity, error) {
	f.calls++
	return f.entity, f.err
}

type fakePeople map[string][2]string

func (f fakePeople) LookupPersonName(_ context.Context, orcid string) (string, string, error) {
	n, ok := f[orcid]
	if !ok {
		return "", "", types.ErrNotFound
	}
	return n[0], n[1], nil
}

type fakeOrgs map[string]string

func (f fakeOrgs) LookupOrganizationName(_ context.Context, ror string) (string, error) {
	n, ok := f[ror]
	if !ok {
		return "", types.ErrNotFound
	}
	return n, nil
}

func person(given, family string) types.Identity { return Person(given, family) }
func org(name string) types.Identity             { return Organization(name) }

func TestResolve_SingleTokenIsOrganization(t *testing.T) {
	fc := &fakeClassifier{entity: Entity{Label: LabelPerson, Confidence: 1}}
	r := NewResolver(Options{Classifier: fc})
	for _, raw := range []string{"Acme", "cho45", "Mr.doob", "octocat"} {
		t.Run(raw, func(t *testing.T) {
			got := r.ResolveString(context.Background(), raw)
			assert.Equal(t, org(raw), got)
		})
	}
	assert.Zero(t, fc.calls, "single tokens never reach the entity classifier")
}

func TestResolve_PersonLabelSplits(t *testing.T) {
	fc := &fakeClassifier{entity: Entity{Label: LabelPerson, Confidence: 0.8}}
	r := NewResolver(Options{Classifier: fc})
	assert.Equal(t, person("Maria", "Lopez"), r.ResolveString(context.Background(), "Maria Lopez"))
}

func TestResolve_NonPersonLabel(t *testing.T) {
	tests := []struct {
		name   string
		entity Entity
		err    error
	}{
		{"org label", Entity{Label: LabelOrganization, Confidence: 0.9}, nil},
		{"low confidence person", Entity{Label: LabelPerson, Confidence: 0.2}, nil},
		{"classifier unavailable", Entity{}, types.ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(Options{Classifier: &fakeClassifier{entity: tt.entity, err: tt.err}})
			assert.Equal(t, org("Maria Lopez"), r.ResolveString(context.Background(), "Maria Lopez"))
		})
	}
}

func TestResolve_MarkersOverrideClassifier(t *testing.T) {
	fc := &fakeClassifier{entity: Entity{Label: LabelPerson, Confidence: 1}}
	r := NewResolver(Options{Classifier: fc})
	for _, raw := range []string{
		"Mike's Tools",
		"Jane Doe – Consulting",
		"Open Source Lab",
		"Acme Inc.",
		"example.com Team",
		"https://example.org/people",
		"jane@example.org",
		"Caltech Library",
		"12345 67890",
	} {
		t.Run(raw, func(t *testing.T) {
			got := r.ResolveString(context.Background(), raw)
			assert.Equal(t, types.KindOrganization, got.Kind)
			assert.Equal(t, raw, got.Name)
		})
	}
	assert.Zero(t, fc.calls)
}

func TestResolve_Structured(t *testing.T) {
	r := NewResolver(Options{Classifier: &fakeClassifier{err: types.ErrUnavailable}})
	got := r.Resolve(context.Background(), Name{Raw: "ignored", Given: "Ann", Family: "Lee"})
	assert.Equal(t, person("Ann", "Lee"), got)

	got = r.Resolve(context.Background(), Name{Given: "Plato"})
	assert.Equal(t, person("", "Plato"), got)
}

func TestResolve_OrganizationHint(t *testing.T) {
	r := NewResolver(Options{Classifier: &fakeClassifier{entity: Entity{Label: LabelPerson, Confidence: 1}}})
	got := r.Resolve(context.Background(), Name{Raw: "Maria Lopez", Organization: true})
	assert.Equal(t, org("Maria Lopez"), got)
}

func TestResolve_Identifiers(t *testing.T) {
	r := NewResolver(Options{
		People: fakePeople{"0000-0001-9105-5960": {"Michael", "Hucka"}},
		Orgs:   fakeOrgs{"05dxps055": "California Institute of Technology"},
	})

	got := r.ResolveString(context.Background(), "https://orcid.org/0000-0001-9105-5960")
	want := person("Michael", "Hucka")
	want.Identifiers = []types.Identifier{{Scheme: "orcid", Identifier: "0000-0001-9105-5960"}}
	assert.Equal(t, want, got)

	got = r.ResolveString(context.Background(), "https://ror.org/05dxps055")
	wantOrg := org("California Institute of Technology")
	wantOrg.Identifiers = []types.Identifier{{Scheme: "ror", Identifier: "05dxps055"}}
	assert.Equal(t, wantOrg, got)

	// Failed lookups fall through to the rest of the chain.
	got = r.ResolveString(context.Background(), "0000-0002-1825-0097")
	assert.Equal(t, types.KindOrganization, got.Kind)
}

func TestResolve_Surnames(t *testing.T) {
	fc := &fakeClassifier{err: types.ErrUnavailable}
	r := NewResolver(Options{Classifier: fc})
	tests := []struct {
		raw  string
		want types.Identity
	}{
		{"王小明", person("小明", "王")},
		{"欧阳修", person("修", "欧阳")},
		{"山田 太郎", person("太郎", "山田")},
		{"佐々木希", person("希", "佐々木")},
		{"김민수", person("민수", "김")},
		{"SHIBATA Hiroshi", person("Hiroshi", "Shibata")},
		{"Wei Zhang", person("Wei", "Zhang")},
		{"Weibin Yao(姚伟斌)", person("Weibin", "Yao")},
		{"Lim Chee Aun", person("Lim Chee", "Aun")},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, r.ResolveString(context.Background(), tt.raw))
		})
	}
	assert.Zero(t, fc.calls)
}

func TestResolve_HeuristicClassifierDefault(t *testing.T) {
	r := NewResolver(Options{})
	assert.Equal(t, person("Mike", "Hucka"), r.ResolveString(context.Background(), "Mike Hucka"))
	assert.Equal(t, person("Miguel", "de Icaza"), r.ResolveString(context.Background(), "Miguel de Icaza"))
	assert.Equal(t, org("Open Data Kit"), r.ResolveString(context.Background(), "Open Data Kit"))
}

func TestResolve_NeverFailsOnEmpty(t *testing.T) {
	r := NewResolver(Options{})
	got := r.ResolveString(context.Background(), "   ")
	assert.Equal(t, types.KindOrganization, got.Kind)
}

func TestResolverWith_CustomChain(t *testing.T) {
	var order []string
	r := NewResolverWith(nil, recordStrategy("a", &order, false), recordStrategy("b", &order, true), recordStrategy("c", &order, true))
	got := r.ResolveString(context.Background(), "x")
	assert.Equal(t, org("b"), got)
	assert.Equal(t, []string{"a", "b"}, order)
}

type funcStrategy func(context.Context, Name) (types.Identity, bool)

func (f funcStrategy) TryClassify(ctx context.Context, n Name) (types.Identity, bool) { return f(ctx, n) }

func recordStrategy(name string, order *[]string, match bool) Strategy {
	return funcStrategy(func(context.Context, Name) (types.Identity, bool) {
		*order = append(*order, name)
		return org(name), match
	})
}

func TestNonPerson(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"Jean-Luc Picard", false},
		{"Matthew Weier O'Phinney", false},
		{"Ann Lee", false},
		{"Mike's Tools", true},
		{"A — B", true},
		{"foo.io", true},
		{"2024", true},
		{"The Apache Software Foundation", true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NonPerson(tt.raw), fmt.Sprintf("NonPerson(%q)", tt.raw))
		})
	}
}
