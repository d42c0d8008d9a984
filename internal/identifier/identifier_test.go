// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package identifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecognize(t *testing.T) {
	tests := []struct {
		input      string
		scheme     Scheme
		normalized string
	}{
		// ORCID
		{"0000-0001-9105-5960", SchemeORCID, "0000-0001-9105-5960"},
		{"http://orcid.org/0000-0001-9105-5960", SchemeORCID, "0000-0001-9105-5960"},
		{"https://orcid.org/0000-0002-1825-0097/", SchemeORCID, "0000-0002-1825-0097"},
		{"orcid: 0000-0002-1825-0097", SchemeORCID, "0000-0002-1825-0097"},
		// ROR
		{"04dkp9463", SchemeROR, "04dkp9463"},
		{"https://ror.org/027m9bs27", SchemeROR, "027m9bs27"},
		{"ror:05dxps055", SchemeROR, "05dxps055"},
		// DOI
		{"10.48550/arXiv.2012.13117", SchemeDOI, "10.48550/arXiv.2012.13117"},
		{"https://doi.org/10.5281/zenodo.1095472", SchemeDOI, "10.5281/zenodo.1095472"},
		{"http://dx.doi.org/10.1145/1234567.1234568", SchemeDOI, "10.1145/1234567.1234568"},
		{"doi:10.1000/182", SchemeDOI, "10.1000/182"},
		// arXiv
		{"arXiv:2012.13117v1", SchemeArxiv, "arXiv:2012.13117v1"},
		{"2301.07041", SchemeArxiv, "arXiv:2301.07041"},
		{"https://arxiv.org/abs/2301.07041v2", SchemeArxiv, "arXiv:2301.07041v2"},
		{"arXiv:hep-th/9901001", SchemeArxiv, "arXiv:hep-th/9901001"},
		// PubMed
		{"PMC4908318", SchemePMCID, "PMC4908318"},
		{"pmc4908318", SchemePMCID, "PMC4908318"},
		{"26861819", SchemePMID, "26861819"},
		{"pmid:26861819", SchemePMID, "26861819"},
		{"https://pubmed.ncbi.nlm.nih.gov/26861819/", SchemePMID, "26861819"},
		// ISBN, ISSN, ISNI
		{"978-0982477373", SchemeISBN, "9780982477373"},
		{"9780898714128", SchemeISBN, "9780898714128"},
		{"ISBN 0-306-40615-2", SchemeISBN, "0306406152"},
		{"0378-5955", SchemeISSN, "0378-5955"},
		{"https://isni.org/isni/000000012146438X", SchemeISNI, "000000012146438X"},
		{"0000 0001 2146 438X", SchemeISNI, "000000012146438X"},
		// Software Heritage
		{"swh:1:cnt:94a9ed024d3859793618152ea559a168bbcbb5e2", SchemeSWH, "swh:1:cnt:94a9ed024d3859793618152ea559a168bbcbb5e2"},
		{"swh:1:dir:d198bc9d7a6bcf6db04f476d29314f157507d505;origin=https://github.com/x/y", SchemeSWH, "swh:1:dir:d198bc9d7a6bcf6db04f476d29314f157507d505"},
		// InvenioRDM record ids
		{"bknz4-bch35", SchemeRDM, "bknz4-bch35"},
		{"https://data.caltech.edu/records/ry4vm-wny44?preview=1", SchemeRDM, "ry4vm-wny44"},
		// Others
		{"hdl:20.500.12345/abc", SchemeHandle, "20.500.12345/abc"},
		{"https://hdl.handle.net/2027/mdp.39015078546135", SchemeHandle, "2027/mdp.39015078546135"},
		{"ark:/13030/tf5p30086k", SchemeARK, "ark:/13030/tf5p30086k"},
		{"https://n2t.net/ark:/13030/tf5p30086k", SchemeARK, "ark:/13030/tf5p30086k"},
		{"gnd:4079154-3", SchemeGND, "gnd:4079154-3"},
		{"https://d-nb.info/gnd/4079154-3", SchemeGND, "gnd:4079154-3"},
		{"urn:lsid:ubio.org:namebank:11815", SchemeLSID, "urn:lsid:ubio.org:namebank:11815"},
		{"urn:nbn:de:101:1-201102033592", SchemeURN, "urn:nbn:de:101:1-201102033592"},
		{"https://purl.org/dc/terms/", SchemePURL, "https://purl.org/dc/terms/"},
		{"https://github.com/caltechlibrary/iga", SchemeURL, "https://github.com/caltechlibrary/iga"},
		{"  https://example.org/x  ", SchemeURL, "https://example.org/x"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := Recognize(tt.input)
			require.True(t, ok, "expected %q to be recognized", tt.input)
			assert.Equal(t, tt.scheme, got.Scheme)
			assert.Equal(t, tt.normalized, got.Normalized)

			again, ok := Recognize(got.Normalized)
			require.True(t, ok, "normalized %q not recognized", got.Normalized)
			assert.Equal(t, got.Scheme, again.Scheme)
			assert.Equal(t, got.Normalized, again.Normalized)
		})
	}
}

func TestRecognize_Rejects(t *testing.T) {
	for _, input := range []string{
		"",
		"   ",
		"Acme",
		"PMCID; PMC4908318",
		"0000-0001-9105-5961",  // bad ORCID check digit
		"978-0982477374",        // bad ISBN check digit
		"123456789",             // nine digits: no scheme
		"not a url://",
		"mailto:someone@example.org",
	} {
		t.Run(input, func(t *testing.T) {
			_, ok := Recognize(input)
			assert.False(t, ok)
		})
	}
}

func TestRecognize_Deterministic(t *testing.T) {
	a, _ := Recognize("https://doi.org/10.5281/zenodo.1095472")
	b, _ := Recognize("https://doi.org/10.5281/zenodo.1095472")
	assert.Equal(t, a, b)
	assert.Equal(t, "doi:10.5281/zenodo.1095472", a.Key())
}

func TestRecognizeAs(t *testing.T) {
	_, ok := RecognizeAs("https://ror.org/027m9bs27", SchemeORCID)
	assert.False(t, ok)
	r, ok := RecognizeAs("https://ror.org/027m9bs27", SchemeORCID, SchemeROR)
	require.True(t, ok)
	assert.Equal(t, SchemeROR, r.Scheme)
}

func TestDOIForArxiv(t *testing.T) {
	assert.Equal(t, "10.48550/arXiv.2012.13117", DOIForArxiv("arXiv:2012.13117"))
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.org/a"))
	assert.True(t, IsURL(" http://example.org "))
	assert.False(t, IsURL("example.org"))
	assert.False(t, IsURL("release notes"))
}
