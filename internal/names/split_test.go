// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLatin(t *testing.T) {
	tests := []struct {
		name   string
		given  string
		family string
	}{
		{"Mike Hucka", "Mike", "Hucka"},
		{"Maria Lopez", "Maria", "Lopez"},
		{"Miguel de Icaza", "Miguel", "de Icaza"},
		{"Wladimir J. van der Laan", "Wladimir J.", "van der Laan"},
		{"Martin Luther King, Jr.", "Martin Luther", "King"},
		{"Hucka, Michael", "Michael", "Hucka"},
		{"Dr Nic Williams", "Nic", "Williams"},
		{"Prof. Ada Lovelace PhD", "Ada", "Lovelace"},
		{"ara. t. howard", "Ara T.", "Howard"},
		{"Francisco Ryan Tolmasky III", "Francisco Ryan", "Tolmasky"},
		{"Matthew Weier O'Phinney", "Matthew Weier", "O'Phinney"},
		{"Ronald McDonald", "Ronald", "McDonald"},
		{"Mr. doob", "", "Doob"},
		{"Plato", "", "Plato"},
		{"", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, f := SplitLatin(tt.name)
			assert.Equal(t, tt.given, g)
			assert.Equal(t, tt.family, f)
		})
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"  Mike   Hucka ", "Mike Hucka"},
		{"<b>Ann</b> Lee", "Ann Lee"},
		{"Yukihiro &quot;Matz&quot; Matsumoto", "Yukihiro Matsumoto"},
		{"Adam 'Atomic' Saltsman", "Adam Saltsman"},
		{"Weibin Yao(姚伟斌)", "Weibin Yao"},
		{"Weibin Yao 姚伟斌", "Weibin Yao"},
		{"王小明", "王小明"},
		{"Mr.doob", "Mr. doob"},
		{"Jane Doe 🚀", "Jane Doe"},
		{"Matthew Weier O’Phinney", "Matthew Weier O'Phinney"},
		{"Ann Lee [maintainer]", "Ann Lee"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.raw))
		})
	}
}
