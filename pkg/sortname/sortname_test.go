// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sortname_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/cadenza/pkg/sortname"
)

/*
TestNormalize covers article and apostrophe relocation plus the unchanged cases.
*/
func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"The Audience", "Audience, The"},
		{"A Love Story", "Love Story, A"},
		{"An Original Story", "Original Story, An"},
		{"the xx", "xx, the"},
		{"L'Absente", "Absente, L'"},
		{"l'impératrice", "impératrice, l'"},
		{"À la chaine", "À la chaine"},
		{"At the park", "At the park"},
		{"Anthem", "Anthem"},
		{"Theory of a Deadman", "Theory of a Deadman"},
		{"The", "The"},
		{"The ", "The "},
		{"L'", "L'"},
		{"Guns N' Roses", "Guns N' Roses"},
		{"Les Rita Mitsouko", "Les Rita Mitsouko"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, sortname.Normalize(tt.input))
		})
	}
}

/*
TestNormalize_Deterministic checks repeated calls agree.
*/
func TestNormalize_Deterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, "Beatles, The", sortname.Normalize("The Beatles"))
	}
}
