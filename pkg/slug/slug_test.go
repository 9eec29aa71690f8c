// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/cadenza/pkg/slug"
)

/*
TestFrom covers the normalization pipeline on display names.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  slug.Slug
	}{
		{"simple", "My Artist", "my-artist"},
		{"accents", "Édith Piaf", "edith-piaf"},
		{"punctuation_run", "AC/DC -- Live!!", "ac-dc-live"},
		{"leading_trailing", "  ...Hello...  ", "hello"},
		{"digits", "2 Unlimited", "2-unlimited"},
		{"apostrophe", "L'Absente", "l-absente"},
		{"punctuation_only", "!!!", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}

/*
TestNew_Composition verifies multi-part slugs are composed idempotently.
*/
func TestNew_Composition(t *testing.T) {
	assert.Equal(t, slug.Slug("my-artist-my-album"), slug.New("My Artist", "My Album"))

	// Re-slugifying a composed slug is a no-op.
	composed := slug.New("Artist", "Album")
	assert.Equal(t, composed, slug.From(composed.String()))
	assert.Equal(t, composed, slug.New(composed.String()))

	// Empty or punctuation-only parts do not leave stray hyphens.
	assert.Equal(t, slug.Slug("artist-album"), slug.New("Artist", "???", "Album"))
	assert.True(t, slug.New().IsEmpty())
}
