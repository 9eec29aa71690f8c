// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug generates ASCII URL slugs from arbitrary Unicode strings.
//
// # Usage
//
// Slugs are the human-readable identifiers of catalog entities (e.g. "my-bloody-valentine").
// An entity nested under another one (an album under its artist) stores the composed slug
// of both names, built with [New].
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/cadenza/pkg/slice"
)

var (
	// nonAlphanumeric matches any run of characters outside [a-z0-9].
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slug is a normalized, URL-safe string.
//
// A valid Slug is lowercase ASCII, has no leading or trailing hyphen and never
// contains two consecutive hyphens. Values are only produced by [From] and [New].
type Slug string

// String returns the slug as a plain string.
func (s Slug) String() string { return string(s) }

// IsEmpty reports whether the slug has no content, e.g. when built from punctuation only.
func (s Slug) IsEmpty() bool { return s == "" }

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Converts to lowercase.
// 4. Collapses every run of non-alphanumeric characters into a single hyphen.
// 5. Trims leading/trailing hyphens.
func From(s string) Slug {
	// 1. Normalize and remove accents
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, _ := transform.String(t, s)

	// 2. Lowercase
	result = strings.ToLower(result)

	// 3. Replace anything that is not ASCII alphanumeric
	result = nonAlphanumeric.ReplaceAllString(result, "-")

	// 4. Trim hyphenation
	return Slug(strings.Trim(result, "-"))
}

// New builds a slug out of several source strings.
//
// Each part is slugified on its own, then the joined result is slugified again,
// so New(a, b) == New(string(New(a)), b) and empty parts never leave stray hyphens.
func New(parts ...string) Slug {
	slugs := slice.Map(parts, func(part string) string {
		return string(From(part))
	})
	return From(strings.Join(slugs, "-"))
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
