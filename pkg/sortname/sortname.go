// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sortname derives the ordering variant of a display name.
//
// The sort name is computed whenever an entity is created or renamed and stored next
// to the display name. It is never set by clients.
package sortname

import "strings"

// articles are the leading words moved to the end of a name.
var articles = map[string]struct{}{
	"the": {},
	"a":   {},
	"an":  {},
}

// Normalize returns the sortable variant of name.
//
// # Rules (first match wins)
//
//  1. "L'X" (any case) becomes "X, L'".
//  2. A leading "The", "A" or "An" word moves to the end: "The Audience" → "Audience, The".
//  3. Anything else is returned unchanged.
//
// Only whole leading tokens are considered: "At the park" and "À la chaine" are unchanged.
func Normalize(name string) string {
	if idx := strings.IndexByte(name, '\''); idx >= 0 {
		if strings.ToLower(name[:idx]) == "l" && idx+1 < len(name) {
			return name[idx+1:] + ", " + name[:idx+1]
		}
	}

	first, rest, found := strings.Cut(name, " ")
	if !found || rest == "" {
		return name
	}

	if _, isArticle := articles[strings.ToLower(first)]; isArticle {
		return rest + ", " + first
	}

	return name
}
