// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package identifier resolves the {idOrSlug} path segment of catalog endpoints.
//
// # Interpretation Order
//
// A segment made only of ASCII digits is always a numeric primary key, even if a slug
// with the same spelling exists. Otherwise a segment containing [Separator] is a chain
// of ancestor slugs, and anything else is a single slug. Resolution is total: it never
// rejects input, the store decides whether the resource exists.
package identifier

import (
	"strconv"
	"strings"

	"github.com/taibuivan/cadenza/pkg/queryerr"
	"github.com/taibuivan/cadenza/pkg/slice"
	"github.com/taibuivan/cadenza/pkg/slug"
)

// Separator joins the slugs of a composite identifier ("artist+album").
const Separator = "+"

// Identifier is one of [Numeric], [SlugID] or [Composite].
type Identifier interface {
	// String renders the identifier back into its path form.
	String() string

	identifier()
}

// Numeric is a primary key.
type Numeric struct {
	ID int64
}

// SlugID is a single slug.
type SlugID struct {
	Slug slug.Slug
}

// Composite is an ordered chain of slugs, outermost ancestor first.
type Composite struct {
	Parts []slug.Slug
}

func (Numeric) identifier()   {}
func (SlugID) identifier()    {}
func (Composite) identifier() {}

func (n Numeric) String() string { return strconv.FormatInt(n.ID, 10) }
func (s SlugID) String() string  { return s.Slug.String() }
func (c Composite) String() string {
	return strings.Join(slice.Map(c.Parts, slug.Slug.String), Separator)
}

// Slug composes the parts into the slug stored for the innermost resource.
func (c Composite) Slug() slug.Slug {
	return slug.New(slice.Map(c.Parts, slug.Slug.String)...)
}

// Resolve interprets a raw path segment. It never fails.
func Resolve(raw string) Identifier {
	if id, ok := parseNumeric(raw); ok {
		return Numeric{ID: id}
	}

	if strings.Contains(raw, Separator) {
		parts := strings.Split(raw, Separator)
		return Composite{Parts: slice.Map(parts, func(part string) slug.Slug {
			return slug.From(part)
		})}
	}

	return SlugID{Slug: slug.From(raw)}
}

// ResolveComposite is the strict form of [Resolve] for resources addressed by a chain
// of exactly parts slugs. Numeric ids and single slugs are accepted as-is; a composite
// with the wrong number of parts, or with a part that normalizes to nothing, fails with
// [queryerr.InvalidIdentifierFormat].
func ResolveComposite(raw string, parts int) (Identifier, error) {
	resolved := Resolve(raw)

	composite, ok := resolved.(Composite)
	if !ok {
		return resolved, nil
	}

	if len(composite.Parts) != parts {
		return nil, queryerr.IdentifierFormat(raw, parts)
	}
	for _, part := range composite.Parts {
		if part.IsEmpty() {
			return nil, queryerr.IdentifierFormat(raw, parts)
		}
	}

	return composite, nil
}

// parseNumeric accepts non-empty, digits-only strings that fit in an int64.
// Signs, whitespace and underscores are rejected even though strconv would accept some of them.
func parseNumeric(raw string) (int64, bool) {
	if raw == "" {
		return 0, false
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return 0, false
		}
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
