// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package resource

import (
	"net/url"

	"github.com/taibuivan/cadenza/pkg/identifier"
	"github.com/taibuivan/cadenza/pkg/pagination"
	"github.com/taibuivan/cadenza/pkg/relation"
	"github.com/taibuivan/cadenza/pkg/search"
	"github.com/taibuivan/cadenza/pkg/sorting"
)

// Query is a fully validated catalog request.
type Query struct {
	// Identifier is set on single resource requests only.
	Identifier identifier.Identifier

	Include relation.Include
	Name    *search.StringPredicate
	Date    *search.DatePredicate
	Sort    sorting.Parameter
	Window  pagination.Window
}

// ParseList validates the query values of a list endpoint.
//
// Includes are checked against the atomic allow-list of def.
func ParseList(values url.Values, def Definition) (Query, error) {
	include, err := relation.Parse(optional(values, IncludeParam), def.Atomic)
	if err != nil {
		return Query{}, err
	}

	name, err := search.ParseString(values, NameFields)
	if err != nil {
		return Query{}, err
	}

	var date *search.DatePredicate
	if def.DateSearch {
		if date, err = search.ParseDate(values, ReleaseDateFields); err != nil {
			return Query{}, err
		}
	}

	window, err := pagination.Parse(pagination.RawFromValues(values))
	if err != nil {
		return Query{}, err
	}

	return Query{
		Include: include,
		Name:    name,
		Date:    date,
		Sort:    sorting.FromValues(values, def.SortKeys),
		Window:  window,
	}, nil
}

// ParseOne validates the identifier and query values of a single resource endpoint.
//
// Includes are checked against the full allow-list of def.
func ParseOne(rawIdentifier string, values url.Values, def Definition) (Query, error) {
	id := identifier.Resolve(rawIdentifier)
	if def.IdentifierParts > 0 {
		var err error
		if id, err = identifier.ResolveComposite(rawIdentifier, def.IdentifierParts); err != nil {
			return Query{}, err
		}
	}

	include, err := relation.Parse(optional(values, IncludeParam), def.Includes)
	if err != nil {
		return Query{}, err
	}

	return Query{
		Identifier: id,
		Include:    include,
		Sort:       sorting.Parameter{Key: def.SortKeys[0], Order: sorting.Asc},
	}, nil
}

// optional distinguishes an absent parameter (nil) from an empty one.
func optional(values url.Values, key string) *string {
	if !values.Has(key) {
		return nil
	}
	value := values.Get(key)
	return &value
}
