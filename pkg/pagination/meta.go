// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination

import (
	"net/url"
	"strconv"
)

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	// Count is the number of returned items.
	Count int `json:"count"`
	// This is the URL of the current page.
	This string `json:"this"`
	// Next is the URL of the next page, nil on the last page.
	Next *string `json:"next"`
	// Previous is the URL of the previous page, nil on the first page.
	Previous *string `json:"previous"`
	// Page is the 1-based page index, nil when the page is empty or take is 0.
	Page *uint64 `json:"page"`
}

// NewMeta builds the metadata of a page of count items served at route with query.
//
// A page is considered full, and a next page advertised, when count reaches take.
// A skip that is not a multiple of take is rounded up before computing neighbours.
func NewMeta(route string, query url.Values, window Window, count int) Meta {
	meta := Meta{
		Count: count,
		This:  buildURL(route, query),
	}

	if window.Take == 0 {
		return meta
	}

	skip := window.Skip
	if rem := skip % window.Take; rem != 0 {
		skip += window.Take - rem
	}

	if count > 0 {
		page := 1 + window.Skip/window.Take
		meta.Page = &page
	}

	if uint64(count) >= window.Take {
		next := buildURL(route, withSkip(query, skip+window.Take))
		meta.Next = &next
	}

	if skip > 0 {
		previousSkip := uint64(0)
		if skip > window.Take {
			previousSkip = skip - window.Take
		}
		previous := buildURL(route, withSkip(query, previousSkip))
		meta.Previous = &previous
	}

	return meta
}

// withSkip returns a copy of query with skip replaced.
func withSkip(query url.Values, skip uint64) url.Values {
	copied := make(url.Values, len(query)+1)
	for key, values := range query {
		copied[key] = append([]string(nil), values...)
	}
	copied.Set(SkipParam, strconv.FormatUint(skip, 10))
	return copied
}

// buildURL renders route with query, dropping a zero skip.
func buildURL(route string, query url.Values) string {
	if query.Get(SkipParam) == "0" {
		query = withSkip(query, 0)
		query.Del(SkipParam)
	}

	encoded := query.Encode()
	if encoded == "" {
		return route
	}
	return route + "?" + encoded
}
