// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// Lists are windowed with skip/take query parameters. This package validates those
// values into a [Window] and builds the navigation metadata (next/previous URLs)
// delivered alongside the items of a list response.
package pagination

import (
	"net/url"
	"strconv"

	"github.com/taibuivan/cadenza/pkg/queryerr"
)

const (
	// DefaultTake is the number of items returned when take is not specified.
	DefaultTake = 50

	// SkipParam and TakeParam are the query parameter names.
	SkipParam = "skip"
	TakeParam = "take"
)

// Raw holds the unparsed skip/take values. A nil field means the parameter was absent.
type Raw struct {
	Skip *string
	Take *string
}

// Window is a validated page window.
//
// Take is not clamped: an explicit value is honoured as given.
type Window struct {
	Skip uint64
	Take uint64
}

// Parse validates raw into a [Window].
//
// # Defaults
//
// Absent skip is 0 and absent take is [DefaultTake]. A supplied value that is not a
// non-negative base-10 integer fails with [queryerr.InvalidPaginationParameter].
func Parse(raw Raw) (Window, error) {
	window := Window{Skip: 0, Take: DefaultTake}

	if raw.Skip != nil {
		skip, err := parseUint(SkipParam, *raw.Skip)
		if err != nil {
			return Window{}, err
		}
		window.Skip = skip
	}

	if raw.Take != nil {
		take, err := parseUint(TakeParam, *raw.Take)
		if err != nil {
			return Window{}, err
		}
		window.Take = take
	}

	return window, nil
}

// RawFromValues extracts the skip/take parameters, keeping absence distinct from "".
func RawFromValues(values url.Values) Raw {
	var raw Raw
	if values.Has(SkipParam) {
		skip := values.Get(SkipParam)
		raw.Skip = &skip
	}
	if values.Has(TakeParam) {
		take := values.Get(TakeParam)
		raw.Take = &take
	}
	return raw
}

// parseUint parses a non-negative integer; signs and blanks are rejected.
func parseUint(field, raw string) (uint64, error) {
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, queryerr.PaginationParameter(field, raw)
	}
	return n, nil
}
