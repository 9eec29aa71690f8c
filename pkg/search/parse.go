// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/taibuivan/cadenza/pkg/queryerr"
)

// DayLayout is the accepted format of day values ("2024-03-01").
const DayLayout = time.DateOnly

// StringFields names the query parameters of a string predicate family.
type StringFields struct {
	Is         string
	StartsWith string
	EndsWith   string
	Contains   string
}

// DateFields names the query parameters of a date predicate family.
type DateFields struct {
	Before string
	After  string
	OnDay  string
	InYear string
}

// ParseString reads at most one predicate of the family from values.
//
// Empty parameters are ignored. It returns nil when no parameter is set and fails with
// [queryerr.InvalidSearchParameter] when more than one is.
func ParseString(values url.Values, fields StringFields) (*StringPredicate, error) {
	candidates := []struct {
		field string
		build func(string) StringPredicate
	}{
		{fields.Is, Is},
		{fields.StartsWith, StartsWith},
		{fields.EndsWith, EndsWith},
		{fields.Contains, Contains},
	}

	var (
		result  *StringPredicate
		setName string
	)
	for _, candidate := range candidates {
		raw := lookup(values, candidate.field)
		if raw == "" {
			continue
		}
		if result != nil {
			return nil, queryerr.SearchParameter(candidate.field, "cannot be combined with '"+setName+"'")
		}
		predicate := candidate.build(raw)
		result, setName = &predicate, candidate.field
	}

	return result, nil
}

// ParseDate reads at most one date predicate of the family from values.
//
// Day values use [DayLayout]; before/after also accept RFC 3339 timestamps. Years are
// plain integers between 1 and 9999.
func ParseDate(values url.Values, fields DateFields) (*DatePredicate, error) {
	var (
		result  *DatePredicate
		setName string
	)

	set := func(field string, predicate DatePredicate) error {
		if result != nil {
			return queryerr.SearchParameter(field, "cannot be combined with '"+setName+"'")
		}
		result, setName = &predicate, field
		return nil
	}

	if raw := lookup(values, fields.Before); raw != "" {
		at, err := parseInstant(fields.Before, raw)
		if err != nil {
			return nil, err
		}
		if err := set(fields.Before, Before(at)); err != nil {
			return nil, err
		}
	}

	if raw := lookup(values, fields.After); raw != "" {
		at, err := parseInstant(fields.After, raw)
		if err != nil {
			return nil, err
		}
		if err := set(fields.After, After(at)); err != nil {
			return nil, err
		}
	}

	if raw := lookup(values, fields.OnDay); raw != "" {
		day, err := time.Parse(DayLayout, raw)
		if err != nil {
			return nil, queryerr.SearchParameter(fields.OnDay, "expected a day formatted as YYYY-MM-DD")
		}
		if err := set(fields.OnDay, OnDay(day)); err != nil {
			return nil, err
		}
	}

	if raw := lookup(values, fields.InYear); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year < 1 || year > 9999 {
			return nil, queryerr.SearchParameter(fields.InYear, "expected a year between 1 and 9999")
		}
		if err := set(fields.InYear, InYear(year)); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// parseInstant accepts a day or an RFC 3339 timestamp.
func parseInstant(field, raw string) (time.Time, error) {
	if at, err := time.Parse(DayLayout, raw); err == nil {
		return at, nil
	}
	if at, err := time.Parse(time.RFC3339, raw); err == nil {
		return at, nil
	}
	return time.Time{}, queryerr.SearchParameter(field, "expected a day (YYYY-MM-DD) or an RFC 3339 timestamp")
}

// lookup returns the trimmed value of field, or "" when the field is unnamed or absent.
func lookup(values url.Values, field string) string {
	if field == "" {
		return ""
	}
	return strings.TrimSpace(values.Get(field))
}
