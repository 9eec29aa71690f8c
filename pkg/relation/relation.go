// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package relation parses the 'with' query parameter into a typed relation include map.
//
// # Allow-lists
//
// Each resource declares its relation keys in order. List endpoints narrow that list
// with [FilterAtomic] before parsing, so collection-valued relations are only available
// where the endpoint opted into them. [Parse] itself knows nothing about that policy.
package relation

import (
	"regexp"
	"strings"

	"github.com/taibuivan/cadenza/pkg/queryerr"
	"github.com/taibuivan/cadenza/pkg/slice"
)

// includeGrammar is key(,key)* where a key is one or more ASCII letters.
var includeGrammar = regexp.MustCompile(`^[a-zA-Z]+(,[a-zA-Z]+)*$`)

// Key names a relation of a resource (e.g. "artist", "genres").
type Key string

// Keys is an ordered allow-list of relation keys.
type Keys []Key

// Strings returns the keys as plain strings, preserving order.
func (k Keys) Strings() []string {
	return slice.Map(k, func(key Key) string { return string(key) })
}

// Has reports whether key belongs to the allow-list.
func (k Keys) Has(key Key) bool {
	return slice.Contains(k, key)
}

// Include maps every key of an allow-list to whether it was requested.
//
// An Include built by [Parse] or [None] is total: every allowed key is present.
type Include map[Key]bool

// Has reports whether key was requested. Unknown keys read as false.
func (i Include) Has(key Key) bool {
	return i[key]
}

// None returns an Include with every key of allowed set to false.
func None(allowed Keys) Include {
	include := make(Include, len(allowed))
	for _, key := range allowed {
		include[key] = false
	}
	return include
}

// Parse validates raw against allowed and returns the total include map.
//
// # Rules
//
//  1. A nil or empty raw value includes nothing.
//  2. raw must match key(,key)* or the result is [queryerr.InvalidRelationIncludeFormat].
//  3. Every key must belong to allowed or the result is [queryerr.InvalidRelationIncludeKey],
//     naming the offending key and listing the allow-list in order.
func Parse(raw *string, allowed Keys) (Include, error) {
	include := None(allowed)

	if raw == nil || *raw == "" {
		return include, nil
	}

	if !includeGrammar.MatchString(*raw) {
		return nil, queryerr.RelationIncludeFormat(*raw)
	}

	for _, token := range strings.Split(*raw, ",") {
		key := Key(token)
		if !allowed.Has(key) {
			return nil, queryerr.RelationIncludeKey(token, allowed.Strings())
		}
		include[key] = true
	}

	return include, nil
}

// FilterAtomic removes collection-valued keys from keys.
//
// A key whose name ends with a plural 's' is a collection and is dropped unless it
// appears in kept. Order is preserved.
func FilterAtomic(keys Keys, kept ...Key) Keys {
	return slice.Filter(keys, func(key Key) bool {
		return !strings.HasSuffix(string(key), "s") || slice.Contains(kept, key)
	})
}
