// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package search builds the normalized search predicates handed to catalog stores.
//
// # Exactly One Variant
//
// [StringPredicate] and [DatePredicate] have unexported fields and can only be built
// through their constructors, so a value always carries exactly one matching mode.
// There is nothing left to validate once a predicate exists; the only error path is
// turning raw query values into a predicate (see [ParseString] and [ParseDate]).
package search

import "strings"

// StringMode is the matching mode of a [StringPredicate].
type StringMode int

const (
	// ModeIs is a case-insensitive exact match.
	ModeIs StringMode = iota + 1
	// ModeStartsWith is a case-insensitive prefix match.
	ModeStartsWith
	// ModeEndsWith is a case-insensitive suffix match.
	ModeEndsWith
	// ModeContains is a case-insensitive substring match.
	ModeContains
)

// String returns the mode name as used in logs.
func (m StringMode) String() string {
	switch m {
	case ModeIs:
		return "is"
	case ModeStartsWith:
		return "startsWith"
	case ModeEndsWith:
		return "endsWith"
	case ModeContains:
		return "contains"
	default:
		return "unknown"
	}
}

// StringPredicate matches a text column in exactly one mode.
type StringPredicate struct {
	mode  StringMode
	value string
}

// Is matches values equal to v, ignoring case.
func Is(v string) StringPredicate { return StringPredicate{mode: ModeIs, value: v} }

// StartsWith matches values beginning with v, ignoring case.
func StartsWith(v string) StringPredicate { return StringPredicate{mode: ModeStartsWith, value: v} }

// EndsWith matches values ending with v, ignoring case.
func EndsWith(v string) StringPredicate { return StringPredicate{mode: ModeEndsWith, value: v} }

// Contains matches values containing v, ignoring case.
func Contains(v string) StringPredicate { return StringPredicate{mode: ModeContains, value: v} }

// Mode returns the matching mode.
func (p StringPredicate) Mode() StringMode { return p.mode }

// Value returns the raw value to match.
func (p StringPredicate) Value() string { return p.value }

// Pattern renders p as an ILIKE pattern.
//
// LIKE metacharacters in the client value are escaped with '\' so they match literally.
func (p StringPredicate) Pattern() string {
	escaped := likeEscaper.Replace(p.value)

	switch p.mode {
	case ModeStartsWith:
		return escaped + "%"
	case ModeEndsWith:
		return "%" + escaped
	case ModeContains:
		return "%" + escaped + "%"
	default:
		return escaped
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
