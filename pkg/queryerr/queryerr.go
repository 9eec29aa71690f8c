// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package queryerr defines the error taxonomy shared by the query parsers.
//
// # Architecture
//
// Every parser in pkg/ (identifier, relation, pagination, search) reports client input
// problems as an [*Error] carrying a [Kind]. The HTTP boundary maps the kind to a status
// code and a machine-readable code in one place (see apperr.FromQuery), so parsers never
// know about HTTP.
package queryerr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a client input error.
type Kind string

const (
	// InvalidIdentifierFormat is a malformed composite identifier.
	InvalidIdentifierFormat Kind = "INVALID_IDENTIFIER_FORMAT"

	// InvalidRelationIncludeFormat is a 'with' value that fails the key(,key)* grammar.
	InvalidRelationIncludeFormat Kind = "INVALID_RELATION_INCLUDE_FORMAT"

	// InvalidRelationIncludeKey is a 'with' key outside the resource allow-list.
	InvalidRelationIncludeKey Kind = "INVALID_RELATION_INCLUDE_KEY"

	// InvalidPaginationParameter is a skip/take value that is not a non-negative integer.
	InvalidPaginationParameter Kind = "INVALID_PAGINATION_PARAMETER"

	// InvalidSearchParameter is a conflicting or unparsable search field.
	InvalidSearchParameter Kind = "INVALID_SEARCH_PARAMETER"
)

// Error is a deterministic client input error.
//
// Retrying the same input always yields the same Error.
type Error struct {
	// Kind is the taxonomy entry.
	Kind Kind
	// Field is the query/path parameter the error relates to ("with", "skip", ...).
	Field string
	// Value is the offending raw value or token, if any.
	Value string
	// Allowed lists the accepted values, in declaration order, when relevant.
	Allowed []string

	message string
}

// Error implements the error interface.
func (e *Error) Error() string { return e.message }

// Is matches another *Error of the same Kind, so errors.Is(err, &Error{Kind: k}) works.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == e.Kind && other.message == ""
}

// # Constructors

// IdentifierFormat reports a composite identifier that does not match the expected shape.
func IdentifierFormat(raw string, expectedParts int) *Error {
	return &Error{
		Kind:    InvalidIdentifierFormat,
		Field:   "idOrSlug",
		Value:   raw,
		message: fmt.Sprintf("Invalid identifier '%s': expected %d slugs separated by '+'", raw, expectedParts),
	}
}

// RelationIncludeFormat reports a 'with' value that is not a comma-separated list of words.
func RelationIncludeFormat(raw string) *Error {
	return &Error{
		Kind:    InvalidRelationIncludeFormat,
		Field:   "with",
		Value:   raw,
		message: "Invalid relation include format: expected a comma-separated list of relation names (e.g. 'artist,genres')",
	}
}

// RelationIncludeKey reports an unknown relation name and enumerates the allow-list.
func RelationIncludeKey(key string, allowed []string) *Error {
	return &Error{
		Kind:    InvalidRelationIncludeKey,
		Field:   "with",
		Value:   key,
		Allowed: allowed,
		message: fmt.Sprintf("Invalid relation include key: '%s'. Expected one of: %s", key, quoteAll(allowed)),
	}
}

// PaginationParameter reports a skip or take value that is not a non-negative integer.
func PaginationParameter(field, raw string) *Error {
	return &Error{
		Kind:    InvalidPaginationParameter,
		Field:   field,
		Value:   raw,
		message: fmt.Sprintf("Invalid pagination parameter '%s': expected a non-negative integer, got '%s'", field, raw),
	}
}

// SearchParameter reports a conflicting or malformed search field.
func SearchParameter(field, reason string) *Error {
	return &Error{
		Kind:    InvalidSearchParameter,
		Field:   field,
		message: fmt.Sprintf("Invalid search parameter '%s': %s", field, reason),
	}
}

// quoteAll renders values as a quoted, comma-separated list; an empty list reads "(none)".
func quoteAll(values []string) string {
	if len(values) == 0 {
		return "(none)"
	}
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, ", ")
}

// As returns the first *Error in err's chain, or nil.
func As(err error) *Error {
	var qe *Error
	if errors.As(err, &qe) {
		return qe
	}
	return nil
}
