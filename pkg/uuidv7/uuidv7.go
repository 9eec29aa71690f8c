// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuidv7 wraps google/uuid to generate time-ordered identifiers.
//
// Request IDs and enrichment event IDs use it so that log lines sort by creation time.
package uuidv7

import "github.com/google/uuid"

// New generates a UUIDv7 string, falling back to a random UUIDv4 when the clock
// source cannot produce one.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Valid reports whether s is a well-formed UUID of any version.
//
// Client supplied correlation IDs are only propagated when they pass this check.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
