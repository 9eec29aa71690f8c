// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// MinAPIKeyLength is the shortest ingestion key [HashAPIKey] accepts.
const MinAPIKeyLength = 32

// APIKeyring checks ingestion API keys against a set of BLAKE2b-256 digests.
//
// Only digests are configured; plain keys are handed to the ingestion clients. A check
// costs one digest and a constant-time comparison per configured key, whatever the
// presented key is.
type APIKeyring struct {
	digests [][blake2b.Size256]byte
}

// NewAPIKeyring validates that every entry is a hex encoded BLAKE2b-256 digest.
func NewAPIKeyring(digests []string) (*APIKeyring, error) {
	keyring := &APIKeyring{digests: make([][blake2b.Size256]byte, 0, len(digests))}
	for i, digest := range digests {
		raw, err := hex.DecodeString(digest)
		if err != nil || len(raw) != blake2b.Size256 {
			return nil, fmt.Errorf("auth: api key digest #%d is not a hex encoded %d-byte digest", i, blake2b.Size256)
		}
		keyring.digests = append(keyring.digests, [blake2b.Size256]byte(raw))
	}
	return keyring, nil
}

// HashAPIKey returns the configuration digest of a plain-text API key.
func HashAPIKey(plainTextKey string) (string, error) {
	if len(plainTextKey) < MinAPIKeyLength {
		return "", fmt.Errorf("auth: api key must be at least %d characters", MinAPIKeyLength)
	}
	digest := blake2b.Sum256([]byte(plainTextKey))
	return hex.EncodeToString(digest[:]), nil
}

// Check reports whether key matches one of the configured digests.
func (keyring *APIKeyring) Check(key string) bool {
	if keyring == nil || key == "" {
		return false
	}

	digest := blake2b.Sum256([]byte(key))
	match := 0
	for _, configured := range keyring.digests {
		match |= subtle.ConstantTimeCompare(configured[:], digest[:])
	}
	return match == 1
}

// Len returns the number of configured keys.
func (keyring *APIKeyring) Len() int {
	if keyring == nil {
		return 0
	}
	return len(keyring.digests)
}
