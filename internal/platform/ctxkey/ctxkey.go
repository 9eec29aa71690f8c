// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey holds the context keys set by the Cadenza middleware chain.
//
// Values are written once per request (request ID, then logger, then caller) and read
// through the accessors in package ctxutil. Handlers never use these keys directly.
package ctxkey

// key keeps Cadenza values apart from any other package storing strings in the context.
type key string

const (
	// KeyRequestID holds the X-Request-ID assigned by the RequestID middleware.
	KeyRequestID key = "cadenza.request_id"

	// KeyCaller holds the [sec.AuthClaims] of a token or API key caller.
	KeyCaller key = "cadenza.caller"

	// KeyLogger holds the request-scoped [*log/slog.Logger], enriched with the caller
	// once authentication succeeds.
	KeyLogger key = "cadenza.logger"
)
