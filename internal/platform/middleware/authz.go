// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/cadenza/internal/platform/apperr"
	"github.com/taibuivan/cadenza/internal/platform/constants"
	"github.com/taibuivan/cadenza/internal/platform/ctxutil"
	"github.com/taibuivan/cadenza/internal/platform/respond"
	"github.com/taibuivan/cadenza/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// KeyChecker defines the interface needed to check ingestion API keys.
type KeyChecker interface {
	Check(key string) bool
}

// apiKeyCaller is the identity attached to requests authenticated by API key.
const apiKeyCaller = "ingestion"

// Authenticate identifies the caller from a bearer token or an ingestion API key.
//
// # Flow
//  1. 'X-API-Key' present: it must match the keyring; the caller gets [sec.RoleIngestion].
//  2. 'Authorization: Bearer <token>' present: the JWT is verified via [TokenVerifier].
//  3. Neither: the request proceeds as anonymous.
//
// A nil verifier rejects every bearer token. The per-request logger is enriched with
// the caller so downstream log lines are attributed.
func Authenticate(verifier TokenVerifier, keys KeyChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			var claims *sec.AuthClaims

			apiKey := request.Header.Get(constants.APIKeyHeader)
			authHeader := request.Header.Get("Authorization")

			switch {

			// ── 1. Ingestion Clients ──────────────────────────────────────────
			case apiKey != "":
				if keys == nil || !keys.Check(apiKey) {
					respond.Error(writer, request, apperr.Unauthorized("Invalid API key"))
					return
				}
				claims = &sec.AuthClaims{UserID: apiKeyCaller, Username: apiKeyCaller, Role: string(sec.RoleIngestion)}

			// ── 2. Bearer Tokens ──────────────────────────────────────────────
			case authHeader != "":
				scheme, token, found := strings.Cut(authHeader, " ")
				if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
					respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
					return
				}
				if verifier == nil {
					respond.Error(writer, request, apperr.Unauthorized("Token authentication is disabled"))
					return
				}

				verified, err := verifier.VerifyToken(token)
				if err != nil {
					respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
					return
				}
				claims = verified

			// ── 3. Anonymous Access ───────────────────────────────────────────
			default:
				next.ServeHTTP(writer, request)
				return
			}

			ctx := ctxutil.WithCaller(request.Context(), claims)
			ctx = ctxutil.WithLogger(ctx, ctxutil.GetLogger(ctx).With(
				slog.String("caller_id", claims.UserID),
				slog.String("caller_role", claims.Role),
			))
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireRole blocks requests if the caller doesn't have the required role.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. Anonymous requests get
// 401, authenticated callers below role get 403.
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			callerRole := ctxutil.CallerRole(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if callerRole == "" {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			if !callerRole.AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
