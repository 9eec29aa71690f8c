// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr is the error vocabulary shared by the catalog services and the HTTP layer.

Services, stores and middleware return [*AppError] values; respond.Error is the only place
that turns them into responses. Query parser errors from pkg/queryerr keep their own type
and are converted at the edge by [FromQuery].

Status codes used by the catalog:

  - 400: malformed payloads, failed validation, query taxonomy errors
  - 401/403: missing caller or insufficient role on ingestion and admin routes
  - 404: unknown artist, album, song or genre
  - 409: slug already taken
  - 422: a well-formed payload referencing an artist that does not exist
  - 429: per-IP rate limit
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	codeNotFound      = "NOT_FOUND"
	codeUnauthorized  = "UNAUTHORIZED"
	codeForbidden     = "FORBIDDEN"
	codeConflict      = "CONFLICT"
	codeValidation    = "VALIDATION_ERROR"
	codeRateLimited   = "RATE_LIMITED"
	codeUnprocessable = "UNPROCESSABLE"
	codeInternal      = "INTERNAL_ERROR"
)

// AppError is a client-facing failure.
//
// Code and Message reach the client. Cause stays on the server: it is logged for 5xx
// responses and otherwise only used for errors.Is/As.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`
}

// FieldError points at the request field (or query parameter) that was rejected.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Cause }

func newError(status int, code, msg string) *AppError {
	return &AppError{Code: code, Message: msg, HTTPStatus: status}
}

// NotFound reports a missing catalog entity, e.g. NotFound("Album") reads "Album not found".
func NotFound(resource string) *AppError {
	return newError(http.StatusNotFound, codeNotFound, resource+" not found")
}

func Unauthorized(msg string) *AppError {
	return newError(http.StatusUnauthorized, codeUnauthorized, msg)
}

func Forbidden(msg string) *AppError {
	return newError(http.StatusForbidden, codeForbidden, msg)
}

// Conflict reports a unique constraint hit, typically a duplicate slug.
func Conflict(msg string) *AppError {
	return newError(http.StatusConflict, codeConflict, msg)
}

// ValidationError reports rejected input, one [FieldError] per offending field.
func ValidationError(msg string, details ...FieldError) *AppError {
	validation := newError(http.StatusBadRequest, codeValidation, msg)
	validation.Details = details
	return validation
}

// BadRequest is a 400 with a caller-chosen code, used for the query taxonomy.
func BadRequest(code, msg string) *AppError {
	return newError(http.StatusBadRequest, code, msg)
}

func RateLimited(retryAfterSeconds int) *AppError {
	return newError(http.StatusTooManyRequests, codeRateLimited,
		fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds))
}

// Unprocessable reports a valid payload that refers to something that does not exist.
func Unprocessable(msg string) *AppError {
	return newError(http.StatusUnprocessableEntity, codeUnprocessable, msg)
}

// Internal hides cause behind a generic message.
func Internal(cause error) *AppError {
	internal := newError(http.StatusInternalServerError, codeInternal, "An unexpected error occurred")
	internal.Cause = cause
	return internal
}

// As returns the first [*AppError] in err's chain, or nil.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
