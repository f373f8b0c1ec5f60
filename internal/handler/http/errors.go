// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of the bearer authentication middleware.
var (
	// ErrEmptyAuthorizationHeader is returned when the request carries no
	// "Authorization" header.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the header is not of the
	// form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the bearer scheme is present but the
	// token is empty.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)

var (
	errMissingFormID   = errors.New("form id is required")
	errMalformedBody   = errors.New("request body is not valid JSON")
	errMissingOwnerID  = errors.New("owner is not authenticated")
	errStorageFailure  = errors.New("internal server error")
	errStorageNotReady = errors.New("storage is unavailable")
)
