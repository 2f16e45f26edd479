// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/shipdoc/internal/platform/apperr"
	"github.com/taibuivan/shipdoc/internal/platform/ctxutil"
	"github.com/taibuivan/shipdoc/internal/platform/sec"
	"github.com/taibuivan/shipdoc/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID parses a named URL parameter as a positive numeric identifier.

Returns:
  - int64: The identifier
  - error: apperr.ValidationError if the parameter is not a positive integer
*/
func ID(request *http.Request, name string) (int64, error) {
	raw := chi.URLParam(request, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, validate.RequiredError(name, "Must be a positive integer")
	}
	return id, nil
}

/*
QueryID parses an optional numeric query parameter.

Returns:
  - *int64: nil when the parameter is absent
  - error: apperr.ValidationError if present but malformed
*/
func QueryID(request *http.Request, name string) (*int64, error) {
	raw := strings.TrimSpace(request.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, validate.RequiredError(name, "Must be a positive integer")
	}
	return &id, nil
}

/*
QueryBool parses a boolean query parameter, returning fallback when absent.
Only "true" and "false" (any case) are recognised; anything else is a 400.
*/
func QueryBool(request *http.Request, name string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(request.URL.Query().Get(name))
	switch strings.ToLower(raw) {
	case "":
		return fallback, nil
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return fallback, validate.RequiredError(name, "Must be true or false")
	}
}

/*
RequiredClaims ensures the request is authenticated and returns the user claims.

Returns:
  - *sec.AuthClaims: The authenticated user claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {

	// Get user claims
	claims := ctxutil.GetAuthUser(request.Context())

	// If the user is not authenticated, return an error
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return claims, nil
}

/*
RequiredActor returns the audit identity of the authenticated caller.

Returns:
  - sec.Actor: ID and display name recorded on created rows
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredActor(request *http.Request) (sec.Actor, error) {
	claims, err := RequiredClaims(request)
	if err != nil {
		return sec.Actor{}, err
	}
	return claims.Actor(), nil
}
