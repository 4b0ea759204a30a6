package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotAuthenticated is returned by the cookie-session profile fetch when
// the service answers 401: there is no session to restore.
var ErrNotAuthenticated = errors.New("not authenticated")

// Kind classifies a normalized remote failure.
type Kind int

const (
	// KindRemote is any non-2xx response that is not an authentication failure.
	KindRemote Kind = iota
	// KindAuth is a 401 or a structured error marking an invalid/expired token.
	KindAuth
	// KindUnexpected is a network or decoding failure with no usable response.
	KindUnexpected
)

// FieldError is one structured error entry from a remote service.
type FieldError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Error is the single normalized error shape for every pipeline failure.
// Downstream code never branches on raw response bodies.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Details []FieldError
}

func (e *Error) Error() string {
	if len(e.Details) > 0 {
		parts := make([]string, len(e.Details))
		for i, d := range e.Details {
			if d.Description != "" {
				parts[i] = fmt.Sprintf("%s: %s", d.Code, d.Description)
			} else {
				parts[i] = d.Code
			}
		}
		return strings.Join(parts, "; ")
	}
	return e.Message
}

// IsAuth reports whether err normalizes to an authentication failure.
func IsAuth(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindAuth
}

// Display returns a user-facing message for any pipeline error; fallback is
// used when err carries nothing displayable.
func Display(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		if msg := apiErr.Error(); msg != "" {
			return msg
		}
	}
	return fallback
}

// Details extracts the structured error entries from err, or synthesizes a
// single entry from its message so callers always have a non-empty list.
func Details(err error) []FieldError {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		if len(apiErr.Details) > 0 {
			return apiErr.Details
		}
		if apiErr.Message != "" {
			return []FieldError{{Code: "REMOTE_ERROR", Description: apiErr.Message}}
		}
	}
	return []FieldError{{Code: "UNEXPECTED_ERROR", Description: "request failed"}}
}

// Token error codes the user service uses to mark a dead session.
var tokenErrorCodes = map[string]struct{}{
	"INVALID_TOKEN": {},
	"TOKEN_EXPIRED": {},
	"EXPIRED_TOKEN": {},
}

// errorBody covers the remote services' error shapes: either a plain
// {"message": ...} or a structured {"errors": [{code, description}]}.
type errorBody struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

// normalizeBody parses a non-2xx body into (message, details, authMarker).
// The user service sometimes responds with a bare JSON array of entries.
func normalizeBody(raw []byte) (string, []FieldError, bool) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return "", nil, false
	}

	var details []FieldError
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal(raw, &details); err != nil {
			return trimmed, nil, false
		}
	} else {
		var body errorBody
		if err := json.Unmarshal(raw, &body); err != nil {
			return trimmed, nil, false
		}
		if len(body.Errors) == 0 {
			return body.Message, nil, false
		}
		details = body.Errors
	}

	for _, d := range details {
		if _, ok := tokenErrorCodes[d.Code]; ok {
			return "", details, true
		}
	}
	return "", details, false
}
