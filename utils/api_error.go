package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind is the closed set of failures the order service reports to clients.
type ErrorKind int

const (
	KindStorage ErrorKind = iota + 1
	KindServer
	KindBadRequest
	KindInvalidJSON
	KindInvalidPath
	KindTableNotFound
	KindOrderNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindStorage:
		return "storage_error"
	case KindServer:
		return "server_error"
	case KindBadRequest:
		return "bad_request"
	case KindInvalidJSON:
		return "invalid_json_request"
	case KindInvalidPath:
		return "invalid_path_request"
	case KindTableNotFound:
		return "table_not_found"
	case KindOrderNotFound:
		return "order_not_found"
	default:
		return "unknown"
	}
}

// APIError carries a kind, an optional human readable reason and the underlying cause.
type APIError struct {
	Kind   ErrorKind
	Reason string
	Err    error
}

var (
	ErrStorage       = &APIError{Kind: KindStorage}
	ErrTableNotFound = &APIError{Kind: KindTableNotFound}
	ErrOrderNotFound = &APIError{Kind: KindOrderNotFound}
)

func NewStorageError(reason string, err error) *APIError {
	return &APIError{Kind: KindStorage, Reason: reason, Err: err}
}

func NewServerError(reason string) *APIError {
	return &APIError{Kind: KindServer, Reason: reason}
}

func NewBadRequest(reason string) *APIError {
	return &APIError{Kind: KindBadRequest, Reason: reason}
}

func NewInvalidJSONError(err error) *APIError {
	return &APIError{Kind: KindInvalidJSON, Err: err}
}

func NewInvalidPathError(err error) *APIError {
	return &APIError{Kind: KindInvalidPath, Err: err}
}

func (e *APIError) Error() string {
	switch {
	case e.Reason != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Reason, e.Err)
	case e.Reason != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.String()
	}
}

func (e *APIError) Unwrap() error { return e.Err }

// Is matches on kind only, so errors.Is(err, ErrOrderNotFound) holds for any
// order-not-found error regardless of its reason.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Kind == e.Kind
}

// StatusCode maps the kind to the HTTP status returned to the client.
func (e *APIError) StatusCode() int {
	switch e.Kind {
	case KindBadRequest, KindInvalidJSON, KindInvalidPath:
		return http.StatusBadRequest
	case KindTableNotFound, KindOrderNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Cause is the error_cause text of the response envelope. Storage details are
// only included when exposeDetail is set; parse internals are never included.
func (e *APIError) Cause(exposeDetail bool) string {
	switch e.Kind {
	case KindStorage:
		if !exposeDetail {
			return "Database error -> storage operation failed"
		}
		if e.Err != nil {
			return fmt.Sprintf("Database error -> %s: %v", e.Reason, e.Err)
		}
		return "Database error -> " + e.Reason
	case KindBadRequest:
		return "Bad request -> " + e.Reason
	case KindServer:
		return "Server error -> " + e.Reason
	case KindTableNotFound:
		return "Table not found"
	case KindOrderNotFound:
		return "Order not found"
	case KindInvalidJSON:
		return "Bad request -> Json request payload is incorrect"
	case KindInvalidPath:
		return "Bad request -> parameters in path are incorrect"
	default:
		return "Server error -> unknown failure"
	}
}

// AsAPIError returns err as an *APIError, classifying anything foreign as a server error.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &APIError{Kind: KindServer, Reason: "unexpected failure", Err: err}
}
