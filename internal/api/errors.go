package api

import (
	"fmt"
	"net/http"

	"github.com/Veraticus/odonto-flow/internal/common"
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	Message    string
	StatusCode int
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

// Unwrap classifies the failure so callers can match on common sentinels.
func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden {
		return common.ErrUnauthorized
	}
	return common.ErrFetchFailed
}
