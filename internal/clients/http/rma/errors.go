package rma

import (
	"errors"
	"fmt"
	"net/http"

	sharederrors "github.com/Apurer/go-gin-returns-portal/internal/shared/errors"
)

// APIError is a non-2xx answer from the returns API.
type APIError struct {
	StatusCode int
	Problem    sharederrors.ProblemDetail
}

func (e *APIError) Error() string {
	if e.Problem.Title != "" {
		return fmt.Sprintf("returns API %d: %s", e.StatusCode, e.Problem.Error())
	}
	return fmt.Sprintf("returns API %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not an APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}
