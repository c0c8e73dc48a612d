package openmeteo

import (
	"context"
	"errors"
	"strings"
)

// ErrorCategory is a stable label for error classification in metrics.
type ErrorCategory string

// Error category constants used as metric labels (toolCallsTotal).
const (
	ErrorCategoryUserInput ErrorCategory = "user_input"
	ErrorCategoryNotFound  ErrorCategory = "not_found"
	ErrorCategoryUpstream  ErrorCategory = "upstream"
	ErrorCategoryTimeout   ErrorCategory = "timeout"
	ErrorCategoryNetwork   ErrorCategory = "network"
	ErrorCategoryParsing   ErrorCategory = "parsing"
	ErrorCategoryUnknown   ErrorCategory = "unknown"
)

// CategorizeError maps an error to a stable ErrorCategory for metrics.
func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return ""
	}

	if errors.Is(err, ErrNoLocation) {
		return ErrorCategoryUserInput
	}
	if errors.Is(err, ErrLocationNotFound) {
		return ErrorCategoryNotFound
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return ErrorCategoryUpstream
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrorCategoryTimeout
	}

	errStr := err.Error()
	if strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded") {
		return ErrorCategoryTimeout
	}
	if strings.Contains(errStr, "connection") || strings.Contains(errStr, "network") ||
		strings.Contains(errStr, "no such host") {
		return ErrorCategoryNetwork
	}
	if strings.Contains(errStr, "parse") || strings.Contains(errStr, "unmarshal") {
		return ErrorCategoryParsing
	}

	return ErrorCategoryUnknown
}
