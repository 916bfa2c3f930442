package core

import (
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ErrorHookNotConfigured = "RUMMAGE_HOOK_NOT_CONFIGURED"
	ErrorBadInput          = "RUMMAGE_BAD_INPUT"
	ErrorInternal          = "RUMMAGE_INTERNAL_ERROR"
)

// NewConfigurationError reports a concern with neither a per-call override
// nor a registered default binding. The engine surfaces it before any hook
// runs.
func NewConfigurationError(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(ErrorHookNotConfigured)
}

// IsConfigurationError reports whether err carries the hook-not-configured
// envelope.
func IsConfigurationError(err error) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return strings.TrimSpace(richErr.TextCode) == ErrorHookNotConfigured
}

func newBadInputError(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(ErrorBadInput)
}

func newInternalError(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(ErrorInternal)
}

func mapBuildError(err error) error {
	if err == nil {
		return nil
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr
	}
	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"),
		strings.Contains(msg, "negative"):
		return newBadInputError(err.Error())
	}
	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	if mapped != nil && mapped.Code == 0 {
		mapped.Code = http.StatusInternalServerError
	}
	return mapped
}
