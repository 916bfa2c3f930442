package core

import (
	"errors"
	"net/http"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestNewConfigurationError_Envelope(t *testing.T) {
	err := NewConfigurationError("core: no default hook binding configured for concern \"search\"")
	if err.Category != goerrors.CategoryBadInput {
		t.Fatalf("expected bad input category, got %v", err.Category)
	}
	if err.TextCode != ErrorHookNotConfigured {
		t.Fatalf("expected text code %s, got %s", ErrorHookNotConfigured, err.TextCode)
	}
	if err.Code != http.StatusBadRequest {
		t.Fatalf("expected code 400, got %d", err.Code)
	}
}

func TestIsConfigurationError(t *testing.T) {
	if !IsConfigurationError(NewConfigurationError("missing")) {
		t.Fatalf("expected configuration error detected")
	}
	if IsConfigurationError(errors.New("missing")) {
		t.Fatalf("expected plain error rejected")
	}
	if IsConfigurationError(newBadInputError("bad")) {
		t.Fatalf("expected bad-input envelope rejected")
	}
	if IsConfigurationError(nil) {
		t.Fatalf("expected nil rejected")
	}
}

func TestMapBuildError_PreservesEnvelopes(t *testing.T) {
	original := NewConfigurationError("missing binding")
	mapped := mapBuildError(original)
	var richErr *goerrors.Error
	if !goerrors.As(mapped, &richErr) {
		t.Fatalf("expected rich error, got %v", mapped)
	}
	if richErr.TextCode != ErrorHookNotConfigured {
		t.Fatalf("expected envelope preserved, got %s", richErr.TextCode)
	}
}

func TestMapBuildError_ClassifiesValidationMessages(t *testing.T) {
	mapped := mapBuildError(errors.New("core: service_name is required"))
	var richErr *goerrors.Error
	if !goerrors.As(mapped, &richErr) {
		t.Fatalf("expected rich error, got %v", mapped)
	}
	if richErr.TextCode != ErrorBadInput {
		t.Fatalf("expected bad input text code, got %s", richErr.TextCode)
	}
}
