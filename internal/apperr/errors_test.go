package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jihyekwon/scrapbook/internal/apperr"
)

func TestNewValidation(t *testing.T) {
	err := apperr.NewValidation("title is required")

	if err.Error() != "title is required" {
		t.Errorf("expected 'title is required', got %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Errorf("expected nil unwrap, got %v", err.Unwrap())
	}
}

func TestNewValidationWrap(t *testing.T) {
	inner := fmt.Errorf("decode failed")
	err := apperr.NewValidationWrap("invalid payload", inner)

	if err.Error() != "invalid payload: decode failed" {
		t.Errorf("expected 'invalid payload: decode failed', got %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to return inner error")
	}
}

func TestValidationError_SurvivesFmtWrapping(t *testing.T) {
	original := apperr.NewValidation("too many keywords")

	wrapped := fmt.Errorf("failed to create post: %w", original)
	doubleWrapped := fmt.Errorf("handler: %w", wrapped)

	var ve *apperr.ValidationError
	if !errors.As(doubleWrapped, &ve) {
		t.Fatal("errors.As should find ValidationError through double wrapping")
	}
	if ve.Message != "too many keywords" {
		t.Errorf("expected 'too many keywords', got %q", ve.Message)
	}
}

func TestNotFoundError_SurvivesFmtWrapping(t *testing.T) {
	original := apperr.NewNotFound("post not found")

	wrapped := fmt.Errorf("storage: %w", original)

	var nfe *apperr.NotFoundError
	if !errors.As(wrapped, &nfe) {
		t.Fatal("errors.As should find NotFoundError through wrapping")
	}
	if nfe.Message != "post not found" {
		t.Errorf("expected 'post not found', got %q", nfe.Message)
	}
}

func TestErrorTypes_NotFoundForPlainErrors(t *testing.T) {
	plain := fmt.Errorf("connection refused")
	wrapped := fmt.Errorf("storage error: %w", plain)

	var ve *apperr.ValidationError
	if errors.As(wrapped, &ve) {
		t.Fatal("errors.As should NOT find ValidationError in plain error chain")
	}
	var nfe *apperr.NotFoundError
	if errors.As(wrapped, &nfe) {
		t.Fatal("errors.As should NOT find NotFoundError in plain error chain")
	}
}
