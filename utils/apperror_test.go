package utils

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorKind
	}{
		{NewValidationError("bad input"), KindValidation},
		{NewNotFound("missing"), KindNotFound},
		{NewConflict("dup"), KindConflict},
		{NewStoreError("query failed", errors.New("disk")), KindStore},
		{errors.New("plain"), 0},
		{nil, 0},
	}
	for _, tc := range cases {
		if got := KindOf(tc.err); got != tc.want {
			t.Errorf("KindOf(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("join challenge: %w", NewConflict("user already joined"))
	if KindOf(err) != KindConflict {
		t.Errorf("KindOf(wrapped) = %d, want KindConflict", KindOf(err))
	}
}

func TestAppErrorMessage(t *testing.T) {
	if got := NewNotFound("Challenge not found").Error(); got != "Challenge not found" {
		t.Errorf("Error() = %q", got)
	}

	cause := errors.New("connection refused")
	wrapped := NewStoreError("query failed", cause)
	if got := wrapped.Error(); got != "query failed: connection refused" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(wrapped, cause) {
		t.Error("wrapped error does not unwrap to its cause")
	}
}
