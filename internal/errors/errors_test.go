package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	plain := New(CodeNotFound, "record not found")
	if plain.Error() != "record not found" {
		t.Errorf("Error() = %q, want %q", plain.Error(), "record not found")
	}

	wrapped := Wrap(CodeItemDecodeFailed, "decode items", stderrors.New("unexpected end of JSON input"))
	want := "decode items: unexpected end of JSON input"
	if wrapped.Error() != want {
		t.Errorf("Error() = %q, want %q", wrapped.Error(), want)
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(CodeStorageNotConfigured, "open store", cause)
	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause not reachable via errors.Is")
	}
}

func TestIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CodeNotFound, "record missing"))
	if !stderrors.Is(err, New(CodeNotFound, "different message")) {
		t.Error("errors with the same code should match")
	}
	if stderrors.Is(err, New(CodeItemDecodeFailed, "record missing")) {
		t.Error("errors with different codes should not match")
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"domain error", New(CodeRecordEmptyID, "missing id"), CodeRecordEmptyID},
		{"wrapped domain error", fmt.Errorf("ctx: %w", New(CodeNotFound, "gone")), CodeNotFound},
		{"plain error", stderrors.New("plain"), CodeUnknown},
		{"nil", nil, CodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsCode(t *testing.T) {
	err := WithMetadata(CodeItemUnknownType, "unknown tag", map[string]string{"tag": "future_thing"})
	if !IsCode(err, CodeItemUnknownType) {
		t.Error("IsCode should match the error's own code")
	}
	if IsCode(err, CodeNotFound) {
		t.Error("IsCode should not match a different code")
	}
}
