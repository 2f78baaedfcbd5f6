package common

import (
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
)

func TestMakeRandHexString_LengthAndHex(t *testing.T) {
	const n = 16
	s, err := MakeRandHexString(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != n*2 {
		t.Fatalf("expected hex length %d, got %d", n*2, len(s))
	}
	if _, err := hex.DecodeString(s); err != nil {
		t.Fatalf("string is not valid hex: %v", err)
	}
}

func TestMakeRandHexString_ZeroSize(t *testing.T) {
	s, err := MakeRandHexString(0)
	if err != nil {
		t.Fatalf("unexpected error for size=0: %v", err)
	}
	if s != "" {
		t.Fatalf("expected empty string for size=0, got %q", s)
	}
}

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte("hunter2")
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

func TestSentinels_MatchThroughWrapping(t *testing.T) {
	sentinels := []error{
		ErrNotFound, ErrInternal, ErrInvalidInput, ErrDuplicateIdentity,
		ErrInvalidCredentials, ErrUnauthenticated, ErrInvalidToken,
	}
	for _, s := range sentinels {
		wrapped := fmt.Errorf("layer: %w", s)
		if !errors.Is(wrapped, s) {
			t.Fatalf("errors.Is failed for %v", s)
		}
	}
}

func TestInputError_MatchesInvalidInput(t *testing.T) {
	err := fmt.Errorf("register: %w", NewInputError("Email and password are required"))

	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected errors.Is(err, ErrInvalidInput)")
	}
	var ie *InputError
	if !errors.As(err, &ie) || ie.Reason != "Email and password are required" {
		t.Fatalf("unexpected InputError: %v", ie)
	}
	if errors.Is(err, ErrDuplicateIdentity) {
		t.Fatalf("InputError must not match other sentinels")
	}
}
