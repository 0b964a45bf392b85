package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestVerificationError_IsMatchesKind(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := fmt.Errorf("verify: %w", EngineUnavailable("reasoning engine unreachable", cause))

	if !errors.Is(err, ErrEngineUnavailable) {
		t.Error("expected match on ErrEngineUnavailable")
	}
	if errors.Is(err, ErrEngineTimeout) {
		t.Error("unexpected match on ErrEngineTimeout")
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable through Unwrap")
	}

	var vErr *VerificationError
	if !errors.As(err, &vErr) || vErr.Kind != KindEngineUnavailable {
		t.Fatalf("errors.As failed: %v", err)
	}
}

func TestVerificationError_ConcreteErrorsDoNotMatchEachOther(t *testing.T) {
	a := ExtractionFailed("page not found", nil)
	b := ExtractionFailed("too short", nil)
	if errors.Is(a, b) {
		t.Error("errors with reasons are not sentinels")
	}
}

func TestVerificationError_Error(t *testing.T) {
	tests := []struct {
		err  *VerificationError
		want string
	}{
		{ExtractionFailed("page not found", nil), "extraction_failed: page not found"},
		{ExtractionFailed("fetch failed", errors.New("boom")), "extraction_failed: fetch failed: boom"},
		{&VerificationError{Kind: KindEngineTimeout, Err: errors.New("deadline")}, "engine_timeout: deadline"},
		{ErrMalformedResponse, "malformed_response"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestMalformedResponse_KeepsRaw(t *testing.T) {
	err := MalformedResponse("garbage", "response has no analysis")
	if err.Raw != "garbage" || err.Kind != KindMalformedResponse {
		t.Errorf("unexpected error %+v", err)
	}
}

func TestClampConfidence(t *testing.T) {
	for in, want := range map[int]int{-10: 0, 0: 0, 42: 42, 100: 100, 150: 100} {
		if got := ClampConfidence(in); got != want {
			t.Errorf("ClampConfidence(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusTrue, StatusFalse, StatusMisleading, StatusUnverifiable} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if Status("MAYBE").Valid() {
		t.Error("MAYBE should not be valid")
	}
}
