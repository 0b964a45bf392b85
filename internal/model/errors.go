package model

import "fmt"

// ErrorKind enumerates the terminal failures of a verify call
type ErrorKind string

const (
	KindExtractionFailed  ErrorKind = "extraction_failed"
	KindEngineUnavailable ErrorKind = "engine_unavailable"
	KindEngineTimeout     ErrorKind = "engine_timeout"
	KindMalformedResponse ErrorKind = "malformed_response"
)

// VerificationError is the typed outcome of a failed verification.
// It is never converted into a Verdict.
type VerificationError struct {
	Kind   ErrorKind
	Reason string
	Raw    string // Raw engine output, MalformedResponse only
	Err    error  // Underlying cause, if any
}

// Sentinels for errors.Is; they match any VerificationError of the same kind
var (
	ErrExtractionFailed  = &VerificationError{Kind: KindExtractionFailed}
	ErrEngineUnavailable = &VerificationError{Kind: KindEngineUnavailable}
	ErrEngineTimeout     = &VerificationError{Kind: KindEngineTimeout}
	ErrMalformedResponse = &VerificationError{Kind: KindMalformedResponse}
)

func (e *VerificationError) Error() string {
	switch {
	case e.Reason != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Reason, e.Err)
	case e.Reason != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return string(e.Kind)
	}
}

// Unwrap exposes the underlying cause
func (e *VerificationError) Unwrap() error {
	return e.Err
}

// Is matches sentinels by kind
func (e *VerificationError) Is(target error) bool {
	t, ok := target.(*VerificationError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Reason == "" && t.Err == nil && t.Raw == ""
}

// ExtractionFailed builds an extraction failure
func ExtractionFailed(reason string, err error) *VerificationError {
	return &VerificationError{Kind: KindExtractionFailed, Reason: reason, Err: err}
}

// EngineUnavailable builds a non-retryable engine failure (auth, config, network)
func EngineUnavailable(reason string, err error) *VerificationError {
	return &VerificationError{Kind: KindEngineUnavailable, Reason: reason, Err: err}
}

// EngineTimeout builds a timeout failure
func EngineTimeout(err error) *VerificationError {
	return &VerificationError{Kind: KindEngineTimeout, Reason: "reasoning engine did not answer in time", Err: err}
}

// MalformedResponse keeps the raw engine text that could not be parsed
func MalformedResponse(raw string, reason string) *VerificationError {
	return &VerificationError{Kind: KindMalformedResponse, Reason: reason, Raw: raw}
}
