package domain

import "errors"

var (
	// ErrToolNotFound means an external binary could not be located.
	ErrToolNotFound = errors.New("external tool not found")
	// ErrToolFailed means an external command exited non-zero.
	ErrToolFailed = errors.New("external tool failed")
	// ErrMalformedMetadata means package metadata did not have the expected shape.
	ErrMalformedMetadata = errors.New("malformed package metadata")
	// ErrInvalidPolicy means a guardrails policy failed validation.
	ErrInvalidPolicy = errors.New("invalid policy")
	// ErrGuardrailsFailed is returned when at least one check group failed.
	ErrGuardrailsFailed = errors.New("architecture guardrails failed")
)
