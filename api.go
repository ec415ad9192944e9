package kensho

import (
	"context"

	js "github.com/reoring/kensho/jsonschema"
)

// Schema checks untyped input (the tree DecodeAny produces, or a plain Go
// map) and converts it to T. Every failure is reported as Issues.
type Schema[T any] interface {
	// Parse converts v to T, running every rule and refine hook.
	Parse(ctx context.Context, v any) (T, error)
	// TypeCheck reports shape mismatches only.
	TypeCheck(ctx context.Context, v any) error
	// RuleCheck reports rule violations (length, range, format, enum,
	// required and unknown keys) for input that passed TypeCheck.
	RuleCheck(ctx context.Context, v any) error
	// Validate is TypeCheck then RuleCheck.
	Validate(ctx context.Context, v any) error
	// ValidateValue checks an already typed value.
	ValidateValue(ctx context.Context, v T) error
	// JSONSchema describes the accepted input.
	JSONSchema() (*js.Schema, error)
}

// Codec converts between a wire form A and a domain form B, validating on
// both sides. The user record's createdAt field goes through one.
type Codec[A, B any] interface {
	In() Schema[A]
	Out() Schema[B]
	Decode(ctx context.Context, a A) (B, error)
	Encode(ctx context.Context, b B) (A, error)
}

// SafeParse is Parse with the issues dropped.
func SafeParse[T any](ctx context.Context, s Schema[T], v any) (T, bool) {
	out, err := s.Parse(ctx, v)
	if err != nil {
		var zero T
		return zero, false
	}
	return out, true
}

// Is reports whether v parses under s. A nil schema accepts nothing.
func Is[T any](ctx context.Context, s Schema[T], v any) bool {
	if s == nil {
		return false
	}
	_, ok := SafeParse(ctx, s, v)
	return ok
}

type failFastKey struct{}

// WithFailFast marks ctx so schemas stop at their first issue.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, failFastKey{}, enabled)
}

// IsFailFast reports whether ctx was marked by WithFailFast.
func IsFailFast(ctx context.Context) bool {
	on, _ := ctx.Value(failFastKey{}).(bool)
	return on
}
