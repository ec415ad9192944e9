// Package codec holds wire <-> domain codecs.
package codec

import (
	"context"
	"time"

	"github.com/reoring/kensho"
	"github.com/reoring/kensho/i18n"
	js "github.com/reoring/kensho/jsonschema"
)

// TimeRFC3339 returns a Codec that converts between RFC3339 strings and time.Time.
func TimeRFC3339() kensho.Codec[string, time.Time] {
	return &rfc3339Codec{
		in:  stringSchema{},
		out: timeSchema{},
	}
}

type rfc3339Codec struct {
	in  kensho.Schema[string]
	out kensho.Schema[time.Time]
}

func (c *rfc3339Codec) In() kensho.Schema[string]     { return c.in }
func (c *rfc3339Codec) Out() kensho.Schema[time.Time] { return c.out }

func (c *rfc3339Codec) Decode(ctx context.Context, a string) (time.Time, error) {
	// wire(string) -> domain(time.Time) -> Out.ValidateValue
	t, err := ParseRFC3339(a)
	if err != nil {
		return time.Time{}, kensho.Issues{{
			Path:    "/",
			Code:    kensho.CodeInvalidFormat,
			Message: i18n.T(kensho.CodeInvalidFormat, map[string]string{"format": "date-time"}),
			Hint:    "expected RFC3339 date-time",
			Cause:   err,
		}}
	}
	if err := c.out.ValidateValue(ctx, t); err != nil {
		return time.Time{}, err
	}
	return t, nil
}

func (c *rfc3339Codec) Encode(ctx context.Context, b time.Time) (string, error) {
	// Validate using Out, convert to wire(string), then re-validate via In.Parse
	if err := c.out.ValidateValue(ctx, b); err != nil {
		return "", err
	}
	s := FormatRFC3339(b)
	if _, err := c.in.Parse(ctx, s); err != nil {
		return "", err
	}
	return s, nil
}

// ParseRFC3339 accepts RFC3339 with optional fractional seconds.
func ParseRFC3339(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

// FormatRFC3339 normalizes to UTC and formats using RFC3339Nano (Go trims
// trailing zeros).
func FormatRFC3339(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ---- helpers ----

type stringSchema struct{}

func (stringSchema) Parse(ctx context.Context, v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return "", invalidType("expected string")
}
func (stringSchema) TypeCheck(ctx context.Context, v any) error {
	if _, ok := v.(string); !ok {
		return invalidType("expected string")
	}
	return nil
}
func (stringSchema) RuleCheck(ctx context.Context, v any) error { return nil }
func (s stringSchema) Validate(ctx context.Context, v any) error {
	return s.TypeCheck(ctx, v)
}
func (stringSchema) ValidateValue(ctx context.Context, v string) error { return nil }
func (stringSchema) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "string", Format: "date-time"}, nil
}

type timeSchema struct{}

func (timeSchema) Parse(ctx context.Context, v any) (time.Time, error) {
	if t, ok := v.(time.Time); ok {
		return t, nil
	}
	return time.Time{}, invalidType("expected time.Time")
}
func (timeSchema) TypeCheck(ctx context.Context, v any) error {
	if _, ok := v.(time.Time); !ok {
		return invalidType("expected time.Time")
	}
	return nil
}
func (timeSchema) RuleCheck(ctx context.Context, v any) error { return nil }
func (s timeSchema) Validate(ctx context.Context, v any) error {
	return s.TypeCheck(ctx, v)
}
func (timeSchema) ValidateValue(ctx context.Context, v time.Time) error { return nil }
func (timeSchema) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "string", Format: "date-time"}, nil
}

func invalidType(hint string) kensho.Issues {
	return kensho.Issues{{Path: "/", Code: kensho.CodeInvalidType, Message: i18n.T(kensho.CodeInvalidType, nil), Hint: hint}}
}
