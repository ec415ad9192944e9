package dsl

import (
	"context"
	"time"

	"github.com/reoring/kensho"
	"github.com/reoring/kensho/codec"
	js "github.com/reoring/kensho/jsonschema"
)

// DateTimeSchema accepts a time.Time (or non-nil *time.Time) or an RFC3339
// string. The zero time is rejected.
type DateTimeSchema struct {
	codec kensho.Codec[string, time.Time]
}

var _ kensho.Schema[time.Time] = (*DateTimeSchema)(nil)

// DateTime returns a date-time schema backed by codec.TimeRFC3339.
func DateTime() *DateTimeSchema { return &DateTimeSchema{codec: codec.TimeRFC3339()} }

// Adapter implements FieldSchema.
func (s *DateTimeSchema) Adapter() AnyAdapter { return SchemaOf[time.Time](s) }

func (s *DateTimeSchema) Parse(ctx context.Context, v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		if err := s.ValidateValue(ctx, t); err != nil {
			return time.Time{}, err
		}
		return t, nil
	case *time.Time:
		if t == nil {
			return time.Time{}, invalidType("expected date-time")
		}
		return s.Parse(ctx, *t)
	case string:
		out, err := s.codec.Decode(ctx, t)
		if err != nil {
			return time.Time{}, err
		}
		if err := s.ValidateValue(ctx, out); err != nil {
			return time.Time{}, err
		}
		return out, nil
	}
	return time.Time{}, invalidType("expected date-time")
}

func (s *DateTimeSchema) TypeCheck(ctx context.Context, v any) error {
	switch t := v.(type) {
	case time.Time, string:
		return nil
	case *time.Time:
		if t != nil {
			return nil
		}
	}
	return invalidType("expected date-time")
}

func (s *DateTimeSchema) RuleCheck(ctx context.Context, v any) error {
	if s.TypeCheck(ctx, v) != nil {
		return nil
	}
	_, err := s.Parse(ctx, v)
	return err
}

func (s *DateTimeSchema) Validate(ctx context.Context, v any) error {
	if err := s.TypeCheck(ctx, v); err != nil {
		return err
	}
	return s.RuleCheck(ctx, v)
}

func (s *DateTimeSchema) ValidateValue(ctx context.Context, v time.Time) error {
	if v.IsZero() {
		return kensho.Issues{rootIssue(kensho.CodeInvalidFormat, "zero time", map[string]any{"format": "date-time"})}
	}
	return nil
}

func (s *DateTimeSchema) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "string", Format: "date-time"}, nil
}
