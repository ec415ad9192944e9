package dsl

import (
	"context"
	"math"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/reoring/kensho"
	js "github.com/reoring/kensho/jsonschema"
)

// IntSchema accepts whole numbers. Wire numbers (json.Number), Go integer
// kinds and integral floats are all accepted; fractional values are not.
type IntSchema struct {
	min, max       int64
	hasMin, hasMax bool
}

var _ kensho.Schema[int64] = (*IntSchema)(nil)

// Int returns an integer schema without bounds.
func Int() *IntSchema { return &IntSchema{} }

// Min sets the inclusive lower bound.
func (s *IntSchema) Min(n int64) *IntSchema { c := *s; c.min, c.hasMin = n, true; return &c }

// Max sets the inclusive upper bound.
func (s *IntSchema) Max(n int64) *IntSchema { c := *s; c.max, c.hasMax = n, true; return &c }

// Adapter implements FieldSchema.
func (s *IntSchema) Adapter() AnyAdapter { return SchemaOf[int64](s) }

func (s *IntSchema) Parse(ctx context.Context, v any) (int64, error) {
	n, ok := toInt64(v)
	if !ok {
		return 0, invalidType("expected integer")
	}
	if err := s.ValidateValue(ctx, n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *IntSchema) TypeCheck(ctx context.Context, v any) error {
	if _, ok := toInt64(v); !ok {
		return invalidType("expected integer")
	}
	return nil
}

func (s *IntSchema) RuleCheck(ctx context.Context, v any) error {
	n, ok := toInt64(v)
	if !ok {
		return nil
	}
	return s.ValidateValue(ctx, n)
}

func (s *IntSchema) Validate(ctx context.Context, v any) error {
	if err := s.TypeCheck(ctx, v); err != nil {
		return err
	}
	return s.RuleCheck(ctx, v)
}

func (s *IntSchema) ValidateValue(ctx context.Context, v int64) error {
	if s.hasMin && v < s.min {
		return kensho.Issues{rootIssue(kensho.CodeTooSmall, "", map[string]any{"min": s.min, "got": v})}
	}
	if s.hasMax && v > s.max {
		return kensho.Issues{rootIssue(kensho.CodeTooBig, "", map[string]any{"max": s.max, "got": v})}
	}
	return nil
}

func (s *IntSchema) JSONSchema() (*js.Schema, error) {
	out := &js.Schema{Type: "integer"}
	if s.hasMin {
		out.Minimum = ptrFloat(float64(s.min))
	}
	if s.hasMax {
		out.Maximum = ptrFloat(float64(s.max))
	}
	return out, nil
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := strconv.ParseFloat(string(n), 64)
		if err != nil {
			return 0, false
		}
		return floatToInt64(f)
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float32:
		return floatToInt64(float64(n))
	case float64:
		return floatToInt64(n)
	}
	return 0, false
}

func floatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
