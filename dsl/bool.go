package dsl

import (
	"context"

	"github.com/reoring/kensho"
	js "github.com/reoring/kensho/jsonschema"
)

type boolSchema struct{}

var _ kensho.Schema[bool] = boolSchema{}

// Bool returns a schema accepting only JSON booleans.
func Bool() kensho.Schema[bool] { return boolSchema{} }

func (boolSchema) Parse(ctx context.Context, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, invalidType("expected boolean")
	}
	return b, nil
}

func (s boolSchema) TypeCheck(ctx context.Context, v any) error {
	_, err := s.Parse(ctx, v)
	return err
}

func (boolSchema) RuleCheck(ctx context.Context, v any) error { return nil }

func (s boolSchema) Validate(ctx context.Context, v any) error { return s.TypeCheck(ctx, v) }

func (boolSchema) ValidateValue(ctx context.Context, v bool) error { return nil }

func (boolSchema) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "boolean"}, nil }
