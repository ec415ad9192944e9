package dsl

import (
	"context"

	"github.com/reoring/kensho"
	"github.com/reoring/kensho/i18n"
	js "github.com/reoring/kensho/jsonschema"
)

// FieldSchema is anything that can be registered as an object field: an
// AnyAdapter or one of the DSL builders.
type FieldSchema interface {
	Adapter() AnyAdapter
}

// AnyAdapter adapts Schema[T] to an any-typed DSL wrapper.
// It keeps the original schema for default application and JSON Schema
// augmentation.
type AnyAdapter struct {
	parse         func(context.Context, any) (any, error)
	validate      func(context.Context, any) error
	validateValue func(context.Context, any) error
	applyDefault  func(context.Context) (any, error)
	jsonSchema    func() (*js.Schema, error)
	orig          any
}

// SchemaOf wraps a strongly typed Schema[T] as an AnyAdapter for Field builders.
func SchemaOf[T any](s kensho.Schema[T]) AnyAdapter {
	return AnyAdapter{
		parse:    func(ctx context.Context, v any) (any, error) { return s.Parse(ctx, v) },
		validate: s.Validate,
		validateValue: func(ctx context.Context, v any) error {
			tv, ok := v.(T)
			if !ok {
				return kensho.Issues{{Path: "/", Code: kensho.CodeInvalidType, Message: i18n.T(kensho.CodeInvalidType, nil), Hint: "invalid field type"}}
			}
			return s.ValidateValue(ctx, tv)
		},
		jsonSchema: s.JSONSchema,
		orig:       s,
	}
}

// Adapter implements FieldSchema.
func (ad AnyAdapter) Adapter() AnyAdapter { return ad }

// Orig returns the original underlying Schema[T] used to create this adapter.
func (ad AnyAdapter) Orig() any { return ad.orig }

// Nullable wraps an AnyAdapter to accept nulls (JSON null) for parse and
// validate. A nil input parses to nil.
func Nullable(fs FieldSchema) AnyAdapter {
	ad := fs.Adapter()
	prevParse := ad.parse
	prevValidate := ad.validate
	prevValidateValue := ad.validateValue
	prevJSON := ad.jsonSchema
	out := ad
	out.parse = func(ctx context.Context, v any) (any, error) {
		if v == nil {
			return nil, nil
		}
		return prevParse(ctx, v)
	}
	out.validate = func(ctx context.Context, v any) error {
		if v == nil {
			return nil
		}
		return prevValidate(ctx, v)
	}
	out.validateValue = func(ctx context.Context, v any) error {
		if v == nil {
			return nil
		}
		return prevValidateValue(ctx, v)
	}
	out.jsonSchema = func() (*js.Schema, error) {
		s, err := prevJSON()
		if err != nil {
			return nil, err
		}
		if s == nil {
			s = &js.Schema{}
		}
		s.Nullable = true
		return s, nil
	}
	return out
}

// Nullable enables fluent chaining: dsl.SchemaOf[T](s).Nullable()
func (ad AnyAdapter) Nullable() AnyAdapter { return Nullable(ad) }

// ---- helpers ----

func rootIssue(code string, hint string, params map[string]any) kensho.Issue {
	var data map[string]string
	if f, ok := params["format"].(string); ok {
		data = map[string]string{"format": f}
	}
	return kensho.Issue{Path: "/", Code: code, Message: i18n.T(code, data), Hint: hint, Params: params}
}

func invalidType(hint string) kensho.Issues {
	return kensho.Issues{rootIssue(kensho.CodeInvalidType, hint, nil)}
}

func ptrInt(v int) *int { return &v }

func ptrFloat(v float64) *float64 { return &v }
