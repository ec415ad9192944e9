package dsl

import (
	"context"
	"sort"

	"github.com/reoring/kensho"
	"github.com/reoring/kensho/i18n"
	js "github.com/reoring/kensho/jsonschema"
)

type objectBuilder struct {
	fields        map[string]AnyAdapter
	required      map[string]struct{}
	unknownPolicy kensho.UnknownPolicy
	refines       []objRefine
}

type fieldStep struct {
	b    *objectBuilder
	name string
}

// Object creates a new object builder with safe defaults (UnknownStrict).
func Object() *objectBuilder {
	return &objectBuilder{
		fields:        map[string]AnyAdapter{},
		required:      map[string]struct{}{},
		unknownPolicy: kensho.UnknownStrict,
	}
}

// Field registers a field with its schema.
func (b *objectBuilder) Field(name string, fs FieldSchema) *fieldStep {
	b.fields[name] = fs.Adapter()
	return &fieldStep{b: b, name: name}
}

// Required marks the field as required and returns the builder.
func (f *fieldStep) Required() *objectBuilder {
	f.b.required[f.name] = struct{}{}
	return f.b
}

// Optional marks the field as optional (default) and returns the builder.
func (f *fieldStep) Optional() *objectBuilder {
	delete(f.b.required, f.name)
	return f.b
}

func (f *fieldStep) UnknownStrict() *objectBuilder { return f.b.UnknownStrict() }
func (f *fieldStep) UnknownStrip() *objectBuilder  { return f.b.UnknownStrip() }

// Default sets a default for the current field and exports it to JSON Schema.
// The default is parsed through the field schema when applied.
func (f *fieldStep) Default(v any) *objectBuilder {
	ad := f.b.fields[f.name]
	parse := ad.parse
	ad.applyDefault = func(ctx context.Context) (any, error) { return parse(ctx, v) }
	prev := ad.jsonSchema
	ad.jsonSchema = func() (*js.Schema, error) {
		if prev == nil {
			return &js.Schema{Default: v}, nil
		}
		s, err := prev()
		if err != nil {
			return nil, err
		}
		if s == nil {
			s = &js.Schema{}
		}
		s.Default = v
		return s, nil
	}
	f.b.fields[f.name] = ad
	return f.b
}

func (f *fieldStep) Refine(name string, fn func(context.Context, map[string]any) error) *objectBuilder {
	return f.b.Refine(name, fn)
}
func (f *fieldStep) Field(name string, fs FieldSchema) *fieldStep  { return f.b.Field(name, fs) }
func (f *fieldStep) Build() (kensho.Schema[map[string]any], error) { return f.b.Build() }
func (f *fieldStep) MustBuild() kensho.Schema[map[string]any]      { return f.b.MustBuild() }

// Require marks one or more fields as required.
func (b *objectBuilder) Require(names ...string) *objectBuilder {
	for _, n := range names {
		b.required[n] = struct{}{}
	}
	return b
}

// UnknownStrict rejects unknown keys with unknown_key issues.
func (b *objectBuilder) UnknownStrict() *objectBuilder {
	b.unknownPolicy = kensho.UnknownStrict
	return b
}

// UnknownStrip drops unknown keys from the parsed value.
func (b *objectBuilder) UnknownStrip() *objectBuilder {
	b.unknownPolicy = kensho.UnknownStrip
	return b
}

// Refine adds an object-level refine function. It runs after every field
// parsed successfully.
func (b *objectBuilder) Refine(name string, fn func(context.Context, map[string]any) error) *objectBuilder {
	if fn == nil {
		return b
	}
	b.refines = append(b.refines, objRefine{name: name, fn: fn})
	return b
}

// Build validates the builder and returns a Schema. Every required name must
// be a declared field.
func (b *objectBuilder) Build() (kensho.Schema[map[string]any], error) {
	var iss kensho.Issues
	for n := range b.required {
		if _, ok := b.fields[n]; !ok {
			iss = kensho.AppendIssues(iss, kensho.Issue{
				Path:    kensho.Root().Field(n).Pointer(),
				Code:    kensho.CodeParseError,
				Message: i18n.T(kensho.CodeParseError, nil),
				Hint:    "required field is not declared",
			})
		}
	}
	if len(iss) > 0 {
		sort.Slice(iss, func(i, j int) bool { return iss[i].Path < iss[j].Path })
		return nil, iss
	}
	// cache sorted keys for deterministic order without per-parse sorting
	kfs := make([]string, 0, len(b.fields))
	for k := range b.fields {
		kfs = append(kfs, k)
	}
	sort.Strings(kfs)
	fields := make(map[string]AnyAdapter, len(b.fields))
	for k, v := range b.fields {
		fields[k] = v
	}
	required := make(map[string]struct{}, len(b.required))
	for k := range b.required {
		required[k] = struct{}{}
	}
	return &objectSchema{
		fields:        fields,
		required:      required,
		unknownPolicy: b.unknownPolicy,
		refines:       append([]objRefine(nil), b.refines...),
		sortedKeys:    kfs,
	}, nil
}

// MustBuild is like Build but panics on error.
func (b *objectBuilder) MustBuild() kensho.Schema[map[string]any] {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// Adapter implements FieldSchema so an unbuilt object can be nested
// directly. It panics if the builder is invalid.
func (b *objectBuilder) Adapter() AnyAdapter { return SchemaOf(b.MustBuild()) }
