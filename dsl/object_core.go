package dsl

import (
	"context"
	"sort"

	"github.com/reoring/kensho"
	"github.com/reoring/kensho/i18n"
	js "github.com/reoring/kensho/jsonschema"
)

type objectSchema struct {
	fields        map[string]AnyAdapter
	required      map[string]struct{}
	unknownPolicy kensho.UnknownPolicy
	refines       []objRefine
	sortedKeys    []string
}

var _ kensho.Schema[map[string]any] = (*objectSchema)(nil)

type objRefine struct {
	name string
	fn   func(context.Context, map[string]any) error
}

func fieldPath(k string) string { return kensho.Root().Field(k).Pointer() }

// issuesFromErr converts an error into Issues, wrapping non-Issues with
// CodeParseError.
func issuesFromErr(path string, err error) kensho.Issues {
	if err == nil {
		return nil
	}
	if i2, ok := kensho.AsIssues(err); ok {
		return kensho.RebaseIssues(path, i2)
	}
	return kensho.Issues{kensho.Issue{Path: path, Code: kensho.CodeParseError, Message: err.Error(), Cause: err}}
}

func requiredIssue(k string) kensho.Issue {
	return kensho.Issue{Path: fieldPath(k), Code: kensho.CodeRequired, Message: i18n.T(kensho.CodeRequired, nil), Hint: "required property missing"}
}

func expectedObject() kensho.Issues {
	return kensho.Issues{kensho.Issue{Path: "/", Code: kensho.CodeInvalidType, Message: i18n.T(kensho.CodeInvalidType, nil), Hint: "expected object"}}
}

// collectKnown parses known fields in key order and applies defaults.
func (o *objectSchema) collectKnown(ctx context.Context, src map[string]any) (map[string]any, kensho.Issues) {
	out := make(map[string]any, len(src))
	var iss kensho.Issues
	for _, k := range o.sortedKeys {
		ad := o.fields[k]
		if val, exists := src[k]; exists {
			parsed, err := ad.parse(ctx, val)
			if err != nil {
				iss = kensho.AppendIssues(iss, issuesFromErr(fieldPath(k), err)...)
				if kensho.IsFailFast(ctx) {
					return out, iss
				}
				continue
			}
			out[k] = parsed
			continue
		}
		if ad.applyDefault != nil {
			dv, err := ad.applyDefault(ctx)
			if err != nil {
				iss = kensho.AppendIssues(iss, issuesFromErr(fieldPath(k), err)...)
				if kensho.IsFailFast(ctx) {
					return out, iss
				}
				continue
			}
			out[k] = dv
			continue
		}
		if _, req := o.required[k]; req {
			iss = kensho.AppendIssues(iss, requiredIssue(k))
			if kensho.IsFailFast(ctx) {
				return out, iss
			}
		}
	}
	return out, iss
}

// collectUnknown reports unknown keys in key order under UnknownStrict.
func (o *objectSchema) collectUnknown(ctx context.Context, src map[string]any) kensho.Issues {
	if o.unknownPolicy != kensho.UnknownStrict {
		return nil
	}
	uks := make([]string, 0, len(src))
	for k := range src {
		if _, known := o.fields[k]; !known {
			uks = append(uks, k)
		}
	}
	sort.Strings(uks)
	var iss kensho.Issues
	for _, k := range uks {
		iss = kensho.AppendIssues(iss, kensho.Issue{Path: fieldPath(k), Code: kensho.CodeUnknownKey, Message: i18n.T(kensho.CodeUnknownKey, nil)})
		if kensho.IsFailFast(ctx) {
			break
		}
	}
	return iss
}

func (o *objectSchema) Parse(ctx context.Context, v any) (map[string]any, error) {
	src, ok := v.(map[string]any)
	if !ok {
		return nil, expectedObject()
	}
	out, iss := o.collectKnown(ctx, src)
	if kensho.IsFailFast(ctx) && len(iss) > 0 {
		return nil, iss
	}
	iss = kensho.AppendIssues(iss, o.collectUnknown(ctx, src)...)
	if len(iss) > 0 {
		return nil, iss
	}
	if err := o.refine(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (o *objectSchema) TypeCheck(ctx context.Context, v any) error {
	if _, ok := v.(map[string]any); !ok {
		return expectedObject()
	}
	return nil
}

// RuleCheck checks required keys, unknown keys and each present field
// without building the parsed value.
func (o *objectSchema) RuleCheck(ctx context.Context, v any) error {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	var iss kensho.Issues
	for _, k := range o.sortedKeys {
		val, present := m[k]
		if !present {
			if _, req := o.required[k]; req && o.fields[k].applyDefault == nil {
				iss = kensho.AppendIssues(iss, requiredIssue(k))
				if kensho.IsFailFast(ctx) {
					return iss
				}
			}
			continue
		}
		if err := o.fields[k].validate(ctx, val); err != nil {
			iss = kensho.AppendIssues(iss, issuesFromErr(fieldPath(k), err)...)
			if kensho.IsFailFast(ctx) {
				return iss
			}
		}
	}
	iss = kensho.AppendIssues(iss, o.collectUnknown(ctx, m)...)
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func (o *objectSchema) Validate(ctx context.Context, v any) error {
	if err := o.TypeCheck(ctx, v); err != nil {
		return err
	}
	return o.RuleCheck(ctx, v)
}

func (o *objectSchema) ValidateValue(ctx context.Context, v map[string]any) error {
	for _, k := range o.sortedKeys {
		ad := o.fields[k]
		if val, ok := v[k]; ok {
			if err := ad.validateValue(ctx, val); err != nil {
				return issuesFromErr(fieldPath(k), err)
			}
		} else if _, req := o.required[k]; req {
			return kensho.Issues{requiredIssue(k)}
		}
	}
	return nil
}

func (o *objectSchema) JSONSchema() (*js.Schema, error) {
	props := make(map[string]*js.Schema, len(o.fields))
	for k, ad := range o.fields {
		if ad.jsonSchema != nil {
			ps, err := ad.jsonSchema()
			if err != nil {
				return nil, err
			}
			if ps != nil {
				props[k] = ps
				continue
			}
		}
		props[k] = &js.Schema{}
	}
	req := make([]string, 0, len(o.required))
	for k := range o.required {
		req = append(req, k)
	}
	sort.Strings(req)
	// Strip accepts unknown keys at runtime, so they are allowed in JSON Schema.
	additional := o.unknownPolicy != kensho.UnknownStrict
	return &js.Schema{Type: "object", Properties: props, Required: req, AdditionalProperties: additional}, nil
}

// refine runs the builder-registered hooks in order.
func (o *objectSchema) refine(ctx context.Context, v map[string]any) error {
	var iss kensho.Issues
	for _, r := range o.refines {
		err := r.fn(ctx, v)
		if err == nil {
			continue
		}
		if i2, ok := kensho.AsIssues(err); ok {
			for _, it := range i2 {
				if it.Rule == "" {
					it.Rule = r.name
				}
				iss = kensho.AppendIssues(iss, it)
			}
		} else {
			iss = kensho.AppendIssues(iss, kensho.Issue{Path: "/", Code: kensho.CodeCustom, Message: err.Error(), Cause: err, Rule: r.name})
		}
		if kensho.IsFailFast(ctx) {
			return iss
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}
