package dsl

import (
	"context"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/reoring/kensho"
	js "github.com/reoring/kensho/jsonschema"
)

// StringSchema is a string schema with optional length, format, pattern and
// enum rules. Builder methods return a modified copy, so a base schema can
// be shared.
type StringSchema struct {
	minLen  int // -1 when unset
	maxLen  int // -1 when unset
	format  string
	pattern *regexp.Regexp
	enum    []string
}

var _ kensho.Schema[string] = (*StringSchema)(nil)

// String returns a string schema without rules.
func String() *StringSchema { return &StringSchema{minLen: -1, maxLen: -1} }

// Enum returns a string schema accepting only the given values.
func Enum(values ...string) *StringSchema { return String().OneOf(values...) }

func (s *StringSchema) clone() *StringSchema {
	c := *s
	c.enum = slices.Clone(s.enum)
	return &c
}

// Min sets the minimum length in characters (runes), inclusive.
func (s *StringSchema) Min(n int) *StringSchema { c := s.clone(); c.minLen = n; return c }

// Max sets the maximum length in characters (runes), inclusive.
func (s *StringSchema) Max(n int) *StringSchema { c := s.clone(); c.maxLen = n; return c }

// UUID requires the canonical 36 character 8-4-4-4-12 form.
func (s *StringSchema) UUID() *StringSchema { c := s.clone(); c.format = "uuid"; return c }

// Email requires an RFC 5322 address with a dotted domain.
func (s *StringSchema) Email() *StringSchema { c := s.clone(); c.format = "email"; return c }

// Regex requires the value to match re. It panics if re does not compile.
func (s *StringSchema) Regex(re string) *StringSchema {
	c := s.clone()
	c.pattern = regexp.MustCompile(re)
	return c
}

// OneOf restricts the value to the given set.
func (s *StringSchema) OneOf(values ...string) *StringSchema {
	c := s.clone()
	c.enum = slices.Clone(values)
	return c
}

// Adapter implements FieldSchema.
func (s *StringSchema) Adapter() AnyAdapter { return SchemaOf[string](s) }

func (s *StringSchema) Parse(ctx context.Context, v any) (string, error) {
	str, ok := v.(string)
	if !ok {
		return "", invalidType("expected string")
	}
	if err := s.ValidateValue(ctx, str); err != nil {
		return "", err
	}
	return str, nil
}

func (s *StringSchema) TypeCheck(ctx context.Context, v any) error {
	if _, ok := v.(string); !ok {
		return invalidType("expected string")
	}
	return nil
}

func (s *StringSchema) RuleCheck(ctx context.Context, v any) error {
	str, ok := v.(string)
	if !ok {
		return nil
	}
	return s.ValidateValue(ctx, str)
}

func (s *StringSchema) Validate(ctx context.Context, v any) error {
	if err := s.TypeCheck(ctx, v); err != nil {
		return err
	}
	return s.RuleCheck(ctx, v)
}

func (s *StringSchema) ValidateValue(ctx context.Context, v string) error {
	var iss kensho.Issues
	add := func(it kensho.Issue) bool {
		iss = kensho.AppendIssues(iss, it)
		return kensho.IsFailFast(ctx)
	}
	n := utf8.RuneCountInString(v)
	if s.minLen >= 0 && n < s.minLen {
		if add(rootIssue(kensho.CodeTooShort, "", map[string]any{"min": s.minLen, "got": n})) {
			return iss
		}
	}
	if s.maxLen >= 0 && n > s.maxLen {
		if add(rootIssue(kensho.CodeTooLong, "", map[string]any{"max": s.maxLen, "got": n})) {
			return iss
		}
	}
	if s.format != "" && !checkFormat(s.format, v) {
		if add(rootIssue(kensho.CodeInvalidFormat, "expected "+s.format, map[string]any{"format": s.format})) {
			return iss
		}
	}
	if s.pattern != nil && !s.pattern.MatchString(v) {
		if add(rootIssue(kensho.CodePattern, "", map[string]any{"pattern": s.pattern.String()})) {
			return iss
		}
	}
	if len(s.enum) > 0 && !slices.Contains(s.enum, v) {
		add(rootIssue(kensho.CodeInvalidEnum, "expected one of "+strings.Join(s.enum, ", "), map[string]any{"options": slices.Clone(s.enum)}))
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func (s *StringSchema) JSONSchema() (*js.Schema, error) {
	out := &js.Schema{Type: "string", Format: s.format}
	if s.minLen >= 0 {
		out.MinLength = ptrInt(s.minLen)
	}
	if s.maxLen >= 0 {
		out.MaxLength = ptrInt(s.maxLen)
	}
	if s.pattern != nil {
		out.Pattern = s.pattern.String()
	}
	for _, e := range s.enum {
		out.Enum = append(out.Enum, e)
	}
	return out, nil
}

// formats backs the email format check.
var formats = validator.New()

func checkFormat(format, v string) bool {
	switch format {
	case "uuid":
		return isCanonicalUUID(v)
	case "email":
		return formats.Var(v, "email") == nil
	}
	return true
}

// isCanonicalUUID accepts only the hyphenated form; uuid.Parse alone would
// also take urn:uuid:, braced and 32-digit forms.
func isCanonicalUUID(v string) bool {
	if len(v) != 36 {
		return false
	}
	_, err := uuid.Parse(v)
	return err == nil
}
