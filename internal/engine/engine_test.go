package engine

import (
	"errors"
	"io"
	"strings"
	"testing"
)

type sliceSource struct {
	toks []Token
	pos  int
}

func (s *sliceSource) NextToken() (Token, error) {
	if s.pos >= len(s.toks) {
		return Token{}, io.EOF
	}
	t := s.toks[s.pos]
	s.pos++
	return t, nil
}

func (s *sliceSource) Location() int64 { return -1 }

func src(toks ...Token) *sliceSource { return &sliceSource{toks: toks} }

var (
	bo  = Token{Kind: KindBeginObject}
	eo  = Token{Kind: KindEndObject}
	ba  = Token{Kind: KindBeginArray}
	ea  = Token{Kind: KindEndArray}
	key = func(k string) Token { return Token{Kind: KindKey, String: k} }
	num = func(n string) Token { return Token{Kind: KindNumber, Number: n} }
)

func TestDecodeAny_Tree(t *testing.T) {
	v, err := DecodeAny(src(bo, key("a"), ba, num("1"), Token{Kind: KindString, String: "x"}, ea, key("b"), Token{Kind: KindNull}, eo))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	m := v.(map[string]any)
	arr := m["a"].([]any)
	if len(arr) != 2 || arr[1] != "x" {
		t.Fatalf("unexpected array: %v", arr)
	}
	if _, ok := m["b"]; !ok || m["b"] != nil {
		t.Fatalf("null should decode to a present nil: %v", m)
	}
}

func TestDecodeAny_EmptyArrayIsNonNil(t *testing.T) {
	v, err := DecodeAny(src(ba, ea))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if arr, ok := v.([]any); !ok || arr == nil {
		t.Fatalf("want empty non-nil slice, got %#v", v)
	}
}

func TestDecodeAny_Truncated(t *testing.T) {
	for name, s := range map[string]*sliceSource{
		"empty":         src(),
		"open object":   src(bo, key("a")),
		"open array":    src(ba, num("1")),
		"missing value": src(bo, key("a"), eo),
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeAny(s); !errors.Is(err, io.ErrUnexpectedEOF) {
				t.Fatalf("want io.ErrUnexpectedEOF, got %v", err)
			}
		})
	}
}

func TestDecodeAny_TrailingData(t *testing.T) {
	if _, err := DecodeAny(src(bo, eo, bo, eo)); !errors.Is(err, ErrTrailingData) {
		t.Fatalf("want ErrTrailingData, got %v", err)
	}
}

func TestEnforcement_Disabled(t *testing.T) {
	s := src()
	if WrapWithEnforcement(s, EnforceOptions{}) != TokenSource(s) {
		t.Fatalf("no options should return the inner source")
	}
}

func TestEnforcement_DuplicateWarnAndError(t *testing.T) {
	toks := []Token{ba, bo, key("a"), num("1"), key("a"), num("2"), eo, ea}

	var warned []SimpleIssue
	w := WrapWithEnforcement(src(toks...), EnforceOptions{OnDuplicate: DupWarn, IssueSink: func(si SimpleIssue) { warned = append(warned, si) }})
	if _, err := DecodeAny(w); err != nil {
		t.Fatalf("warn must not fail: %v", err)
	}
	if len(warned) != 1 || warned[0].Path != "/0/a" || warned[0].Code != "duplicate_key" {
		t.Fatalf("unexpected warnings: %v", warned)
	}

	e := WrapWithEnforcement(src(toks...), EnforceOptions{OnDuplicate: DupError})
	_, err := DecodeAny(e)
	var ie IssueError
	if !errors.As(err, &ie) || ie.Path != "/0/a" {
		t.Fatalf("want duplicate_key error at /0/a, got %v", err)
	}
}

func TestEnforcement_SameKeyInSiblingsIsFine(t *testing.T) {
	toks := []Token{ba, bo, key("a"), num("1"), eo, bo, key("a"), num("2"), eo, ea}
	if _, err := DecodeAny(WrapWithEnforcement(src(toks...), EnforceOptions{OnDuplicate: DupError})); err != nil {
		t.Fatalf("keys in different objects are not duplicates: %v", err)
	}
}

func TestEnforcement_MaxDepth(t *testing.T) {
	toks := []Token{bo, key("a"), ba, bo, key("b"), num("1"), eo, ea, eo}
	_, err := DecodeAny(WrapWithEnforcement(src(toks...), EnforceOptions{MaxDepth: 2}))
	var ie IssueError
	if !errors.As(err, &ie) || ie.Path != "/a/0" || ie.Code != "parse_error" {
		t.Fatalf("want parse_error at /a/0, got %v", err)
	}
	if _, err := DecodeAny(WrapWithEnforcement(src(toks...), EnforceOptions{MaxDepth: 3})); err != nil {
		t.Fatalf("depth 3 is allowed: %v", err)
	}
}

func TestEnforcement_EscapesPointerTokens(t *testing.T) {
	toks := []Token{bo, key("a/b"), num("1"), key("a/b"), num("2"), eo}
	_, err := DecodeAny(WrapWithEnforcement(src(toks...), EnforceOptions{OnDuplicate: DupError}))
	var ie IssueError
	if !errors.As(err, &ie) || ie.Path != "/a~1b" {
		t.Fatalf("want path /a~1b, got %v", err)
	}
}

func TestDecodeAny_DeepNesting(t *testing.T) {
	const depth = 200000
	toks := make([]Token, 0, 2*depth)
	for i := 0; i < depth; i++ {
		toks = append(toks, ba)
	}
	for i := 0; i < depth; i++ {
		toks = append(toks, ea)
	}
	if _, err := DecodeAny(src(toks...)); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestEnforcement_DeepInputStopsAtLimit(t *testing.T) {
	toks := make([]Token, 1000000)
	for i := range toks {
		toks[i] = ba
	}
	s := src(toks...)
	_, err := DecodeAny(WrapWithEnforcement(s, EnforceOptions{MaxDepth: 32}))
	var ie IssueError
	if !errors.As(err, &ie) {
		t.Fatalf("want depth error, got %v", err)
	}
	if want := strings.Repeat("/0", 32); ie.Path != want {
		t.Fatalf("path = %q, want %q", ie.Path, want)
	}
	if s.pos != 33 {
		t.Fatalf("read %d tokens, want 33", s.pos)
	}
}

func TestDecodeAny_MismatchedClose(t *testing.T) {
	if _, err := DecodeAny(src(bo, ea)); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("want io.ErrUnexpectedEOF, got %v", err)
	}
	v, err := DecodeAny(src(bo, key(""), num("1"), eo))
	if err != nil {
		t.Fatalf("empty keys are valid: %v", err)
	}
	if m := v.(map[string]any); len(m) != 1 {
		t.Fatalf("unexpected object: %v", m)
	}
}
