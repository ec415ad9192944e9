// Package engine holds the token model shared by the JSON and YAML sources
// and builds untyped value trees from token streams.
package engine

import (
	"encoding/json"
	"errors"
	"io"
)

// Kind is the kind of a Token.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token is one lexical unit. String holds keys and strings, Number the
// literal text of numbers. Offset is -1 when the source cannot tell.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource yields tokens until io.EOF.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64 // byte offset; -1 if unknown
}

// SimpleIssue is the issue shape the engine reports; the root package turns
// it into a kensho.Issue.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

// IssueError is an error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.Message }

// ErrTrailingData is returned when a document has tokens after its top-level value.
var ErrTrailingData = errors.New("engine: unexpected data after top-level value")

// partial is a container under construction.
type partial struct {
	obj   map[string]any
	arr   []any
	key   string // object: key awaiting its value
	keyed bool
}

func (p *partial) value() any {
	if p.obj != nil {
		return p.obj
	}
	return p.arr
}

// DecodeAny reads exactly one value from src. Objects become map[string]any,
// arrays []any (never nil) and numbers json.Number. Containers are built on
// an explicit stack, so nesting depth does not grow the goroutine stack.
func DecodeAny(src TokenSource) (any, error) {
	var stack []*partial
	for {
		tok, err := src.NextToken()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}

		var (
			v    any
			done bool
		)
		switch tok.Kind {
		case KindBeginObject:
			stack = append(stack, &partial{obj: map[string]any{}})
			continue
		case KindBeginArray:
			stack = append(stack, &partial{arr: []any{}})
			continue
		case KindEndObject, KindEndArray:
			if len(stack) == 0 {
				return nil, io.ErrUnexpectedEOF
			}
			if top := stack[len(stack)-1]; top.keyed || (tok.Kind == KindEndObject) != (top.obj != nil) {
				return nil, io.ErrUnexpectedEOF
			}
			v, done = stack[len(stack)-1].value(), true
			stack = stack[:len(stack)-1]
		case KindKey:
			if len(stack) == 0 || stack[len(stack)-1].obj == nil || stack[len(stack)-1].keyed {
				return nil, io.ErrUnexpectedEOF
			}
			stack[len(stack)-1].key, stack[len(stack)-1].keyed = tok.String, true
			continue
		case KindString:
			v, done = tok.String, true
		case KindNumber:
			v, done = json.Number(tok.Number), true
		case KindBool:
			v, done = tok.Bool, true
		case KindNull:
			v, done = nil, true
		}
		if !done {
			return nil, io.ErrUnexpectedEOF
		}

		if len(stack) == 0 {
			if err := expectEOF(src); err != nil {
				return nil, err
			}
			return v, nil
		}
		top := stack[len(stack)-1]
		if top.obj == nil {
			top.arr = append(top.arr, v)
			continue
		}
		if !top.keyed {
			return nil, io.ErrUnexpectedEOF
		}
		top.obj[top.key] = v
		top.key, top.keyed = "", false
	}
}

func expectEOF(src TokenSource) error {
	_, err := src.NextToken()
	switch {
	case err == nil:
		return ErrTrailingData
	case errors.Is(err, io.EOF):
		return nil
	default:
		return err
	}
}
