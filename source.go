package kensho

import (
	"io"

	eng "github.com/reoring/kensho/internal/engine"
	"github.com/reoring/kensho/internal/stream"
)

// Token is one lexical unit of a Source.
type Token = eng.Token

// TokenKind is the kind of a Token.
type TokenKind = eng.Kind

const (
	TokenBeginObject = eng.KindBeginObject
	TokenEndObject   = eng.KindEndObject
	TokenBeginArray  = eng.KindBeginArray
	TokenEndArray    = eng.KindEndArray
	TokenKey         = eng.KindKey
	TokenString      = eng.KindString
	TokenNumber      = eng.KindNumber
	TokenBool        = eng.KindBool
	TokenNull        = eng.KindNull
)

// Source yields the tokens of one document and io.EOF after it. Any type
// with these methods can be passed to ParseFrom.
type Source = eng.TokenSource

// buffered is a Source over input of known length, so MaxBytes can be
// checked before tokenizing.
type buffered struct {
	Source
	size int64
}

// JSONReader reads a JSON document from r with goccy/go-json.
func JSONReader(r io.Reader) Source { return stream.NewJSONReader(r) }

// JSONBytes reads a JSON document from b with goccy/go-json.
func JSONBytes(b []byte) Source {
	return buffered{Source: stream.NewJSONBytes(b), size: int64(len(b))}
}

// YAMLBytes reads the first YAML document in b with yaml.v3.
func YAMLBytes(b []byte) Source {
	return buffered{Source: stream.NewYAMLBytes(b), size: int64(len(b))}
}

// inputSize returns the byte length behind src, or -1.
func inputSize(src Source) int64 {
	if b, ok := src.(buffered); ok {
		return b.size
	}
	return -1
}
