// Package stream adapts concrete decoders (goccy/go-json, yaml.v3) to the
// engine token model.
package stream

import (
	"bytes"
	"io"

	j "github.com/goccy/go-json"

	eng "github.com/reoring/kensho/internal/engine"
)

// jsonSource turns go-json's Decoder.Token stream into engine tokens. go-json
// reports keys and string values alike, so the source tracks, per open
// object, whether the next string is a key.
type jsonSource struct {
	dec     *j.Decoder
	wantKey []bool // per open container: an object awaiting a key
	inObj   []bool
}

// NewJSONReader reads JSON from r. Numbers keep their literal text.
func NewJSONReader(r io.Reader) eng.TokenSource {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &jsonSource{dec: dec}
}

// NewJSONBytes reads JSON from b.
func NewJSONBytes(b []byte) eng.TokenSource { return NewJSONReader(bytes.NewReader(b)) }

func (s *jsonSource) Location() int64 { return -1 }

func (s *jsonSource) NextToken() (eng.Token, error) {
	raw, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	t := eng.Token{Offset: -1}
	switch v := raw.(type) {
	case j.Delim:
		switch v {
		case '{', '[':
			s.inObj = append(s.inObj, v == '{')
			s.wantKey = append(s.wantKey, v == '{')
			t.Kind = eng.KindBeginArray
			if v == '{' {
				t.Kind = eng.KindBeginObject
			}
			return t, nil
		default:
			t.Kind = eng.KindEndArray
			if v == '}' {
				t.Kind = eng.KindEndObject
			}
			if n := len(s.inObj); n > 0 {
				s.inObj, s.wantKey = s.inObj[:n-1], s.wantKey[:n-1]
			}
		}
	case string:
		if n := len(s.wantKey); n > 0 && s.wantKey[n-1] {
			s.wantKey[n-1] = false
			return eng.Token{Kind: eng.KindKey, String: v, Offset: -1}, nil
		}
		t.Kind, t.String = eng.KindString, v
	case j.Number:
		t.Kind, t.Number = eng.KindNumber, string(v)
	case bool:
		t.Kind, t.Bool = eng.KindBool, v
	default:
		t.Kind = eng.KindNull
	}
	// a complete value inside an object makes the next string a key
	if n := len(s.inObj); n > 0 && s.inObj[n-1] {
		s.wantKey[n-1] = true
	}
	return t, nil
}
