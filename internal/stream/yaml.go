package stream

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	eng "github.com/reoring/kensho/internal/engine"
)

// maxYAMLTokens caps alias expansion.
const maxYAMLTokens = 1 << 20

// ErrYAMLTooLarge is returned when alias expansion exceeds maxYAMLTokens.
var ErrYAMLTooLarge = errors.New("stream: yaml document expands to too many tokens")

type yamlSource struct {
	data   []byte
	loaded bool
	toks   []eng.Token
	pos    int
	err    error
}

// NewYAMLBytes replays the first YAML document in b as an
// engine.TokenSource. The document is decoded on the first NextToken call.
// Scalars keep their resolved tag: !!int and !!float become numbers, !!bool
// booleans, !!null null and everything else strings.
func NewYAMLBytes(b []byte) eng.TokenSource { return &yamlSource{data: b} }

func (s *yamlSource) load() error {
	var doc yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(s.data)).Decode(&doc); err != nil {
		return err
	}
	return s.walk(&doc)
}

func (s *yamlSource) NextToken() (eng.Token, error) {
	if !s.loaded {
		s.loaded = true
		if err := s.load(); err != nil {
			s.err, s.toks = err, nil
		}
		s.data = nil
	}
	if s.err != nil {
		return eng.Token{}, s.err
	}
	if s.pos >= len(s.toks) {
		return eng.Token{}, io.EOF
	}
	t := s.toks[s.pos]
	s.pos++
	return t, nil
}

func (s *yamlSource) Location() int64 { return -1 }

func (s *yamlSource) emit(t eng.Token) error {
	if len(s.toks) >= maxYAMLTokens {
		return ErrYAMLTooLarge
	}
	t.Offset = -1
	s.toks = append(s.toks, t)
	return nil
}

func (s *yamlSource) walk(n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode:
		for _, c := range n.Content {
			if err := s.walk(c); err != nil {
				return err
			}
		}
		return nil
	case yaml.AliasNode:
		if n.Alias == nil {
			return fmt.Errorf("stream: unresolved alias at line %d", n.Line)
		}
		return s.walk(n.Alias)
	case yaml.MappingNode:
		if err := s.emit(eng.Token{Kind: eng.KindBeginObject}); err != nil {
			return err
		}
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind == yaml.AliasNode && k.Alias != nil {
				k = k.Alias
			}
			if k.Kind != yaml.ScalarNode {
				return fmt.Errorf("stream: non-scalar mapping key at line %d", k.Line)
			}
			if err := s.emit(eng.Token{Kind: eng.KindKey, String: k.Value}); err != nil {
				return err
			}
			if err := s.walk(n.Content[i+1]); err != nil {
				return err
			}
		}
		return s.emit(eng.Token{Kind: eng.KindEndObject})
	case yaml.SequenceNode:
		if err := s.emit(eng.Token{Kind: eng.KindBeginArray}); err != nil {
			return err
		}
		for _, c := range n.Content {
			if err := s.walk(c); err != nil {
				return err
			}
		}
		return s.emit(eng.Token{Kind: eng.KindEndArray})
	case yaml.ScalarNode:
		return s.scalar(n)
	}
	return fmt.Errorf("stream: unsupported yaml node kind %d", n.Kind)
}

func (s *yamlSource) scalar(n *yaml.Node) error {
	switch n.ShortTag() {
	case "!!null":
		return s.emit(eng.Token{Kind: eng.KindNull})
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return err
		}
		return s.emit(eng.Token{Kind: eng.KindBool, Bool: b})
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return err
		}
		return s.emit(eng.Token{Kind: eng.KindNumber, Number: strconv.FormatInt(i, 10)})
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("stream: non-finite number %q at line %d", n.Value, n.Line)
		}
		return s.emit(eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(f, 'g', -1, 64)})
	default:
		return s.emit(eng.Token{Kind: eng.KindString, String: n.Value})
	}
}
