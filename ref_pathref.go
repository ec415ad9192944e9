package kensho

import (
	"fmt"
	"strconv"
	"strings"
)

// PathRef is an immutable JSON Pointer under construction. Extending a
// PathRef never changes it, so a parent can be shared between fields.
type PathRef interface {
	Field(name string) PathRef
	Index(i int) PathRef
	Pointer() string
	Issue(code, msg string, kv ...any) Issue
}

// pathRef is one segment linked to its parent; nil is the root.
type pathRef struct {
	parent *pathRef
	seg    string // escaped
}

// Root returns the PathRef of the whole document ("/").
func Root() PathRef { return (*pathRef)(nil) }

// At continues from an existing pointer whose segments are already escaped.
func At(pointer string) PathRef {
	var p *pathRef
	for _, seg := range strings.Split(pointer, "/") {
		if seg != "" {
			p = &pathRef{parent: p, seg: seg}
		}
	}
	return p
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func (p *pathRef) Field(name string) PathRef {
	if name == "" {
		return p
	}
	return &pathRef{parent: p, seg: pointerEscaper.Replace(name)}
}

func (p *pathRef) Index(i int) PathRef {
	return &pathRef{parent: p, seg: strconv.Itoa(i)}
}

func (p *pathRef) Pointer() string {
	if p == nil {
		return "/"
	}
	var segs []string
	for q := p; q != nil; q = q.parent {
		segs = append(segs, q.seg)
	}
	var b strings.Builder
	for i := len(segs) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(segs[i])
	}
	return b.String()
}

// Issue builds an Issue at p. kv lists parameter names and values in pairs.
func (p *pathRef) Issue(code, msg string, kv ...any) Issue {
	it := Issue{Path: p.Pointer(), Code: code, Message: msg}
	for i := 0; i+1 < len(kv); i += 2 {
		if it.Params == nil {
			it.Params = map[string]any{}
		}
		it.Params[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return it
}
