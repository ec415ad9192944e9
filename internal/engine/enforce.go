package engine

import (
	"strconv"
	"strings"
)

// DuplicateStrictness controls duplicate key handling.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	OnDuplicate DuplicateStrictness
	// MaxDepth bounds container nesting; 0 disables the check.
	MaxDepth int
	// IssueSink receives non-fatal issues (duplicate keys under DupWarn).
	IssueSink func(SimpleIssue)
	// FailFast turns warnings into errors.
	FailFast bool
}

// Enabled reports whether any enforcement is configured.
func (o EnforceOptions) Enabled() bool {
	return o.OnDuplicate != DupIgnore || o.MaxDepth > 0
}

// level is one open container. It records how it was reached from its
// parent (key, or index when idx >= 0) instead of its full pointer, so the
// pointer is only built when an issue needs it.
type level struct {
	object  bool
	key     string
	idx     int
	seen    map[string]struct{}
	inValue bool // object: a key was read, its value is pending
	pending string
	next    int // array: index of the next element
}

// WrapWithEnforcement returns a TokenSource that enforces duplicate key policy
// and maximum nesting depth. Size limits are applied by the callers, which
// know the input length before tokenizing.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	if !opt.Enabled() {
		return inner
	}
	return &enforcer{inner: inner, opt: opt}
}

type enforcer struct {
	inner  TokenSource
	opt    EnforceOptions
	levels []level
}

func (e *enforcer) Location() int64 { return e.inner.Location() }

func (e *enforcer) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		lv := e.claim()
		lv.object = tok.Kind == KindBeginObject
		if lv.object && e.opt.OnDuplicate != DupIgnore {
			lv.seen = map[string]struct{}{}
		}
		e.levels = append(e.levels, lv)
		if e.opt.MaxDepth > 0 && len(e.levels) > e.opt.MaxDepth {
			return Token{}, IssueError{SimpleIssue{Code: "parse_error", Path: e.pointer(), Message: "max depth exceeded"}}
		}
	case KindEndObject, KindEndArray:
		if n := len(e.levels); n > 0 {
			e.levels = e.levels[:n-1]
		}
	case KindKey:
		if err := e.key(tok.String); err != nil {
			return Token{}, err
		}
	default:
		e.claim()
	}
	return tok, nil
}

// claim consumes the slot the next value occupies in the innermost
// container and returns a level addressed by that slot.
func (e *enforcer) claim() level {
	n := len(e.levels)
	if n == 0 {
		return level{idx: -1}
	}
	top := &e.levels[n-1]
	if !top.object {
		top.next++
		return level{idx: top.next - 1}
	}
	top.inValue = false
	return level{key: top.pending, idx: -1}
}

func (e *enforcer) key(k string) error {
	n := len(e.levels)
	if n == 0 {
		return nil
	}
	top := &e.levels[n-1]
	if !top.object || top.inValue {
		return nil
	}
	top.inValue, top.pending = true, k
	if top.seen == nil {
		return nil
	}
	if _, dup := top.seen[k]; !dup {
		top.seen[k] = struct{}{}
		return nil
	}
	si := SimpleIssue{Code: "duplicate_key", Path: e.pointer() + "/" + escapeToken(k), Message: "key '" + k + "' duplicated"}
	if e.opt.OnDuplicate == DupError || e.opt.FailFast {
		return IssueError{si}
	}
	if e.opt.IssueSink != nil {
		e.opt.IssueSink(si)
	}
	return nil
}

// pointer renders the JSON Pointer of the innermost open container ("" for
// the root). Only the issue paths call it.
func (e *enforcer) pointer() string {
	var b strings.Builder
	for _, lv := range e.levels[min(1, len(e.levels)):] {
		b.WriteByte('/')
		if lv.idx >= 0 {
			b.WriteString(strconv.Itoa(lv.idx))
		} else {
			b.WriteString(escapeToken(lv.key))
		}
	}
	return b.String()
}

var tokenEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func escapeToken(s string) string { return tokenEscaper.Replace(s) }
