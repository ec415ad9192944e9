package kensho

// UnknownPolicy controls how unknown object keys are handled.
type UnknownPolicy int

const (
	UnknownStrict UnknownPolicy = iota // Reject unknown keys with an error.
	UnknownStrip                       // Drop unknown keys.
)

// Strictness configures enforcement for duplicate keys.
type Strictness struct {
	OnDuplicateKey Severity // Ignore, Warn or Error (duplicate JSON keys).
}

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// ParseSeverity maps "ignore", "warn" and "error" to a Severity. Unknown
// values map to Ignore and report false.
func ParseSeverity(s string) (Severity, bool) {
	switch s {
	case "ignore", "":
		return Ignore, true
	case "warn":
		return Warn, true
	case "error":
		return Error, true
	}
	return Ignore, false
}

// Limits applied when ParseOpt leaves MaxDepth or MaxBytes at zero.
const (
	DefaultMaxDepth       = 32
	DefaultMaxBytes int64 = 16 << 20
)

// ParseOpt bundles parsing options.
type ParseOpt struct {
	Strictness Strictness
	// MaxDepth bounds container nesting. Zero means DefaultMaxDepth and a
	// negative value removes the bound.
	MaxDepth int
	// MaxBytes bounds the input size. Zero means DefaultMaxBytes and a
	// negative value removes the bound.
	MaxBytes int64
	FailFast bool
	// OnWarning receives non-fatal issues (duplicate keys under Warn).
	OnWarning func(Issue)
}

func (o ParseOpt) depthLimit() int {
	switch {
	case o.MaxDepth == 0:
		return DefaultMaxDepth
	case o.MaxDepth < 0:
		return 0
	}
	return o.MaxDepth
}

func (o ParseOpt) byteLimit() int64 {
	switch {
	case o.MaxBytes == 0:
		return DefaultMaxBytes
	case o.MaxBytes < 0:
		return -1
	}
	return o.MaxBytes
}
