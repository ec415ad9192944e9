package kensho

import (
	"bytes"
	"context"
	"errors"
	"io"

	eng "github.com/reoring/kensho/internal/engine"
)

// lastOpt returns the last of opts, or the zero ParseOpt.
func lastOpt(opts []ParseOpt) ParseOpt {
	if len(opts) == 0 {
		return ParseOpt{}
	}
	return opts[len(opts)-1]
}

// ParseFrom decodes one document from src under opts and parses it with s.
// When several options are passed the last one wins.
func ParseFrom[T any](ctx context.Context, s Schema[T], src Source, opts ...ParseOpt) (T, error) {
	var zero T
	if s == nil {
		return zero, singleIssue(CodeParseError, "nil schema")
	}
	opt := lastOpt(opts)
	doc, err := DecodeAny(src, opt)
	if err != nil {
		return zero, err
	}
	if opt.FailFast {
		ctx = WithFailFast(ctx, true)
	}
	return s.Parse(ctx, doc)
}

// DecodeAny reads one document from src into map[string]any, []any,
// json.Number, string, bool and nil values, enforcing the size, depth and
// duplicate key options. Failures are returned as Issues.
func DecodeAny(src Source, opt ParseOpt) (any, error) {
	if src == nil {
		return nil, singleIssue(CodeParseError, "nil source")
	}
	if limit := opt.byteLimit(); limit >= 0 && inputSize(src) > limit {
		return nil, singleIssue(CodeTruncated, "max bytes exceeded")
	}
	eo := eng.EnforceOptions{
		OnDuplicate: engineDup[opt.Strictness.OnDuplicateKey],
		MaxDepth:    opt.depthLimit(),
		FailFast:    opt.FailFast,
	}
	if warn := opt.OnWarning; warn != nil {
		eo.IssueSink = func(si eng.SimpleIssue) {
			warn(Issue{Path: si.Path, Code: si.Code, Message: si.Message})
		}
	}
	doc, err := eng.DecodeAny(eng.WrapWithEnforcement(src, eo))
	if err != nil {
		return nil, toIssues(err)
	}
	return doc, nil
}

// StreamParse parses a JSON document read from r. Unless MaxBytes is
// negative it reads at most the byte limit plus one byte, and longer input
// is reported as truncated without tokenizing it.
func StreamParse[T any](ctx context.Context, s Schema[T], r io.Reader, opts ...ParseOpt) (T, error) {
	limit := lastOpt(opts).byteLimit()
	if limit < 0 {
		return ParseFrom(ctx, s, JSONReader(r), opts...)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(io.LimitReader(r, limit+1)); err != nil {
		var zero T
		return zero, AppendIssues(nil, Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err})
	}
	return ParseFrom(ctx, s, JSONBytes(buf.Bytes()), opts...)
}

var engineDup = map[Severity]eng.DuplicateStrictness{
	Ignore: eng.DupIgnore,
	Warn:   eng.DupWarn,
	Error:  eng.DupError,
}

// toIssues maps decode failures onto Issues: engine issues keep their code
// and path, anything else becomes a parse_error at the root.
func toIssues(err error) Issues {
	if iss, ok := AsIssues(err); ok {
		return iss
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return AppendIssues(nil, Issue{Code: ie.Code, Path: ie.Path, Message: ie.Message})
	}
	return AppendIssues(nil, Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err})
}

func singleIssue(code, msg string) Issues {
	return AppendIssues(nil, Issue{Path: "/", Code: code, Message: msg})
}
