package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/reoring/kensho"
	"github.com/reoring/kensho/validation/user"
)

func newValidateCmd(a *app) *cobra.Command {
	var format string
	var failFast bool
	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate user records in JSON or YAML files",
		Long: `Each file holds one record or an array of records. A line is printed per
record; the exit status is 1 when any record is invalid.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opt := a.cfg.ParseOpt()
			if cmd.Flags().Changed("fail-fast") {
				opt.FailFast = failFast
			}
			switch format {
			case "", "json", "yaml":
			default:
				return fmt.Errorf("unknown format %q", format)
			}
			invalid := 0
			for _, path := range args {
				n, err := a.validateFile(cmd.Context(), path, format, opt)
				if err != nil {
					return err
				}
				invalid += n
			}
			if invalid > 0 {
				return fmt.Errorf("%d record(s): %w", invalid, errInvalid)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "input format (json|yaml); inferred from the extension when empty")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "stop at the first issue of each record")
	return cmd
}

func formatFor(path, format string) string {
	if format != "" {
		return format
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	}
	return "json"
}

// validateFile returns the number of invalid records in path.
func (a *app) validateFile(ctx context.Context, path, format string, opt kensho.ParseOpt) (int, error) {
	flog := a.log.WithField("file", path)
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	opt.OnWarning = func(it kensho.Issue) {
		flog.WithFields(log.Fields{"path": it.Path, "code": it.Code}).Warn(it.Message)
	}
	var src kensho.Source
	if formatFor(path, format) == "yaml" {
		src = kensho.YAMLBytes(b)
	} else {
		src = kensho.JSONBytes(b)
	}
	doc, err := kensho.DecodeAny(src, opt)
	if err != nil {
		a.report(path, err)
		return 1, nil
	}
	if opt.FailFast {
		ctx = kensho.WithFailFast(ctx, true)
	}

	records, isList := doc.([]any)
	if !isList {
		records = []any{doc}
	}
	invalid := 0
	for i, rec := range records {
		label := path
		if isList {
			label = fmt.Sprintf("%s#%d", path, i)
		}
		err := user.Validate(ctx, rec)
		if err != nil {
			invalid++
			a.report(label, err)
			continue
		}
		fmt.Fprintf(a.stdout, "%s: ok\n", label)
	}
	flog.WithFields(log.Fields{"records": len(records), "invalid": invalid}).Info("validated")
	return invalid, nil
}

func (a *app) report(label string, err error) {
	fmt.Fprintf(a.stdout, "%s: invalid\n", label)
	iss, ok := kensho.AsIssues(err)
	if !ok {
		fmt.Fprintf(a.stdout, "  %v\n", err)
		return
	}
	for _, it := range iss {
		fmt.Fprintf(a.stdout, "  %s %s: %s\n", it.Path, it.Code, it.Message)
	}
}
