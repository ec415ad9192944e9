package main

import (
	"context"
	"errors"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/reoring/kensho/i18n"
	"github.com/reoring/kensho/internal/config"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitError   = 2
)

// errInvalid marks a run where at least one record failed validation.
var errInvalid = errors.New("invalid records found")

type app struct {
	cfg    config.Config
	log    *log.Logger
	stdout io.Writer

	configFile string
	lang       string
	logLevel   string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{log: log.New(), stdout: stdout}
	a.log.SetOutput(stderr)
	a.log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})

	root := &cobra.Command{
		Use:           "kensho",
		Short:         "Validate user records",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "YAML config file")
	root.PersistentFlags().StringVar(&a.lang, "lang", "", "message language (en|ja)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug|info|warn|error)")

	root.AddCommand(newValidateCmd(a), newSchemaCmd(a))
	return root
}

// setup loads the config file and environment, then applies flags on top.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configFile, nil)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("lang") {
		cfg.Lang = a.lang
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	level, _ := log.ParseLevel(cfg.LogLevel)
	a.log.SetLevel(level)
	i18n.SetLanguage(cfg.Lang)
	a.cfg = cfg
	a.log.WithFields(log.Fields{"lang": cfg.Lang, "max_bytes": cfg.MaxBytes, "max_depth": cfg.MaxDepth}).Debug("config loaded")
	return nil
}

func execute(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errInvalid):
		return exitInvalid
	default:
		l := log.New()
		l.SetOutput(stderr)
		l.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
		l.Error(err)
		return exitError
	}
}
