package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taigrr/cylinder/pkg/config"
	"github.com/taigrr/cylinder/pkg/render"
)

// options are the settings shared by every command that are not part of
// the renderer configuration.
type options struct {
	cfg      config.Config
	logFile  string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &options{cfg: config.Default()}
	var run runOptions

	root := &cobra.Command{
		Use:   "cylinder",
		Short: "Rotating ASCII cylinder for the terminal",
		Long: "cylinder draws a shaded, rotating cylinder with characters, resolving the\n" +
			"nearest and farthest surface of every cell and blending the two.",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInteractive(cmd.Context(), opts, run)
		},
	}

	pf := root.PersistentFlags()
	opts.cfg.BindFlags(pf)
	pf.StringVar(&opts.logFile, "log-file", "", "write logs to this file (stdout is the display)")
	pf.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")

	f := root.Flags()
	f.BoolVarP(&run.quiet, "quiet", "q", false, "skip the startup banner")
	f.BoolVar(&run.plain, "plain", false, "write frames with escape codes instead of the alternate screen")
	f.IntVarP(&run.frames, "frames", "n", 0, "stop after this many frames (0 runs until quit)")

	root.AddCommand(
		newFrameCmd(opts),
		newSnapshotCmd(opts),
		newExportCmd(opts),
	)
	return root
}

// setup validates the configuration and installs the logger.
func (o *options) setup() error {
	if err := o.cfg.Validate(); err != nil {
		return err
	}
	if o.logFile == "" {
		return nil
	}
	l, err := newLogger(o.logFile, o.logLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(l)
	render.SetLogger(l)
	return nil
}

// newLogger opens path for appending and returns a text logger at level.
// The file stays open for the life of the process.
func newLogger(path, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl})), nil
}
