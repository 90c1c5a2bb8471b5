package cli

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"
	"github.com/vk/seriesreg/internal/app"
	"github.com/vk/seriesreg/internal/registry"
)

// Exit codes.
const (
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

type options struct {
	manifests []string
	logLevel  string
	logFormat string
	output    string
}

// NewRootCommand builds the seriesreg command tree. Reports are written to
// outW, logs and diagnostics to errW. When mods is empty the core engine
// modules are used.
func NewRootCommand(outW, errW io.Writer, mods ...registry.Module) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "seriesreg",
		Short: "Inspect the series types available in this engine build",
		Long: `seriesreg - coefficient-type registry of a symbolic series algebra engine.

It lists the coefficient types each series kind is instantiated with, resolves
(series, coefficient) pairs to their concrete series type and serves the same
information over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: ExitUsage, Message: err.Error()}
	})

	pf := root.PersistentFlags()
	pf.StringSliceVarP(&opts.manifests, "manifests", "m", nil, "Extra manifest files or directories to load.")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.StringVar(&opts.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	pf.StringVarP(&opts.output, "output", "o", "text", "Report format. Options: 'text', 'json' or 'yaml'.")

	build := func(port int) (*app.App, error) {
		cfg, err := app.NewConfig(app.Config{
			ManifestPaths: opts.manifests,
			LogFormat:     opts.logFormat,
			LogLevel:      opts.logLevel,
			Output:        opts.output,
			Port:          port,
		})
		if err != nil {
			return nil, &ExitError{Code: ExitUsage, Message: err.Error()}
		}
		return app.NewApp(outW, errW, cfg, mods...), nil
	}

	root.AddCommand(
		newTypesCommand(build),
		newResolveCommand(build),
		newListCommand(build),
		newSettingsCommand(build),
		newServeCommand(build),
	)
	return root
}

// Execute runs the command tree with args. Every returned error is an
// *ExitError.
func Execute(ctx context.Context, outW, errW io.Writer, args []string, mods ...registry.Module) error {
	root := NewRootCommand(outW, errW, mods...)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	// Anything cobra reports on its own is a usage problem.
	return &ExitError{Code: ExitUsage, Message: err.Error()}
}
