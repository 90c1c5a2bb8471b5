package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vk/seriesreg/internal/app"
)

type appBuilder func(port int) (*app.App, error)

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return &ExitError{Code: ExitUsage, Message: fmt.Sprintf("%s\n\nUsage:\n  %s", err, cmd.UseLine())}
		}
		return nil
	}
}

func failed(err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: ExitFailure, Message: err.Error()}
}

func newTypesCommand(build appBuilder) *cobra.Command {
	return &cobra.Command{
		Use:   "types SERIES",
		Short: "List the coefficient types a series kind is instantiated with",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := build(0)
			if err != nil {
				return err
			}
			return failed(a.Types(args[0]))
		},
	}
}

func newResolveCommand(build appBuilder) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve SERIES COEFFICIENT",
		Short: "Resolve a series kind and coefficient type to a concrete series type",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := build(0)
			if err != nil {
				return err
			}
			return failed(a.Resolve(args[0], args[1]))
		},
	}
}

func newListCommand(build appBuilder) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every registered series type",
		Example: `  seriesreg list --filter 'series == "polynomial"'
  seriesreg list --filter '"integer" in capabilities["pow"]'`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := build(0)
			if err != nil {
				return err
			}
			return failed(a.List(filter))
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "CEL expression over series, coefficient, symbol, id, description and capabilities.")
	return cmd
}

func newSettingsCommand(build appBuilder) *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Show the runtime settings after manifest overrides",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := build(0)
			if err != nil {
				return err
			}
			return failed(a.ShowSettings())
		},
	}
}

func newServeCommand(build appBuilder) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the registry over HTTP until interrupted",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := build(port)
			if err != nil {
				return err
			}
			return failed(a.Serve(cmd.Context()))
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", app.DefaultPort, "Port for the HTTP introspection server.")
	return cmd
}
