// Package cli implements the console command tree.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// ExitError carries a process exit code out of a command.
type ExitError struct {
	Code int
}

func (e ExitError) Error() string { return fmt.Sprintf("exit status %d", e.Code) }

// ExitCode maps an Execute error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitClean
	}
	var exit ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	return ExitUsage
}

// NewRootCommand builds the console command. Running it without a
// subcommand calls serve.
func NewRootCommand(serve func(ctx context.Context) error) *cobra.Command {
	root := &cobra.Command{
		Use:           "console",
		Short:         "Odyssey admin console",
		Long:          "Serves the admin console for tenants, customers, subscription plans and payments.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
	root.AddCommand(newFixturesCommand())
	return root
}

func newFixturesCommand() *cobra.Command {
	fixturesCmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Inspect the seed data served by the console",
	}

	var opts FixturesCheckOptions
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Validate fixture integrity",
		Long:  "Loads the fixture set and reports duplicate IDs, unknown statuses, inverted subscription dates and unknown plan terms.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.Stdout = cmd.OutOrStdout()
			opts.Stderr = cmd.ErrOrStderr()
			if code := FixturesCheck(opts); code != ExitClean {
				return ExitError{Code: code}
			}
			return nil
		},
	}
	checkCmd.Flags().StringVar(&opts.Dir, "dir", "", "read fixtures from this directory instead of the embedded set")
	checkCmd.Flags().BoolVar(&opts.JSONOutput, "json", false, "print the report as JSON")
	fixturesCmd.AddCommand(checkCmd)
	return fixturesCmd
}
