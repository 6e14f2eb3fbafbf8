package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hexatransit/logocheck/internal/buildinfo"
)

// ExitError carries the process exit code of a failed check. Err is nil
// when the command already printed its own report.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

func exitCode(code int) error { return &ExitError{Code: code} }

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "logocheck",
		Short:   "Validate the transit logo data set",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default "+defaultConfigHint+")")
	pf.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	pf.String("log-format", "console", "log format (console, json)")
	pf.String("findings", "", "append problems to this CSV file")
	pf.Bool("no-color", false, "disable colored output")

	rootCmd.AddCommand(
		newRoutesCommand(),
		newAssetsCommand(),
		newSyntaxCommand(),
		newMergeCommand(),
		newInitCommand(),
	)

	return rootCmd
}
