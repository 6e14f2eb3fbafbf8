package commands

import (
	"github.com/spf13/cobra"

	"github.com/hexatransit/logocheck/internal/problem"
	"github.com/hexatransit/logocheck/internal/syntax"
)

// syntaxFailure is the exit code of a failed syntax check.
const syntaxFailure = 2

func newSyntaxCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "syntax",
		Short: "Check that every trafic.json and lines_picto.csv parses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			return runSyntax(a)
		},
	}

	cmd.Flags().String("logo-dir", "logo", "directory searched recursively for descriptors")
	cmd.Flags().Bool("strict", false, "also validate trafic.json against the company schema")

	return cmd
}

func runSyntax(a *app) error {
	checker, err := syntax.NewChecker(a.out, a.errOut, a.strict)
	if err != nil {
		return err
	}

	var problems problem.List
	ok := checker.CheckTree(a.cfg.LogoDir, &problems)
	a.logger.Info().Bool("strict", a.strict).Int("problems", problems.Len()).Msg("syntax check finished")

	a.record("syntax", &problems)
	if !ok {
		return exitCode(syntaxFailure)
	}
	return nil
}
