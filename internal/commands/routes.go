package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hexatransit/logocheck/internal/collect"
	"github.com/hexatransit/logocheck/internal/descriptor"
	"github.com/hexatransit/logocheck/internal/feed"
	"github.com/hexatransit/logocheck/internal/problem"
)

func newRoutesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routes <source>",
		Short: "Check declared line ids against the agency GTFS routes.txt",
		Long: `Collects every descriptor of the source's format below --logo-dir,
downloads each agency's GTFS archive and reports the declared line ids
missing from its routes.txt.

Built-in sources: picto (lines_picto.csv) and trafic (trafic.json).`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"picto", "trafic"},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			return runRoutes(cmd, a, args[0])
		},
	}

	cmd.Flags().String("logo-dir", "logo", "directory searched recursively for descriptors")
	cmd.Flags().Int("timeout", 30, "network timeout in seconds per GTFS download")
	cmd.Flags().Int("max-listed", feed.DefaultMaxListed, "missing line ids quoted per agency")

	return cmd
}

func runRoutes(cmd *cobra.Command, a *app, name string) error {
	source, err := a.cfg.Source(name)
	if err != nil {
		return err
	}
	parser := descriptor.DefaultRegistry().Get(source.Descriptor)
	if parser == nil {
		return fmt.Errorf("source %q: unknown descriptor format %q", source.Name, source.Descriptor)
	}

	root := a.cfg.LogoDir
	if err := collect.CheckRoot(root); err != nil {
		a.out.Printf("Logo directory %q not found or is not a directory\n", root)
		return exitCode(1)
	}

	res, err := collect.Collect(root, parser, a.logger)
	if err != nil {
		return err
	}
	if len(res.Files) == 0 {
		a.out.Printf("No %s files found under %q\n", parser.FileName(), root)
		return exitCode(1)
	}

	var problems problem.List
	res.Problems(&problems)
	for _, p := range problems.Items() {
		a.out.Println(p.Message)
	}

	parsed := res.Parsed()
	a.out.Printf("Parsed %d %s from %d file(s):\n", res.Catalog.Len(), ownerLabel(parser), len(parsed))
	a.out.Bullets(parsed)

	checker := feed.NewChecker(source, feed.NewHTTPDownloader(a.timeout()), a.cfg.MaxListed, a.out, a.logger)
	sum := checker.Check(cmd.Context(), res.Catalog, &problems)
	a.logger.Info().
		Str("source", source.Name).
		Int("agencies", sum.Agencies).
		Int("matched", sum.Matched).
		Int("failed", sum.Failed).
		Int("skipped", sum.Skipped).
		Msg("routes check finished")

	a.record("routes "+source.Name, &problems)

	if !problems.Empty() {
		a.out.Println()
		a.out.Println("GTFS verification errors:")
		a.out.Bullets(errorLines(problems.Items()))
		return exitCode(1)
	}
	a.out.Println()
	a.out.Println("All GTFS checks passed.")
	return nil
}

// ownerLabel names catalog keys the way each descriptor does.
func ownerLabel(p descriptor.Parser) string {
	if p.Format() == "trafic" {
		return "company(ies)"
	}
	return "agency(ies)"
}

func errorLines(items []problem.Problem) []string {
	lines := make([]string, 0, len(items))
	for _, p := range items {
		lines = append(lines, p.Error())
	}
	return lines
}
