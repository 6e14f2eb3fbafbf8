package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hexatransit/logocheck/internal/collect"
	"github.com/hexatransit/logocheck/internal/descriptor"
	"github.com/hexatransit/logocheck/internal/merge"
)

const (
	mergeMissingDir  = 2
	mergeEncodeError = 3
)

func newMergeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge <picto|trafic> [directory]",
		Short: "Print every descriptor of one format merged into a single document",
		Long: `merge picto concatenates all lines_picto.csv files, keeping the first
header only. merge trafic merges all trafic.json files into one JSON array.
The directory defaults to --logo-dir of the configuration.`,
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: []string{"picto", "trafic"},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			dir := a.cfg.LogoDir
			if len(args) > 1 && args[1] != "" {
				dir = args[1]
			}
			return runMerge(a, args[0], dir)
		},
	}
	return cmd
}

func runMerge(a *app, format, dir string) error {
	parser := descriptor.DefaultRegistry().Get(format)
	if parser == nil {
		return fmt.Errorf("unknown format %q (want one of %v)", format, descriptor.DefaultRegistry().Formats())
	}

	if err := collect.CheckRoot(dir); err != nil {
		a.errOut.Printf("Directory not found: %s\n", dir)
		return exitCode(mergeMissingDir)
	}
	files, err := collect.FindFilesFold(dir, parser.FileName())
	if err != nil {
		return err
	}
	a.logger.Debug().Int("files", len(files)).Str("format", parser.Format()).Msg("merging")

	w := a.out.Writer()
	switch parser.Format() {
	case "picto":
		return merge.Picto(w, files, a.logger)
	default:
		err := merge.Trafic(w, files, a.logger)
		if errors.Is(err, merge.ErrEncode) {
			return &ExitError{Code: mergeEncodeError, Err: err}
		}
		return err
	}
}
