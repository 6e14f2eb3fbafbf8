package commands

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/hexatransit/logocheck/internal/assets"
	"github.com/hexatransit/logocheck/internal/collect"
	"github.com/hexatransit/logocheck/internal/descriptor"
	"github.com/hexatransit/logocheck/internal/problem"
)

func newAssetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "Check that every logoPath in lines_picto.csv exists locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			return runAssets(a, afero.NewOsFs())
		},
	}

	cmd.Flags().String("logo-dir", "logo", "directory searched recursively for lines_picto.csv")
	cmd.Flags().String("strip-prefix", assets.DefaultStripPrefix, "URL prefix removed from logoPath before the lookup")
	cmd.Flags().String("base-dir", "", "directory local paths are resolved against (default: working directory)")

	return cmd
}

func runAssets(a *app, fs afero.Fs) error {
	root := a.cfg.LogoDir
	if err := collect.CheckRoot(root); err != nil {
		a.out.Printf("Logo directory %q not found or is not a directory\n", root)
		return exitCode(1)
	}

	res, err := collect.Collect(root, &descriptor.PictoParser{}, a.logger)
	if err != nil {
		return err
	}

	var problems problem.List
	res.Problems(&problems)
	for _, p := range problems.Items() {
		a.out.Println(p.Message)
	}

	a.out.Printf("Checked %d file(s) under %q\n", len(res.Files), root)
	a.out.Bullets(res.Files)

	checker := assets.NewChecker(fs, a.cfg.BaseDir, a.cfg.StripPrefix)
	refs := checker.Refs(res.Declarations)
	missing := checker.Missing(refs, &problems)
	a.logger.Info().Int("refs", len(refs)).Int("missing", len(missing)).Msg("asset check finished")

	a.out.Println()
	a.out.Printf("Missing logo files (%d):\n", len(missing))
	for _, ref := range missing {
		a.out.Println(" -", ref.Logo)
		a.out.Println(a.out.Muted("   file:"), ref.Source)
		a.out.Println(a.out.Muted("   expected local path:"), ref.LocalPath)
	}

	a.record("assets", &problems)
	if !problems.Empty() {
		return exitCode(1)
	}
	return nil
}
