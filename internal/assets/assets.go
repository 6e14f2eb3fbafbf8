// Package assets verifies that logo files referenced by lines_picto.csv are
// present in the working tree.
package assets

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/hexatransit/logocheck/internal/model"
	"github.com/hexatransit/logocheck/internal/problem"
)

// DefaultStripPrefix is the public URL under which assets are served.
const DefaultStripPrefix = "https://hexatransit.fr/assets/"

// LocalPath maps a declared logoPath to a path relative to the asset root.
// prefix is removed once when present, leading slashes and backslashes are
// dropped, and backslashes become forward slashes before cleaning.
func LocalPath(logo, prefix string) string {
	p := strings.TrimSpace(logo)
	if prefix != "" && strings.HasPrefix(p, prefix) {
		p = strings.TrimPrefix(p, prefix)
	}
	p = strings.TrimLeft(p, `/\`)
	p = strings.ReplaceAll(p, `\`, "/")
	return filepath.FromSlash(path.Clean(p))
}

// Checker tests logo references against a filesystem.
type Checker struct {
	fs      afero.Fs
	baseDir string
	prefix  string
}

// NewChecker creates a Checker resolving local paths below baseDir on fs.
func NewChecker(fs afero.Fs, baseDir, prefix string) *Checker {
	return &Checker{fs: fs, baseDir: baseDir, prefix: prefix}
}

// Refs derives the logo references of decls, ignoring blank logo paths.
func (c *Checker) Refs(decls []model.Declaration) []model.LogoRef {
	var refs []model.LogoRef
	for _, d := range decls {
		logo := strings.TrimSpace(d.LogoPath)
		if logo == "" {
			continue
		}
		refs = append(refs, model.LogoRef{
			Logo:      logo,
			Source:    d.Source,
			LocalPath: LocalPath(logo, c.prefix),
		})
	}
	return refs
}

// Missing returns every reference whose local file does not exist or
// cannot be stat'ed. Each one is also recorded in problems.
func (c *Checker) Missing(refs []model.LogoRef, problems *problem.List) []model.LogoRef {
	var missing []model.LogoRef
	for _, ref := range refs {
		ok, err := afero.Exists(c.fs, filepath.Join(c.baseDir, ref.LocalPath))
		if ok && err == nil {
			continue
		}
		missing = append(missing, ref)
		if err != nil {
			problems.Addf(problem.KindMissingAsset, ref.Source, "missing logo %s (expected %s): %v", ref.Logo, ref.LocalPath, err)
			continue
		}
		problems.Addf(problem.KindMissingAsset, ref.Source, "missing logo %s (expected %s)", ref.Logo, ref.LocalPath)
	}
	return missing
}
