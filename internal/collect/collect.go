// Package collect walks a logo directory and gathers the declarations of
// every descriptor file it finds.
package collect

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/karrick/godirwalk"
	"github.com/rs/zerolog"

	"github.com/hexatransit/logocheck/internal/descriptor"
	"github.com/hexatransit/logocheck/internal/model"
	"github.com/hexatransit/logocheck/internal/problem"
)

// ErrNotDirectory is returned when the root is missing or not a directory.
var ErrNotDirectory = errors.New("not found or is not a directory")

// Skipped records a descriptor file that could not be read.
type Skipped struct {
	Path string
	Err  error
}

// Result is the outcome of one collection pass.
type Result struct {
	Catalog      *model.Catalog
	Declarations []model.Declaration
	Files        []string // every matching file, in walk order
	Skipped      []Skipped
}

// Parsed returns the files that were read successfully.
func (r *Result) Parsed() []string {
	bad := make(map[string]bool, len(r.Skipped))
	for _, s := range r.Skipped {
		bad[s.Path] = true
	}
	var ok []string
	for _, f := range r.Files {
		if !bad[f] {
			ok = append(ok, f)
		}
	}
	return ok
}

// Problems converts skipped files into problems.
func (r *Result) Problems(list *problem.List) {
	for _, s := range r.Skipped {
		kind := problem.KindParse
		switch {
		case errors.Is(s.Err, descriptor.ErrUnexpectedStructure):
			kind = problem.KindStructure
		case errors.Is(s.Err, os.ErrNotExist), errors.Is(s.Err, os.ErrPermission):
			kind = problem.KindRead
		}
		list.Add(problem.Problem{
			Kind:    kind,
			Source:  s.Path,
			Message: fmt.Sprintf("Failed to load %s: %v", s.Path, s.Err),
		})
	}
}

// CheckRoot verifies that root exists and is a directory.
func CheckRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("logo directory %q %w", root, ErrNotDirectory)
	}
	return nil
}

// FindFiles returns every file named name below root, sorted by path
// within each directory.
func FindFiles(root, name string) ([]string, error) {
	return findMatching(root, func(n string) bool { return n == name })
}

// FindFilesFold is FindFiles with a case-insensitive name match.
func FindFilesFold(root, name string) ([]string, error) {
	return findMatching(root, func(n string) bool { return strings.EqualFold(n, name) })
}

func findMatching(root string, match func(string) bool) ([]string, error) {
	if err := CheckRoot(root); err != nil {
		return nil, err
	}

	var files []string
	err := godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if de.IsDir() {
				return nil
			}
			if match(de.Name()) {
				files = append(files, path)
			}
			return nil
		},
		ErrorCallback: func(string, error) godirwalk.ErrorAction {
			return godirwalk.SkipNode
		},
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}

// Collect parses every descriptor file handled by p below root. A file that
// fails to open or parse is logged and skipped.
func Collect(root string, p descriptor.Parser, logger zerolog.Logger) (*Result, error) {
	files, err := FindFiles(root, p.FileName())
	if err != nil {
		return nil, err
	}

	res := &Result{Catalog: model.NewCatalog(), Files: files}
	for _, path := range files {
		decls, err := parseFile(path, p)
		if err != nil {
			logger.Warn().Err(err).Str("file", path).Msg("skipping descriptor")
			res.Skipped = append(res.Skipped, Skipped{Path: path, Err: err})
			continue
		}
		logger.Debug().Str("file", path).Int("declarations", len(decls)).Msg("parsed descriptor")
		res.Catalog.AddDeclarations(decls)
		res.Declarations = append(res.Declarations, decls...)
	}
	return res, nil
}

func parseFile(path string, p descriptor.Parser) ([]model.Declaration, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decls, err := p.Parse(f)
	if err != nil {
		return nil, err
	}
	for i := range decls {
		decls[i].Source = path
	}
	return decls, nil
}
