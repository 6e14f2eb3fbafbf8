// Package syntax confirms that descriptor files are structurally valid
// before any semantic check runs.
package syntax

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/hexatransit/logocheck/internal/bom"
	"github.com/hexatransit/logocheck/internal/collect"
	"github.com/hexatransit/logocheck/internal/console"
	"github.com/hexatransit/logocheck/internal/descriptor"
	"github.com/hexatransit/logocheck/internal/problem"
)

//go:embed trafic.schema.json
var traficSchema []byte

const traficSchemaURL = "trafic.schema.json"

// ErrEmpty is returned for a CSV file without any row.
var ErrEmpty = errors.New("is empty")

// Checker validates trafic.json and lines_picto.csv files.
type Checker struct {
	out    *console.Printer
	errOut *console.Printer
	schema *jsonschema.Schema
}

// NewChecker creates a Checker. When strict is set, trafic.json files must
// also match the company schema.
func NewChecker(out, errOut *console.Printer, strict bool) (*Checker, error) {
	c := &Checker{out: out, errOut: errOut}
	if strict {
		schema, err := compileTraficSchema()
		if err != nil {
			return nil, err
		}
		c.schema = schema
	}
	return c, nil
}

func compileTraficSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(traficSchemaURL, bytes.NewReader(traficSchema)); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	schema, err := compiler.Compile(traficSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return schema, nil
}

// CheckTree validates every descriptor below root. A missing file kind is
// itself a failure. It reports whether everything passed.
func (c *Checker) CheckTree(root string, problems *problem.List) bool {
	ok := true

	// A missing root simply yields no files and is reported as such.
	jsonFiles, _ := collect.FindFiles(root, descriptor.TraficFileName)
	if len(jsonFiles) == 0 {
		c.missing(root, descriptor.TraficFileName, problems)
		ok = false
	}
	for _, path := range jsonFiles {
		if err := c.CheckJSON(path); err != nil {
			problems.Add(problem.Problem{Kind: kindOf(err), Source: path, Message: err.Error()})
			ok = false
		}
	}

	csvFiles, _ := collect.FindFiles(root, descriptor.PictoFileName)
	if len(csvFiles) == 0 {
		c.missing(root, descriptor.PictoFileName, problems)
		ok = false
	}
	for _, path := range csvFiles {
		if err := c.CheckCSV(path); err != nil {
			problems.Add(problem.Problem{Kind: kindOf(err), Source: path, Message: err.Error()})
			ok = false
		}
	}
	return ok
}

func (c *Checker) missing(root, name string, problems *problem.List) {
	c.errOut.Printf("%s: No %s files found under %s\n", c.errOut.Error(), name, root)
	problems.Addf(problem.KindRead, root, "No %s files found under %s", name, root)
}

// CheckJSON validates one trafic.json file.
func (c *Checker) CheckJSON(path string) error {
	err := c.checkJSON(path)
	if err != nil {
		c.errOut.Printf("%s: %v\n", c.errOut.Error(), err)
		return err
	}
	c.out.Printf("%s: %s is valid JSON\n", c.out.OK(), path)
	return nil
}

func (c *Checker) checkJSON(path string) error {
	msg := fmt.Sprintf("Invalid JSON in %s", path)
	data, err := readUTF8(path)
	if err != nil {
		return &fileError{kind: kindOfRead(err), msg: msg, err: err}
	}

	doc, err := descriptor.DecodeJSON(bytes.NewReader(data))
	if err != nil {
		return &fileError{kind: problem.KindParse, msg: msg, err: err}
	}
	if c.schema != nil {
		if err := c.schema.Validate(doc); err != nil {
			return &fileError{kind: problem.KindStructure, msg: fmt.Sprintf("%s does not match the trafic schema", path), err: err}
		}
	}
	return nil
}

// CheckCSV validates one lines_picto.csv file and returns its row count.
func (c *Checker) CheckCSV(path string) error {
	rows, err := c.checkCSV(path)
	if err != nil {
		c.errOut.Printf("%s: %v\n", c.errOut.Error(), err)
		return err
	}
	c.out.Printf("%s: %s parsed as CSV with delimiter '%c' (%d rows)\n", c.out.OK(), path, descriptor.PictoDelimiter, rows)
	return nil
}

func (c *Checker) checkCSV(path string) (int, error) {
	msg := fmt.Sprintf("Failed to parse CSV %s", path)
	data, err := readUTF8(path)
	if err != nil {
		return 0, &fileError{kind: kindOfRead(err), msg: msg, err: err}
	}

	rows, err := CountCSVRows(bytes.NewReader(data))
	if errors.Is(err, ErrEmpty) {
		return 0, &fileError{kind: problem.KindParse, msg: path + " " + ErrEmpty.Error()}
	}
	if err != nil {
		return 0, &fileError{kind: problem.KindParse, msg: msg, err: err}
	}
	return rows, nil
}

// readUTF8 reads path, dropping a byte-order mark and rejecting invalid
// UTF-8.
func readUTF8(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return bom.Strict(data)
}

func kindOfRead(err error) problem.Kind {
	if errors.Is(err, bom.ErrInvalidUTF8) {
		return problem.KindParse
	}
	return problem.KindRead
}

// CountCSVRows parses r as lines_picto.csv, requiring a consistent field
// count, and returns the number of records including the header. A leading
// byte-order mark is ignored.
func CountCSVRows(r io.Reader) (int, error) {
	cr := descriptor.NewPictoReader(bom.NewReader(r))
	records, err := cr.ReadAll()
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, ErrEmpty
	}
	return len(records), nil
}

type fileError struct {
	kind problem.Kind
	msg  string
	err  error
}

func (e *fileError) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

func (e *fileError) Unwrap() error { return e.err }

func kindOf(err error) problem.Kind {
	var fe *fileError
	if errors.As(err, &fe) {
		return fe.kind
	}
	return problem.KindParse
}
