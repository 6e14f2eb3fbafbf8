package descriptor

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/hexatransit/logocheck/internal/bom"
	"github.com/hexatransit/logocheck/internal/model"
)

const (
	// PictoFileName is the descriptor mapping lines to pictograms.
	PictoFileName = "lines_picto.csv"
	// PictoDelimiter separates lines_picto.csv fields.
	PictoDelimiter = ';'
)

// PictoRow is one lines_picto.csv record. Other columns are ignored.
type PictoRow struct {
	AgencyID string `csv:"agency_id"`
	LineID   string `csv:"line_id"`
	LogoPath string `csv:"logoPath"`
}

// PictoParser parses lines_picto.csv files.
type PictoParser struct{}

// Format returns the parser name.
func (p *PictoParser) Format() string { return "picto" }

// FileName returns the descriptor file name.
func (p *PictoParser) FileName() string { return PictoFileName }

// Parse reads every row, keeping rows with an agency and a line.
func (p *PictoParser) Parse(r io.Reader) ([]model.Declaration, error) {
	rows, err := ReadPictoRows(r)
	if err != nil {
		return nil, err
	}

	var decls []model.Declaration
	for _, row := range rows {
		decls = append(decls, model.Declaration{
			Agency:   row.AgencyID,
			Line:     row.LineID,
			LogoPath: row.LogoPath,
		})
	}
	return decls, nil
}

// ReadPictoRows decodes a lines_picto.csv stream. A leading byte-order mark
// is dropped before the header is matched. Ragged rows are accepted.
func ReadPictoRows(r io.Reader) ([]PictoRow, error) {
	cr := NewPictoReader(bom.NewReader(r))
	cr.FieldsPerRecord = -1

	var rows []PictoRow
	if err := gocsv.UnmarshalCSV(cr, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", PictoFileName, err)
	}
	return rows, nil
}

// NewPictoReader returns a csv.Reader configured for lines_picto.csv.
func NewPictoReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = PictoDelimiter
	cr.LazyQuotes = true
	return cr
}
