// Package findings appends check problems to a CSV log so successive CI runs
// can be compared.
package findings

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hexatransit/logocheck/internal/problem"
)

// Entry is one row in the findings log.
type Entry struct {
	Timestamp time.Time
	Check     string
	Kind      problem.Kind
	Source    string
	Agency    string
	URL       string
	Message   string
}

// Header is the CSV header of a findings log.
const Header = "timestamp,check,kind,source,agency,url,message"

const (
	numFields    = 7
	colTimestamp = 0
	colCheck     = 1
	colKind      = 2
	colSource    = 3
	colAgency    = 4
	colURL       = 5
	colMessage   = 6
)

// FromProblems stamps every problem of a check run.
func FromProblems(check string, at time.Time, problems []problem.Problem) []Entry {
	entries := make([]Entry, 0, len(problems))
	for _, p := range problems {
		entries = append(entries, Entry{
			Timestamp: at,
			Check:     check,
			Kind:      p.Kind,
			Source:    p.Source,
			Agency:    p.Agency,
			URL:       p.URL,
			Message:   p.Message,
		})
	}
	return entries
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.UTC().Format(time.RFC3339)
	row[colCheck] = e.Check
	row[colKind] = string(e.Kind)
	row[colSource] = e.Source
	row[colAgency] = e.Agency
	row[colURL] = e.URL
	row[colMessage] = e.Message
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	return Entry{
		Timestamp: ts,
		Check:     record[colCheck],
		Kind:      problem.Kind(record[colKind]),
		Source:    record[colSource],
		Agency:    record[colAgency],
		URL:       record[colURL],
		Message:   record[colMessage],
	}, nil
}

// Append writes entries to the log at path, creating the file, its parent
// directory and the header if needed.
func Append(path string, entries []Entry) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating findings dir: %w", err)
		}
	}

	needsHeader := false
	if info, err := os.Stat(path); os.IsNotExist(err) || (err == nil && info.Size() == 0) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening findings log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Read returns all entries of the log at path. A missing file yields no
// entries.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening findings log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading findings CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
