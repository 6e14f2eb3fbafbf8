// Package merge aggregates every descriptor file of a logo directory into a
// single document.
package merge

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hexatransit/logocheck/internal/bom"
)

// ErrEncode wraps failures to serialize the merged JSON document.
var ErrEncode = errors.New("encoding merged JSON")

// Picto concatenates lines_picto.csv files to w. Only the first header line
// is written; each file's own header is dropped. Lines are copied verbatim
// apart from line-ending normalization.
func Picto(w io.Writer, files []string, logger zerolog.Logger) error {
	bw := bufio.NewWriter(w)
	headerWritten := false

	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			logger.Warn().Err(err).Str("file", path).Msg("skipping unreadable file")
			continue
		}
		err = copyLines(bw, f, &headerWritten)
		f.Close()
		if err != nil {
			return fmt.Errorf("copying %s: %w", path, err)
		}
	}
	return bw.Flush()
}

func copyLines(w *bufio.Writer, r io.Reader, headerWritten *bool) error {
	br := bufio.NewReader(r)
	for n := 1; ; n++ {
		line, err := br.ReadString('\n')
		if line != "" {
			if n == 1 {
				line = bom.Trim(line)
			}
			skip := n == 1 && *headerWritten
			if n == 1 {
				*headerWritten = true
			}
			if !skip {
				if _, werr := w.WriteString(strings.TrimRight(line, "\r\n") + "\n"); werr != nil {
					return werr
				}
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Trafic merges trafic.json files into one indented JSON array written to
// w. A file holding a list contributes its elements; any other value is
// appended as one element. Invalid files are skipped with a warning. Key
// order inside each element is preserved.
func Trafic(w io.Writer, files []string, logger zerolog.Logger) error {
	merged := []json.RawMessage{}

	for _, path := range files {
		items, err := readItems(path)
		if err != nil {
			logger.Warn().Err(err).Str("file", path).Msg("skipping invalid JSON file")
			continue
		}
		merged = append(merged, items...)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(merged); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return nil
}

func readItems(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(bom.NewReader(f))
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if !json.Valid(data) {
		return nil, errors.New("invalid JSON")
	}

	if data[0] != '[' {
		return []json.RawMessage{data}, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}
