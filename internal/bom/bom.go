// Package bom strips UTF-8 byte-order marks from descriptor and feed files.
package bom

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Mark is the UTF-8 encoded byte-order mark.
const Mark = "\uFEFF"

// ErrInvalidUTF8 is returned by Strict for data that is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// NewReader returns a reader that decodes r as UTF-8, dropping a leading
// byte-order mark and replacing invalid sequences with U+FFFD.
func NewReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

// Trim removes a leading byte-order mark from s.
func Trim(s string) string {
	return strings.TrimPrefix(s, Mark)
}

// Strict drops a leading byte-order mark from data and rejects invalid
// UTF-8 instead of replacing it.
func Strict(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, []byte(Mark))
	if !utf8.Valid(data) {
		return nil, ErrInvalidUTF8
	}
	return data, nil
}
