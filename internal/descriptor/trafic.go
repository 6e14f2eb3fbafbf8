package descriptor

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hexatransit/logocheck/internal/bom"
	"github.com/hexatransit/logocheck/internal/model"
)

// TraficFileName is the descriptor listing traffic lines per company.
const TraficFileName = "trafic.json"

// TraficParser parses trafic.json files. A file holds either one company
// object or a list of them:
//
//	{"companyId": "A1", "lines": [[{"lineId": "10"}, {"lineId": 11}]]}
type TraficParser struct{}

// Format returns the parser name.
func (p *TraficParser) Format() string { return "trafic" }

// FileName returns the descriptor file name.
func (p *TraficParser) FileName() string { return TraficFileName }

// Parse decodes the document and flattens every company's lines.
func (p *TraficParser) Parse(r io.Reader) ([]model.Declaration, error) {
	doc, err := DecodeJSON(r)
	if err != nil {
		return nil, err
	}

	var decls []model.Declaration
	switch v := doc.(type) {
	case []any:
		for _, item := range v {
			if company, ok := item.(map[string]any); ok {
				decls = append(decls, companyDeclarations(company)...)
			}
		}
	case map[string]any:
		decls = companyDeclarations(v)
	default:
		return nil, fmt.Errorf("%s: %w: top-level %T", TraficFileName, ErrUnexpectedStructure, doc)
	}
	return decls, nil
}

// DecodeJSON decodes a single JSON document, dropping a byte-order mark.
// Numbers are kept as json.Number so they survive re-encoding unchanged.
func DecodeJSON(r io.Reader) (any, error) {
	dec := json.NewDecoder(bom.NewReader(r))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("decoding JSON: unexpected data after top-level value")
	}
	return doc, nil
}

func companyDeclarations(company map[string]any) []model.Declaration {
	agency, ok := scalarString(company["companyId"])
	if !ok || agency == "" {
		return nil
	}

	groups, _ := company["lines"].([]any)
	var decls []model.Declaration
	for _, g := range groups {
		items, _ := g.([]any)
		for _, item := range items {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			line, ok := scalarString(obj["lineId"])
			if !ok {
				continue
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			decls = append(decls, model.Declaration{Agency: agency, Line: line})
		}
	}
	return decls
}

// scalarString renders a JSON string or number as text.
func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	default:
		return "", false
	}
}
