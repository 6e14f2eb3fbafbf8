package feed

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/hexatransit/logocheck/internal/bom"
	"github.com/hexatransit/logocheck/internal/model"
)

// RoutesMember is the GTFS file holding route identifiers.
const RoutesMember = "routes.txt"

// maxListedMembers bounds the member names quoted in a MissingMemberError.
const maxListedMembers = 10

// ErrArchive wraps payloads that are not readable ZIP archives.
var ErrArchive = errors.New("invalid zip")

// MissingMemberError reports an archive without routes.txt.
type MissingMemberError struct {
	Found []string
}

func (e *MissingMemberError) Error() string {
	found := e.Found
	if len(found) > maxListedMembers {
		found = found[:maxListedMembers]
	}
	return fmt.Sprintf("no %s in archive (found files: [%s])", RoutesMember, strings.Join(found, ", "))
}

type routeRow struct {
	RouteID string `csv:"route_id"`
}

// ParseRoutes extracts the route_id set from a GTFS archive. The first
// member whose name ends in routes.txt is used, so nested feeds work.
func ParseRoutes(archive []byte) (model.RouteSet, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchive, err)
	}

	member := findMember(zr)
	if member == nil {
		names := make([]string, 0, len(zr.File))
		for _, f := range zr.File {
			names = append(names, f.Name)
		}
		return nil, &MissingMemberError{Found: names}
	}

	rc, err := member.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", member.Name, err)
	}
	defer rc.Close()

	cr := csv.NewReader(bom.NewReader(rc))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var rows []routeRow
	if err := gocsv.UnmarshalCSV(cr, &rows); err != nil && !errors.Is(err, gocsv.ErrEmptyCSVFile) {
		return nil, fmt.Errorf("reading %s: %w", member.Name, err)
	}

	routes := make(model.RouteSet, len(rows))
	for _, r := range rows {
		id := strings.TrimSpace(r.RouteID)
		if id != "" {
			routes[id] = struct{}{}
		}
	}
	return routes, nil
}

func findMember(zr *zip.Reader) *zip.File {
	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, RoutesMember) {
			return f
		}
	}
	return nil
}
