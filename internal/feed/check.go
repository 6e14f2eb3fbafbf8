package feed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hexatransit/logocheck/internal/console"
	"github.com/hexatransit/logocheck/internal/model"
	"github.com/hexatransit/logocheck/internal/problem"
)

// DefaultMaxListed is how many missing identifiers a report quotes.
const DefaultMaxListed = 20

// Summary counts agency outcomes of one reconciliation run.
type Summary struct {
	Agencies int
	Matched  int
	Failed   int
	Skipped  int
}

// Checker reconciles a catalog against one GTFS source.
type Checker struct {
	source    Source
	download  Downloader
	maxListed int
	out       *console.Printer
	logger    zerolog.Logger
}

// NewChecker creates a Checker. maxListed <= 0 selects DefaultMaxListed.
func NewChecker(source Source, download Downloader, maxListed int, out *console.Printer, logger zerolog.Logger) *Checker {
	if maxListed <= 0 {
		maxListed = DefaultMaxListed
	}
	return &Checker{
		source:    source,
		download:  download,
		maxListed: maxListed,
		out:       out,
		logger:    logger,
	}
}

// Check verifies every agency in catalog order. Failures are appended to
// problems and never stop the run.
func (c *Checker) Check(ctx context.Context, catalog *model.Catalog, problems *problem.List) Summary {
	agencies := catalog.Agencies()
	sum := Summary{Agencies: len(agencies)}

	for i, agency := range agencies {
		lines := catalog.Lines(agency)
		if len(lines) == 0 {
			c.out.Printf("[%d/%d] Agency %q: no line ids to check, skipping\n", i+1, len(agencies), agency)
			sum.Skipped++
			continue
		}

		url := c.source.URL(agency)
		c.out.Printf("[%d/%d] Checking GTFS for agency %q -> %s\n", i+1, len(agencies), agency, url)

		p, ok := c.checkAgency(ctx, agency, url, lines)
		if ok {
			c.out.Printf("Agency %s: %s (%d line_ids matched)\n", agency, c.out.OK(), len(lines))
			sum.Matched++
			continue
		}
		c.out.Printf("Agency %s: %s - %s\n", agency, c.out.Error(), p.Message)
		c.logger.Debug().Str("agency", agency).Str("url", url).Str("kind", string(p.Kind)).Msg(p.Message)
		problems.Add(p)
		sum.Failed++
	}
	return sum
}

func (c *Checker) checkAgency(ctx context.Context, agency, url string, lines model.LineSet) (problem.Problem, bool) {
	fail := func(kind problem.Kind, format string, args ...any) (problem.Problem, bool) {
		return problem.Problem{
			Kind:    kind,
			Agency:  agency,
			URL:     url,
			Message: fmt.Sprintf(format, args...),
		}, false
	}

	data, err := c.download.Fetch(ctx, url)
	if err != nil {
		return fail(problem.KindTransport, "Failed to download %s: %v", url, err)
	}

	routes, err := ParseRoutes(data)
	if err != nil {
		var missing *MissingMemberError
		switch {
		case errors.Is(err, ErrArchive):
			return fail(problem.KindArchive, "Invalid zip for %s: %v", agency, err)
		case errors.As(err, &missing):
			return fail(problem.KindMember, "No routes.txt in GTFS for %s: %v", agency, err)
		default:
			return fail(problem.KindParse, "Failed to read routes.txt for %s: %v", agency, err)
		}
	}

	missing := lines.Missing(routes)
	if len(missing) == 0 {
		return problem.Problem{}, true
	}
	return fail(problem.KindMismatch, "%d missing line_id(s) not found in routes.txt: %s",
		len(missing), FormatIDs(missing, c.maxListed))
}

// FormatIDs renders at most limit ids as a bracketed list.
func FormatIDs(ids []string, limit int) string {
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return "[" + strings.Join(ids, ", ") + "]"
}
