// Package report exports engine snapshots as XLSX workbooks and PDF summaries.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/ecotrack/internal/engine"
	"github.com/rshade/ecotrack/internal/greenops"
	"github.com/rshade/ecotrack/internal/store"
	"github.com/rshade/ecotrack/internal/tracker"
)

// Format is an export file format.
type Format string

// Supported formats.
const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrUnknownFormat indicates an export format other than xlsx or pdf.
const ErrUnknownFormat = constError("unknown report format")

// ParseFormat accepts "xlsx" or "pdf", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatXLSX, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Report is everything an export shows.
type Report struct {
	Title       string
	GeneratedAt time.Time
	Locale      greenops.Locale

	Tracker engine.TrackerSnapshot
	GreenIT engine.GreenITSnapshot
	// Activities is the full ledger, newest first.
	Activities []tracker.Activity
	// Equivalency is the display line for the monthly carbon, if any.
	Equivalency string
}

// DefaultTitle heads reports built without an explicit title.
const DefaultTitle = "EcoTracker"

// Build assembles a report from doc as seen by e. Placeholders are listed
// but flagged; the equivalency line is omitted when it does not apply.
func Build(ctx context.Context, e *engine.Engine, doc store.Document, loc greenops.Locale, title string) Report {
	if title == "" {
		title = DefaultTitle
	}
	snap := e.TrackerSnapshot(doc, engine.SnapshotOptions{})
	return Report{
		Title:       title,
		GeneratedAt: e.Now(),
		Locale:      loc,
		Tracker:     snap,
		GreenIT:     e.GreenITSnapshot(doc),
		Activities:  e.Activities(doc, 0, true),
		Equivalency: greenops.Describe(ctx, snap.Stats.TotalCarbon, greenops.NewFormatter(loc)),
	}
}

// Generator renders a report in one format.
type Generator interface {
	Generate(r Report) ([]byte, error)
}

// GeneratorFor returns the generator of f.
func GeneratorFor(f Format) (Generator, error) {
	switch f {
	case FormatXLSX:
		return NewXLSXGenerator(), nil
	case FormatPDF:
		return NewPDFGenerator(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Generate renders r in every requested format concurrently.
func Generate(ctx context.Context, r Report, formats ...Format) (map[Format][]byte, error) {
	out := make(map[Format][]byte, len(formats))
	results := make([][]byte, len(formats))

	g, _ := errgroup.WithContext(ctx)
	for i, f := range formats {
		gen, err := GeneratorFor(f)
		if err != nil {
			return nil, err
		}
		g.Go(func() error {
			data, genErr := gen.Generate(r)
			if genErr != nil {
				return fmt.Errorf("generating %s: %w", f, genErr)
			}
			results[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i, f := range formats {
		out[f] = results[i]
	}
	return out, nil
}

// WriteFiles generates r and writes <dir>/<base>.<format> for each format,
// returning the written paths in format order.
func WriteFiles(ctx context.Context, r Report, dir, base string, formats ...Format) ([]string, error) {
	files, err := Generate(ctx, r, formats...)
	if err != nil {
		return nil, err
	}
	if err = os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating report directory: %w", err)
	}

	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := filepath.Join(dir, base+"."+string(f))
		if err = os.WriteFile(path, files[f], 0o600); err != nil {
			return paths, fmt.Errorf("writing %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// DefaultBaseName names an export after its generation date.
func DefaultBaseName(now time.Time) string {
	return "ecotrack-" + now.Format("2006-01-02")
}

func yesNo(loc greenops.Locale, b bool) string {
	switch {
	case loc == greenops.LocaleEnglish && b:
		return "yes"
	case loc == greenops.LocaleEnglish:
		return "no"
	case b:
		return "oui"
	default:
		return "non"
	}
}
