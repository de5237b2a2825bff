package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/rshade/ecotrack/internal/factors"
	"github.com/rshade/ecotrack/internal/greenit"
	"github.com/rshade/ecotrack/internal/greenops"
)

// pdfActivityRows caps the activity table of the PDF summary.
const pdfActivityRows = 25

// PDFGenerator writes a landscape A4 summary.
type PDFGenerator struct {
	fontName string
}

// NewPDFGenerator returns a PDF generator using a core font.
func NewPDFGenerator() *PDFGenerator {
	return &PDFGenerator{fontName: "Helvetica"}
}

// pdfReplacer maps runes outside cp1252 onto printable equivalents.
//
//nolint:gochecknoglobals // Read-only replacer.
var pdfReplacer = strings.NewReplacer(
	"\u202f", " ",
	"\u00a0", " ",
	"₂", "2",
	"≈", "~",
	"—", "-",
)

// Generate renders r as a PDF document.
func (g *PDFGenerator) Generate(r Report) ([]byte, error) {
	l := labelsFor(r.Locale)
	nf := greenops.NewFormatter(r.Locale)

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	translate := pdf.UnicodeTranslatorFromDescriptor("")
	tr := func(s string) string { return translate(pdfReplacer.Replace(s)) }

	pdf.SetFont(g.fontName, "B", 16)
	pdf.CellFormat(0, 10, tr(r.Title), "", 1, "C", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("%s %s", l.generated, r.GeneratedAt.Format("02/01/2006 15:04"))), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	t := r.Tracker
	section(pdf, g.fontName, tr(l.summary))
	pdf.SetFont(g.fontName, "", 11)
	summary := [][2]string{
		{l.monthCarbon, nf.Float(t.Stats.TotalCarbon, 2)},
		{l.monthEnergy, nf.Float(t.Stats.TotalEnergy, 2)},
		{l.savings, nf.Float(t.Stats.TotalSavings, 2)},
		{l.ecoScore, nf.Number(int64(t.Stats.EcoScore))},
		{l.goal, nf.Float(t.Goal.Goal, 0)},
		{l.goalUsage, nf.Float(t.Goal.Percentage, 1)},
		{l.level, fmt.Sprintf("%d (%s)", t.Level, t.LevelName)},
		{l.xp, nf.Number(int64(t.XP))},
		{l.streak, nf.Number(int64(t.Streak))},
	}
	if r.Equivalency != "" {
		summary = append(summary, [2]string{l.equivalency, r.Equivalency})
	}
	for _, kv := range summary {
		pdf.CellFormat(80, 6, tr(kv[0]), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr(kv[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	section(pdf, g.fontName, tr(l.categories))
	widths := []float64{80, 50}
	drawTableRow(pdf, g.fontName, []string{tr(l.category), tr(l.carbon)}, widths, true)
	for _, bk := range t.Breakdown.Buckets {
		drawTableRow(pdf, g.fontName, []string{tr(bk.Label), tr(nf.Float(bk.Carbon, 2))}, widths, false)
	}
	if t.Breakdown.IsPlaceholder {
		note(pdf, g.fontName, tr(l.placeholderNote))
	}
	pdf.Ln(4)

	section(pdf, g.fontName, tr(l.activities))
	widths = []float64{28, 40, 100, 30, 20, 40}
	drawTableRow(pdf, g.fontName, []string{
		tr(l.date), tr(l.category), tr(l.description), tr(l.value), tr(l.unit), tr(l.carbon),
	}, widths, true)
	for i, a := range r.Activities {
		if i == pdfActivityRows {
			note(pdf, g.fontName, fmt.Sprintf("+%d", len(r.Activities)-pdfActivityRows))
			break
		}
		desc := a.Description
		if a.IsPlaceholder {
			desc += " *"
		}
		drawTableRow(pdf, g.fontName, []string{
			a.Date, tr(factors.CategoryLabel(a.Type)), tr(desc),
			tr(nf.Float(a.Value, 2)), tr(a.Unit), tr(nf.Float(a.CarbonFootprint, 2)),
		}, widths, false)
	}
	pdf.Ln(4)

	s := r.GreenIT
	section(pdf, g.fontName, tr(l.greenIT))
	widths = []float64{45, 45, 45, 45, 45}
	drawTableRow(pdf, g.fontName, []string{
		tr(l.slot), tr(l.energy), tr(l.carbon), tr(l.cost + " (" + s.Settings.Currency + ")"), tr(l.efficiency),
	}, widths, true)
	for _, slot := range greenit.Slots() {
		res := s.Calculations.Get(slot)
		if res == nil {
			continue
		}
		cost, eff := "-", "-"
		if res.Cost != nil {
			cost = nf.Float(*res.Cost, 2)
		}
		if res.Efficiency != nil {
			eff = nf.Float(*res.Efficiency, 0)
		}
		drawTableRow(pdf, g.fontName, []string{
			tr(slot.Label()), tr(nf.Float(res.Energy, 1)), tr(nf.Float(res.Carbon, 1)), tr(cost), tr(eff),
		}, widths, false)
	}
	drawTableRow(pdf, g.fontName, []string{
		tr(l.totals), tr(nf.Float(s.Totals.Energy, 1)), tr(nf.Float(s.Totals.Carbon, 1)),
		tr(nf.Float(s.Totals.Cost, 2)), tr(nf.Float(s.Totals.Efficiency, 0)),
	}, widths, true)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func section(pdf *gofpdf.Fpdf, fontName, title string) {
	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
}

func note(pdf *gofpdf.Fpdf, fontName, text string) {
	pdf.SetFont(fontName, "I", 9)
	pdf.CellFormat(0, 6, text, "", 1, "L", false, 0, "")
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 9)
	for i, col := range cols {
		align := "L"
		if i > 0 && !header {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}
