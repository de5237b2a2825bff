package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/rshade/ecotrack/internal/factors"
	"github.com/rshade/ecotrack/internal/greenit"
)

// XLSXGenerator writes one sheet per report section.
type XLSXGenerator struct{}

// NewXLSXGenerator returns an XLSX generator.
func NewXLSXGenerator() *XLSXGenerator {
	return &XLSXGenerator{}
}

type sheetWriter struct {
	file   *excelize.File
	sheet  string
	header int
	err    error
}

func (w *sheetWriter) row(n int, values ...any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.file.SetSheetRow(w.sheet, cell, &values)
}

func (w *sheetWriter) headerRow(n int, values ...any) {
	w.row(n, values...)
	if w.err != nil {
		return
	}
	last, err := excelize.CoordinatesToCellName(len(values), n)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.file.SetCellStyle(w.sheet, fmt.Sprintf("A%d", n), last, w.header)
}

func (w *sheetWriter) widths(cols string, width float64) {
	if w.err != nil {
		return
	}
	w.err = w.file.SetColWidth(w.sheet, cols[:1], cols[len(cols)-1:], width)
}

// Generate renders r as a workbook.
func (g *XLSXGenerator) Generate(r Report) ([]byte, error) {
	l := labelsFor(r.Locale)
	file := excelize.NewFile()
	defer file.Close()

	header, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	if err = file.SetSheetName("Sheet1", l.summary); err != nil {
		return nil, err
	}
	sheets := []struct {
		name  string
		write func(w *sheetWriter, r Report, l labels)
	}{
		{l.summary, writeSummarySheet},
		{l.activities, writeActivitiesSheet},
		{l.categories, writeCategoriesSheet},
		{l.trend, writeTrendSheet},
		{l.greenIT, writeGreenITSheet},
		{l.transactions, writeTransactionsSheet},
	}
	for i, s := range sheets {
		if i > 0 {
			if _, err = file.NewSheet(s.name); err != nil {
				return nil, err
			}
		}
		w := &sheetWriter{file: file, sheet: s.name, header: header}
		s.write(w, r, l)
		if w.err != nil {
			return nil, fmt.Errorf("sheet %s: %w", s.name, w.err)
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(w *sheetWriter, r Report, l labels) {
	t := r.Tracker
	rows := [][]any{
		{r.Title},
		{l.generated, r.GeneratedAt.Format(time.RFC3339)},
		{},
		{l.monthCarbon, t.Stats.TotalCarbon},
		{l.monthEnergy, t.Stats.TotalEnergy},
		{l.savings, t.Stats.TotalSavings},
		{l.ecoScore, t.Stats.EcoScore},
		{l.goal, t.Goal.Goal},
		{l.goalUsage, t.Goal.Percentage},
		{l.level, fmt.Sprintf("%d (%s)", t.Level, t.LevelName)},
		{l.xp, t.XP},
		{l.streak, t.Streak},
		{l.equivalency, r.Equivalency},
		{},
		{l.greenIT + " " + l.energy, r.GreenIT.Totals.Energy},
		{l.greenIT + " " + l.carbon, r.GreenIT.Totals.Carbon},
		{fmt.Sprintf("%s %s (%s)", l.greenIT, l.cost, r.GreenIT.Settings.Currency), r.GreenIT.Totals.Cost},
		{l.greenIT + " " + l.efficiency, r.GreenIT.Totals.Efficiency},
	}
	for i, row := range rows {
		w.row(i+1, row...)
	}
	w.widths("A", 36)
	w.widths("B", 24)
}

func writeActivitiesSheet(w *sheetWriter, r Report, l labels) {
	w.headerRow(1, l.date, l.category, l.description, l.value, l.unit, l.carbon, l.sample)
	for i, a := range r.Activities {
		w.row(i+2, a.Date, factors.CategoryLabel(a.Type), a.Description, a.Value, a.Unit,
			a.CarbonFootprint, yesNo(r.Locale, a.IsPlaceholder))
	}
	w.widths("A", 12)
	w.widths("BC", 28)
	w.widths("DG", 14)
}

func writeCategoriesSheet(w *sheetWriter, r Report, l labels) {
	b := r.Tracker.Breakdown
	w.headerRow(1, l.category, l.carbon)
	n := 2
	for _, bk := range b.Buckets {
		w.row(n, bk.Label, bk.Carbon)
		n++
	}
	w.row(n, l.totals, b.Total())
	if b.IsPlaceholder {
		w.row(n+2, l.placeholderNote)
	}
	w.widths("A", 24)
	w.widths("B", 18)
}

func writeTrendSheet(w *sheetWriter, r Report, l labels) {
	tr := r.Tracker.Trend
	w.headerRow(1, l.month, l.carbon, l.energy)
	for i, p := range tr.Points {
		w.row(i+2, fmt.Sprintf("%s %d", p.Label, p.Year), p.Carbon, p.Energy)
	}
	if tr.IsPlaceholder {
		w.row(len(tr.Points)+3, l.placeholderNote)
	}
	w.widths("AC", 20)
}

func writeGreenITSheet(w *sheetWriter, r Report, l labels) {
	s := r.GreenIT
	w.headerRow(1, l.slot, l.energy, l.carbon, l.cost, l.efficiency, l.quality)
	n := 2
	for _, slot := range greenit.Slots() {
		res := s.Calculations.Get(slot)
		if res == nil {
			continue
		}
		var cost, eff any = "", ""
		if res.Cost != nil {
			cost = *res.Cost
		}
		if res.Efficiency != nil {
			eff = *res.Efficiency
		}
		w.row(n, slot.Label(), res.Energy, res.Carbon, cost, eff, string(res.Quality))
		n++
	}
	w.row(n, l.totals, s.Totals.Energy, s.Totals.Carbon, s.Totals.Cost, s.Totals.Efficiency)
	w.widths("A", 18)
	w.widths("BF", 18)
}

func writeTransactionsSheet(w *sheetWriter, r Report, l labels) {
	w.headerRow(1, l.id, l.slot, l.energy, l.carbon, l.when)
	for i, tx := range r.GreenIT.Transactions {
		w.row(i+2, tx.ID, tx.Type.Label(), tx.Data.Energy, tx.Data.Carbon, tx.Timestamp.Format(time.RFC3339))
	}
	w.widths("A", 36)
	w.widths("BE", 20)
}
