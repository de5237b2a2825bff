package report

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rshade/ecotrack/internal/engine"
	"github.com/rshade/ecotrack/internal/greenit"
	"github.com/rshade/ecotrack/internal/greenops"
	"github.com/rshade/ecotrack/internal/store"
	"github.com/rshade/ecotrack/internal/tracker"
)

var testNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func testReport(t *testing.T, loc greenops.Locale) Report {
	t.Helper()
	ctx := context.Background()
	e := engine.New(engine.WithClock(func() time.Time { return testNow }))

	doc := store.DefaultDocument()
	doc, _, err := e.SubmitActivity(ctx, doc, tracker.ActivityInput{
		Type: "transport", Mode: "car", Description: "Trajet", Value: 100, Date: "2025-03-10",
	})
	require.NoError(t, err)
	doc, _, err = e.Calculate(ctx, doc, greenit.DefaultDatacenterInput())
	require.NoError(t, err)

	return Build(ctx, e, doc, loc, "")
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" XLSX ")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	f, err = ParseFormat("pdf")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	_, err = ParseFormat("csv")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestBuild(t *testing.T) {
	r := testReport(t, greenops.LocaleFrench)
	assert.Equal(t, DefaultTitle, r.Title)
	assert.Equal(t, testNow, r.GeneratedAt)
	require.Len(t, r.Activities, 1)
	assert.InDelta(t, 21.0, r.Tracker.Stats.TotalCarbon, 1e-9)
	assert.NotEmpty(t, r.Equivalency)
	assert.NotNil(t, r.GreenIT.Calculations.Datacenter)
}

func TestXLSXGenerator(t *testing.T) {
	r := testReport(t, greenops.LocaleEnglish)
	data, err := NewXLSXGenerator().Generate(r)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Activities", "Categories", "Trend", "Green IT", "Transactions"}, f.GetSheetList())

	title, err := f.GetCellValue("Summary", "A1")
	require.NoError(t, err)
	assert.Equal(t, DefaultTitle, title)

	carbon, err := f.GetCellValue("Summary", "B4")
	require.NoError(t, err)
	assert.Equal(t, "21", carbon)

	desc, err := f.GetCellValue("Activities", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Trajet", desc)

	sample, err := f.GetCellValue("Activities", "G2")
	require.NoError(t, err)
	assert.Equal(t, "no", sample)

	slot, err := f.GetCellValue("Green IT", "A2")
	require.NoError(t, err)
	assert.Equal(t, greenit.SlotDatacenter.Label(), slot)

	rows, err := f.GetRows("Transactions")
	require.NoError(t, err)
	assert.Len(t, rows, 2, "header plus one recorded calculation")
}

func TestXLSXGenerator_FrenchLabels(t *testing.T) {
	data, err := NewXLSXGenerator().Generate(testReport(t, greenops.LocaleFrench))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "Synthèse", f.GetSheetList()[0])
}

func TestPDFGenerator(t *testing.T) {
	for _, loc := range []greenops.Locale{greenops.LocaleFrench, greenops.LocaleEnglish} {
		t.Run(string(loc), func(t *testing.T) {
			data, err := NewPDFGenerator().Generate(testReport(t, loc))
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
		})
	}
}

func TestGenerate(t *testing.T) {
	r := testReport(t, greenops.LocaleFrench)
	out, err := Generate(context.Background(), r, FormatXLSX, FormatPDF)
	require.NoError(t, err)
	assert.Len(t, out, 2)
	assert.NotEmpty(t, out[FormatXLSX])
	assert.NotEmpty(t, out[FormatPDF])

	_, err = Generate(context.Background(), r, Format("csv"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	base := DefaultBaseName(testNow)
	assert.Equal(t, "ecotrack-2025-03-15", base)

	paths, err := WriteFiles(context.Background(), testReport(t, greenops.LocaleFrench), dir, base, FormatPDF, FormatXLSX)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, base+".pdf"), paths[0])
	assert.Equal(t, filepath.Join(dir, base+".xlsx"), paths[1])
	for _, p := range paths {
		info, statErr := os.Stat(p)
		require.NoError(t, statErr)
		assert.Positive(t, info.Size())
	}
}
