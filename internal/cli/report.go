package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/report"
)

func newReportCmd(flags *globalFlags) *cobra.Command {
	var (
		formats []string
		dir     string
		title   string
		name    string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export tracker and Green IT figures as spreadsheet and PDF",
		Example: `  ecotrack report
  ecotrack report --format pdf --dir ./exports --title "March review"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsed := make([]report.Format, 0, len(formats))
			for _, f := range formats {
				pf, err := report.ParseFormat(f)
				if err != nil {
					return err
				}
				parsed = append(parsed, pf)
			}

			return withApp(cmd, flags, func(ctx context.Context, a *app) error {
				loc, err := a.locale()
				if err != nil {
					return err
				}
				doc, err := a.load(ctx)
				if err != nil {
					return err
				}
				r := report.Build(ctx, a.engine, doc, loc, title)

				base := name
				if base == "" {
					base = report.DefaultBaseName(r.GeneratedAt)
				}
				paths, err := report.WriteFiles(ctx, r, dir, base, parsed...)
				if err != nil {
					return err
				}
				cmd.Printf("Report written: %s\n", strings.Join(paths, ", "))
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&formats, "format", []string{string(report.FormatXLSX), string(report.FormatPDF)}, "report formats: xlsx, pdf")
	f.StringVar(&dir, "dir", ".", "output directory")
	f.StringVar(&title, "title", report.DefaultTitle, "report title")
	f.StringVar(&name, "name", "", "file base name (default ecotrack-<date>)")
	return cmd
}
