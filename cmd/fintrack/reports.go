package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"fintrack/internal/money"
	"fintrack/internal/services"
)

type reportFlags struct {
	start, end, category string
}

func (f *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.start, "start", "", "first day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "last day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.category, "category", "", "restrict to one category")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
}

func (f *reportFlags) summary(app *cliApp) (*services.Summary, error) {
	start, err := parseDateFlag("start", f.start)
	if err != nil {
		return nil, err
	}
	end, err := parseDateFlag("end", f.end)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("--end must not be before --start")
	}
	return app.svcs.Reports.Summary(start, end, f.category)
}

func reportCmd(app *cliApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize a period and export it",
	}

	cmd.AddCommand(reportSummaryCmd(app))
	cmd.AddCommand(reportExportCmd(app, "csv", "Export the summary as CSV", func(s *services.Summary, w io.Writer) error {
		return app.svcs.Reports.ExportCSV(s, w)
	}))
	cmd.AddCommand(reportExportCmd(app, "pdf", "Export the summary as PDF", func(s *services.Summary, w io.Writer) error {
		return app.svcs.Reports.ExportPDF(s, w)
	}))

	return cmd
}

func reportSummaryCmd(app *cliApp) *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show gains and expenses of a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := flags.summary(app)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			w := newTable(out, "Section", "Category", "Amount")
			for _, r := range services.SummaryRows(s) {
				row(w, r.Section, r.Category, r.Amount)
			}
			return w.Flush()
		},
	}

	flags.register(cmd)
	return cmd
}

func reportExportCmd(app *cliApp, format, short string, render func(*services.Summary, io.Writer) error) *cobra.Command {
	var (
		flags  reportFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   format,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := flags.summary(app)
			if err != nil {
				return err
			}
			if output == "" {
				output = fmt.Sprintf("report_%s_%s.%s", flags.start, flags.end, format)
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			if err := render(s, f); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (net balance %s)\n", output, money.Format(s.NetBalance))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	return cmd
}
