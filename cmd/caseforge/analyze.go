package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/meur/caseforge/internal/analysis"
	"github.com/meur/caseforge/internal/economics"
	"github.com/meur/caseforge/internal/report"
	"github.com/meur/caseforge/internal/storage"
	"github.com/spf13/cobra"
)

// defaultReportName is used when --out names only a directory
const defaultReportName = "case_report"

func newAnalyzeCmd(a *app) *cobra.Command {
	var (
		out       string
		purchases int64
	)

	cmd := &cobra.Command{
		Use:   "analyze <document>",
		Short: "Analyse a captured case page and write the report",
		Long: `Extracts the drop table from a captured case page, computes its
economics and writes a text report. ".txt" is appended to the output name
when missing.

Example:
  caseforge analyze page.html --out dreams_case --purchases 50000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if purchases == 0 {
				purchases = a.cfg.Purchases
			}
			if purchases <= 0 {
				return economics.ErrInvalidPurchaseCount
			}

			dir, name := filepath.Split(out)
			if dir == "" {
				dir = a.cfg.ReportDir
			}
			if name == "" {
				name = defaultReportName
			}
			store, err := storage.New(dir)
			if err != nil {
				return err
			}

			ex, err := a.extractor()
			if err != nil {
				return err
			}
			analyzer := analysis.New(ex, report.NewPublisher(store, a.cfg.Currency), a.logger)

			res, err := analyzer.RunFile(args[0], analysis.Request{ReportName: name, Purchases: purchases})
			if errors.Is(err, economics.ErrEmptyDataset) {
				fmt.Fprintln(cmd.OutOrStdout(), "No case data found.")
				return err
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Analysis saved to '%s'\n", res.Path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", defaultReportName, "report file name, or a directory ending in a separator")
	cmd.Flags().Int64VarP(&purchases, "purchases", "n", 0, "number of purchases to project (default from config)")

	return cmd
}
