package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <document>",
		Short: "Print the records extracted from a captured case page as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := a.extractor()
			if err != nil {
				return err
			}
			snap, err := ex.ExtractFile(args[0])
			if err != nil {
				return err
			}
			a.logger.Debug("Extracted case data",
				zap.String("case", snap.CaseName),
				zap.Int("items", len(snap.Items)))

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(snap)
		},
	}
}
