package main

import (
	"fmt"
	"os"

	"github.com/meur/caseforge/internal/config"
	"github.com/meur/caseforge/internal/extract"
	"github.com/meur/caseforge/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries what every subcommand needs once flags are parsed
type app struct {
	configPath string
	verbose    bool

	cfg    config.Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "caseforge",
		Short: "Case opening economics from captured case pages",
		Long: `caseforge reads a captured case page, extracts its drop table and
reports expected value, best and worst outcomes, value per rarity and a
projection of buying the case many times.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.init,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a TOML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newAnalyzeCmd(a), newInspectCmd(a), newServeCmd(a))
	return root
}

func (a *app) init(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.Log.Verbose = true
	}
	a.cfg = cfg

	a.logger, err = logging.New(cfg.Log)
	return err
}

func (a *app) extractor() (*extract.Extractor, error) {
	return extract.New(a.cfg.Layout, a.cfg.Currency)
}
