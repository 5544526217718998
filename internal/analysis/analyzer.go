// Package analysis runs the extract, summarize, publish pipeline for one case page
package analysis

import (
	"fmt"
	"io"

	"github.com/meur/caseforge/internal/economics"
	"github.com/meur/caseforge/internal/extract"
	"github.com/meur/caseforge/internal/models"
	"github.com/meur/caseforge/internal/report"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// oddsTolerance is how far total odds may drift from 1 before a warning is logged
var oddsTolerance = decimal.New(1, -2)

// Request names the report and the projection size
type Request struct {
	ReportName string
	Purchases  int64 // economics.DefaultPurchases when zero
}

// Result is everything a finished run produced
type Result struct {
	Snapshot *models.CaseSnapshot
	Summary  *models.Summary
	Report   string
	Path     string
}

// Analyzer wires the pipeline stages together
type Analyzer struct {
	extractor *extract.Extractor
	publisher *report.Publisher
	logger    *zap.Logger
}

// New creates an Analyzer
func New(extractor *extract.Extractor, publisher *report.Publisher, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		extractor: extractor,
		publisher: publisher,
		logger:    logger,
	}
}

// RunFile runs the pipeline over the document stored at path
func (a *Analyzer) RunFile(path string, req Request) (*Result, error) {
	snap, err := a.extractor.ExtractFile(path)
	if err != nil {
		return nil, err
	}
	return a.run(snap, req)
}

// Run runs the pipeline over the document read from r. An empty snapshot
// stops the run with economics.ErrEmptyDataset before anything is written.
func (a *Analyzer) Run(r io.Reader, req Request) (*Result, error) {
	snap, err := a.extractor.Extract(r)
	if err != nil {
		return nil, err
	}
	return a.run(snap, req)
}

func (a *Analyzer) run(snap *models.CaseSnapshot, req Request) (*Result, error) {
	log := a.logger.With(zap.String("case", snap.CaseName))
	log.Debug("Extracted case data", zap.Int("items", len(snap.Items)))

	if snap.Empty() {
		log.Warn("No case data found")
		return nil, economics.ErrEmptyDataset
	}

	purchases := req.Purchases
	if purchases == 0 {
		purchases = economics.DefaultPurchases
	}

	sum, err := economics.Summarize(snap, purchases)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize case: %w", err)
	}

	if sum.TotalOdds.Sub(decimal.New(1, 0)).Abs().GreaterThan(oddsTolerance) {
		log.Warn("Case odds do not sum to 100%",
			zap.String("total_odds", sum.TotalOdds.String()))
	}
	if skipped := sum.ItemCount - sum.SummableCount; skipped > 0 {
		log.Info("Items excluded from expected value",
			zap.Int("excluded", skipped),
			zap.Int("unpriced", sum.ItemCount-sum.PricedCount))
	}

	path, text, err := a.publisher.Publish(req.ReportName, snap, sum)
	if err != nil {
		return nil, err
	}

	log.Info("Analysis saved",
		zap.String("path", path),
		zap.String("expected_value", sum.ExpectedValue.StringFixed(4)),
		zap.String("average_price", sum.AveragePrice.StringFixed(2)))

	return &Result{
		Snapshot: snap,
		Summary:  sum,
		Report:   text,
		Path:     path,
	}, nil
}
