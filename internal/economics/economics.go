// Package economics derives expected value, price extremes, per-rarity value
// and purchase projections from an extracted case snapshot.
package economics

import (
	"errors"

	"github.com/meur/caseforge/internal/models"
	"github.com/shopspring/decimal"
)

// DefaultPurchases is the purchase count used when the caller gives none
const DefaultPurchases int64 = 100_000

var (
	// ErrEmptyDataset means the snapshot has no drop-table rows at all
	ErrEmptyDataset = errors.New("no case data found")
	// ErrNoPricedItems means rows exist but none carries a usable price,
	// so best, worst and average price are undefined.
	ErrNoPricedItems = errors.New("no priced items in case data")
	// ErrInvalidPurchaseCount means a projection was asked for n <= 0
	ErrInvalidPurchaseCount = errors.New("purchase count must be positive")
)

var hundred = decimal.NewFromInt(100)

// Summarize computes the case economics for snap and projects purchases
// openings. It does not modify snap.
func Summarize(snap *models.CaseSnapshot, purchases int64) (*models.Summary, error) {
	if snap.Empty() {
		return nil, ErrEmptyDataset
	}
	if purchases <= 0 {
		return nil, ErrInvalidPurchaseCount
	}

	sum := &models.Summary{
		ExpectedValue: decimal.Zero,
		TotalOdds:     decimal.Zero,
		ItemCount:     len(snap.Items),
	}

	priceTotal := decimal.Zero
	for _, item := range snap.Items {
		if item.Probability.Valid {
			sum.TotalOdds = sum.TotalOdds.Add(item.Probability.Decimal)
		}
		if !item.Priced() {
			continue
		}

		price := item.Price.Decimal
		if sum.PricedCount == 0 || price.GreaterThan(sum.BestPrice) {
			sum.BestPrice = price
		}
		if sum.PricedCount == 0 || price.LessThan(sum.WorstPrice) {
			sum.WorstPrice = price
		}
		priceTotal = priceTotal.Add(price)
		sum.PricedCount++

		if item.Summable() {
			v := item.Contribution()
			sum.ExpectedValue = sum.ExpectedValue.Add(v)
			sum.RarityValues.Add(item.Rarity, v)
			sum.SummableCount++
		}
	}

	if sum.PricedCount == 0 {
		return nil, ErrNoPricedItems
	}
	sum.PriceTotal = priceTotal
	sum.AveragePrice = priceTotal.Div(decimal.NewFromInt(int64(sum.PricedCount)))

	sim, err := Simulate(sum, purchases)
	if err != nil {
		return nil, err
	}
	sum.Simulation = sim

	return sum, nil
}

// Simulate projects n purchases from an existing summary without touching
// its aggregates. Buyers pay the average sticker price and receive the
// expected value back. Spend is divided last, so it stays exact to the
// cent for any n.
func Simulate(sum *models.Summary, n int64) (models.Simulation, error) {
	if n <= 0 {
		return models.Simulation{}, ErrInvalidPurchaseCount
	}

	count := decimal.NewFromInt(n)
	sim := models.Simulation{
		Purchases:           n,
		TotalExpectedReturn: sum.ExpectedValue.Mul(count),
	}
	if sum.PricedCount > 0 {
		sim.TotalSpent = sum.PriceTotal.Mul(count).Div(decimal.NewFromInt(int64(sum.PricedCount)))
	} else {
		sim.TotalSpent = sum.AveragePrice.Mul(count)
	}
	sim.MoneyLost = sim.TotalSpent.Sub(sim.TotalExpectedReturn)

	// Nothing spent means nothing lost
	if sim.TotalSpent.IsZero() {
		sim.LosePercent = decimal.Zero
	} else {
		sim.LosePercent = hundred.Mul(sim.MoneyLost).Div(sim.TotalSpent)
	}
	sim.KeepPercent = hundred.Sub(sim.LosePercent)

	return sim, nil
}
