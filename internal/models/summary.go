package models

import (
	"encoding/json"
	"iter"

	"github.com/shopspring/decimal"
)

// Summary holds the case economics derived from one snapshot
type Summary struct {
	BestPrice     decimal.Decimal `json:"best_price"`
	WorstPrice    decimal.Decimal `json:"worst_price"`
	ExpectedValue decimal.Decimal `json:"expected_value"` // Per opened item
	AveragePrice  decimal.Decimal `json:"average_price"`  // Unweighted sticker price
	PriceTotal    decimal.Decimal `json:"price_total"`    // Sum of present prices
	TotalOdds     decimal.Decimal `json:"total_odds"`     // Sum of present probabilities

	RarityValues RarityBreakdown `json:"rarity_values"`
	Simulation   Simulation      `json:"simulation"`

	ItemCount     int `json:"item_count"`
	PricedCount   int `json:"priced_count"`
	SummableCount int `json:"summable_count"`
}

// Simulation projects buying the same case Purchases times
type Simulation struct {
	Purchases           int64           `json:"purchases"`
	TotalSpent          decimal.Decimal `json:"total_spent"`
	TotalExpectedReturn decimal.Decimal `json:"total_expected_return"`
	MoneyLost           decimal.Decimal `json:"money_lost"`
	LosePercent         decimal.Decimal `json:"lose_percent"`
	KeepPercent         decimal.Decimal `json:"keep_percent"`
}

// RarityValue is one rarity's share of the expected value
type RarityValue struct {
	Rarity        string          `json:"rarity"`
	ExpectedValue decimal.Decimal `json:"expected_value"`
}

// RarityBreakdown maps rarity to expected value, iterating in the order
// each rarity was first added.
type RarityBreakdown struct {
	entries []RarityValue
	index   map[string]int
}

// Add accumulates v onto rarity r
func (b *RarityBreakdown) Add(r string, v decimal.Decimal) {
	if b.index == nil {
		b.index = make(map[string]int)
	}
	if i, ok := b.index[r]; ok {
		b.entries[i].ExpectedValue = b.entries[i].ExpectedValue.Add(v)
		return
	}
	b.index[r] = len(b.entries)
	b.entries = append(b.entries, RarityValue{Rarity: r, ExpectedValue: v})
}

// Get returns the value for r and whether r is present
func (b RarityBreakdown) Get(r string) (decimal.Decimal, bool) {
	i, ok := b.index[r]
	if !ok {
		return decimal.Zero, false
	}
	return b.entries[i].ExpectedValue, true
}

func (b RarityBreakdown) Len() int {
	return len(b.entries)
}

// All yields rarities in first-occurrence order
func (b RarityBreakdown) All() iter.Seq2[string, decimal.Decimal] {
	return func(yield func(string, decimal.Decimal) bool) {
		for _, e := range b.entries {
			if !yield(e.Rarity, e.ExpectedValue) {
				return
			}
		}
	}
}

// Total sums every rarity's value
func (b RarityBreakdown) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range b.entries {
		total = total.Add(e.ExpectedValue)
	}
	return total
}

// MarshalJSON encodes the breakdown as an ordered list
func (b RarityBreakdown) MarshalJSON() ([]byte, error) {
	if b.entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(b.entries)
}
