package models

import (
	"github.com/shopspring/decimal"
)

// Sentinels substituted when the case header elements are missing from a document
const (
	CaseNameNotFound  = "Case name not found"
	CasePriceNotFound = "Case price not found"
)

// ItemEntry is one row of a case's drop table
type ItemEntry struct {
	Name        string              `json:"name"`        // Parent item group
	Rarity      string              `json:"rarity"`      // Free-form tier label
	Price       decimal.NullDecimal `json:"price"`       // Invalid when the cell could not be parsed
	ValueRange  string              `json:"range"`       // Display only
	Probability decimal.NullDecimal `json:"probability"` // Unit fraction, not a percentage
}

// Priced reports whether the entry carries a usable price
func (e ItemEntry) Priced() bool {
	return e.Price.Valid
}

// Summable reports whether the entry can contribute to expected value,
// which needs both a price and odds.
func (e ItemEntry) Summable() bool {
	return e.Price.Valid && e.Probability.Valid
}

// Contribution returns price*probability. Only meaningful when Summable
func (e ItemEntry) Contribution() decimal.Decimal {
	return e.Price.Decimal.Mul(e.Probability.Decimal)
}

// CaseSnapshot is everything extracted from one captured case page
type CaseSnapshot struct {
	CaseName  string      `json:"case_name"`
	CasePrice string      `json:"case_price"` // Kept as displayed
	Items     []ItemEntry `json:"items"`      // Document order
}

// Empty reports whether no drop-table rows were extracted
func (s *CaseSnapshot) Empty() bool {
	return s == nil || len(s.Items) == 0
}
