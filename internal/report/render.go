// Package report renders case economics into the text report handed to users
package report

import (
	"fmt"
	"strings"

	"github.com/meur/caseforge/internal/models"
	"github.com/shopspring/decimal"
)

// DefaultCurrency prefixes money amounts when a Renderer has none set
const DefaultCurrency = "$"

// Renderer formats reports. The zero value uses DefaultCurrency
type Renderer struct {
	Currency string
}

// Render formats snap and sum with the default currency
func Render(snap *models.CaseSnapshot, sum *models.Summary) string {
	return Renderer{}.Render(snap, sum)
}

// Render produces the report text. Output depends only on its inputs
func (r Renderer) Render(snap *models.CaseSnapshot, sum *models.Summary) string {
	cur := r.Currency
	if cur == "" {
		cur = DefaultCurrency
	}
	money := func(d decimal.Decimal, places int32) string {
		return cur + d.StringFixed(places)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Case name: %s\n", snap.CaseName)
	fmt.Fprintf(&b, "Case price: %s\n", snap.CasePrice)
	fmt.Fprintf(&b, "Best item price: %s\n", money(sum.BestPrice, 2))
	fmt.Fprintf(&b, "Worst item price: %s\n", money(sum.WorstPrice, 2))
	fmt.Fprintf(&b, "Expected value per item: %s\n\n", money(sum.ExpectedValue, 4))

	sim := sum.Simulation
	fmt.Fprintf(&b, "Buying %d items:\n", sim.Purchases)
	fmt.Fprintf(&b, "  Total money spent (average price approach): %s\n", money(sim.TotalSpent, 2))
	fmt.Fprintf(&b, "  Estimated total value (EV): %s\n", money(sim.TotalExpectedReturn, 2))
	fmt.Fprintf(&b, "  Estimated money lost: %s\n", money(sim.MoneyLost, 2))
	fmt.Fprintf(&b, "  Lose percentage: %s%%\n", sim.LosePercent.StringFixed(2))
	fmt.Fprintf(&b, "  Keep percentage: %s%%\n\n", sim.KeepPercent.StringFixed(2))

	b.WriteString("Expected value per rarity:\n")
	for rarity, ev := range sum.RarityValues.All() {
		fmt.Fprintf(&b, "  %s: %s\n", rarity, money(ev, 4))
	}

	b.WriteString("\nItems inside case:\n")
	for _, item := range snap.Items {
		b.WriteString(FormatItem(item))
		b.WriteByte('\n')
	}

	return b.String()
}

// FormatItem renders one raw record, absent fields included
func FormatItem(item models.ItemEntry) string {
	return fmt.Sprintf("{name: %q, rarity: %q, price: %s, range: %q, odds: %s}",
		item.Name, item.Rarity, nullString(item.Price), item.ValueRange, nullString(item.Probability))
}

func nullString(d decimal.NullDecimal) string {
	if !d.Valid {
		return "null"
	}
	return d.Decimal.String()
}
