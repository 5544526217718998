// Package extract turns a captured case page into a models.CaseSnapshot.
//
// Extraction never fails on content: a missing header falls back to a
// sentinel, a group without a name or a short row is skipped, and a cell that
// does not parse leaves its field absent. Only reading the input can fail.
package extract

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/meur/caseforge/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/net/html"
)

// cellsPerRow is the number of cells a drop-table row needs: rarity, price, range, odds
const cellsPerRow = 4

// Numbers with a larger exponent or more significant digits than these are
// treated as unparseable, so "1e-2147483647" never reaches the arithmetic.
const (
	maxExponent = 18
	maxDigits   = 30
)

// Extractor pulls case data out of documents shaped like its layout
type Extractor struct {
	title    cascadia.Selector
	price    cascadia.Selector
	group    cascadia.Selector
	name     cascadia.Selector
	row      cascadia.Selector
	cell     cascadia.Selector
	currency string
}

// New compiles layout. currency is stripped from price cells before parsing
func New(layout models.Layout, currency string) (*Extractor, error) {
	e := &Extractor{currency: currency}

	targets := []struct {
		dst  *cascadia.Selector
		expr string
		name string
	}{
		{&e.title, layout.Title, "title"},
		{&e.price, layout.Price, "price"},
		{&e.group, layout.Group, "group"},
		{&e.name, layout.Name, "name"},
		{&e.row, layout.Row, "row"},
		{&e.cell, layout.Cell, "cell"},
	}
	for _, t := range targets {
		sel, err := compileSelector(t.expr)
		if err != nil {
			return nil, fmt.Errorf("invalid %s selector: %w", t.name, err)
		}
		*t.dst = sel
	}

	return e, nil
}

// ExtractFile reads and extracts the document at path
func (e *Extractor) ExtractFile(path string) (*models.CaseSnapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	return e.Extract(f)
}

// Extract parses r and returns the snapshot it describes. The snapshot may
// have no items.
func (e *Extractor) Extract(r io.Reader) (*models.CaseSnapshot, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	snap := &models.CaseSnapshot{
		CaseName:  e.firstText(doc, e.title, models.CaseNameNotFound),
		CasePrice: e.firstText(doc, e.price, models.CasePriceNotFound),
		Items:     []models.ItemEntry{},
	}

	for _, group := range selectAll(doc, e.group) {
		nameNode := selectFirst(group, e.name)
		if nameNode == nil {
			continue
		}
		name := strings.TrimSpace(textContent(nameNode))

		for _, row := range selectAll(group, e.row) {
			cells := selectAll(row, e.cell)
			if len(cells) < cellsPerRow {
				continue
			}
			snap.Items = append(snap.Items, models.ItemEntry{
				Name:        name,
				Rarity:      strings.TrimSpace(textContent(cells[0])),
				Price:       ParsePrice(textContent(cells[1]), e.currency),
				ValueRange:  strings.TrimSpace(textContent(cells[2])),
				Probability: ParseOdds(textContent(cells[3])),
			})
		}
	}

	return snap, nil
}

func (e *Extractor) firstText(doc *html.Node, sel cascadia.Selector, fallback string) string {
	n := selectFirst(doc, sel)
	if n == nil {
		return fallback
	}
	return strings.TrimSpace(textContent(n))
}

// ParsePrice parses a price cell such as "$12.50". Unparseable, negative or
// out-of-range prices come back invalid.
func ParsePrice(text, currency string) decimal.NullDecimal {
	if currency != "" {
		text = strings.ReplaceAll(text, currency, "")
	}
	d, ok := parseBounded(text)
	if !ok || d.IsNegative() {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// ParseOdds parses an odds cell such as "0.25%" into a unit fraction.
// Values outside [0, 1] after normalisation come back invalid.
func ParseOdds(text string) decimal.NullDecimal {
	text = strings.TrimSuffix(strings.TrimSpace(text), "%")
	d, ok := parseBounded(text)
	if !ok {
		return decimal.NullDecimal{}
	}
	p := d.Shift(-2)
	if p.IsNegative() || p.GreaterThan(decimal.New(1, 0)) {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(p)
}

func parseBounded(text string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.Decimal{}, false
	}
	if exp := d.Exponent(); exp < -maxExponent || exp > maxExponent || d.NumDigits() > maxDigits {
		return decimal.Decimal{}, false
	}
	return d, true
}
