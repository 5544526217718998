package extract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/meur/caseforge/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const casePage = `<!DOCTYPE html>
<html><body>
<h1 class="AppPage_title"> Dreams &amp; Nightmares Case </h1>
<div class="ContainerPrice">$2.49</div>

<div class="ContainerGroupedItem">
  <h3 class="ContainerGroupedItem_name">AK-47 | Nightwish</h3>
  <table class="chances_table">
    <thead><tr><th>Rarity</th><th>Price</th><th>Range</th><th>Odds</th></tr></thead>
    <tbody>
      <tr><td>Covert</td><td>$45.10</td><td>$40 - $50</td><td>0.25%</td></tr>
      <tr><td>Covert</td><td>N/A</td><td>$60 - $70</td><td>0.10%</td></tr>
      <tr><td>Broken</td><td>$1.00</td></tr>
    </tbody>
  </table>
</div>

<div class="ContainerGroupedItem">
  <table class="chances_table"><tbody>
    <tr><td>Orphan</td><td>$9.99</td><td>-</td><td>1%</td></tr>
  </tbody></table>
</div>

<div class="ContainerGroupedItem featured">
  <h3 class="ContainerGroupedItem_name">MP9 | Starlight Protector</h3>
  <table class="chances_table"><tbody>
    <tr><td>Classified</td><td>$ 12.00</td><td>$10 - $14</td><td>??</td></tr>
    <tr><td>Mil-Spec</td><td>$0.35</td><td>$0.30 - $0.40</td><td>79.92%</td><td>extra</td></tr>
  </tbody></table>
</div>
</body></html>`

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	ex, err := New(models.DefaultLayout(), "$")
	require.NoError(t, err)
	return ex
}

func TestExtract_CasePage(t *testing.T) {
	snap, err := newTestExtractor(t).Extract(strings.NewReader(casePage))
	require.NoError(t, err)

	assert.Equal(t, "Dreams & Nightmares Case", snap.CaseName)
	assert.Equal(t, "$2.49", snap.CasePrice)

	// Short row and the unnamed group are dropped; everything else is kept in order.
	require.Len(t, snap.Items, 4)

	first := snap.Items[0]
	assert.Equal(t, "AK-47 | Nightwish", first.Name)
	assert.Equal(t, "Covert", first.Rarity)
	assert.Equal(t, "$40 - $50", first.ValueRange)
	assert.True(t, first.Price.Decimal.Equal(decimal.RequireFromString("45.10")))
	assert.True(t, first.Probability.Decimal.Equal(decimal.RequireFromString("0.0025")))

	unpriced := snap.Items[1]
	assert.False(t, unpriced.Price.Valid)
	assert.True(t, unpriced.Probability.Valid)

	noOdds := snap.Items[2]
	assert.Equal(t, "MP9 | Starlight Protector", noOdds.Name)
	assert.True(t, noOdds.Price.Valid)
	assert.False(t, noOdds.Probability.Valid)

	extraCells := snap.Items[3]
	assert.Equal(t, "Mil-Spec", extraCells.Rarity)
	assert.True(t, extraCells.Probability.Decimal.Equal(decimal.RequireFromString("0.7992")))
}

func TestExtract_MissingHeader(t *testing.T) {
	snap, err := newTestExtractor(t).Extract(strings.NewReader(`<html><body><p>nothing here</p></body></html>`))
	require.NoError(t, err)

	assert.Equal(t, models.CaseNameNotFound, snap.CaseName)
	assert.Equal(t, models.CasePriceNotFound, snap.CasePrice)
	assert.Empty(t, snap.Items)
	assert.True(t, snap.Empty())
}

func TestExtract_CustomLayout(t *testing.T) {
	layout := models.Layout{
		Title: "#title",
		Price: "span.cost",
		Group: "section.group",
		Name:  "h2",
		Row:   "ul li",
		Cell:  "span.cell",
	}
	ex, err := New(layout, "€")
	require.NoError(t, err)

	doc := `<h1 id="title">Box</h1><span class="cost">€5</span>
<section class="group"><h2>Knife</h2><ul>
  <li><span class="cell">Gold</span><span class="cell">€100</span><span class="cell">any</span><span class="cell">2%</span></li>
</ul></section>`

	snap, err := ex.Extract(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "Box", snap.CaseName)
	assert.Equal(t, "€5", snap.CasePrice)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "100", snap.Items[0].Price.Decimal.String())
	assert.Equal(t, "0.02", snap.Items[0].Probability.Decimal.String())
}

func TestExtract_ExtremeExponents(t *testing.T) {
	doc := `<h1 class="AppPage_title">Box</h1>
<div class="ContainerGroupedItem">
  <h3 class="ContainerGroupedItem_name">Glove</h3>
  <table class="chances_table"><tbody>
    <tr><td>Gold</td><td>$1e-2147483647</td><td>-</td><td>50%</td></tr>
    <tr><td>Gold</td><td>$1e10000000</td><td>-</td><td>1e-2147483647%</td></tr>
    <tr><td>Covert</td><td>$4</td><td>-</td><td>50%</td></tr>
  </tbody></table>
</div>`

	snap, err := newTestExtractor(t).Extract(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, snap.Items, 3)

	assert.False(t, snap.Items[0].Price.Valid)
	assert.True(t, snap.Items[0].Probability.Valid)
	assert.False(t, snap.Items[1].Price.Valid)
	assert.False(t, snap.Items[1].Probability.Valid)
	assert.Equal(t, "4", snap.Items[2].Price.Decimal.String())
}

func TestExtract_ChildCombinatorLayout(t *testing.T) {
	layout := models.DefaultLayout()
	layout.Row = "table.chances_table > tbody > tr:not(.header)"

	ex, err := New(layout, "$")
	require.NoError(t, err)

	doc := `<div class="ContainerGroupedItem">
  <h3 class="ContainerGroupedItem_name">Knife</h3>
  <table class="chances_table"><tbody>
    <tr class="header"><td>Rarity</td><td>Price</td><td>Range</td><td>Odds</td></tr>
    <tr><td>Gold</td><td>$100</td><td>any</td><td>2%</td></tr>
  </tbody></table>
</div>`

	snap, err := ex.Extract(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "Gold", snap.Items[0].Rarity)
}

func TestExtractFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(casePage), 0o644))

	snap, err := newTestExtractor(t).ExtractFile(path)
	require.NoError(t, err)
	assert.Len(t, snap.Items, 4)

	_, err = newTestExtractor(t).ExtractFile(filepath.Join(t.TempDir(), "missing.html"))
	assert.Error(t, err)
}

func TestNew_InvalidSelector(t *testing.T) {
	layout := models.DefaultLayout()
	layout.Row = "table >>"

	_, err := New(layout, "$")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row")
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in    string
		want  string
		valid bool
	}{
		{"$12.50", "12.5", true},
		{" $0.03 ", "0.03", true},
		{"7", "7", true},
		{"$ 1.10", "1.1", true},
		{"N/A", "", false},
		{"", "", false},
		{"$-4.00", "", false},
		{"$1,200.00", "", false},
		{"$1e2", "100", true},
		{"$1e-2147483647", "", false},
		{"$1e10000000", "", false},
		{"$" + strings.Repeat("9", 40), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParsePrice(tt.in, "$")
			require.Equal(t, tt.valid, got.Valid)
			if tt.valid {
				assert.Equal(t, tt.want, got.Decimal.String())
			}
		})
	}
}

func TestParseOdds(t *testing.T) {
	tests := []struct {
		in    string
		want  string
		valid bool
	}{
		{"0.25%", "0.0025", true},
		{"100%", "1", true},
		{"79.92 %", "0.7992", true},
		{"5", "0.05", true},
		{"0%", "0", true},
		{"??", "", false},
		{"150%", "", false},
		{"-1%", "", false},
		{"1e2%", "1", true},
		{"1e-2147483647%", "", false},
		{"1e10000000", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseOdds(tt.in)
			require.Equal(t, tt.valid, got.Valid)
			if tt.valid {
				assert.Equal(t, tt.want, got.Decimal.String())
			}
		})
	}
}
