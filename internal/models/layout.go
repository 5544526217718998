package models

// Layout describes where case data lives in a captured page.
// Every field is a selector understood by the extract package.
type Layout struct {
	Title string `toml:"title" json:"title"`
	Price string `toml:"price" json:"price"`
	Group string `toml:"group" json:"group"` // Repeated item-group element
	Name  string `toml:"name" json:"name"`   // Resolved inside a group
	Row   string `toml:"row" json:"row"`     // Resolved inside a group
	Cell  string `toml:"cell" json:"cell"`   // Resolved inside a row
}

// DefaultLayout returns the markers used by the case pages this tool was built against
func DefaultLayout() Layout {
	return Layout{
		Title: "h1.AppPage_title",
		Price: "div.ContainerPrice",
		Group: "div.ContainerGroupedItem",
		Name:  "h3.ContainerGroupedItem_name",
		Row:   "table.chances_table tbody tr",
		Cell:  "td",
	}
}
