package extract

import (
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// compileSelector parses one layout selector. Any CSS selector cascadia
// accepts is allowed, including child combinators and attribute matches.
func compileSelector(expr string) (cascadia.Selector, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("empty selector")
	}
	sel, err := cascadia.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("selector %q: %w", expr, err)
	}
	return sel, nil
}

// selectAll returns the descendants of root matching sel in document order;
// root itself is never included
func selectAll(root *html.Node, sel cascadia.Selector) []*html.Node {
	return cascadia.QueryAll(root, sel)
}

// selectFirst returns the first descendant of root matching sel, or nil
func selectFirst(root *html.Node, sel cascadia.Selector) *html.Node {
	return cascadia.Query(root, sel)
}

// textContent concatenates every text node below n
func textContent(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return sb.String()
}
