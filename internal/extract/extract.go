// Package extract derives plain text and image URLs from HTML fragments.
package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// Text returns the human-visible text of an HTML fragment. Runs of
// whitespace collapse to single spaces and the result is trimmed, so the
// output is deterministic for a given input. Unparsable or empty input
// yields an empty string; Text never fails.
func Text(fragment string) string {
	root, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	var b strings.Builder
	collectText(root, &b)
	return strings.Join(strings.Fields(b.String()), " ")
}

func collectText(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		// Word boundary between adjacent text nodes.
		b.WriteByte(' ')
	case html.ElementNode:
		if n.Data == "script" || n.Data == "style" {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

// FirstImage returns the src of the first img element in document order.
// The URL is reported as written; it is never fetched or validated.
func FirstImage(fragment string) (string, bool) {
	root, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return "", false
	}
	return findImage(root)
}

func findImage(n *html.Node) (string, bool) {
	if n.Type == html.ElementNode && n.Data == "img" {
		for _, attr := range n.Attr {
			if attr.Key == "src" && attr.Val != "" {
				return attr.Val, true
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if src, ok := findImage(c); ok {
			return src, true
		}
	}
	return "", false
}
