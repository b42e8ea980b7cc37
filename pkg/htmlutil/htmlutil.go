package htmlutil

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// GetText concatenates every text node under `node` in document order.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	walkText(node, func(text string) {
		buffer.WriteString(text)
	})
	return buffer.String()
}

// TextFragments returns the text nodes under `node` in document order,
// including whitespace-only ones.
func TextFragments(node *html.Node) []string {
	var out []string
	walkText(node, func(text string) {
		out = append(out, text)
	})
	return out
}

// LastText returns the trimmed contents of the last text node under `node`
// that is not entirely whitespace. ok is false when there is none.
func LastText(node *html.Node) (text string, ok bool) {
	fragments := TextFragments(node)
	for i := len(fragments) - 1; i >= 0; i-- {
		trimmed := strings.TrimSpace(fragments[i])
		if trimmed != "" {
			return trimmed, true
		}
	}
	return "", false
}

func walkText(node *html.Node, visit func(text string)) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		visit(node.Data)
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		walkText(child, visit)
	}
}

// LastPathSegment returns everything after the final '/' in `href`, or the
// whole string if it has no '/'.
func LastPathSegment(href string) string {
	i := strings.LastIndexByte(href, '/')
	if i < 0 {
		return href
	}
	return href[i+1:]
}
