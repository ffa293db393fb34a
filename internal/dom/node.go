package dom

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Attr retrieves an attribute value from an HTML node.
func Attr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// HasAttr reports whether the attribute is present, even when empty.
func HasAttr(n *html.Node, key string) bool {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return true
		}
	}
	return false
}

// AttrEquals compares an attribute value case-insensitively.
func AttrEquals(n *html.Node, key, value string) bool {
	return HasAttr(n, key) && strings.EqualFold(strings.TrimSpace(Attr(n, key)), value)
}

// WithAttr filters nodes that carry the attribute.
func WithAttr(nodes []*html.Node, key string) []*html.Node {
	var out []*html.Node
	for _, n := range nodes {
		if HasAttr(n, key) {
			out = append(out, n)
		}
	}
	return out
}

// Classes splits the class attribute into tokens.
func Classes(n *html.Node) []string {
	return strings.Fields(Attr(n, "class"))
}

// ClassMatches reports whether any class token matches re.
func ClassMatches(n *html.Node, re *regexp.Regexp) bool {
	for _, c := range Classes(n) {
		if re.MatchString(c) {
			return true
		}
	}
	return false
}

// HasToken reports whether a space-separated attribute value contains token,
// compared case-insensitively.
func HasToken(value, token string) bool {
	for _, f := range strings.Fields(value) {
		if strings.EqualFold(f, token) {
			return true
		}
	}
	return false
}

// Text concatenates all descendant text of n.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
			walk(cc)
		}
	}
	walk(n)
	return b.String()
}

// Descendants returns the element descendants of n with any of the tags,
// in document order. With no tags it returns all element descendants.
func Descendants(n *html.Node, tags ...string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
			if cc.Type == html.ElementNode && (len(tags) == 0 || isOneOf(cc.Data, tags)) {
				out = append(out, cc)
			}
			walk(cc)
		}
	}
	walk(n)
	return out
}

// HasDescendant reports whether n contains an element with one of the tags.
func HasDescendant(n *html.Node, tags ...string) bool {
	return len(Descendants(n, tags...)) > 0
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
