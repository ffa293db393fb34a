package dom

import (
	"bytes"
	"errors"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Unknown is returned by Doctype when the document has no doctype.
const Unknown = "Unknown"

// Document is a parsed HTML page with its raw source.
// Elements are indexed once in document order so analyzers can query them
// repeatedly without walking the tree again.
type Document struct {
	root     *html.Node
	raw      string
	elements []*html.Node
}

// Parse reads all of r and parses it as HTML.
// x/net/html is lenient, so malformed markup still yields a usable tree.
func Parse(r io.Reader) (*Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseBytes(raw)
}

// ParseBytes parses raw HTML.
func ParseBytes(raw []byte) (*Document, error) {
	root, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	d := &Document{root: root, raw: string(raw)}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			d.elements = append(d.elements, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return d, nil
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Raw returns the unparsed source.
func (d *Document) Raw() string {
	return d.raw
}

// FindAll returns elements with any of the given tag names in document order.
// With no tags it returns every element.
func (d *Document) FindAll(tags ...string) []*html.Node {
	if len(tags) == 0 {
		return d.elements
	}
	var out []*html.Node
	for _, n := range d.elements {
		if isOneOf(n.Data, tags) {
			out = append(out, n)
		}
	}
	return out
}

// Find returns the first element with the tag name, or nil.
func (d *Document) Find(tag string) *html.Node {
	for _, n := range d.elements {
		if n.Data == tag {
			return n
		}
	}
	return nil
}

// CountElements returns the number of element nodes, including the implied
// html, head and body elements the parser adds.
func (d *Document) CountElements() int {
	return len(d.elements)
}

// Doctype returns the doctype name ("html" for <!DOCTYPE html>) or Unknown.
func (d *Document) Doctype() string {
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.DoctypeNode {
			return strings.TrimSpace(c.Data)
		}
	}
	return Unknown
}

// HasSourceTag reports whether the raw source contains an opening tag.
// The parser synthesizes html, head and body, so structural checks must look
// at the source.
func (d *Document) HasSourceTag(tag string) bool {
	re := regexp.MustCompile(`(?i)<` + regexp.QuoteMeta(tag) + `[\s>/]`)
	return re.MatchString(d.raw)
}

// TagCount holds the start and end tags seen for one tag name.
type TagCount struct {
	Open   int
	Closed int
}

// TagBalance counts start and end tags per lower-cased name in the document
// as serialized back from the parse tree. End tags the parser inferred, such
// as an omitted </li>, are included, and a self-closing tag counts as both.
func (d *Document) TagBalance() (map[string]TagCount, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, d.root); err != nil {
		return nil, err
	}

	counts := make(map[string]TagCount)
	z := html.NewTokenizer(&buf)
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				return counts, nil
			}
			return nil, z.Err()
		}
		if tt != html.StartTagToken && tt != html.EndTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		name, _ := z.TagName()
		c := counts[string(name)]
		if tt != html.EndTagToken {
			c.Open++
		}
		if tt != html.StartTagToken {
			c.Closed++
		}
		counts[string(name)] = c
	}
}

// StyleText concatenates the contents of every <style> element.
func (d *Document) StyleText() string {
	var b strings.Builder
	for _, n := range d.FindAll("style") {
		b.WriteString(Text(n))
		b.WriteString("\n")
	}
	return b.String()
}

// PageText returns the visible text of the document with script and style
// contents left out.
func (d *Document) PageText() string {
	return d.VisibleText("")
}

// VisibleText joins the visible text nodes with sep. Readability statistics
// use a space so words of adjacent blocks stay apart.
func (d *Document) VisibleText(sep string) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && isOneOf(n.Data, []string{"script", "style", "noscript", "template"}) {
			return
		}
		if n.Type == html.TextNode {
			parts = append(parts, n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)
	return strings.Join(parts, sep)
}

// HTMLElement returns the <html> element. The parser always creates one.
func (d *Document) HTMLElement() *html.Node {
	return d.Find("html")
}

// Title returns the trimmed text of the first <title>, and false if there is none.
func (d *Document) Title() (string, bool) {
	n := d.Find("title")
	if n == nil {
		return "", false
	}
	return strings.TrimSpace(Text(n)), true
}

// Meta returns the content of the first meta element whose attr (name or
// property) equals key, compared case-insensitively.
func (d *Document) Meta(attr, key string) (string, bool) {
	for _, n := range d.FindAll("meta") {
		if strings.EqualFold(Attr(n, attr), key) && HasAttr(n, "content") {
			return Attr(n, "content"), true
		}
	}
	return "", false
}

// LinkRel returns the first <link> whose rel contains the given value.
func (d *Document) LinkRel(rel string) *html.Node {
	for _, n := range d.FindAll("link") {
		if HasToken(Attr(n, "rel"), rel) {
			return n
		}
	}
	return nil
}

func isOneOf(s string, set []string) bool {
	for _, v := range set {
		if s == v {
			return true
		}
	}
	return false
}
