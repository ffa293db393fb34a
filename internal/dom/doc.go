// Package dom is a small query layer over golang.org/x/net/html.
//
// A Document keeps the parsed tree, the raw source and an index of elements in
// document order. Analyzers use FindAll and the node helpers (Attr, HasAttr,
// ClassMatches, Text, Descendants) instead of walking the tree themselves.
package dom
