// Package report renders audit reports.
//
// This package contains writers for different output formats:
//   - SimpleWriter: localized text output for terminal display
//   - JSONWriter: the complete report as JSON
//   - MarkdownWriter: score and findings tables with a mermaid chart
//   - LaTeXWriter: a printable article document
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output. Labels follow the
// report's language through the locale package.
package report
