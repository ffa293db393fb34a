// Package main provides the entry point for the siteaudit CLI.
//
// siteaudit audits web pages for performance, accessibility, security and
// usability problems, scores them and writes reports in several formats.
//
// Usage:
//
//	siteaudit scan <url>
//	siteaudit scan --list <file>
//	siteaudit compare <url>
//
// See --help for all available options.
package main

func main() {
	Execute()
}
