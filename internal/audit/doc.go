// Package audit inspects a fetched page and fills the sections of an audit
// report.
//
// Each check group implements Analyzer: performance, SEO, mobile, technical
// markup, accessibility (WCAG 2.1 A/AA subset), security, usability and
// optionally image metadata. The Coordinator runs them in order and merges
// their findings. Score and Recommend turn the filled report into category
// scores and prioritized, localized advice.
//
// All checks are static. No JavaScript is executed and no browser is used,
// so the results describe the delivered HTML and CSS only.
package audit
