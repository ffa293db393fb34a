// Package model defines the core data structures used throughout siteaudit.
//
// This package contains the following main types:
//   - Page: a fetched document with timing data
//   - AuditReport: the result of auditing one URL, with one section per area
//     (performance, accessibility, security, usability, images)
//   - Finding and Summary: individual issues and their per-severity counts
//   - Scores and Recommendations: the computed outcome of an audit
//
// Models live in their own package so that fetch, audit, pipeline, report and
// database can share them without import cycles. All of them serialize to JSON,
// and the JSON keys are the stable format of comprehensive reports and of the
// history database.
package model
