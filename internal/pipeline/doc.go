// Package pipeline runs a website audit as a sequence of steps.
//
// The default pipeline fetches the page, inspects the TLS endpoint,
// optionally crawls same-site links, runs the analyzers, computes scores and
// recommendations and finally stores the result in the audit history. Each
// step receives the shared report and fills its part.
//
// BatchProcessor audits many URLs concurrently with a bounded number of
// workers and returns the reports in input order.
package pipeline
