package pipeline

import "errors"

// ErrPageStatus is returned by the fetch step when the audited page answers
// with an HTTP error status.
var ErrPageStatus = errors.New("page returned an error status")

// ErrPageUnavailable wraps failures to fetch the audited page. Every later
// step needs the page, so the pipeline stops on it even with continue-on-error.
var ErrPageUnavailable = errors.New("page unavailable")
