package extractor

import "fmt"

// ExtractionError reports a failed channel listing. Detail carries the
// tool's diagnostic line (e.g. private or removed channel).
type ExtractionError struct {
	URL    string
	Detail string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("list %s: %s", e.URL, e.Detail)
	}
	return fmt.Sprintf("list %s: %v", e.URL, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// DownloadError reports a failed download of a single item. It is recorded
// on the item's queue entry and never aborts other items.
type DownloadError struct {
	URL    string
	Reason string
	Err    error
}

func (e *DownloadError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("download %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }
