// Define the job record and the interfaces shared by fetchers and extractors

package scraper

import (
	"context"
)

const (
	NoTitle       = "No title"
	NoDescription = "No description"
)

// Job is a single extracted posting. Link is its identity for dedup and may be empty.
type Job struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Link    string `json:"link"`
}

// Fetcher returns the rendered HTML of the listing page for an authenticated session
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// Extractor turns raw markup into job records.
// Malformed or empty markup yields an empty slice, not an error.
type Extractor interface {
	Extract(html string) []Job

	//Name is the platform name (Upwork, ...)
	Name() string
}
