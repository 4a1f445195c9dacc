package domain

import (
	"context"
	"fmt"
)

// Article is one space-news item as displayed on the news page. Articles are
// transient: a batch is produced fresh from each API response and replaced
// wholesale on the next page change.
type Article struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	ImageURL string `json:"image_url"`
	URL      string `json:"url"`
}

// PageCursor is the current 1-based page number plus the availability
// signals reported by the API for the current batch.
type PageCursor struct {
	Page        int  `json:"page"`
	HasPrevious bool `json:"has_previous"`
	HasNext     bool `json:"has_next"`
}

// NewPageCursor builds a cursor upholding the invariants: the page number is
// never below 1, and HasPrevious is false whenever the page number is 1.
func NewPageCursor(page int, hasPrevious, hasNext bool) PageCursor {
	if page < 1 {
		page = 1
	}
	if page == 1 {
		hasPrevious = false
	}
	return PageCursor{Page: page, HasPrevious: hasPrevious, HasNext: hasNext}
}

// PageBatch is one page-sized set of articles together with the cursor state
// derived from the response that produced it.
type PageBatch struct {
	Articles []Article  `json:"articles"`
	Cursor   PageCursor `json:"cursor"`
}

// BatchPage is the raw result of fetching one page from a news source:
// the ordered articles plus the truthiness of the envelope's previous/next
// signals.
type BatchPage struct {
	Articles    []Article
	HasPrevious bool
	HasNext     bool
}

// NewsSource fetches one page of articles from an external paginated API.
type NewsSource interface {
	FetchPage(ctx context.Context, limit, offset int) (*BatchPage, error)
}

// NetworkError covers transport failure, non-success HTTP status, and
// response decoding failure on a call to an external API. Its message is
// surfaced verbatim to the user in place of the article list.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
