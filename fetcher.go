package biomark

import "context"

// Fetcher retrieves the markup behind a URL.
type Fetcher interface {
	// Fetch issues a GET request and returns the response body.
	// Any status other than 200 is an EUNAVAILABLE error.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
