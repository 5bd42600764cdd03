package fetch

import (
	"context"
	"time"

	"joblens/internal/posting"
)

// Page is one fetched snapshot of a job page. URL is the final URL after
// redirects or client-side navigation.
type Page struct {
	URL       string
	HTML      string
	FetchedAt time.Time
}

type Fetcher interface {
	Fetch(ctx context.Context, url string) (Page, error)
}

// ForSite picks a fetcher: the known job boards render client-side, so they
// need the headless browser; anything else gets the cheap static fetch.
func ForSite(site posting.Site, static, headless Fetcher) Fetcher {
	switch site {
	case posting.SiteLinkedIn, posting.SiteNaukri:
		return headless
	default:
		return static
	}
}
