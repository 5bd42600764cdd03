package fetch

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
)

// StaticFetcher grabs raw HTML over plain HTTP. Enough for server-rendered
// job pages; SPA boards need the headless fetcher.
type StaticFetcher struct {
	userAgent string
	logger    *log.Logger
}

func NewStaticFetcher(logger *log.Logger) *StaticFetcher {
	return &StaticFetcher{
		userAgent: "joblens/0.1",
		logger:    logger,
	}
}

func (f *StaticFetcher) Fetch(ctx context.Context, url string) (Page, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return Page{}, fmt.Errorf("empty url")
	}

	c := colly.NewCollector()
	c.SetRequestTimeout(20 * time.Second)

	var page Page
	var reqErr error

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", f.userAgent)
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")
	})

	c.OnResponse(func(r *colly.Response) {
		page = Page{
			URL:       r.Request.URL.String(),
			HTML:      string(r.Body),
			FetchedAt: time.Now().UTC(),
		}
	})

	c.OnError(func(r *colly.Response, err error) {
		reqErr = err
	})

	if ctx.Err() != nil {
		return Page{}, ctx.Err()
	}
	if err := c.Visit(url); err != nil {
		return Page{}, err
	}
	c.Wait()

	if reqErr != nil {
		return Page{}, reqErr
	}
	if page.HTML == "" {
		return Page{}, fmt.Errorf("empty response for %s", url)
	}
	return page, nil
}
