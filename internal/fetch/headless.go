package fetch

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// HeadlessFetcher renders pages in headless Chrome so lazy-loaded job
// content is present in the snapshot.
type HeadlessFetcher struct {
	timeout     time.Duration
	settleDelay time.Duration
	logger      *log.Logger
}

func NewHeadlessFetcher(logger *log.Logger) *HeadlessFetcher {
	return &HeadlessFetcher{
		timeout:     25 * time.Second,
		settleDelay: 1500 * time.Millisecond,
		logger:      logger,
	}
}

func (f *HeadlessFetcher) Fetch(ctx context.Context, url string) (Page, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return Page{}, fmt.Errorf("empty url")
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"),
		)...,
	)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	reqCtx, reqCancel := context.WithTimeout(browserCtx, f.timeout)
	defer reqCancel()

	var html, finalURL string
	err := chromedp.Run(reqCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(f.settleDelay),
		chromedp.Location(&finalURL),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return Page{}, fmt.Errorf("headless fetch %s: %w", url, err)
	}

	if f.logger != nil {
		f.logger.Printf("headless fetch | url=%s bytes=%d", finalURL, len(html))
	}
	return Page{URL: finalURL, HTML: html, FetchedAt: time.Now().UTC()}, nil
}
