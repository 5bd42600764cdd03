package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"joblens/internal/detect"
	"joblens/internal/fetch"
	"joblens/internal/posting"
	"joblens/internal/watch"
)

// watcher follows one job page the way the in-page extractor would: fetch,
// extract, feed the tracker, repeat on the watcher's triggers.
func main() {
	var (
		url      = flag.String("url", "", "job page URL to watch")
		headless = flag.Bool("headless", false, "force the headless browser fetcher")
		interval = flag.Duration("interval", watch.DefaultPollInterval, "poll interval")
		duration = flag.Duration("for", 0, "how long to watch (0 = until interrupted)")
	)
	flag.Parse()

	if *url == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger := log.New(os.Stdout, "", log.LstdFlags)

	site := posting.DetectSite(*url)
	fetcher := fetch.ForSite(site, fetch.NewStaticFetcher(logger), fetch.NewHeadlessFetcher(logger))
	if *headless {
		fetcher = fetch.NewHeadlessFetcher(logger)
	}

	tracker := detect.NewTracker(logWriter{logger}, logger)

	currentURL := func(ctx context.Context) (string, error) {
		return *url, nil
	}

	attempt := func(ctx context.Context, reason string) {
		page, err := fetcher.Fetch(ctx, *url)
		if err != nil {
			logger.Printf("fetch failed | reason=%s err=%v", reason, err)
			tracker.Observe(posting.Posting{}, false, *url)
			return
		}
		p, ok := posting.Extract(page.HTML, page.URL, time.Now().UTC())
		tracker.Observe(p, ok, page.URL)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	w := watch.New(currentURL, attempt, logger, watch.Config{PollInterval: *interval})
	w.NotifyNavigation(*url)
	w.Run(ctx)
}

// logWriter prints tracker notifications instead of pushing them over a
// websocket hub.
type logWriter struct {
	logger *log.Logger
}

func (l logWriter) JobChanged(p posting.Posting, newJob bool) {
	l.logger.Printf("job | new=%t title=%q company=%q experience=%q salary=%q skills=%d",
		newJob, p.Title, p.Company, p.Experience, p.Salary, len(p.Skills))
}

func (l logWriter) JobCleared() {
	l.logger.Printf("job | none detected")
}
