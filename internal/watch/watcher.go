package watch

import (
	"context"
	"log"
	"strings"
	"time"
)

// Single-page apps surface navigations unreliably through any one signal,
// so three feed the watcher: explicit navigation events, a debounced
// structural-mutation signal, and a URL-polling safety net. A detected URL
// change schedules several delayed attempts because job content keeps
// loading after the address settles.
var DefaultRetryDelays = []time.Duration{
	500 * time.Millisecond,
	1500 * time.Millisecond,
	3 * time.Second,
}

const (
	DefaultPollInterval = 2 * time.Second
	DefaultDebounce     = 800 * time.Millisecond
)

// AttemptFunc runs one extraction attempt against the current page. The
// reason names the trigger ("navigation", "mutation", "poll").
type AttemptFunc func(ctx context.Context, reason string)

type Config struct {
	PollInterval time.Duration
	Debounce     time.Duration
	RetryDelays  []time.Duration
}

func (c Config) withDefaults() Config {
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.Debounce <= 0 {
		c.Debounce = DefaultDebounce
	}
	if len(c.RetryDelays) == 0 {
		c.RetryDelays = DefaultRetryDelays
	}
	return c
}

// Watcher drives re-extraction for one page context. All attempts run on
// the Run goroutine, so each attempt is atomic with respect to tracker
// state; triggers arriving from other goroutines only enqueue work.
type Watcher struct {
	cfg        Config
	currentURL func(ctx context.Context) (string, error)
	attempt    AttemptFunc
	logger     *log.Logger

	navCh      chan string
	mutationCh chan struct{}
	attemptCh  chan string
}

func New(currentURL func(ctx context.Context) (string, error), attempt AttemptFunc, logger *log.Logger, cfg Config) *Watcher {
	return &Watcher{
		cfg:        cfg.withDefaults(),
		currentURL: currentURL,
		attempt:    attempt,
		logger:     logger,
		navCh:      make(chan string, 16),
		mutationCh: make(chan struct{}, 64),
		attemptCh:  make(chan string, 64),
	}
}

// NotifyNavigation reports a URL change observed by a navigation hook.
func (w *Watcher) NotifyNavigation(url string) {
	select {
	case w.navCh <- url:
	default:
	}
}

// NotifyMutation reports a structural page mutation. Bursts collapse into
// one attempt after the debounce interval.
func (w *Watcher) NotifyMutation() {
	select {
	case w.mutationCh <- struct{}{}:
	default:
	}
}

// Run is the event loop. It returns when ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	var debounce *time.Timer
	debounceC := func() <-chan time.Time {
		if debounce == nil {
			return nil
		}
		return debounce.C
	}
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	lastURL := ""

	for {
		select {
		case <-ctx.Done():
			return

		case u := <-w.navCh:
			u = strings.TrimSpace(u)
			if u != "" && u != lastURL {
				lastURL = u
				w.scheduleAttempts(ctx, "navigation")
			}

		case <-w.mutationCh:
			if debounce == nil {
				debounce = time.NewTimer(w.cfg.Debounce)
			} else {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
				debounce.Reset(w.cfg.Debounce)
			}

		case <-debounceC():
			debounce = nil
			w.runAttempt(ctx, "mutation")

		case <-ticker.C:
			u, err := w.currentURL(ctx)
			if err != nil {
				if w.logger != nil {
					w.logger.Printf("url poll failed | err=%v", err)
				}
				continue
			}
			u = strings.TrimSpace(u)
			if u != "" && u != lastURL {
				lastURL = u
				w.scheduleAttempts(ctx, "poll")
			}

		case reason := <-w.attemptCh:
			w.runAttempt(ctx, reason)
		}
	}
}

// scheduleAttempts fires one immediate attempt plus the delayed retries.
func (w *Watcher) scheduleAttempts(ctx context.Context, reason string) {
	w.runAttempt(ctx, reason)
	for _, d := range w.cfg.RetryDelays {
		d := d
		time.AfterFunc(d, func() {
			select {
			case w.attemptCh <- reason:
			case <-ctx.Done():
			}
		})
	}
}

func (w *Watcher) runAttempt(ctx context.Context, reason string) {
	if w.attempt == nil {
		return
	}
	w.attempt(ctx, reason)
}
