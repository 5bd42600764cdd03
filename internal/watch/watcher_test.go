package watch

import (
	"context"
	"sync"
	"testing"
	"time"
)

type attemptLog struct {
	mu      sync.Mutex
	reasons []string
}

func (a *attemptLog) record(_ context.Context, reason string) {
	a.mu.Lock()
	a.reasons = append(a.reasons, reason)
	a.mu.Unlock()
}

func (a *attemptLog) snapshot() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.reasons))
	copy(out, a.reasons)
	return out
}

func (a *attemptLog) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.reasons)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met in time")
}

func staticURL(u string) func(ctx context.Context) (string, error) {
	return func(ctx context.Context) (string, error) { return u, nil }
}

func TestWatcher_NavigationTriggersAttemptsWithRetries(t *testing.T) {
	al := &attemptLog{}
	w := New(staticURL(""), al.record, nil, Config{
		PollInterval: time.Hour,
		RetryDelays:  []time.Duration{10 * time.Millisecond, 20 * time.Millisecond},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	w.NotifyNavigation("https://example.com/jobs/1")

	// One immediate attempt plus one per retry delay.
	waitFor(t, func() bool { return al.count() >= 3 })
	for _, r := range al.snapshot() {
		if r != "navigation" {
			t.Fatalf("unexpected reason %q in %v", r, al.snapshot())
		}
	}
}

func TestWatcher_DuplicateNavigationIgnored(t *testing.T) {
	al := &attemptLog{}
	w := New(staticURL(""), al.record, nil, Config{
		PollInterval: time.Hour,
		RetryDelays:  []time.Duration{5 * time.Millisecond},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	w.NotifyNavigation("https://example.com/jobs/1")
	waitFor(t, func() bool { return al.count() >= 2 })

	before := al.count()
	w.NotifyNavigation("https://example.com/jobs/1")
	time.Sleep(50 * time.Millisecond)
	if al.count() != before {
		t.Fatalf("same-URL navigation must not reschedule: %d -> %d", before, al.count())
	}
}

func TestWatcher_MutationBurstDebouncesToOneAttempt(t *testing.T) {
	al := &attemptLog{}
	w := New(staticURL(""), al.record, nil, Config{
		PollInterval: time.Hour,
		Debounce:     30 * time.Millisecond,
		RetryDelays:  []time.Duration{time.Hour},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	for i := 0; i < 10; i++ {
		w.NotifyMutation()
		time.Sleep(2 * time.Millisecond)
	}

	waitFor(t, func() bool { return al.count() >= 1 })
	time.Sleep(60 * time.Millisecond)
	if got := al.count(); got != 1 {
		t.Fatalf("burst must collapse to one attempt, got %d", got)
	}
	if al.snapshot()[0] != "mutation" {
		t.Fatalf("reason: %v", al.snapshot())
	}
}

func TestWatcher_PollDetectsURLChange(t *testing.T) {
	al := &attemptLog{}
	var mu sync.Mutex
	url := ""
	current := func(ctx context.Context) (string, error) {
		mu.Lock()
		defer mu.Unlock()
		return url, nil
	}

	w := New(current, al.record, nil, Config{
		PollInterval: 10 * time.Millisecond,
		RetryDelays:  []time.Duration{time.Hour},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	// Empty URL: nothing to do.
	time.Sleep(40 * time.Millisecond)
	if al.count() != 0 {
		t.Fatalf("no attempts expected before a URL exists")
	}

	mu.Lock()
	url = "https://example.com/jobs/2"
	mu.Unlock()

	waitFor(t, func() bool { return al.count() >= 1 })
	if al.snapshot()[0] != "poll" {
		t.Fatalf("reason: %v", al.snapshot())
	}
}

func TestWatcher_StopsOnContextCancel(t *testing.T) {
	al := &attemptLog{}
	w := New(staticURL("https://example.com"), al.record, nil, Config{
		PollInterval: time.Hour,
		RetryDelays:  []time.Duration{time.Hour},
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}
