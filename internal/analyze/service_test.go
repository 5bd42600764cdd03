package analyze

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"joblens/internal/cache"
	"joblens/internal/posting"
	"joblens/internal/quota"
	"joblens/internal/store"
)

type fakeBackend struct {
	res   *Result
	err   error
	calls int
}

func (f *fakeBackend) Analyze(ctx context.Context, job posting.Posting, resumeText string) (*Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.res, nil
}

func (f *fakeBackend) Health(ctx context.Context) (Health, error) {
	return Health{Service: "fake", Status: "ok"}, nil
}

func newTestService(backend *fakeBackend, limit int) (*Service, store.KV, *quota.Ledger) {
	kv := store.NewMemory()
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	ledger := quota.NewLedger(kv, limit, nil)
	c := cache.New(kv, nil)
	svc := NewService(backend, ledger, c, kv, nil)
	svc.now = func() time.Time { return now }
	return svc, kv, ledger
}

var testJob = posting.Posting{
	Title:   "Backend Engineer",
	Company: "Acme",
	URL:     "https://www.linkedin.com/jobs/view/12345",
}

func TestServiceAnalyze_SuccessDebitsCachesAndRecords(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{res: &Result{MatchPercentage: 77}}
	svc, kv, ledger := newTestService(backend, 3)

	a, err := svc.Analyze(ctx, testJob, "resume text")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if a.Cached || a.Result.MatchPercentage != 77 {
		t.Fatalf("analysis: %+v", a)
	}

	st, _ := ledger.Status(ctx)
	if st.Remaining != 2 {
		t.Fatalf("one token must be spent: %+v", st)
	}

	entries, err := store.LoadHistory(ctx, kv)
	if err != nil || len(entries) != 1 {
		t.Fatalf("history: %v err=%v", entries, err)
	}
	if entries[0].JobTitle != "Backend Engineer" || entries[0].MatchPercentage != 77 || entries[0].ID == "" {
		t.Fatalf("history entry: %+v", entries[0])
	}
}

func TestServiceAnalyze_CacheHitSkipsQuotaAndBackend(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{res: &Result{MatchPercentage: 77}}
	svc, _, ledger := newTestService(backend, 3)

	if _, err := svc.Analyze(ctx, testJob, "resume text"); err != nil {
		t.Fatalf("first analyze: %v", err)
	}

	a, err := svc.Analyze(ctx, testJob, "resume text")
	if err != nil {
		t.Fatalf("second analyze: %v", err)
	}
	if !a.Cached || a.Result.MatchPercentage != 77 {
		t.Fatalf("expected a cache hit: %+v", a)
	}
	if backend.calls != 1 {
		t.Fatalf("backend calls: got %d, want 1", backend.calls)
	}
	st, _ := ledger.Status(ctx)
	if st.Remaining != 2 {
		t.Fatalf("cache hits must be quota-free: %+v", st)
	}
}

func TestServiceAnalyze_QuotaExceeded(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{err: errors.New("should not be called")}
	svc, _, ledger := newTestService(backend, 1)

	if ok, _ := ledger.CheckAndDebit(ctx); !ok {
		t.Fatalf("setup debit failed")
	}

	_, err := svc.Analyze(ctx, testJob, "resume text")
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
	if backend.calls != 0 {
		t.Fatalf("backend must not be reached when quota is exhausted")
	}
}

func TestServiceAnalyze_RefundOnBackendFailure(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{err: ErrBackendUnreachable}
	svc, _, ledger := newTestService(backend, 3)

	_, err := svc.Analyze(ctx, testJob, "resume text")
	if !errors.Is(err, ErrBackendUnreachable) {
		t.Fatalf("expected ErrBackendUnreachable, got %v", err)
	}

	st, _ := ledger.Status(ctx)
	if st.Remaining != 3 {
		t.Fatalf("failed attempt must not cost quota: %+v", st)
	}
}

func TestServiceAnalyze_DropsUnreadableCacheEntry(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{res: &Result{MatchPercentage: 55}}
	svc, kv, _ := newTestService(backend, 3)

	if err := kv.SetJSON(ctx, cache.Key(testJob.URL), cache.Entry{
		Result:    json.RawMessage(`"not an object"`),
		Timestamp: time.Now(),
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	a, err := svc.Analyze(ctx, testJob, "resume text")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if a.Cached {
		t.Fatalf("unreadable entry must not count as a hit")
	}
	if backend.calls != 1 {
		t.Fatalf("backend calls: got %d", backend.calls)
	}
}
