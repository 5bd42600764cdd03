package analyze

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"joblens/internal/cache"
	"joblens/internal/posting"
	"joblens/internal/quota"
	"joblens/internal/store"
)

// Backend is the slice of Client the service depends on.
type Backend interface {
	Analyze(ctx context.Context, job posting.Posting, resumeText string) (*Result, error)
	Health(ctx context.Context) (Health, error)
}

// Service coordinates the local invariants around the guarded external
// call: result cache first, quota debit before the call, refund on failure,
// cache write and history append on success.
type Service struct {
	backend Backend
	ledger  *quota.Ledger
	cache   *cache.Cache
	kv      store.KV
	logger  *log.Logger
	now     func() time.Time
}

func NewService(backend Backend, ledger *quota.Ledger, c *cache.Cache, kv store.KV, logger *log.Logger) *Service {
	return &Service{
		backend: backend,
		ledger:  ledger,
		cache:   c,
		kv:      kv,
		logger:  logger,
		now:     time.Now,
	}
}

// Analysis is the service-level result; Cached marks a quota-free cache hit.
type Analysis struct {
	Result *Result `json:"result"`
	Cached bool    `json:"cached"`
}

func (s *Service) Analyze(ctx context.Context, job posting.Posting, resumeText string) (Analysis, error) {
	if raw, hit, err := s.cache.Get(ctx, job.URL); err == nil && hit {
		var res Result
		if err := json.Unmarshal(raw, &res); err == nil {
			if s.logger != nil {
				s.logger.Printf("analysis cache hit | url=%s", job.URL)
			}
			return Analysis{Result: &res, Cached: true}, nil
		}
		// Unreadable entry: drop it and fall through to a fresh call.
		_ = s.kv.Delete(ctx, cache.Key(job.URL))
	}

	ok, err := s.ledger.CheckAndDebit(ctx)
	if err != nil {
		return Analysis{}, err
	}
	if !ok {
		return Analysis{}, ErrQuotaExceeded
	}

	res, err := s.backend.Analyze(ctx, job, resumeText)
	if err != nil {
		// The attempt failed in transit or was rejected; the token is
		// refunded so only successful calls consume quota.
		if cerr := s.ledger.Credit(ctx); cerr != nil && s.logger != nil {
			s.logger.Printf("quota refund failed | err=%v", cerr)
		}
		return Analysis{}, err
	}

	if raw, merr := json.Marshal(res); merr == nil {
		if cerr := s.cache.Put(ctx, job.URL, raw); cerr != nil && s.logger != nil {
			s.logger.Printf("cache write failed | err=%v", cerr)
		}
	}

	entry := store.HistoryEntry{
		ID:              uuid.New().String(),
		JobTitle:        job.Title,
		Company:         job.Company,
		MatchPercentage: res.MatchPercentage,
		URL:             job.URL,
		AnalyzedAt:      s.now().UTC(),
	}
	if herr := store.AppendHistory(ctx, s.kv, entry); herr != nil && s.logger != nil {
		s.logger.Printf("history append failed | err=%v", herr)
	}

	return Analysis{Result: res}, nil
}

func (s *Service) Health(ctx context.Context) (Health, error) {
	return s.backend.Health(ctx)
}
