package quota

import (
	"context"
	"log"
	"time"

	"joblens/internal/store"
)

// Record is the single per-day allowance row in the key-value store. Day
// rollover is lazy: the stored date is compared on every load and the
// allowance reset when it is not today.
type Record struct {
	Date      string `json:"date"`
	Remaining int    `json:"remaining"`
}

type Status struct {
	Remaining int    `json:"remaining"`
	Total     int    `json:"total"`
	Date      string `json:"date"`
}

const dateLayout = "2006-01-02"

// Ledger tracks the rolling daily allowance for the guarded external call.
// Debit/credit is read-modify-write against the shared store; concurrent
// contexts race last-writer-wins, which is acceptable for a soft limiter.
type Ledger struct {
	kv     store.KV
	limit  int
	logger *log.Logger
	now    func() time.Time
}

func NewLedger(kv store.KV, limit int, logger *log.Logger) *Ledger {
	if limit <= 0 {
		limit = 1
	}
	return &Ledger{kv: kv, limit: limit, logger: logger, now: time.Now}
}

// CheckAndDebit consumes one token for today. It returns false, without
// mutating anything, when the allowance is exhausted.
func (l *Ledger) CheckAndDebit(ctx context.Context) (bool, error) {
	rec, err := l.load(ctx)
	if err != nil {
		return false, err
	}
	if rec.Remaining <= 0 {
		return false, nil
	}
	rec.Remaining--
	if err := l.kv.SetJSON(ctx, store.KeyRateLimit, rec); err != nil {
		return false, err
	}
	if l.logger != nil {
		l.logger.Printf("quota debit | remaining=%d/%d", rec.Remaining, l.limit)
	}
	return true, nil
}

// Credit refunds one token, used when a debited call ultimately fails so a
// failed attempt never costs quota. Refunds apply to today only and never
// push the allowance above the daily cap.
func (l *Ledger) Credit(ctx context.Context) error {
	rec, err := l.load(ctx)
	if err != nil {
		return err
	}
	if rec.Date != l.today() || rec.Remaining >= l.limit {
		return nil
	}
	rec.Remaining++
	if err := l.kv.SetJSON(ctx, store.KeyRateLimit, rec); err != nil {
		return err
	}
	if l.logger != nil {
		l.logger.Printf("quota credit | remaining=%d/%d", rec.Remaining, l.limit)
	}
	return nil
}

// Status reads today's allowance. The lazy day reset is persisted here too
// so repeated reads stay cheap; a read never consumes a token.
func (l *Ledger) Status(ctx context.Context) (Status, error) {
	var stored Record
	found, err := l.kv.GetJSON(ctx, store.KeyRateLimit, &stored)
	if err != nil {
		return Status{}, err
	}

	rec := l.normalize(stored, found)
	if !found || stored.Date != rec.Date {
		if err := l.kv.SetJSON(ctx, store.KeyRateLimit, rec); err != nil {
			return Status{}, err
		}
	}
	return Status{Remaining: rec.Remaining, Total: l.limit, Date: rec.Date}, nil
}

// load re-reads the record immediately before every mutation to narrow the
// lost-update window.
func (l *Ledger) load(ctx context.Context) (Record, error) {
	var stored Record
	found, err := l.kv.GetJSON(ctx, store.KeyRateLimit, &stored)
	if err != nil {
		return Record{}, err
	}
	return l.normalize(stored, found), nil
}

func (l *Ledger) normalize(rec Record, found bool) Record {
	today := l.today()
	if !found || rec.Date != today {
		return Record{Date: today, Remaining: l.limit}
	}
	if rec.Remaining < 0 {
		rec.Remaining = 0
	}
	if rec.Remaining > l.limit {
		rec.Remaining = l.limit
	}
	return rec
}

func (l *Ledger) today() string {
	return l.now().UTC().Format(dateLayout)
}
