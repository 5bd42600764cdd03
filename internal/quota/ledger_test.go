package quota

import (
	"context"
	"testing"
	"time"

	"joblens/internal/store"
)

func newTestLedger(t *testing.T, limit int) (*Ledger, *time.Time) {
	t.Helper()
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	l := NewLedger(store.NewMemory(), limit, nil)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestLedger_DebitToZeroThenDenied(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t, 3)

	for i := 0; i < 3; i++ {
		ok, err := l.CheckAndDebit(ctx)
		if err != nil || !ok {
			t.Fatalf("debit %d: ok=%t err=%v", i, ok, err)
		}
	}

	ok, err := l.CheckAndDebit(ctx)
	if err != nil {
		t.Fatalf("debit at zero: %v", err)
	}
	if ok {
		t.Fatalf("debit must be denied at zero remaining")
	}

	st, err := l.Status(ctx)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if st.Remaining != 0 || st.Total != 3 {
		t.Fatalf("status after denial: %+v", st)
	}
}

func TestLedger_CreditRestoresExactly(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t, 5)

	if ok, _ := l.CheckAndDebit(ctx); !ok {
		t.Fatalf("debit failed")
	}
	if err := l.Credit(ctx); err != nil {
		t.Fatalf("credit: %v", err)
	}

	st, err := l.Status(ctx)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if st.Remaining != 5 {
		t.Fatalf("debit+credit must restore the allowance: %+v", st)
	}
}

func TestLedger_CreditNeverExceedsLimit(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t, 2)

	if err := l.Credit(ctx); err != nil {
		t.Fatalf("credit: %v", err)
	}
	st, _ := l.Status(ctx)
	if st.Remaining != 2 {
		t.Fatalf("credit at full allowance must be a no-op: %+v", st)
	}
}

func TestLedger_DayRolloverResets(t *testing.T) {
	ctx := context.Background()
	l, now := newTestLedger(t, 2)

	l.CheckAndDebit(ctx)
	l.CheckAndDebit(ctx)
	if ok, _ := l.CheckAndDebit(ctx); ok {
		t.Fatalf("allowance should be exhausted")
	}

	*now = now.Add(24 * time.Hour)

	ok, err := l.CheckAndDebit(ctx)
	if err != nil || !ok {
		t.Fatalf("debit after rollover: ok=%t err=%v", ok, err)
	}
	st, _ := l.Status(ctx)
	if st.Remaining != 1 || st.Date != "2024-06-16" {
		t.Fatalf("status after rollover: %+v", st)
	}
}

func TestLedger_StatusNeverConsumes(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t, 4)

	for i := 0; i < 5; i++ {
		if _, err := l.Status(ctx); err != nil {
			t.Fatalf("status: %v", err)
		}
	}
	st, _ := l.Status(ctx)
	if st.Remaining != 4 {
		t.Fatalf("status reads must not consume tokens: %+v", st)
	}
}

func TestLedger_NormalizesCorruptRecord(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	l := NewLedger(kv, 3, nil)
	l.now = func() time.Time { return now }

	if err := kv.SetJSON(ctx, store.KeyRateLimit, Record{Date: "2024-06-15", Remaining: 99}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	st, err := l.Status(ctx)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if st.Remaining != 3 {
		t.Fatalf("remaining must clamp to the limit: %+v", st)
	}
}
