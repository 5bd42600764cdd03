package store

import (
	"context"
	"strconv"
	"testing"
	"time"

	"joblens/internal/posting"
)

func TestResumeRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()

	if _, found, err := LoadResume(ctx, kv); err != nil || found {
		t.Fatalf("empty store: found=%t err=%v", found, err)
	}

	saved := SavedResume{Raw: "John Doe\njohn@example.com", SavedAt: time.Now().UTC()}
	if err := SaveResume(ctx, kv, saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, found, err := LoadResume(ctx, kv)
	if err != nil || !found {
		t.Fatalf("load: found=%t err=%v", found, err)
	}
	if got.Raw != saved.Raw {
		t.Fatalf("raw: got %q", got.Raw)
	}
}

func TestLoadSettings_DefaultsOverlayOn(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()

	s, found, err := LoadSettings(ctx, kv)
	if err != nil || found {
		t.Fatalf("found=%t err=%v", found, err)
	}
	if !s.OverlayEnabled {
		t.Fatalf("overlay must default to enabled")
	}

	if err := SaveSettings(ctx, kv, Settings{BackendURL: "http://localhost:8000", OverlayEnabled: false}); err != nil {
		t.Fatalf("save: %v", err)
	}
	s, _, _ = LoadSettings(ctx, kv)
	if s.OverlayEnabled || s.BackendURL != "http://localhost:8000" {
		t.Fatalf("stored settings must win: %+v", s)
	}
}

func TestAppendHistory_NewestFirstCapped(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()

	for i := 0; i < HistoryLimit+10; i++ {
		e := HistoryEntry{ID: strconv.Itoa(i), JobTitle: "Job " + strconv.Itoa(i)}
		if err := AppendHistory(ctx, kv, e); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	entries, err := LoadHistory(ctx, kv)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != HistoryLimit {
		t.Fatalf("history length: got %d, want %d", len(entries), HistoryLimit)
	}
	if entries[0].ID != strconv.Itoa(HistoryLimit+9) {
		t.Fatalf("newest entry must be first: got %q", entries[0].ID)
	}
	if entries[len(entries)-1].ID != "10" {
		t.Fatalf("oldest surviving entry: got %q", entries[len(entries)-1].ID)
	}
}

func TestTabJobLifecycle(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()

	if _, found, err := LoadTabJob(ctx, kv, "7"); err != nil || found {
		t.Fatalf("empty: found=%t err=%v", found, err)
	}

	p := posting.Posting{Title: "Backend Engineer", URL: "https://example.com/jobs/1"}
	if err := SaveTabJob(ctx, kv, "7", p); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, found, err := LoadTabJob(ctx, kv, "7")
	if err != nil || !found || got.Title != p.Title {
		t.Fatalf("load: %+v found=%t err=%v", got, found, err)
	}

	// Other tabs are isolated.
	if _, found, _ := LoadTabJob(ctx, kv, "8"); found {
		t.Fatalf("tab isolation broken")
	}

	if err := DeleteTabJob(ctx, kv, "7"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found, _ := LoadTabJob(ctx, kv, "7"); found {
		t.Fatalf("tab job must be gone after delete")
	}
}

func TestMemoryKeys_PatternMatch(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()

	kv.SetJSON(ctx, CachePrefix+"aaa", 1)
	kv.SetJSON(ctx, CachePrefix+"bbb", 2)
	kv.SetJSON(ctx, KeyHistory, 3)

	keys, err := kv.Keys(ctx, CachePrefix+"*")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("got %v", keys)
	}
}
