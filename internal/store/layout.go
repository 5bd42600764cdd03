package store

import (
	"context"
	"time"

	"joblens/internal/posting"
	"joblens/internal/resume"
)

// SavedResume persists the raw text verbatim alongside its parsed form.
type SavedResume struct {
	Raw     string        `json:"raw"`
	Parsed  resume.Resume `json:"parsed"`
	SavedAt time.Time     `json:"savedAt"`
}

type Settings struct {
	BackendURL     string `json:"backendUrl"`
	OverlayEnabled bool   `json:"overlayEnabled"`
}

type HistoryEntry struct {
	ID              string    `json:"id"`
	JobTitle        string    `json:"jobTitle"`
	Company         string    `json:"company"`
	MatchPercentage int       `json:"matchPercentage"`
	URL             string    `json:"url"`
	AnalyzedAt      time.Time `json:"analyzedAt"`
}

// HistoryLimit caps the analysis history list, newest first.
const HistoryLimit = 50

func SaveResume(ctx context.Context, kv KV, r SavedResume) error {
	return kv.SetJSON(ctx, KeyResume, r)
}

func LoadResume(ctx context.Context, kv KV) (SavedResume, bool, error) {
	var r SavedResume
	found, err := kv.GetJSON(ctx, KeyResume, &r)
	return r, found, err
}

func SaveSettings(ctx context.Context, kv KV, s Settings) error {
	return kv.SetJSON(ctx, KeySettings, s)
}

func LoadSettings(ctx context.Context, kv KV) (Settings, bool, error) {
	var s Settings
	found, err := kv.GetJSON(ctx, KeySettings, &s)
	if err != nil || !found {
		return Settings{OverlayEnabled: true}, found, err
	}
	return s, true, nil
}

// AppendHistory prepends an entry and truncates to the cap. Read-then-write
// without a transaction; concurrent writers race last-writer-wins like the
// rest of the store.
func AppendHistory(ctx context.Context, kv KV, e HistoryEntry) error {
	entries, err := LoadHistory(ctx, kv)
	if err != nil {
		return err
	}
	entries = append([]HistoryEntry{e}, entries...)
	if len(entries) > HistoryLimit {
		entries = entries[:HistoryLimit]
	}
	return kv.SetJSON(ctx, KeyHistory, entries)
}

func LoadHistory(ctx context.Context, kv KV) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	if _, err := kv.GetJSON(ctx, KeyHistory, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// SaveTabJob remembers the last-known posting for one tab identifier.
func SaveTabJob(ctx context.Context, kv KV, tabID string, p posting.Posting) error {
	return kv.SetJSON(ctx, TabJobPrefix+tabID, p)
}

func LoadTabJob(ctx context.Context, kv KV, tabID string) (posting.Posting, bool, error) {
	var p posting.Posting
	found, err := kv.GetJSON(ctx, TabJobPrefix+tabID, &p)
	return p, found, err
}

func DeleteTabJob(ctx context.Context, kv KV, tabID string) error {
	return kv.Delete(ctx, TabJobPrefix+tabID)
}
