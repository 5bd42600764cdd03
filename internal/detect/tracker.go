package detect

import (
	"log"
	"sync"
	"time"

	"joblens/internal/posting"
)

// StaleAfter is how long repeated extraction failure on a job-page URL is
// tolerated before the current job is treated as navigated away.
const StaleAfter = 12 * time.Second

type Event int

const (
	EventNone Event = iota
	EventNewJob
	EventUpdated
	EventCleared
)

func (e Event) String() string {
	switch e {
	case EventNewJob:
		return "new_job"
	case EventUpdated:
		return "updated"
	case EventCleared:
		return "cleared"
	default:
		return "none"
	}
}

// Notifier receives job-change notifications with the freshest posting.
type Notifier interface {
	JobChanged(p posting.Posting, newJob bool)
	JobCleared()
}

// Tracker owns the "job currently being viewed" state for one execution
// context: current identity, current posting, last successful extraction.
type Tracker struct {
	mu          sync.Mutex
	identity    string
	current     *posting.Posting
	lastSuccess time.Time

	staleAfter time.Duration
	notifier   Notifier
	logger     *log.Logger
	now        func() time.Time
}

func NewTracker(n Notifier, logger *log.Logger) *Tracker {
	return &Tracker{
		staleAfter: StaleAfter,
		notifier:   n,
		logger:     logger,
		now:        time.Now,
	}
}

// Current returns the last-known posting, if any.
func (t *Tracker) Current() (posting.Posting, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == nil {
		return posting.Posting{}, false
	}
	return *t.current, true
}

// Identity returns the current identity token ("" when no job is tracked).
func (t *Tracker) Identity() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.identity
}

// Observe applies one extraction attempt to the state machine.
//
//   - Failed attempt off a recognized job page: the user navigated away,
//     state clears immediately.
//   - Failed attempt still on a job page: state is kept until failures have
//     lasted longer than the staleness threshold, then cleared.
//   - Successful attempt: posting and timestamp always refresh; a new-job
//     event fires only when the identity changed.
func (t *Tracker) Observe(p posting.Posting, extracted bool, currentURL string) Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !extracted {
		if !IsJobPageURL(currentURL) {
			return t.clearLocked("navigated away")
		}
		if t.current != nil && t.now().Sub(t.lastSuccess) > t.staleAfter {
			return t.clearLocked("extraction stale")
		}
		return EventNone
	}

	next := Identity(p)
	newJob := next != t.identity

	t.identity = next
	t.current = &p
	t.lastSuccess = t.now()

	if t.notifier != nil {
		t.notifier.JobChanged(p, newJob)
	}
	if newJob {
		if t.logger != nil {
			t.logger.Printf("job detected | identity=%s title=%q", next, p.Title)
		}
		return EventNewJob
	}
	return EventUpdated
}

func (t *Tracker) clearLocked(reason string) Event {
	if t.current == nil && t.identity == "" {
		return EventNone
	}
	t.identity = ""
	t.current = nil
	t.lastSuccess = time.Time{}
	if t.logger != nil {
		t.logger.Printf("job cleared | reason=%s", reason)
	}
	if t.notifier != nil {
		t.notifier.JobCleared()
	}
	return EventCleared
}
