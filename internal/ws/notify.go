package ws

import (
	"encoding/json"
	"log"
	"time"

	"joblens/internal/posting"
)

// JobEvent is pushed to listeners on every successful extraction; NewJob is
// true only when the job identity changed.
type JobEvent struct {
	Type      string `json:"type"`
	NewJob    bool   `json:"newJob,omitempty"`
	Title     string `json:"title,omitempty"`
	Company   string `json:"company,omitempty"`
	URL       string `json:"url,omitempty"`
	Timestamp string `json:"timestamp"`
}

const (
	eventJobChanged = "job_changed"
	eventNoJob      = "no_job"
)

// Notifier adapts the hub to the tracker's notification contract.
type Notifier struct {
	hub    *Hub
	logger *log.Logger
}

func NewNotifier(hub *Hub, logger *log.Logger) *Notifier {
	return &Notifier{hub: hub, logger: logger}
}

func (n *Notifier) JobChanged(p posting.Posting, newJob bool) {
	n.emit(JobEvent{
		Type:      eventJobChanged,
		NewJob:    newJob,
		Title:     p.Title,
		Company:   p.Company,
		URL:       p.URL,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (n *Notifier) JobCleared() {
	n.emit(JobEvent{
		Type:      eventNoJob,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (n *Notifier) emit(evt JobEvent) {
	if n == nil || n.hub == nil {
		return
	}
	b, err := json.Marshal(evt)
	if err != nil {
		if n.logger != nil {
			n.logger.Printf("WS event encode failed | err=%v", err)
		}
		return
	}
	n.hub.Broadcast(b)
}
