package ws

import (
	"encoding/json"
	"time"
)

const EventAnalysisCompleted = "analysis_completed"

type AnalysisCompletedEvent struct {
	Type      string `json:"type"`
	ID        string `json:"id"`
	Filename  string `json:"filename"`
	Score     *int   `json:"score"`
	ErrorKind string `json:"error_kind,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Notifier publishes finished analyses to the hub.
type Notifier struct {
	hub *Hub
	now func() time.Time
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub, now: time.Now}
}

func (n *Notifier) AnalysisCompleted(id, filename string, score *int, errorKind string) {
	if n == nil || n.hub == nil {
		return
	}
	b, err := json.Marshal(AnalysisCompletedEvent{
		Type:      EventAnalysisCompleted,
		ID:        id,
		Filename:  filename,
		Score:     score,
		ErrorKind: errorKind,
		Timestamp: n.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}
