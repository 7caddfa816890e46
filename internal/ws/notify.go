package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// ApplicationEvent is broadcast whenever a submission attempt reaches a
// terminal status, including the captcha pause.
type ApplicationEvent struct {
	Type            string `json:"type"`
	JobMatchID      string `json:"job_match_id"`
	Status          string `json:"status"`
	CaptchaRequired bool   `json:"captcha_required"`
	Timestamp       string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

func NotifyApplicationStatus(jobMatchID uuid.UUID, status string, captchaRequired bool) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	evt := ApplicationEvent{
		Type:            "application_status",
		JobMatchID:      jobMatchID.String(),
		Status:          status,
		CaptchaRequired: captchaRequired,
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}
