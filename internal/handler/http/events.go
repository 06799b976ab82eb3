package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-lite-web/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/readiness"
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/refresh"
	"github.com/goccy/go-json"
)

const keepaliveInterval = 30 * time.Second

// EventHandler streams refresh and readiness events to open pages.
type EventHandler interface {
	Stream(w http.ResponseWriter, r *http.Request)
	Readiness(w http.ResponseWriter, r *http.Request)
}

type eventHandlerImpl struct {
	notifier *refresh.Notifier
	gate     *readiness.Gate
}

func NewEventHandler(notifier *refresh.Notifier, gate *readiness.Gate) EventHandler {
	return &eventHandlerImpl{notifier: notifier, gate: gate}
}

// Stream handles GET /events?topics=employees,dashboard
func (h *eventHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	var names []string
	if raw := r.URL.Query().Get("topics"); raw != "" {
		names = strings.Split(raw, ",")
	}
	topics := refresh.ParseTopics(names)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.notifier.Subscribe(topics, readiness.HubKey)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"topics\":%d}\n\n", len(topics))

	// A page rendered before the gate opened may connect after the one-time
	// announcement went out.
	if status := h.gate.Status(); status.Ready {
		if data, err := json.Marshal(status); err == nil {
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", readiness.EventName, data)
		}
	}
	flusher.Flush()

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

// Readiness handles GET /readiness
func (h *eventHandlerImpl) Readiness(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.gate.Status())
}
