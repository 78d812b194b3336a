package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aretw0/conform/pkg/domain"
)

// StreamManager fans validation events out to SSE subscribers.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan string]struct{} // schema filter -> channels; "" gets every event
}

func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan string]struct{}),
	}
}

// Subscribe registers a channel for events of the named schema, or for all
// events when schemaName is empty. The returned func unsubscribes and closes it.
func (sm *StreamManager) Subscribe(schemaName string) (<-chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[schemaName]; !ok {
		sm.subscribers[schemaName] = make(map[chan string]struct{})
	}
	sm.subscribers[schemaName][ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			if subs, ok := sm.subscribers[schemaName]; ok {
				delete(subs, ch)
				close(ch)
				if len(subs) == 0 {
					delete(sm.subscribers, schemaName)
				}
			}
		})
	}
}

// Broadcast delivers msg to the subscribers of schemaName and to the
// unfiltered subscribers.
func (sm *StreamManager) Broadcast(schemaName string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	sm.send("", msg)
	if schemaName != "" {
		sm.send(schemaName, msg)
	}
}

func (sm *StreamManager) send(key, msg string) {
	for ch := range sm.subscribers[key] {
		select {
		case ch <- msg:
		default:
			// Drop message if channel is full (slow client)
			slog.Warn("SSE: Client buffer full, dropping message", "schema", key)
		}
	}
}

// Publish encodes the event as JSON and broadcasts it.
func (sm *StreamManager) Publish(e *domain.ValidationEvent) {
	data, err := json.Marshal(e)
	if err != nil {
		slog.Error("SSE: event encode failed", "error", err)
		return
	}
	sm.Broadcast(e.SchemaName, string(data))
}

// Hooks returns validation hooks that publish every event.
func (sm *StreamManager) Hooks() domain.ValidationHooks {
	return domain.ValidationHooks{
		OnValidate: func(_ context.Context, e *domain.ValidationEvent) {
			sm.Publish(e)
		},
	}
}

// SubscribeEvents handles the GET /events request (SSE).
// The optional ?schema= parameter restricts the stream to one stored schema.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, r, http.StatusInternalServerError, fmt.Errorf("streaming not supported"))
		return
	}

	filter := r.URL.Query().Get("schema")
	ch, cancel := s.Streams.Subscribe(filter)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()
	s.logger.DebugContext(r.Context(), "SSE client connected", "schema", filter)

	for {
		select {
		case <-r.Context().Done():
			s.logger.DebugContext(r.Context(), "SSE client disconnected", "schema", filter)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
