package realtime

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"vidsocial/domain/model"
	"vidsocial/infrastructure/events"
	"vidsocial/infrastructure/logger"
)

// Hub maintains per-user subscribers listening for activity events.
type Hub struct {
	mu    sync.RWMutex
	users map[string]map[chan model.ActivityEvent]struct{}
}

func NewActivityHub() *Hub {
	return &Hub{users: make(map[string]map[chan model.ActivityEvent]struct{})}
}

// Serve registers an SSE stream for the authenticated user (user_id set by middleware).
func (h *Hub) Serve(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.Status(http.StatusUnauthorized)
		return
	}
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // disable nginx buffering

	ch := make(chan model.ActivityEvent, 8)
	h.addSubscriber(userID, ch)
	defer h.removeSubscriber(userID, ch)

	_, _ = c.Writer.Write([]byte(":ok\n\n"))
	c.Writer.Flush()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case evt := <-ch:
			data, err := events.Encode(evt)
			if err != nil {
				logger.FromContext(c.Request.Context()).WithField("error", err).Warn("Encode activity event failed")
				continue
			}
			c.SSEvent(string(evt.Type), string(data))
			c.Writer.Flush()
		}
	}
}

func (h *Hub) addSubscriber(userID string, ch chan model.ActivityEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.users[userID] == nil {
		h.users[userID] = make(map[chan model.ActivityEvent]struct{})
	}
	h.users[userID][ch] = struct{}{}
}

func (h *Hub) removeSubscriber(userID string, ch chan model.ActivityEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs := h.users[userID]; subs != nil {
		delete(subs, ch)
		close(ch)
		if len(subs) == 0 {
			delete(h.users, userID)
		}
	}
}

// Subscribers reports how many streams userID has open.
func (h *Hub) Subscribers(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.users[userID])
}

// Publish delivers to the streams of the event's target user. Slow streams
// drop the event rather than block the writer.
func (h *Hub) Publish(_ context.Context, event model.ActivityEvent) error {
	if event.TargetUserID == "" || event.TargetUserID == event.ActorID {
		return nil
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.users[event.TargetUserID] {
		select { // non-blocking
		case ch <- event:
		default:
		}
	}
	return nil
}
