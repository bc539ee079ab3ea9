// Package notify keeps the portal's notification list: newest first, capped,
// persisted through the snapshot store and fanned out to optional sinks
// (email alerts). Sink failures never fail the emit.
package notify

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/gsolanocr/comercio-api/internal/snapshot"
)

// MaxNotifications caps the list; older entries fall off the end.
const MaxNotifications = 50

// Sink receives a copy of every emitted notification.
type Sink interface {
	Deliver(n snapshot.Notification) error
}

// Center manages the notification list on top of the snapshot store.
type Center struct {
	store *snapshot.Store
	sinks []Sink
}

func NewCenter(store *snapshot.Store, sinks ...Sink) *Center {
	return &Center{store: store, sinks: sinks}
}

// Emit prepends the notification, trims the list to MaxNotifications and
// persists it. Persistence and sink errors are logged, never returned: a
// notification must not break the operation that produced it.
func (c *Center) Emit(n snapshot.Notification) snapshot.Notification {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now()
	}

	err := c.store.Update(func(st *snapshot.State) {
		st.Notifications = append([]snapshot.Notification{n}, st.Notifications...)
		if len(st.Notifications) > MaxNotifications {
			st.Notifications = st.Notifications[:MaxNotifications]
		}
	})
	if err != nil {
		log.Printf("notify: persist notification: %v", err)
	}

	for _, sink := range c.sinks {
		if err := sink.Deliver(n); err != nil {
			log.Printf("notify: sink delivery: %v", err)
		}
	}
	return n
}

// List returns a copy of the notifications, newest first.
func (c *Center) List() []snapshot.Notification {
	var out []snapshot.Notification
	c.store.View(func(st *snapshot.State) {
		out = make([]snapshot.Notification, len(st.Notifications))
		copy(out, st.Notifications)
	})
	return out
}

// UnreadCount returns how many notifications are unread.
func (c *Center) UnreadCount() int {
	count := 0
	c.store.View(func(st *snapshot.State) {
		for _, n := range st.Notifications {
			if !n.Read {
				count++
			}
		}
	})
	return count
}

// MarkAllRead flags every notification as read. There is no way back to
// unread.
func (c *Center) MarkAllRead() {
	err := c.store.Update(func(st *snapshot.State) {
		for i := range st.Notifications {
			st.Notifications[i].Read = true
		}
	})
	if err != nil {
		log.Printf("notify: persist read flags: %v", err)
	}
}

// Clear empties the list.
func (c *Center) Clear() {
	err := c.store.Update(func(st *snapshot.State) {
		st.Notifications = nil
	})
	if err != nil {
		log.Printf("notify: persist clear: %v", err)
	}
}
