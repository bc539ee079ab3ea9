package notify

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gsolanocr/comercio-api/internal/snapshot"
)

func newTestCenter(t *testing.T, sinks ...Sink) *Center {
	t.Helper()
	store := snapshot.Open(filepath.Join(t.TempDir(), "state.json"))
	return NewCenter(store, sinks...)
}

type recordingSink struct {
	delivered []snapshot.Notification
	err       error
}

func (s *recordingSink) Deliver(n snapshot.Notification) error {
	s.delivered = append(s.delivered, n)
	return s.err
}

func TestEmitPrependsNewestFirst(t *testing.T) {
	center := newTestCenter(t)

	center.Emit(snapshot.Notification{Type: "purchase", Title: "primero"})
	center.Emit(snapshot.Notification{Type: "purchase", Title: "segundo"})

	list := center.List()
	require.Len(t, list, 2)
	assert.Equal(t, "segundo", list[0].Title)
	assert.Equal(t, "primero", list[1].Title)
	assert.NotEmpty(t, list[0].ID)
	assert.False(t, list[0].Timestamp.IsZero())
}

func TestEmitCapsListAtMax(t *testing.T) {
	center := newTestCenter(t)

	for i := 0; i < MaxNotifications+1; i++ {
		center.Emit(snapshot.Notification{Type: "info", Title: fmt.Sprintf("n%d", i)})
	}

	list := center.List()
	require.Len(t, list, MaxNotifications)
	assert.Equal(t, fmt.Sprintf("n%d", MaxNotifications), list[0].Title)
	// The oldest entry fell off.
	assert.Equal(t, "n1", list[len(list)-1].Title)
}

func TestMarkAllReadIsOneWay(t *testing.T) {
	center := newTestCenter(t)
	center.Emit(snapshot.Notification{Type: "info", Title: "a"})
	center.Emit(snapshot.Notification{Type: "info", Title: "b"})
	require.Equal(t, 2, center.UnreadCount())

	center.MarkAllRead()
	assert.Equal(t, 0, center.UnreadCount())

	center.Emit(snapshot.Notification{Type: "info", Title: "c"})
	assert.Equal(t, 1, center.UnreadCount())
}

func TestSinkFailureDoesNotBreakEmit(t *testing.T) {
	failing := &recordingSink{err: errors.New("smtp down")}
	ok := &recordingSink{}
	center := newTestCenter(t, failing, ok)

	center.Emit(snapshot.Notification{Type: "purchase", Title: "pedido"})

	assert.Len(t, failing.delivered, 1)
	assert.Len(t, ok.delivered, 1)
	assert.Len(t, center.List(), 1)
}

func TestEmailSinkOnlyForwardsPurchases(t *testing.T) {
	// The nil mail service is never reached on the skip paths.
	sink := NewEmailSink(nil, "owner@example.com")
	assert.NoError(t, sink.Deliver(snapshot.Notification{Type: "info"}))

	unaddressed := NewEmailSink(nil, "")
	assert.NoError(t, unaddressed.Deliver(snapshot.Notification{Type: "purchase"}))
}

func TestClear(t *testing.T) {
	center := newTestCenter(t)
	center.Emit(snapshot.Notification{Type: "info", Title: "x"})
	center.Clear()
	assert.Empty(t, center.List())
}
