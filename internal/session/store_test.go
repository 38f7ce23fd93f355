package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csaweb/internal/model"
)

func TestStore_CreateAndGet(t *testing.T) {
	store := NewStore(time.Hour)

	id := store.Create("tok", model.User{ID: "u1", Name: "Sara"})
	require.NotEmpty(t, id)

	sess, ok := store.Get(id)
	require.True(t, ok)
	assert.Equal(t, "tok", sess.Token)
	assert.Equal(t, "u1", sess.User.ID)
}

func TestStore_UnknownSession(t *testing.T) {
	store := NewStore(time.Hour)
	_, ok := store.Get("nope")
	assert.False(t, ok)
}

func TestStore_ExpiredSessionDropped(t *testing.T) {
	store := NewStore(-time.Minute)

	id := store.Create("tok", model.User{ID: "u1"})
	_, ok := store.Get(id)
	assert.False(t, ok)

	// lazily removed on access
	_, ok = store.Get(id)
	assert.False(t, ok)
}

func TestStore_Delete(t *testing.T) {
	store := NewStore(time.Hour)
	id := store.Create("tok", model.User{ID: "u1"})

	store.Delete(id)
	_, ok := store.Get(id)
	assert.False(t, ok)

	// deleting twice is harmless
	store.Delete(id)
}

func TestStore_SubscribeReceivesLoginAndLogout(t *testing.T) {
	store := NewStore(time.Hour)
	events, cancel := store.Subscribe()
	defer cancel()

	id := store.Create("tok", model.User{ID: "u1", Name: "Sara"})

	e := <-events
	assert.Equal(t, EventLogin, e.Kind)
	assert.Equal(t, "u1", e.User.ID)

	store.Delete(id)
	e = <-events
	assert.Equal(t, EventLogout, e.Kind)
}

func TestStore_CancelStopsDelivery(t *testing.T) {
	store := NewStore(time.Hour)
	events, cancel := store.Subscribe()
	cancel()

	// channel is closed, not left dangling
	_, open := <-events
	assert.False(t, open)

	// notifying after cancel must not panic
	store.Create("tok", model.User{ID: "u1"})
}

func TestStore_SlowSubscriberDoesNotBlock(t *testing.T) {
	store := NewStore(time.Hour)
	_, cancel := store.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		// more events than the subscriber buffer holds
		for i := 0; i < 100; i++ {
			store.Create("tok", model.User{ID: "u1"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("notify blocked on a slow subscriber")
	}
}
