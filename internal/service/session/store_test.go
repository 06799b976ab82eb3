package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type movingClock struct {
	mu  sync.Mutex
	now time.Time
}

func (m *movingClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *movingClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

func TestStore_CreateGetExpire(t *testing.T) {
	mc := &movingClock{now: time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)}
	store := NewStore(time.Hour, time.Second, clock.Func(time.UTC, mc.Now), nil)

	sess, err := store.Create()
	require.NoError(t, err)
	assert.Equal(t, "March 2024", sess.Picker.View().Label())

	got, ok := store.Get(sess.ID)
	require.True(t, ok)
	assert.Same(t, sess, got)

	mc.Advance(30 * time.Minute)
	_, ok = store.Get(sess.ID)
	assert.True(t, ok, "access keeps the session alive")

	mc.Advance(61 * time.Minute)
	_, ok = store.Get(sess.ID)
	assert.False(t, ok)

	require.NoError(t, store.Sweep(context.Background()))
	assert.Equal(t, 0, store.Len())

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestSession_Tables(t *testing.T) {
	store := NewStore(time.Hour, time.Second, clock.New(time.UTC), nil)
	sess, err := store.Create()
	require.NoError(t, err)

	a := sess.Table("2024-03-01")
	a.Toggle("E1")
	assert.Same(t, a, sess.Table("2024-03-01"))
	assert.Empty(t, sess.Table("2024-03-02").Selection(), "each date has its own selection")
}
