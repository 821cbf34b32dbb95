package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
}

func TestMessageQueue_ShowsInOrder(t *testing.T) {
	clock := newFakeClock()
	q := NewMessageQueue(clock.Now)

	q.Info("first")
	clock.Advance(time.Second)
	q.Error("second")

	msg, ok := q.Current()
	assert.True(t, ok)
	assert.Equal(t, "first", msg.Text)
	assert.Equal(t, KindInfo, msg.Kind)

	clock.Advance(600 * time.Millisecond)
	msg, ok = q.Current()
	assert.True(t, ok)
	assert.Equal(t, "second", msg.Text)
	assert.Equal(t, KindError, msg.Kind)

	clock.Advance(time.Second)
	_, ok = q.Current()
	assert.False(t, ok)
	assert.Equal(t, 0, q.Len())
}

func TestMessageQueue_SkipsExpiredWhileWaiting(t *testing.T) {
	clock := newFakeClock()
	q := NewMessageQueue(clock.Now)

	q.Warning("long")
	q.Success("short")
	q.PushFor(KindInfo, "lingering", 5*time.Second)

	msg, _ := q.Current()
	assert.Equal(t, "long", msg.Text)

	// success messages last one second, so it expires behind the warning
	clock.Advance(1600 * time.Millisecond)
	msg, ok := q.Current()
	assert.True(t, ok)
	assert.Equal(t, "lingering", msg.Text)
}

func TestMessageQueue_Clear(t *testing.T) {
	q := NewMessageQueue(nil)
	q.Info("a")
	q.Info("b")
	q.Current()
	assert.Equal(t, 2, q.Len())

	q.Clear()

	_, ok := q.Current()
	assert.False(t, ok)
	assert.Equal(t, 0, q.Len())
}
