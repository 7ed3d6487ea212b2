package status

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet_transfer_back/models"
)

type fakeTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{delay: d, fn: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) last() *fakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timers[len(s.timers)-1]
}

func newTestMessenger() (*Messenger, *fakeScheduler) {
	sched := &fakeScheduler{}
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m := NewMessenger(WithAfterFunc(sched.AfterFunc), WithClock(func() time.Time { return now }))
	return m, sched
}

func TestMessenger_ShowSchedulesClearAfterThreeSeconds(t *testing.T) {
	m, sched := newTestMessenger()

	m.Show("Cartera desconectada")

	msg, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, "Cartera desconectada", msg.Text)
	assert.Equal(t, 3*time.Second, msg.ExpiresAt.Sub(msg.CreatedAt))

	timer := sched.last()
	assert.Equal(t, 3000*time.Millisecond, timer.delay)

	timer.fn()
	_, ok = m.Current()
	assert.False(t, ok, "message should be gone once the timer fires")
}

func TestMessenger_LastWriterWins(t *testing.T) {
	m, sched := newTestMessenger()

	m.Show("first")
	first := sched.last()
	m.Show("second")
	second := sched.last()

	assert.True(t, first.stopped, "previous clear timer must be stopped")
	assert.False(t, second.stopped)

	// a timer that already fired before Stop must not clear the newer message
	first.fn()
	msg, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, "second", msg.Text)

	second.fn()
	_, ok = m.Current()
	assert.False(t, ok)
}

func TestMessenger_Clear(t *testing.T) {
	m, sched := newTestMessenger()

	m.Show("hello")
	timer := sched.last()
	m.Clear()

	_, ok := m.Current()
	assert.False(t, ok)
	assert.True(t, timer.stopped)

	// late fire after Clear is harmless
	timer.fn()
	_, ok = m.Current()
	assert.False(t, ok)
}

func TestMessenger_Subscribe(t *testing.T) {
	m, sched := newTestMessenger()

	var got []*models.Status
	m.Subscribe(func(msg *models.Status) {
		got = append(got, msg)
	})

	m.Show("one")
	sched.last().fn()

	require.Len(t, got, 2)
	require.NotNil(t, got[0])
	assert.Equal(t, "one", got[0].Text)
	assert.Nil(t, got[1])
}

func TestMessenger_CustomDelay(t *testing.T) {
	sched := &fakeScheduler{}
	m := NewMessenger(WithAfterFunc(sched.AfterFunc), WithClearDelay(5*time.Second))

	m.Show("x")
	assert.Equal(t, 5*time.Second, sched.last().delay)
}

func TestMessenger_RealTimer(t *testing.T) {
	m := NewMessenger(WithClearDelay(20 * time.Millisecond))
	m.Show("short lived")

	assert.Eventually(t, func() bool {
		_, ok := m.Current()
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestMessenger_ListenersSeeMessagesInOrder(t *testing.T) {
	m, _ := newTestMessenger()

	entered := make(chan struct{})
	release := make(chan struct{})
	var (
		mu   sync.Mutex
		got  []string
		once sync.Once
	)
	m.Subscribe(func(msg *models.Status) {
		text := ""
		if msg != nil {
			text = msg.Text
		}
		if text == "older" {
			once.Do(func() { close(entered) })
			<-release
		}
		mu.Lock()
		got = append(got, text)
		mu.Unlock()
	})

	go m.Show("older")
	<-entered

	newerDone := make(chan struct{})
	go func() {
		m.Show("newer")
		close(newerDone)
	}()
	require.Eventually(t, func() bool {
		msg, ok := m.Current()
		return ok && msg.Text == "newer"
	}, time.Second, time.Millisecond)

	close(release)
	select {
	case <-newerDone:
	case <-time.After(time.Second):
		t.Fatal("newer message was never delivered")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"older", "newer"}, got)
}

func TestMessenger_StaleExpiryIsNotDelivered(t *testing.T) {
	m, sched := newTestMessenger()

	var got []*models.Status
	m.Subscribe(func(msg *models.Status) {
		got = append(got, msg)
	})

	m.Show("first")
	first := sched.last()
	m.Show("second")
	first.fn()

	require.Len(t, got, 2)
	assert.Equal(t, "second", got[1].Text)
}
