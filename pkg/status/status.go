package status

import (
	"sync"
	"time"

	"wallet_transfer_back/models"
)

const DefaultClearDelay = 3 * time.Second

// Timer is the part of *time.Timer the messenger needs.
type Timer interface {
	Stop() bool
}

type AfterFunc func(d time.Duration, f func()) Timer

// Listener получает сообщения в том же порядке, в каком они сменяли друг друга.
// Из слушателя нельзя вызывать Show и Clear.
type Listener func(msg *models.Status)

// Messenger хранит не больше одного сообщения. Новое сообщение вытесняет
// старое вместе с его таймером очистки.
type Messenger struct {
	mu        sync.Mutex
	current   *models.Status
	timer     Timer
	gen       uint64
	delay     time.Duration
	afterFunc AfterFunc
	now       func() time.Time
	listeners []Listener

	// notifyMu serializes deliveries; a delivery whose generation is no longer current is dropped.
	notifyMu sync.Mutex
}

type Option func(*Messenger)

func WithClearDelay(d time.Duration) Option {
	return func(m *Messenger) {
		if d > 0 {
			m.delay = d
		}
	}
}

func WithAfterFunc(f AfterFunc) Option {
	return func(m *Messenger) {
		m.afterFunc = f
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Messenger) {
		m.now = now
	}
}

func NewMessenger(opts ...Option) *Messenger {
	m := &Messenger{
		delay: DefaultClearDelay,
		afterFunc: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Show заменяет текущее сообщение и перезапускает таймер очистки
func (m *Messenger) Show(text string) {
	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
	}
	m.gen++
	gen := m.gen
	created := m.now()
	msg := &models.Status{
		Text:      text,
		CreatedAt: created,
		ExpiresAt: created.Add(m.delay),
	}
	m.current = msg
	m.timer = m.afterFunc(m.delay, func() { m.expire(gen) })
	m.mu.Unlock()

	m.publish(gen, copyStatus(msg))
}

// Clear убирает сообщение сразу
func (m *Messenger) Clear() {
	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.gen++
	gen := m.gen
	hadMessage := m.current != nil
	m.current = nil
	m.mu.Unlock()

	if hadMessage {
		m.publish(gen, nil)
	}
}

// expire fires from the timer; a stale generation means a newer Show or Clear already won.
func (m *Messenger) expire(gen uint64) {
	m.mu.Lock()
	if gen != m.gen || m.current == nil {
		m.mu.Unlock()
		return
	}
	m.current = nil
	m.timer = nil
	m.mu.Unlock()

	m.publish(gen, nil)
}

func (m *Messenger) Current() (models.Status, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return models.Status{}, false
	}
	return *m.current, true
}

// Subscribe регистрирует слушателя; nil в колбэке означает очистку
func (m *Messenger) Subscribe(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

func (m *Messenger) publish(gen uint64, msg *models.Status) {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	m.mu.Lock()
	stale := gen != m.gen
	listeners := m.listeners
	m.mu.Unlock()
	if stale {
		return
	}

	for _, l := range listeners {
		l(msg)
	}
}

func copyStatus(msg *models.Status) *models.Status {
	c := *msg
	return &c
}
