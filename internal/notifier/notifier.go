package notifier

import (
	"sync"
	"time"

	"github.com/condohub/condoctl/pkg/metrics"
)

// Severity of a user-facing notification
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// DefaultTTL is how long a notification stays visible unless dismissed.
const DefaultTTL = 4 * time.Second

// Notification is one short-lived status message.
type Notification struct {
	ID       int64     `json:"id"`
	Message  string    `json:"message"`
	Severity Severity  `json:"severity"`
	IssuedAt time.Time `json:"issued_at"`
}

// Center queues notifications with timed eviction. Notifications are
// independent: dismissing one never affects the others.
type Center struct {
	mu      sync.Mutex
	nextID  int64
	ttl     time.Duration
	active  []Notification
	timers  map[int64]*time.Timer
	subs    []func(Notification)
	metrics *metrics.Metrics
	closed  bool
}

// Option configures a Center.
type Option func(*Center)

func WithTTL(ttl time.Duration) Option {
	return func(c *Center) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Center) { c.metrics = m }
}

func NewCenter(opts ...Option) *Center {
	c := &Center{
		ttl:    DefaultTTL,
		timers: make(map[int64]*time.Timer),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Subscribe registers a callback invoked for every shown notification.
func (c *Center) Subscribe(fn func(Notification)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

// Show enqueues a notification and schedules its eviction.
func (c *Center) Show(message string, severity Severity) Notification {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return Notification{}
	}
	c.nextID++
	n := Notification{
		ID:       c.nextID,
		Message:  message,
		Severity: severity,
		IssuedAt: time.Now(),
	}
	c.active = append(c.active, n)
	c.timers[n.ID] = time.AfterFunc(c.ttl, func() { c.Dismiss(n.ID) })
	subs := append([]func(Notification){}, c.subs...)
	c.updateGaugeLocked()
	c.mu.Unlock()

	for _, fn := range subs {
		fn(n)
	}
	return n
}

func (c *Center) Success(message string) Notification { return c.Show(message, SeveritySuccess) }
func (c *Center) Error(message string) Notification   { return c.Show(message, SeverityError) }
func (c *Center) Info(message string) Notification    { return c.Show(message, SeverityInfo) }
func (c *Center) Warning(message string) Notification { return c.Show(message, SeverityWarning) }

// Dismiss removes one notification immediately.
func (c *Center) Dismiss(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if timer, ok := c.timers[id]; ok {
		timer.Stop()
		delete(c.timers, id)
	}
	for i, n := range c.active {
		if n.ID == id {
			c.active = append(c.active[:i], c.active[i+1:]...)
			break
		}
	}
	c.updateGaugeLocked()
}

// Active returns the visible notifications in insertion order.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.active))
	copy(out, c.active)
	return out
}

// Close stops all eviction timers; further Show calls are dropped.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	for id, timer := range c.timers {
		timer.Stop()
		delete(c.timers, id)
	}
	c.active = nil
	c.updateGaugeLocked()
}

func (c *Center) updateGaugeLocked() {
	if c.metrics != nil {
		c.metrics.ActiveToasts.Set(float64(len(c.active)))
	}
}
