// Package notify delivers severity-tagged notifications from the core
// components to whatever front end is listening (CLI output, a future TUI).
package notify

import "sync"

// Severity indicates how a notification should be presented.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Notification is a single user-facing message.
type Notification struct {
	Title    string
	Message  string
	Severity Severity
}

// Callback receives published notifications.
type Callback func(Notification)

// Bus fans notifications out to subscribers. Publishing with no subscribers
// is a no-op, so core components can notify unconditionally.
type Bus struct {
	mu   sync.Mutex
	subs map[int]Callback
	next int
}

// NewBus creates an empty notification bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]Callback)}
}

// Subscribe registers a callback and returns a cancel function.
func (b *Bus) Subscribe(cb Callback) func() {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = cb
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish delivers a notification to every subscriber. Callbacks run outside
// the bus lock so a subscriber may publish or subscribe reentrantly.
func (b *Bus) Publish(n Notification) {
	b.mu.Lock()
	cbs := make([]Callback, 0, len(b.subs))
	for _, cb := range b.subs {
		cbs = append(cbs, cb)
	}
	b.mu.Unlock()

	for _, cb := range cbs {
		cb(n)
	}
}

// Error publishes an error-severity notification.
func (b *Bus) Error(title, message string) {
	b.Publish(Notification{Title: title, Message: message, Severity: SeverityError})
}

// Warn publishes a warning-severity notification.
func (b *Bus) Warn(title, message string) {
	b.Publish(Notification{Title: title, Message: message, Severity: SeverityWarning})
}

// Info publishes an info-severity notification.
func (b *Bus) Info(title, message string) {
	b.Publish(Notification{Title: title, Message: message, Severity: SeverityInfo})
}
