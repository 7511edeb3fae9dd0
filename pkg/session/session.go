// Package session associates a query document with an optional variables
// document and with endpoint-selection state, one binding per open editing
// session. Bindings are keyed by document identity, not by name, so two
// sessions over identical content stay distinct.
package session

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gqlpad/gqlpad/pkg/endpoint"
)

// DocumentID identifies one open document.
type DocumentID string

// Document is the narrow contract the core needs from an editor document:
// a stable identity and the current text.
type Document interface {
	ID() DocumentID
	Text() string
}

// Binding ties a query document to its variables document and selected
// endpoint for the lifetime of one editing session.
type Binding struct {
	query Document

	mu        sync.Mutex
	variables Document // nil when the session has no variables document
	selected  *endpoint.Endpoint

	querying atomic.Bool
	detached atomic.Bool
}

// ID returns the identity of the query document.
func (b *Binding) ID() DocumentID {
	return b.query.ID()
}

// QueryText returns the current query text.
func (b *Binding) QueryText() string {
	return b.query.Text()
}

// VariablesText returns the current variables text. Blank or whitespace-only
// text normalizes to the empty string, meaning "no variables".
func (b *Binding) VariablesText() string {
	b.mu.Lock()
	variables := b.variables
	b.mu.Unlock()

	if variables == nil {
		return ""
	}
	text := variables.Text()
	if strings.TrimSpace(text) == "" {
		return ""
	}
	return text
}

// SetSelectedEndpoint records the endpoint the session will execute against.
// Pass nil to clear the selection.
func (b *Binding) SetSelectedEndpoint(ep *endpoint.Endpoint) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ep == nil {
		b.selected = nil
		return
	}
	record := *ep
	b.selected = &record
}

// SelectedEndpoint returns a copy of the selected endpoint, or nil.
func (b *Binding) SelectedEndpoint() *endpoint.Endpoint {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.selected == nil {
		return nil
	}
	record := *b.selected
	return &record
}

// SetQuerying marks whether a request is currently in flight for this
// session. The flag is informational; overlapping executions simply re-raise
// it (see Executor.Execute).
func (b *Binding) SetQuerying(v bool) {
	b.querying.Store(v)
}

// Querying reports whether a request is in flight.
func (b *Binding) Querying() bool {
	return b.querying.Load()
}

// Detached reports whether the binding has been unbound. Outcome delivery
// for a detached binding is a no-op.
func (b *Binding) Detached() bool {
	return b.detached.Load()
}

// reloadEndpoints re-resolves the selection against a fresh endpoint list by
// URL equality. A selection whose URL is no longer present resets to none
// rather than dangling.
func (b *Binding) reloadEndpoints(eps []endpoint.Endpoint) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.selected == nil {
		return
	}
	for i := range eps {
		if eps[i].URL == b.selected.URL {
			record := eps[i]
			b.selected = &record
			return
		}
	}
	b.selected = nil
}

// Links owns the binding registry: explicit creation on session open,
// destruction on session close.
type Links struct {
	mu       sync.Mutex
	bindings map[DocumentID]*Binding
	cancel   func()
}

// NewLinks creates the session registry. When a registry is given, every
// reload re-resolves each binding's endpoint selection.
func NewLinks(reg *endpoint.Registry) *Links {
	l := &Links{bindings: make(map[DocumentID]*Binding)}
	if reg != nil {
		l.cancel = reg.Subscribe(l.reloadEndpoints)
	}
	return l
}

// Bind creates the binding for a newly opened query session. variables may
// be nil. Binding an already-bound document returns the existing binding
// with its variables association replaced by the given one, nil included,
// so re-opening a session with a different variables file takes effect.
func (l *Links) Bind(query, variables Document) *Binding {
	l.mu.Lock()
	defer l.mu.Unlock()

	if existing, ok := l.bindings[query.ID()]; ok {
		existing.mu.Lock()
		existing.variables = variables
		existing.mu.Unlock()
		return existing
	}

	b := &Binding{query: query, variables: variables}
	l.bindings[query.ID()] = b
	return b
}

// Unbind destroys a binding when its session closes. In-flight outcomes for
// the binding are dropped on delivery.
func (l *Links) Unbind(b *Binding) {
	if b == nil {
		return
	}
	b.detached.Store(true)

	l.mu.Lock()
	if current, ok := l.bindings[b.query.ID()]; ok && current == b {
		delete(l.bindings, b.query.ID())
	}
	l.mu.Unlock()
}

// Get looks up the binding for a query document identity.
func (l *Links) Get(id DocumentID) (*Binding, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.bindings[id]
	return b, ok
}

// Close cancels the registry subscription.
func (l *Links) Close() {
	if l.cancel != nil {
		l.cancel()
	}
}

func (l *Links) reloadEndpoints(eps []endpoint.Endpoint) {
	l.mu.Lock()
	bindings := make([]*Binding, 0, len(l.bindings))
	for _, b := range l.bindings {
		bindings = append(bindings, b)
	}
	l.mu.Unlock()

	for _, b := range bindings {
		b.reloadEndpoints(eps)
	}
}
