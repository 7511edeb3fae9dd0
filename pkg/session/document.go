package session

import "sync"

// TextDocument is an in-memory Document used by the CLI and by tests. The
// editor integration supplies its own Document implementation backed by real
// buffers.
type TextDocument struct {
	id DocumentID

	mu   sync.RWMutex
	text string
}

// NewTextDocument creates a document with the given identity and content.
func NewTextDocument(id DocumentID, text string) *TextDocument {
	return &TextDocument{id: id, text: text}
}

// ID returns the document identity.
func (d *TextDocument) ID() DocumentID {
	return d.id
}

// Text returns the current content.
func (d *TextDocument) Text() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.text
}

// SetText replaces the content.
func (d *TextDocument) SetText(text string) {
	d.mu.Lock()
	d.text = text
	d.mu.Unlock()
}
