package session

import (
	"testing"

	"github.com/gqlpad/gqlpad/pkg/endpoint"
)

func TestBindAndGetByIdentity(t *testing.T) {
	links := NewLinks(nil)

	// Two documents with identical content but distinct identities stay
	// distinct sessions.
	a := NewTextDocument("a.graphql", "{ viewer { id } }")
	b := NewTextDocument("b.graphql", "{ viewer { id } }")

	ba := links.Bind(a, nil)
	bb := links.Bind(b, nil)
	if ba == bb {
		t.Fatal("distinct documents shared a binding")
	}

	got, ok := links.Get("a.graphql")
	if !ok || got != ba {
		t.Errorf("Get(a) = (%v, %v), want the original binding", got, ok)
	}
}

func TestBindIsIdempotentPerDocument(t *testing.T) {
	links := NewLinks(nil)
	doc := NewTextDocument("q.graphql", "{ a }")

	first := links.Bind(doc, nil)
	second := links.Bind(doc, nil)
	if first != second {
		t.Error("rebinding the same document created a new binding")
	}
}

func TestRebindReplacesVariablesDocument(t *testing.T) {
	links := NewLinks(nil)
	doc := NewTextDocument("q.graphql", "{ a }")

	b := links.Bind(doc, nil)
	if got := b.VariablesText(); got != "" {
		t.Fatalf("VariablesText() = %q before any variables document", got)
	}

	// Re-opening the session with a variables file updates the association.
	rebound := links.Bind(doc, NewTextDocument("v.json", `{"id": 1}`))
	if rebound != b {
		t.Fatal("rebinding created a new binding")
	}
	if got := b.VariablesText(); got != `{"id": 1}` {
		t.Errorf("VariablesText() = %q, want the rebound document's text", got)
	}

	// And rebinding with nil clears it again.
	links.Bind(doc, nil)
	if got := b.VariablesText(); got != "" {
		t.Errorf("VariablesText() = %q after clearing, want empty", got)
	}
}

func TestVariablesTextNormalizesBlank(t *testing.T) {
	tests := []struct {
		name     string
		vars     Document
		expected string
	}{
		{"no variables document", nil, ""},
		{"empty", NewTextDocument("v", ""), ""},
		{"whitespace only", NewTextDocument("v", "  \n\t "), ""},
		{"payload", NewTextDocument("v", `{"id": 1}`), `{"id": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			links := NewLinks(nil)
			b := links.Bind(NewTextDocument(DocumentID("q-"+tt.name), "{ a }"), tt.vars)
			if got := b.VariablesText(); got != tt.expected {
				t.Errorf("VariablesText() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestUnbindDetaches(t *testing.T) {
	links := NewLinks(nil)
	doc := NewTextDocument("q.graphql", "{ a }")
	b := links.Bind(doc, nil)

	links.Unbind(b)

	if !b.Detached() {
		t.Error("binding not detached after Unbind")
	}
	if _, ok := links.Get("q.graphql"); ok {
		t.Error("binding still resolvable after Unbind")
	}

	// Unbind is safe to repeat and safe on nil.
	links.Unbind(b)
	links.Unbind(nil)
}

func TestSelectionSurvivesReloadWhenURLPresent(t *testing.T) {
	reg := endpoint.NewRegistry([]endpoint.Endpoint{{Name: "dev", URL: "http://dev/gql"}})
	links := NewLinks(reg)
	defer links.Close()

	b := links.Bind(NewTextDocument("q.graphql", "{ a }"), nil)
	ep := reg.List()[0]
	b.SetSelectedEndpoint(&ep)

	// Reload with the same URL under a new name: selection re-resolves to
	// the fresh record.
	reg.Reload([]endpoint.Endpoint{{Name: "development", URL: "http://dev/gql"}})

	selected := b.SelectedEndpoint()
	if selected == nil {
		t.Fatal("selection lost on reload with URL still present")
	}
	if selected.Name != "development" {
		t.Errorf("selection name = %q, want re-resolved record", selected.Name)
	}
}

func TestSelectionResetsWhenURLRemoved(t *testing.T) {
	reg := endpoint.NewRegistry([]endpoint.Endpoint{
		{URL: "http://dev/gql"},
		{URL: "http://prod/gql"},
	})
	links := NewLinks(reg)
	defer links.Close()

	b := links.Bind(NewTextDocument("q.graphql", "{ a }"), nil)
	ep := reg.List()[0]
	b.SetSelectedEndpoint(&ep)

	reg.Reload([]endpoint.Endpoint{{URL: "http://prod/gql"}})

	if b.SelectedEndpoint() != nil {
		t.Error("selection should reset to none when its URL disappears")
	}

	// An empty reload against many bindings must not panic.
	for i := 0; i < 5; i++ {
		extra := links.Bind(NewTextDocument(DocumentID(rune('a'+i)), "{ a }"), nil)
		prod, _ := reg.FindByURL("http://prod/gql")
		extra.SetSelectedEndpoint(&prod)
	}
	reg.Reload(nil)

	for i := 0; i < 5; i++ {
		extra, _ := links.Get(DocumentID(rune('a' + i)))
		if extra.SelectedEndpoint() != nil {
			t.Error("selection should reset to none on empty reload")
		}
	}
}

func TestSelectedEndpointReturnsCopy(t *testing.T) {
	links := NewLinks(nil)
	b := links.Bind(NewTextDocument("q.graphql", "{ a }"), nil)

	b.SetSelectedEndpoint(&endpoint.Endpoint{URL: "http://x"})
	got := b.SelectedEndpoint()
	got.URL = "http://mutated"

	if b.SelectedEndpoint().URL != "http://x" {
		t.Error("selection mutated through returned copy")
	}
}

func TestQueryingFlag(t *testing.T) {
	links := NewLinks(nil)
	b := links.Bind(NewTextDocument("q.graphql", "{ a }"), nil)

	if b.Querying() {
		t.Error("fresh binding reports querying")
	}
	b.SetQuerying(true)
	if !b.Querying() {
		t.Error("flag not raised")
	}
	b.SetQuerying(false)
	if b.Querying() {
		t.Error("flag not cleared")
	}
}
