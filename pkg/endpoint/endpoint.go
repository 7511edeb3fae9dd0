// Package endpoint holds the configured remote GraphQL endpoints and the
// reloadable registry the rest of the tool resolves them through.
package endpoint

import "fmt"

// Endpoint describes one remote GraphQL service: a URL plus an open-ended
// options map. Records are treated as immutable once handed out; edits go
// through Registry.Reload with a fresh list.
type Endpoint struct {
	Name    string         `yaml:"name,omitempty" json:"name,omitempty"`
	URL     string         `yaml:"url" json:"url"`
	Options map[string]any `yaml:"options,omitempty" json:"options,omitempty"`
}

// Headers returns the endpoint's configured static headers. Values of any
// scalar type are accepted in the options map and stringified here, so a
// YAML author can write numbers or booleans without quoting them.
func (e Endpoint) Headers() map[string]string {
	headers := make(map[string]string)

	raw, ok := e.Options["headers"]
	if !ok {
		return headers
	}

	switch m := raw.(type) {
	case map[string]any:
		for k, v := range m {
			headers[k] = fmt.Sprint(v)
		}
	case map[string]string:
		for k, v := range m {
			headers[k] = v
		}
	}

	return headers
}

// DisplayName returns the name shown in endpoint pickers, falling back to
// the URL for unnamed endpoints.
func (e Endpoint) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.URL
}
