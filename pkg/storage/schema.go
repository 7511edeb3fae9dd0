package storage

// File is the on-disk endpoints document.
type File struct {
	Endpoints []Entry `yaml:"endpoints"`
}

// Entry is one endpoint as written in endpoints.yaml. Options carries the
// free-form per-endpoint configuration (headers, auth) untouched.
type Entry struct {
	Name    string         `yaml:"name,omitempty"`    // Display name shown in pickers
	URL     string         `yaml:"url"`               // GraphQL endpoint URL (can contain variables)
	Options map[string]any `yaml:"options,omitempty"` // headers, auth, and future settings
}
