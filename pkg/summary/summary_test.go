package summary

import (
	"testing"
	"time"
)

func TestErrorCount(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantCount int
		wantKnown bool
	}{
		{
			name:      "object without errors key",
			body:      `{"data":{}}`,
			wantCount: 0,
			wantKnown: true,
		},
		{
			name:      "errors array with two entries",
			body:      `{"errors":[{"message":"x"},{"message":"y"}]}`,
			wantCount: 2,
			wantKnown: true,
		},
		{
			name:      "empty errors array",
			body:      `{"errors":[]}`,
			wantCount: 0,
			wantKnown: true,
		},
		{
			name:      "not json",
			body:      "not json",
			wantCount: 0,
			wantKnown: false,
		},
		{
			name:      "empty body",
			body:      "",
			wantCount: 0,
			wantKnown: false,
		},
		{
			name:      "top-level array",
			body:      `[1,2,3]`,
			wantCount: 0,
			wantKnown: false,
		},
		{
			name:      "errors is not an array",
			body:      `{"errors":"boom"}`,
			wantCount: 0,
			wantKnown: false,
		},
		{
			name:      "errors is an object",
			body:      `{"errors":{"message":"x"}}`,
			wantCount: 0,
			wantKnown: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, known := ErrorCount(tt.body)
			if count != tt.wantCount || known != tt.wantKnown {
				t.Errorf("ErrorCount(%q) = (%d, %v), want (%d, %v)",
					tt.body, count, known, tt.wantCount, tt.wantKnown)
			}
		})
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{0, "0 bytes"},
		{1, "1 bytes"},
		{999, "999 bytes"},
		{1000, "1.0 kb"},
		{1500, "1.5 kb"},
		{999949, "999.9 kb"},
		{1000000, "1.0 Mb"},
		{1500000, "1.5 Mb"},
		{2300000000, "2.3 Gb"},
		{1000000000000, "1.0 Tb"},
	}

	for _, tt := range tests {
		got := FormatSize(tt.bytes)
		if got != tt.expected {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.bytes, got, tt.expected)
		}
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name       string
		file       string
		elapsed    time.Duration
		size       int64
		errorCount int
		countKnown bool
		expected   string
	}{
		{
			name:       "no errors",
			file:       "query.graphql",
			elapsed:    42 * time.Millisecond,
			size:       512,
			errorCount: 0,
			countKnown: true,
			expected:   "query.graphql: 42 ms execution time, 512 bytes response",
		},
		{
			name:       "single error",
			file:       "query.graphql",
			elapsed:    1200 * time.Millisecond,
			size:       1500,
			errorCount: 1,
			countKnown: true,
			expected:   "query.graphql: 1200 ms execution time, 1.5 kb response, 1 error",
		},
		{
			name:       "multiple errors",
			file:       "q.graphql",
			elapsed:    5 * time.Millisecond,
			size:       2000000,
			errorCount: 3,
			countKnown: true,
			expected:   "q.graphql: 5 ms execution time, 2.0 Mb response, 3 errors",
		},
		{
			name:       "unknown count omitted",
			file:       "q.graphql",
			elapsed:    5 * time.Millisecond,
			size:       100,
			errorCount: 7,
			countKnown: false,
			expected:   "q.graphql: 5 ms execution time, 100 bytes response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Describe(tt.file, tt.elapsed, tt.size, tt.errorCount, tt.countKnown)
			if got != tt.expected {
				t.Errorf("Describe() = %q, want %q", got, tt.expected)
			}
		})
	}
}
