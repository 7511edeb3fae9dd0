package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gqlpad/gqlpad/pkg/notify"
)

func TestQueryNotificationPrinter(t *testing.T) {
	var buf bytes.Buffer
	printer := queryNotificationPrinter(&buf)

	printer(notify.Notification{
		Title:    "GraphQL Query Error",
		Message:  "variables are not valid JSON",
		Severity: notify.SeverityError,
	})
	printer(notify.Notification{
		Title:    "GraphQL Query Error",
		Message:  "http://x/gql: connection refused",
		Severity: notify.SeverityWarning,
	})

	out := buf.String()
	if !strings.Contains(out, "variables are not valid JSON") {
		t.Errorf("error notification not printed: %q", out)
	}
	// Transport warnings stay silent: the command's returned error already
	// reports the failure, so printing the warning would show it twice.
	if strings.Contains(out, "connection refused") {
		t.Errorf("transport warning printed alongside the returned error: %q", out)
	}
	if lines := strings.Count(out, "\n"); lines != 1 {
		t.Errorf("printed %d lines, want 1: %q", lines, out)
	}
}
