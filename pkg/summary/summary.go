// Package summary condenses a raw GraphQL response into the short result
// line shown next to the query result: execution time, payload size, and
// how many errors the server reported.
package summary

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// ErrorCount extracts the number of entries in the response's "errors" array.
// The second return value is false when the count is unknown: the body is not
// valid JSON, is not an object, or carries an "errors" value that is not an
// array. A parseable object without an "errors" key counts as zero errors.
func ErrorCount(body string) (int, bool) {
	if !gjson.Valid(body) {
		return 0, false
	}

	root := gjson.Parse(body)
	if !root.IsObject() {
		return 0, false
	}

	errs := root.Get("errors")
	if !errs.Exists() {
		return 0, true
	}
	if !errs.IsArray() {
		return 0, false
	}
	return len(errs.Array()), true
}

// FormatSize renders a byte count for display: "999 bytes", "1.0 kb",
// "1.5 Mb". Decimal thousands, one decimal place, scale symbols k through E.
func FormatSize(bytes int64) string {
	if bytes < 1000 {
		return fmt.Sprintf("%d bytes", bytes)
	}

	exp := int(math.Log(float64(bytes)) / math.Log(1000))
	if exp > 6 {
		exp = 6
	}
	pre := "kMGTPE"[exp-1]
	return fmt.Sprintf("%.1f %cb", float64(bytes)/math.Pow(1000, float64(exp)), pre)
}

// Describe builds the result line for a completed query: source name, elapsed
// wall-clock time, response size, and the error count when it is known and
// non-zero.
func Describe(name string, elapsed time.Duration, size int64, errorCount int, countKnown bool) string {
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteString(": ")
	sb.WriteString(fmt.Sprintf("%d ms execution time, ", elapsed.Milliseconds()))
	sb.WriteString(FormatSize(size))
	sb.WriteString(" response")

	if countKnown && errorCount > 0 {
		sb.WriteString(fmt.Sprintf(", %d error", errorCount))
		if errorCount > 1 {
			sb.WriteString("s")
		}
	}

	return sb.String()
}
