package storage

import (
	"os"
	"regexp"
	"strings"
)

// varPattern matches {{VAR_NAME}} or {{env:VAR_NAME}}
var varPattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// SubstituteVariables replaces {{VAR}} placeholders with values from the
// provided map, and {{env:VAR}} placeholders with process environment
// variables. Unresolved placeholders are kept as written.
func SubstituteVariables(text string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(text, func(match string) string {
		varName := strings.TrimPrefix(strings.TrimSuffix(match, "}}"), "{{")
		varName = strings.TrimSpace(varName)

		if strings.HasPrefix(varName, "env:") {
			sysVar := strings.TrimPrefix(varName, "env:")
			if val := os.Getenv(sysVar); val != "" {
				return val
			}
			return match
		}

		if val, ok := vars[varName]; ok {
			return val
		}

		return match
	})
}

// expandEntry substitutes variables in an entry's URL and in every string
// value of its options tree. Non-string leaves pass through unchanged.
func expandEntry(e Entry, vars map[string]string) Entry {
	expanded := Entry{
		Name: e.Name,
		URL:  SubstituteVariables(e.URL, vars),
	}
	if e.Options != nil {
		expanded.Options = expandValue(e.Options, vars).(map[string]any)
	}
	return expanded
}

func expandValue(v any, vars map[string]string) any {
	switch val := v.(type) {
	case string:
		return SubstituteVariables(val, vars)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[k] = expandValue(inner, vars)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = expandValue(inner, vars)
		}
		return out
	default:
		return v
	}
}
