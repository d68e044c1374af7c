package form

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"

	"github.com/modesq/dynamic-form-fullstack-app/internal/core"
)

// SummaryLine is one labelled value of a submitted payload.
type SummaryLine struct {
	Label string
	Value string
}

// payload keys shown first, in this order
var summaryOrder = []string{"fullName", "email", "gender", "loveReactFlag"}

// Summary lists a submitted payload for display. Known keys come first,
// the rest follow alphabetically.
func Summary(payload core.Payload) []SummaryLine {
	keys := make([]string, 0, len(payload))
	seen := make(map[string]bool, len(summaryOrder))
	for _, k := range summaryOrder {
		if _, ok := payload[k]; ok {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	var rest []string
	for k := range payload {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	keys = append(keys, rest...)

	lines := make([]SummaryLine, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, SummaryLine{Label: FormatFieldName(k), Value: FormatFieldValue(payload[k])})
	}
	return lines
}

// WriteSummary prints Summary(payload) as "Label: value" lines.
func WriteSummary(w io.Writer, payload core.Payload) error {
	for _, line := range Summary(payload) {
		if _, err := fmt.Fprintf(w, "%s: %s\n", line.Label, line.Value); err != nil {
			return err
		}
	}
	return nil
}

// FormatFieldName splits a camelCase key into capitalised words:
// "loveReactFlag" becomes "Love React Flag".
func FormatFieldName(key string) string {
	var words []string
	var cur []rune
	for _, r := range key {
		if unicode.IsUpper(r) && len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
		cur = append(cur, r)
	}
	if len(cur) > 0 {
		words = append(words, string(cur))
	}
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// FormatFieldValue renders booleans as Yes/No and everything else as text.
func FormatFieldValue(v any) string {
	switch val := v.(type) {
	case bool:
		if val {
			return "Yes"
		}
		return "No"
	case nil:
		return ""
	default:
		return fmt.Sprint(val)
	}
}
