package core

import (
	"sort"
	"strings"
	"unicode"

	"github.com/modesq/dynamic-form-fullstack-app/internal/domain"
)

// Payload is the JSON body sent to the submission endpoint.
type Payload map[string]any

// Known display names and the payload keys they map to.
const (
	keyFullName      = "fullName"
	keyEmail         = "email"
	keyGender        = "gender"
	keyLoveReactFlag = "loveReactFlag"
)

// TransformSubmission reshapes an answer set keyed by display name into the
// payload the backend expects. Blank answers are dropped first. Known labels
// are renamed case-insensitively; everything else is camel-cased.
//
// Labels are visited in sorted order so colliding labels always resolve the
// same way: an explicit rename beats a camel-cased label for the same key, and
// between two labels of the same kind the first in sorted order wins.
func TransformSubmission(answers domain.AnswerSet) Payload {
	names := make([]string, 0, len(answers))
	for name, value := range answers {
		if strings.TrimSpace(value) != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	payload := make(Payload, len(names))
	var fallback []string
	for _, name := range names {
		key, ok := knownKey(name)
		if !ok {
			fallback = append(fallback, name)
			continue
		}
		if _, taken := payload[key]; taken {
			continue
		}
		if key == keyLoveReactFlag {
			payload[key] = IsAffirmative(answers[name])
		} else {
			payload[key] = answers[name]
		}
	}

	for _, name := range fallback {
		key := CamelCase(name)
		if key == "" {
			continue
		}
		if _, taken := payload[key]; taken {
			continue
		}
		payload[key] = answers[name]
	}
	return payload
}

func knownKey(name string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "full name":
		return keyFullName, true
	case "email":
		return keyEmail, true
	case "gender":
		return keyGender, true
	case "love react?":
		return keyLoveReactFlag, true
	}
	return "", false
}

// IsAffirmative maps yes/no answers onto a boolean. Only the exact option
// text "Yes" or a stored boolean "true" count as yes.
func IsAffirmative(value string) bool {
	return value == "Yes" || value == "true"
}

// CamelCase turns a display label like "Favourite Color" into "favouriteColor".
// Characters that are neither letters nor digits are removed.
func CamelCase(name string) string {
	var b strings.Builder
	for i, word := range strings.Fields(name) {
		word = strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				return r
			}
			return -1
		}, word)
		if word == "" {
			continue
		}

		runes := []rune(word)
		if i == 0 || b.Len() == 0 {
			runes[0] = unicode.ToLower(runes[0])
		} else {
			runes[0] = unicode.ToUpper(runes[0])
		}
		b.WriteString(string(runes))
	}
	return b.String()
}
