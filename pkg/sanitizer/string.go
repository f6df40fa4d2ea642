package sanitizer

import (
	"regexp"
	"strings"
	"unicode"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var reClock = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func dropControl(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// SanitizeText is used for reasons, titles and qualifications.
func SanitizeText(input string) string {
	return Pipeline{dropControl, TrimAndNormalize}.Apply(input)
}

// SanitizeClock zero-pads the hour of an "H:MM" time.
func SanitizeClock(input string) string {
	s := strings.TrimSpace(input)
	m := reClock.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	if len(m[1]) == 1 {
		return "0" + m[1] + ":" + m[2]
	}
	return s
}

// SanitizeRange canonicalizes "9:00 - 12:00" to "09:00-12:00".
func SanitizeRange(input string) string {
	from, to, ok := strings.Cut(input, "-")
	if !ok {
		return strings.TrimSpace(input)
	}
	return SanitizeClock(from) + "-" + SanitizeClock(to)
}

// SanitizeWeekday title-cases a weekday name ("monday" -> "Monday").
func SanitizeWeekday(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
