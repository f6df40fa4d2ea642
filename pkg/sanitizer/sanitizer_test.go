package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trim spaces", "  follow-up visit  ", "follow-up visit"},
		{"collapse whitespace", "chest\t\n pain", "chest pain"},
		{"drop control characters", "fever\x00\x07 since monday", "fever since monday"},
		{"empty", "   ", ""},
		{"unicode preserved", " Café ", "Café"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeText(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, SanitizeText(got), "must be idempotent")
		})
	}
}

func TestSanitizeClock(t *testing.T) {
	assert.Equal(t, "09:05", SanitizeClock("9:05"))
	assert.Equal(t, "09:05", SanitizeClock(" 09:05 "))
	assert.Equal(t, "9h05", SanitizeClock("9h05"))
	assert.Equal(t, "", SanitizeClock(""))
}

func TestSanitizeRange(t *testing.T) {
	assert.Equal(t, "09:00-12:00", SanitizeRange("9:00 - 12:00"))
	assert.Equal(t, "morning", SanitizeRange(" morning "))
}

func TestNormalizeSchedule(t *testing.T) {
	got := NormalizeSchedule(map[string][]string{
		"monday":  {"9:00-12:00", "09:00-12:00", ""},
		"Tuesday": {"14:00 - 17:00"},
	})

	assert.Equal(t, map[string][]string{
		"Monday":  {"09:00-12:00"},
		"Tuesday": {"14:00-17:00"},
	}, got)
	assert.Nil(t, NormalizeSchedule(nil))
}

func TestNormalizeStringSlice(t *testing.T) {
	assert.Equal(t, []string{}, NormalizeStringSlice(nil, SanitizeText))
	assert.Equal(t, []string{"a", "b"}, NormalizeStringSlice([]string{" a", "a ", "", "b"}, SanitizeText))
}
