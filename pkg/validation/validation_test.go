package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slotRequest struct {
	Date string `json:"date" validate:"required,ymd"`
	From string `json:"from" validate:"required,hhmm"`
}

func TestTags(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	assert.NoError(t, v.Struct(slotRequest{Date: "2025-06-10", From: "9:30"}))

	err = v.Struct(slotRequest{Date: "2025-13-10", From: "24:00"})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	translated := Translate(verrs)
	require.Len(t, translated, 2)
	assert.Equal(t, "date", translated[0].Field)
	assert.Contains(t, translated[0].Message, "YYYY-MM-DD")
	assert.Equal(t, "from", translated[1].Field)
	assert.Contains(t, translated[1].Message, "HH:MM")
	assert.Equal(t, "date", translated.Details()["field"])
}

func TestIsHHMM(t *testing.T) {
	for _, ok := range []string{"00:00", "9:05", "23:59", "12:30"} {
		assert.True(t, IsHHMM(ok), ok)
	}
	for _, bad := range []string{"", "24:00", "12:60", "1230", "12:3", "ab:cd"} {
		assert.False(t, IsHHMM(bad), bad)
	}
}
