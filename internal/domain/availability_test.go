package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekAvailabilityAvailableOn(t *testing.T) {
	w := WeekAvailability{
		"monday": {"9-17"},
		"friday": {},
	}

	assert.True(t, w.AvailableOn("monday"))
	assert.True(t, w.AvailableOn("Monday"), "имя дня нечувствительно к регистру")
	assert.False(t, w.AvailableOn("friday"), "пустой список слотов означает недоступность")
	assert.False(t, w.AvailableOn("sunday"))

	var empty WeekAvailability
	assert.False(t, empty.AvailableOn("monday"))
}

func TestWeekAvailabilityAvailableAt(t *testing.T) {
	w := WeekAvailability{
		"monday":   {"9-17"},
		"saturday": {"20-8"},
	}

	assert.True(t, w.AvailableAt("monday", 9))
	assert.True(t, w.AvailableAt("monday", 17))
	assert.False(t, w.AvailableAt("monday", 18))

	assert.True(t, w.AvailableAt("saturday", 23))
	assert.True(t, w.AvailableAt("saturday", 3))
	assert.False(t, w.AvailableAt("saturday", 12))

	assert.False(t, w.AvailableAt("tuesday", 10))
}

func TestWeekAvailabilityAvailableAtAnyDay(t *testing.T) {
	w := WeekAvailability{
		"monday": {"9-12"},
		"friday": {"14-18"},
	}

	assert.True(t, w.AvailableAtAnyDay(10))
	assert.True(t, w.AvailableAtAnyDay(16))
	assert.False(t, w.AvailableAtAnyDay(13))
	assert.False(t, w.AvailableAtAnyDay(20))
}

func TestWeekAvailabilityValidate(t *testing.T) {
	valid := WeekAvailability{
		"monday": {"9-17", "20-8"},
		"sunday": {},
	}
	require.NoError(t, valid.Validate())

	badDay := WeekAvailability{"someday": {"9-17"}}
	err := badDay.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)

	upperDay := WeekAvailability{"Monday": {"9-17"}}
	assert.ErrorIs(t, upperDay.Validate(), ErrInvalidInput)

	badSlot := WeekAvailability{"monday": {"morning"}}
	assert.ErrorIs(t, badSlot.Validate(), ErrInvalidInput)

	var empty WeekAvailability
	assert.NoError(t, empty.Validate())
}

func TestIsWeekday(t *testing.T) {
	assert.True(t, IsWeekday("monday"))
	assert.True(t, IsWeekday("Sunday"))
	assert.False(t, IsWeekday("someday"))
	assert.False(t, IsWeekday(""))
}
