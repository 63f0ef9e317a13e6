package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSlotParse(t *testing.T) {
	tests := []struct {
		slot      TimeSlot
		wantStart int
		wantEnd   int
		wantOK    bool
	}{
		{"9-17", 9, 17, true},
		{"20-8", 20, 8, true},
		{"17-25", 17, 25, true},
		{" 9 - 17 ", 9, 17, true},
		{"0-23", 0, 23, true},
		{"nine-five", 0, 0, false},
		{"9", 0, 0, false},
		{"", 0, 0, false},
		{"9-", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.slot), func(t *testing.T) {
			start, end, ok := tt.slot.Parse()
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantStart, start)
				assert.Equal(t, tt.wantEnd, end)
			}
		})
	}
}

func TestTimeSlotContainsHourDaytime(t *testing.T) {
	slot := TimeSlot("9-17")

	assert.True(t, slot.ContainsHour(9), "начальная граница включительна")
	assert.True(t, slot.ContainsHour(17), "конечная граница включительна")
	assert.True(t, slot.ContainsHour(12))

	assert.False(t, slot.ContainsHour(8))
	assert.False(t, slot.ContainsHour(18))
	assert.False(t, slot.ContainsHour(0))
}

func TestTimeSlotContainsHourOvernight(t *testing.T) {
	slot := TimeSlot("20-8")

	for _, hour := range []int{20, 23, 0, 3, 8} {
		assert.True(t, slot.ContainsHour(hour), "час %d должен попадать в ночной слот", hour)
	}

	for _, hour := range []int{9, 12, 19} {
		assert.False(t, slot.ContainsHour(hour), "час %d не должен попадать в ночной слот", hour)
	}
}

func TestTimeSlotContainsHourWrappedEnd(t *testing.T) {
	// "17-25" эквивалентен "17-1": конец за полуночью нормализуется
	slot := TimeSlot("17-25")

	for _, hour := range []int{17, 20, 23, 0, 1} {
		assert.True(t, slot.ContainsHour(hour), "час %d", hour)
	}

	for _, hour := range []int{2, 9, 16} {
		assert.False(t, slot.ContainsHour(hour), "час %d", hour)
	}
}

func TestTimeSlotContainsHourOutOfRange(t *testing.T) {
	slot := TimeSlot("9-17")

	assert.False(t, slot.ContainsHour(-1))
	assert.False(t, slot.ContainsHour(24))
	assert.False(t, slot.ContainsHour(100))
}

func TestTimeSlotContainsHourUnparsable(t *testing.T) {
	for _, raw := range []string{"", "morning", "9", "a-b"} {
		assert.False(t, TimeSlot(raw).ContainsHour(10), "слот %q", raw)
	}
}

func TestTimeSlotIsOvernight(t *testing.T) {
	assert.False(t, TimeSlot("9-17").IsOvernight())
	assert.True(t, TimeSlot("20-8").IsOvernight())
	assert.True(t, TimeSlot("17-25").IsOvernight())
	assert.False(t, TimeSlot("junk").IsOvernight())
}

func TestIsHourInSlot(t *testing.T) {
	assert.True(t, IsHourInSlot(10, "9-17"))
	assert.False(t, IsHourInSlot(8, "9-17"))
	assert.True(t, IsHourInSlot(0, "20-8"))
}
