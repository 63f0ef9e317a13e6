package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func interval(startHour, endHour int) Interval {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	return Interval{
		Start: day.Add(time.Duration(startHour) * time.Hour),
		End:   day.Add(time.Duration(endHour) * time.Hour),
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"частичное пересечение", interval(10, 12), interval(11, 13), true},
		{"вложенный интервал", interval(9, 18), interval(11, 13), true},
		{"идентичные интервалы", interval(10, 12), interval(10, 12), true},
		{"стык конец-в-начало", interval(10, 12), interval(12, 14), true},
		{"раздельные интервалы", interval(9, 10), interval(11, 12), false},
		{"час между интервалами", interval(12, 14), interval(15, 16), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a, tt.b))
			assert.Equal(t, tt.want, Overlaps(tt.b, tt.a), "пересечение симметрично")
		})
	}
}
