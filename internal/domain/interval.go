package domain

import (
	"time"
)

// Interval — абсолютный интервал времени заявки.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps проверяет пересечение двух закрытых интервалов: интервалы,
// соприкасающиеся только границей, считаются пересекающимися. Это
// единственная точка определения конфликта — создание, обновление и ручное
// назначение используют только её.
func Overlaps(a, b Interval) bool {
	return !a.Start.After(b.End) && !b.Start.After(a.End)
}
