package domain

import (
	"strconv"
	"strings"
)

// TimeSlot — текстовый интервал доступности вида "9-17".
// Конец может быть >= 24, что означает переход на следующий день ("17-25").
type TimeSlot string

// Parse разбирает слот на начальный и конечный час.
// Слот с нечисловыми границами считается некорректным: он не вызывает
// ошибку, а просто никогда не совпадает ни с одним часом.
func (s TimeSlot) Parse() (start, end int, ok bool) {
	parts := strings.SplitN(string(s), "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}

	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}

	end, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}

	return start, end, true
}

// IsOvernight сообщает, переходит ли слот через полночь.
func (s TimeSlot) IsOvernight() bool {
	start, end, ok := s.Parse()
	if !ok {
		return false
	}
	return end >= 24 || normalizeHour(end) < normalizeHour(start)
}

// ContainsHour проверяет, попадает ли час в слот. Границы включительны:
// специалист со слотом "9-17" доступен и в 9, и в 17. Час вне диапазона
// 0-23 не совпадает никогда.
func (s TimeSlot) ContainsHour(hour int) bool {
	if hour < 0 || hour > 23 {
		return false
	}

	rawStart, rawEnd, ok := s.Parse()
	if !ok {
		return false
	}

	start := normalizeHour(rawStart)
	end := normalizeHour(rawEnd)

	if rawEnd >= 24 || end < start {
		// ночной слот: интервал через полночь
		return hour >= start || hour <= end
	}

	return hour >= start && hour <= end
}

// IsHourInSlot — вспомогательная форма ContainsHour для внешних вызовов.
func IsHourInSlot(hour int, slot string) bool {
	return TimeSlot(slot).ContainsHour(hour)
}

func normalizeHour(h int) int {
	return ((h % 24) + 24) % 24
}
