package domain

import (
	"fmt"
	"strings"
)

// WeekAvailability — недельное расписание специалиста: день недели ->
// упорядоченный список слотов. Отсутствующий или пустой день означает
// "недоступен". Хранится в postgres как jsonb.
type WeekAvailability map[string][]TimeSlot

var weekdays = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

func IsWeekday(name string) bool {
	name = strings.ToLower(name)
	for _, d := range weekdays {
		if d == name {
			return true
		}
	}
	return false
}

// AvailableOn сообщает, есть ли у специалиста хотя бы один слот в указанный
// день. Имя дня нечувствительно к регистру.
func (w WeekAvailability) AvailableOn(day string) bool {
	if w == nil {
		return false
	}
	return len(w[strings.ToLower(day)]) > 0
}

// AvailableAt проверяет, что хотя бы один слот указанного дня содержит час.
func (w WeekAvailability) AvailableAt(day string, hour int) bool {
	if w == nil {
		return false
	}
	for _, slot := range w[strings.ToLower(day)] {
		if slot.ContainsHour(hour) {
			return true
		}
	}
	return false
}

// AvailableAtAnyDay проверяет час по всем дням недели. Используется, когда
// фильтр по времени задан без фильтра по дню.
func (w WeekAvailability) AvailableAtAnyDay(hour int) bool {
	if w == nil {
		return false
	}
	for _, slots := range w {
		for _, slot := range slots {
			if slot.ContainsHour(hour) {
				return true
			}
		}
	}
	return false
}

// Validate проверяет расписание на границе хранилища: ключи должны быть
// английскими названиями дней недели, все слоты — разбираемыми парами часов.
// Некорректные данные отклоняются при создании и обновлении, чтобы функции
// подбора могли считать расписание well-formed.
func (w WeekAvailability) Validate() error {
	for day, slots := range w {
		if !IsWeekday(day) {
			return fmt.Errorf("%w: неизвестный день недели %q", ErrInvalidInput, day)
		}
		if day != strings.ToLower(day) {
			return fmt.Errorf("%w: день недели %q должен быть в нижнем регистре", ErrInvalidInput, day)
		}
		for _, slot := range slots {
			if _, _, ok := slot.Parse(); !ok {
				return fmt.Errorf("%w: нечитаемый слот %q для дня %s", ErrInvalidInput, slot, day)
			}
		}
	}
	return nil
}
