package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUserNotFound       = errors.New("пользователь не найден")
	ErrFamilyNotFound     = errors.New("семья не найдена")
	ErrProviderNotFound   = errors.New("специалист не найден")
	ErrRequestNotFound    = errors.New("заявка не найдена")
	ErrAssignmentNotFound = errors.New("назначение не найдено")

	ErrAlreadyAssigned = errors.New("для заявки уже есть назначение")
	ErrInvalidInput    = errors.New("некорректные входные данные")

	ErrInvalidCredentials = errors.New("неверный логин или пароль")
	ErrSessionExpired     = errors.New("сессия истекла")
)

// SchedulingConflictError возвращается, когда специалист уже занят в
// пересекающемся интервале. Несёт данные конфликтующей заявки для показа
// пользователю.
type SchedulingConflictError struct {
	AssignmentID int64
	CareType     string
	Start        time.Time
	End          time.Time
}

func (e *SchedulingConflictError) Error() string {
	return fmt.Sprintf("конфликт расписания: специалист уже назначен на %q с %s по %s",
		e.CareType,
		e.Start.Format(time.RFC3339),
		e.End.Format(time.RFC3339),
	)
}
