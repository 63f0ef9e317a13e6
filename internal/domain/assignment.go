package domain

import (
	"time"
)

// Assignment связывает заявку со специалистом. У заявки не более одного
// назначения (уникальный индекс по request_id), у специалиста не может быть
// двух назначений с пересекающимися интервалами заявок.
type Assignment struct {
	ID         int64     `json:"id"`
	RequestID  int64     `json:"request_id"`
	ProviderID int64     `json:"provider_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Provider *Provider    `json:"provider,omitempty"`
	Request  *CareRequest `json:"request,omitempty"`
}

type CreateAssignmentDTO struct {
	RequestID  int64 `json:"request_id" binding:"required"`
	ProviderID int64 `json:"provider_id" binding:"required"`
}

type UpdateAssignmentDTO struct {
	ProviderID int64 `json:"provider_id" binding:"required"`
}

type AssignmentFilter struct {
	ProviderID *int64 `json:"provider_id"`
	FamilyID   *int64 `json:"family_id"`
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
}

// ProviderAssignment — назначение вместе с интервалом своей заявки, в том
// виде, в котором его отдаёт хранилище для проверки конфликтов.
type ProviderAssignment struct {
	Assignment
	CareType  string    `json:"care_type"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

func (a *ProviderAssignment) Interval() Interval {
	return Interval{Start: a.StartTime, End: a.EndTime}
}
