package domain

import (
	"time"
)

// CareRequest — заявка семьи на уход в абсолютном интервале времени.
// Заявка принадлежит ровно одной семье и имеет не более одного назначения.
type CareRequest struct {
	ID        int64     `json:"id"`
	FamilyID  int64     `json:"family_id"`
	CareType  string    `json:"care_type"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Family     *Family     `json:"family,omitempty"`
	Assignment *Assignment `json:"assignment,omitempty"`
}

func (r *CareRequest) Interval() Interval {
	return Interval{Start: r.StartTime, End: r.EndTime}
}

type CreateRequestDTO struct {
	FamilyID  int64     `json:"family_id" binding:"required"`
	CareType  string    `json:"care_type" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required,gtfield=StartTime"`
}

type RequestFilter struct {
	FamilyID  *int64     `json:"family_id"`
	CareType  *string    `json:"care_type"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
}
