package domain

import (
	"time"
)

type Family struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Consistency bool      `json:"consistency"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateFamilyDTO struct {
	Name        string `json:"name" binding:"required"`
	Consistency bool   `json:"consistency"`
}

type UpdateFamilyDTO struct {
	Name        *string `json:"name"`
	Consistency *bool   `json:"consistency"`
}
