package domain

import (
	"time"
)

type Provider struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	Specialty    string           `json:"specialty"`
	Availability WeekAvailability `json:"availability"`
	PhotoURL     string           `json:"photo_url,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

type CreateProviderDTO struct {
	Name         string           `json:"name" binding:"required"`
	Specialty    string           `json:"specialty" binding:"required"`
	Availability WeekAvailability `json:"availability"`
}

type UpdateProviderDTO struct {
	Name         *string           `json:"name"`
	Specialty    *string           `json:"specialty"`
	Availability *WeekAvailability `json:"availability"`
}

// ProviderFilter — атрибутные фильтры, которые выполняются в хранилище.
type ProviderFilter struct {
	Specialty *string `json:"specialty"`
	Search    *string `json:"search"`
}

type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

type ProviderSortBy string

const (
	ProviderSortByName      ProviderSortBy = "name"
	ProviderSortBySpecialty ProviderSortBy = "specialty"
)

// ProviderQuery описывает один запрос пайплайна подбора: атрибутные фильтры,
// фильтр доступности, сортировка и пагинация.
type ProviderQuery struct {
	Specialty string
	Search    string
	Day       string
	Hour      *int
	SortBy    ProviderSortBy
	SortOrder SortOrder
	Page      int
	PageSize  int
}

// ProviderPage — страница результатов подбора. Total считается после всех
// фильтров, но до пагинации.
type ProviderPage struct {
	Items      []Provider `json:"items"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}
