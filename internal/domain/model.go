package domain

import "time"

// BaseModel is the common base struct for all domain models.
// It replaces gorm.Model to avoid the implicit soft delete behavior of DeletedAt.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PageRequest is the normalized pagination and ordering directive for a
// listing query. Limit is always within [1, 100]; Offset is never negative;
// Page and Offset satisfy Offset == (Page-1)*Limit when the client paged by
// page number.
type PageRequest struct {
	Limit  int
	Offset int
	Page   int
	Sort   string
	Order  string
}

// FilterSet holds the recognized filter parameters extracted from a listing
// request. Zero values mean "not supplied". Unparseable dates are dropped at
// parse time, so DateFrom/DateTo are either nil or valid.
type FilterSet struct {
	Status     string     `json:"status,omitempty"`
	Search     string     `json:"search,omitempty"`
	DateFrom   *time.Time `json:"date_from,omitempty"`
	DateTo     *time.Time `json:"date_to,omitempty"`
	CreatedBy  string     `json:"created_by,omitempty"`
	AssignedTo string     `json:"assigned_to,omitempty"`
}

// PaginationMeta describes the position of a page within the filtered result
// set. Total reflects the same filter predicates as the page data.
type PaginationMeta struct {
	Total       int64 `json:"total"`
	Limit       int   `json:"limit"`
	Offset      int   `json:"offset"`
	Page        int   `json:"page"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// PageResult is the envelope returned by paginated listings. Filters echoes
// back the filter set that produced the page so dashboard clients can render
// active filters without re-parsing the URL.
type PageResult[T any] struct {
	Data       []T            `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
	Filters    FilterSet      `json:"filters"`
}
