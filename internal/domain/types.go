package domain

// ID is used across domain entities.
type ID int64

// Pagination carries paging params and totals for list endpoints.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total,omitempty"`
}
