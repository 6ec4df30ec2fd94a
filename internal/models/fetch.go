package models

import "time"

// FetchSource - откуда взяты инциденты в результате выборки
type FetchSource string

const (
	SourceFetched FetchSource = "fetched"
	SourceCached  FetchSource = "cached"
)

// Cursor - состояние постраничной выборки.
// Всегда Page <= TotalPages и TotalPages >= 1.
type Cursor struct {
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
	Category   string `json:"category"`
}

// HasMore сообщает, есть ли следующая страница
func (c Cursor) HasMore() bool {
	return c.Page < c.TotalPages
}

// FetchResult - результат выборки списка инцидентов
type FetchResult struct {
	Items      []Incident
	Page       int
	TotalPages int
	Category   string
	Source     FetchSource
	FetchedAt  time.Time
}

// Stale сообщает, что данные отданы из кэша после неудачного запроса
func (r *FetchResult) Stale() bool {
	return r.Source == SourceCached
}
