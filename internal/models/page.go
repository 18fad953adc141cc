package models

import (
	"net/url"
	"strconv"
)

// SortOrder — направление сортировки в таблицах.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// PageQuery — параметры пагинации/сортировки/поиска списка.
type PageQuery struct {
	Page   int       `json:"page" validate:"gte=0"`
	Limit  int       `json:"limit" validate:"gte=0,lte=100"`
	Sort   string    `json:"sort,omitempty" validate:"omitempty,alphanum"`
	Order  SortOrder `json:"order,omitempty" validate:"omitempty,oneof=ASC DESC"`
	Search string    `json:"search,omitempty"`
}

// Values сериализует непустые параметры в query string.
func (q PageQuery) Values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}

	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}

	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}

	if q.Order != "" {
		v.Set("order", string(q.Order))
	}

	if q.Search != "" {
		v.Set("search", q.Search)
	}

	return v
}

// PageQueryFrom разбирает query string входящего запроса; мусор игнорируется.
func PageQueryFrom(v url.Values) PageQuery {
	q := PageQuery{
		Sort:   v.Get("sort"),
		Order:  SortOrder(v.Get("order")),
		Search: v.Get("search"),
	}

	if n, err := strconv.Atoi(v.Get("page")); err == nil {
		q.Page = n
	}

	if n, err := strconv.Atoi(v.Get("limit")); err == nil {
		q.Limit = n
	}

	return q
}

// PageMeta — метаданные страницы.
type PageMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Page — страница записей, как её отдаёт бэкенд.
type Page[T any] struct {
	Data []T      `json:"data" validate:"dive"`
	Meta PageMeta `json:"meta"`
}
