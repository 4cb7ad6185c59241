package models

// Page is the server's pagination envelope. The backend serves Spring-style
// pages: a content slice plus element/page totals.
type Page[T any] struct {
	Content       []T `json:"content"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Number        int `json:"number"`
}

// HasNext reports whether a page after this one exists according to the
// server-reported page count.
func (p Page[T]) HasNext() bool {
	return p.Number < p.TotalPages-1
}
