package dto

// Paging describes the position of a result page.
type Paging struct {
	Page      int   `json:"page"`
	TotalPage int   `json:"total_page"`
	TotalItem int64 `json:"total_item"`
}

// Pageable is the standard list envelope: {data, paging}.
type Pageable[T any] struct {
	Data   []T    `json:"data"`
	Paging Paging `json:"paging"`
}

// NewPageable computes total_page from the item count and page size.
func NewPageable[T any](data []T, page, size int, totalItem int64) *Pageable[T] {
	totalPage := int(totalItem) / size
	if int(totalItem)%size != 0 {
		totalPage++
	}
	return &Pageable[T]{
		Data:   data,
		Paging: Paging{Page: page, TotalPage: totalPage, TotalItem: totalItem},
	}
}
