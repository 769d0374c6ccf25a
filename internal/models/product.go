package models

// Catalog is the products document shown on the landing page.
type Catalog struct {
	Products      []Record `json:"products"`
	TotalProducts int      `json:"totalProducts,omitempty"`
}

// ProductPage is one page of the catalog plus the pagination window the
// page buttons are drawn from.
type ProductPage struct {
	Products      []Record `json:"products"`
	Page          int      `json:"page"`
	Limit         int      `json:"limit"`
	TotalPages    int      `json:"totalPages"`
	TotalProducts int      `json:"totalProducts"`
	Showing       int      `json:"showing"`
	Pages         []int    `json:"pages"`
	HasPrev       bool     `json:"hasPrev"`
	HasNext       bool     `json:"hasNext"`
}
