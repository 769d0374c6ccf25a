package service

import (
	"context"

	"github.com/maanvikp20/promosite/internal/models"
	"github.com/maanvikp20/promosite/internal/repository"
)

const (
	DefaultProductLimit = 20
	pageWindow          = 5
)

type ProductService struct {
	products *repository.ProductRepo
}

func NewProductService(products *repository.ProductRepo) *ProductService {
	return &ProductService{products: products}
}

// Page returns one page of the catalog. Out of range pages are clamped.
func (s *ProductService) Page(ctx context.Context, page, limit int) (*models.ProductPage, error) {
	cat, err := s.products.Load(ctx)
	if err != nil {
		return nil, internal("Server failed to read products", err)
	}
	return paginate(cat, page, limit), nil
}

func paginate(cat *models.Catalog, page, limit int) *models.ProductPage {
	if limit <= 0 {
		limit = DefaultProductLimit
	}
	n := len(cat.Products)
	total := cat.TotalProducts
	if total <= 0 {
		total = n
	}

	totalPages := (n + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}
	page = max(1, min(page, totalPages))

	start := min((page-1)*limit, n)
	end := min(page*limit, n)

	return &models.ProductPage{
		Products:      cat.Products[start:end],
		Page:          page,
		Limit:         limit,
		TotalPages:    totalPages,
		TotalProducts: total,
		Showing:       end,
		Pages:         window(page, totalPages),
		HasPrev:       page > 1,
		HasNext:       page < totalPages,
	}
}

// window lists at most pageWindow page numbers around page, shifted back
// when page is near the end.
func window(page, totalPages int) []int {
	if totalPages <= 1 {
		return []int{}
	}
	start := max(1, page-pageWindow/2)
	end := min(totalPages, start+pageWindow-1)
	start = max(1, end-pageWindow+1)

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}
