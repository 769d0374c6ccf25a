package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/maanvikp20/promosite/internal/models"
)

// ProductRepo reads the read-only product catalog document.
type ProductRepo struct {
	path string
}

func NewProductRepo(path string) *ProductRepo {
	return &ProductRepo{path: path}
}

// Load returns an empty catalog when the file does not exist.
func (r *ProductRepo) Load(ctx context.Context) (*models.Catalog, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &models.Catalog{Products: []models.Record{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var cat models.Catalog
	if err := dec.Decode(&cat); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.path, err)
	}
	if cat.Products == nil {
		cat.Products = []models.Record{}
	}
	return &cat, nil
}
