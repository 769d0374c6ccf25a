// Package db holds the record stores. A store is one ordered collection of
// records that is always read whole and written whole.
package db

import (
	"context"
	"errors"

	"github.com/maanvikp20/promosite/internal/models"
)

// ErrCorrupt is returned by Load when the backing data cannot be decoded.
var ErrCorrupt = errors.New("store data is corrupt")

// Backend is the minimal storage contract: get everything, replace
// everything. Missing data loads as an empty collection.
type Backend interface {
	Load(ctx context.Context) ([]models.Record, error)
	Save(ctx context.Context, records []models.Record) error
}
