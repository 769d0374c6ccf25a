package repository

import (
	"context"

	"github.com/maanvikp20/promosite/internal/apperr"
	"github.com/maanvikp20/promosite/internal/db"
	"github.com/maanvikp20/promosite/internal/models"
)

// RecordRepo implements create/read/update/delete over one collection.
// Entity names the records in error messages ("Student not found").
type RecordRepo struct {
	c      *db.Collection
	entity string
}

func NewRecordRepo(c *db.Collection, entity string) *RecordRepo {
	return &RecordRepo{c: c, entity: entity}
}

func (r *RecordRepo) notFound() error {
	return apperr.NotFound(r.entity + " not found")
}

func (r *RecordRepo) FindAll(ctx context.Context) ([]models.Record, error) {
	var out []models.Record
	err := r.c.View(ctx, func(records []models.Record) error {
		out = records
		return nil
	})
	return out, err
}

// FindByID returns nil, nil when no record has the id.
func (r *RecordRepo) FindByID(ctx context.Context, id string) (models.Record, error) {
	var out models.Record
	err := r.c.View(ctx, func(records []models.Record) error {
		if idx := indexOf(records, id); idx >= 0 {
			out = records[idx]
		}
		return nil
	})
	return out, err
}

func (r *RecordRepo) Count(ctx context.Context) (int, error) {
	n := 0
	err := r.c.View(ctx, func(records []models.Record) error {
		n = len(records)
		return nil
	})
	return n, err
}

// Create appends rec, rejecting an identifier that is already taken.
func (r *RecordRepo) Create(ctx context.Context, rec models.Record) error {
	id := rec.ID()
	return r.c.Update(ctx, func(records []models.Record) ([]models.Record, error) {
		if indexOf(records, id) >= 0 {
			return nil, apperr.Conflict("ID already exists")
		}
		return append(records, rec), nil
	})
}

// Update applies mutate to a copy of the record and saves it in place.
func (r *RecordRepo) Update(ctx context.Context, id string, mutate func(models.Record) error) (models.Record, error) {
	var updated models.Record
	err := r.c.Update(ctx, func(records []models.Record) ([]models.Record, error) {
		idx := indexOf(records, id)
		if idx < 0 {
			return nil, r.notFound()
		}
		rec := records[idx].Clone()
		if err := mutate(rec); err != nil {
			return nil, err
		}
		records[idx] = rec
		updated = rec
		return records, nil
	})
	return updated, err
}

// Delete removes the record and returns it.
func (r *RecordRepo) Delete(ctx context.Context, id string) (models.Record, error) {
	var removed models.Record
	err := r.c.Update(ctx, func(records []models.Record) ([]models.Record, error) {
		idx := indexOf(records, id)
		if idx < 0 {
			return nil, r.notFound()
		}
		removed = records[idx]
		return without(records, idx), nil
	})
	return removed, err
}
