package repository

import (
	"context"

	"github.com/maanvikp20/promosite/internal/apperr"
	"github.com/maanvikp20/promosite/internal/db"
	"github.com/maanvikp20/promosite/internal/models"
)

const (
	SubmissionsCollection = "submissions"
	ApprovedCollection    = "approved"
)

// SubmissionRepo manages pending submissions and the approved store they
// are moved into.
type SubmissionRepo struct {
	*RecordRepo
	approved *RecordRepo
}

func NewSubmissionRepo(submissions, approved *db.Collection) *SubmissionRepo {
	return &SubmissionRepo{
		RecordRepo: NewRecordRepo(submissions, "Submission"),
		approved:   NewRecordRepo(approved, "Approved submission"),
	}
}

// Approved exposes read access to the approved store.
func (r *SubmissionRepo) Approved() *RecordRepo {
	return r.approved
}

// Create stores a new submission. An id already taken in either store is a
// conflict, otherwise the record could never be approved.
func (r *SubmissionRepo) Create(ctx context.Context, rec models.Record) error {
	id := rec.ID()
	return r.c.UpdateWith(ctx, r.approved.c, func(records, approved []models.Record) ([]models.Record, error) {
		if indexOf(records, id) >= 0 || indexOf(approved, id) >= 0 {
			return nil, apperr.Conflict("ID already exists")
		}
		return append(records, rec), nil
	})
}

// FindByStatus filters pending submissions; an empty status returns all.
func (r *SubmissionRepo) FindByStatus(ctx context.Context, status models.Status) ([]models.Record, error) {
	all, err := r.FindAll(ctx)
	if err != nil || status == "" {
		return all, err
	}
	out := make([]models.Record, 0, len(all))
	for _, rec := range all {
		if models.StatusOf(rec) == status {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Approve moves the submission into the approved store after mutate has
// stamped it. The record leaves the source only if the destination write
// succeeded.
func (r *SubmissionRepo) Approve(ctx context.Context, id string, mutate func(models.Record) error) (models.Record, error) {
	var moved models.Record
	err := r.c.Move(ctx, r.approved.c, func(src, dst []models.Record) ([]models.Record, []models.Record, error) {
		idx := indexOf(src, id)
		if idx < 0 {
			return nil, nil, r.notFound()
		}
		if indexOf(dst, id) >= 0 {
			return nil, nil, apperr.Conflict("Submission already approved")
		}
		rec := src[idx].Clone()
		if err := mutate(rec); err != nil {
			return nil, nil, err
		}
		moved = rec
		return without(src, idx), append(dst, rec), nil
	})
	return moved, err
}
