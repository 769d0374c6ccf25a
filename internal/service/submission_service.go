package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/maanvikp20/promosite/internal/apperr"
	"github.com/maanvikp20/promosite/internal/models"
	"github.com/maanvikp20/promosite/internal/repository"
	"github.com/maanvikp20/promosite/internal/validation"
)

type SubmissionService struct {
	subs *repository.SubmissionRepo
	log  *zap.Logger
}

func NewSubmissionService(subs *repository.SubmissionRepo, log *zap.Logger) *SubmissionService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SubmissionService{subs: subs, log: log}
}

// Submit stores a contact form submission as pending. Any status the
// client sends is ignored.
func (s *SubmissionService) Submit(ctx context.Context, body map[string]any) (models.Record, error) {
	if err := validation.SubmissionCreate.Validate(body); err != nil {
		return nil, err
	}
	sub := models.Record(body).Clone()
	id := assignID(sub)
	ts := now()
	sub[models.SubmissionStatus] = string(models.StatusPending)
	sub[models.SubmissionSubmittedAt] = ts
	sub[models.SubmissionUpdatedAt] = ts
	delete(sub, models.SubmissionApprovedAt)

	if err := s.subs.Create(ctx, sub); err != nil {
		return nil, internal("Server failed to save submission", err)
	}
	s.log.Info("submission received", zap.String("id", id))
	return sub, nil
}

// List returns submissions, optionally filtered by status.
func (s *SubmissionService) List(ctx context.Context, status string) ([]models.Record, error) {
	if status != "" {
		if err := validation.SubmissionUpdate.Validate(map[string]any{models.SubmissionStatus: status}); err != nil {
			return nil, err
		}
	}
	subs, err := s.subs.FindByStatus(ctx, models.Status(status))
	if err != nil {
		return nil, internal("Server failed to read submissions", err)
	}
	return subs, nil
}

func (s *SubmissionService) Get(ctx context.Context, id string) (models.Record, error) {
	sub, err := s.subs.FindByID(ctx, id)
	if err != nil {
		return nil, internal("Server failed to read submissions", err)
	}
	if sub == nil {
		return nil, apperr.NotFound("Submission not found")
	}
	return sub, nil
}

// Update applies the supplied fields. Setting status to approved performs
// the approve-transition instead of an in-place edit.
func (s *SubmissionService) Update(ctx context.Context, id string, body map[string]any) (models.Record, error) {
	if err := validation.SubmissionUpdate.Validate(body); err != nil {
		return nil, err
	}
	if err := checkIDUnchanged(id, body); err != nil {
		return nil, err
	}
	body = withoutServerFields(body)
	if status, _ := body[models.SubmissionStatus].(string); models.Status(status) == models.StatusApproved {
		return s.approve(ctx, id, body)
	}

	sub, err := s.subs.Update(ctx, id, func(rec models.Record) error {
		rec.Merge(body)
		rec[models.SubmissionUpdatedAt] = now()
		return nil
	})
	if err != nil {
		return nil, internal("Server failed to update submission", err)
	}
	s.log.Info("submission updated", zap.String("id", id), zap.String("status", string(models.StatusOf(sub))))
	return sub, nil
}

func (s *SubmissionService) Delete(ctx context.Context, id string) (models.Record, error) {
	sub, err := s.subs.Delete(ctx, id)
	if err != nil {
		return nil, internal("Server failed to delete submission", err)
	}
	s.log.Info("submission deleted", zap.String("id", id))
	return sub, nil
}

// Approve moves a submission to the approved store.
func (s *SubmissionService) Approve(ctx context.Context, id string) (models.Record, error) {
	return s.approve(ctx, id, nil)
}

func (s *SubmissionService) approve(ctx context.Context, id string, patch map[string]any) (models.Record, error) {
	sub, err := s.subs.Approve(ctx, id, func(rec models.Record) error {
		rec.Merge(patch)
		ts := now()
		rec[models.SubmissionStatus] = string(models.StatusApproved)
		rec[models.SubmissionApprovedAt] = ts
		rec[models.SubmissionUpdatedAt] = ts
		return nil
	})
	if err != nil {
		return nil, internal("Server failed to approve submission", err)
	}
	s.log.Info("submission approved", zap.String("id", id))
	return sub, nil
}

func (s *SubmissionService) ListApproved(ctx context.Context) ([]models.Record, error) {
	subs, err := s.subs.Approved().FindAll(ctx)
	if err != nil {
		return nil, internal("Server failed to read approved submissions", err)
	}
	return subs, nil
}

func (s *SubmissionService) GetApproved(ctx context.Context, id string) (models.Record, error) {
	sub, err := s.subs.Approved().FindByID(ctx, id)
	if err != nil {
		return nil, internal("Server failed to read approved submissions", err)
	}
	if sub == nil {
		return nil, apperr.NotFound("Approved submission not found")
	}
	return sub, nil
}

// Counts reports how many records each store holds. submissions includes
// rejected records; they stay in the submissions store.
func (s *SubmissionService) Counts(ctx context.Context) (submissions, approved int, err error) {
	if submissions, err = s.subs.Count(ctx); err != nil {
		return 0, 0, internal("Server failed to read submissions", err)
	}
	if approved, err = s.subs.Approved().Count(ctx); err != nil {
		return 0, 0, internal("Server failed to read approved submissions", err)
	}
	return submissions, approved, nil
}

// withoutServerFields drops the timestamps only the server may set.
func withoutServerFields(body map[string]any) map[string]any {
	out := make(map[string]any, len(body))
	for k, v := range body {
		switch k {
		case models.SubmissionSubmittedAt, models.SubmissionUpdatedAt, models.SubmissionApprovedAt:
			continue
		}
		out[k] = v
	}
	return out
}
