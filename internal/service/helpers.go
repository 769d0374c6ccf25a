package service

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/maanvikp20/promosite/internal/apperr"
	"github.com/maanvikp20/promosite/internal/models"
)

// internal passes classified errors through and turns anything else into an
// InternalError carrying msg for the client.
func internal(msg string, err error) error {
	if err == nil {
		return nil
	}
	var e *apperr.Error
	if errors.As(err, &e) && e.Kind != apperr.KindInternal {
		return e
	}
	return apperr.Internal(msg, err)
}

// assignID keeps a client-supplied identifier and generates one otherwise.
func assignID(rec models.Record) string {
	id := rec.ID()
	if id == "" {
		id = uuid.NewString()
		rec[models.FieldID] = id
	}
	return id
}

// checkIDUnchanged rejects an update body that tries to rename the record.
func checkIDUnchanged(pathID string, body map[string]any) error {
	v, ok := body[models.FieldID]
	if !ok || models.NormalizeID(v) == pathID {
		return nil
	}
	return apperr.BadRequest("ID cannot be changed", "id must match the URL or be omitted")
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
