package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/maanvikp20/promosite/internal/service"
)

// SubmissionHandler serves the public contact form.
type SubmissionHandler struct {
	svc *service.SubmissionService
	log *zap.Logger
}

func NewSubmissionHandler(svc *service.SubmissionService, log *zap.Logger) *SubmissionHandler {
	return &SubmissionHandler{svc: svc, log: log}
}

func (h *SubmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := readJSON(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	sub, err := h.svc.Submit(r.Context(), body)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":    "Submission received",
		"submission": sub,
	})
}
