package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/maanvikp20/promosite/internal/service"
)

type StudentHandler struct {
	svc *service.StudentService
	log *zap.Logger
}

func NewStudentHandler(svc *service.StudentService, log *zap.Logger) *StudentHandler {
	return &StudentHandler{svc: svc, log: log}
}

func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	students, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, students)
}

func (h *StudentHandler) Get(w http.ResponseWriter, r *http.Request) {
	student, err := h.svc.Get(r.Context(), idParam(r))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, student)
}

func (h *StudentHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := readJSON(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	student, err := h.svc.Create(r.Context(), body)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, student)
}

// Update serves both PUT and PATCH; only the supplied fields change.
func (h *StudentHandler) Update(w http.ResponseWriter, r *http.Request) {
	body, err := readJSON(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	student, err := h.svc.Update(r.Context(), idParam(r), body)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, student)
}

func (h *StudentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	student, err := h.svc.Delete(r.Context(), idParam(r))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Student deleted successfully",
		"student": student,
	})
}
