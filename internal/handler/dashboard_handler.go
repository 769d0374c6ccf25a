package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/maanvikp20/promosite/internal/service"
)

// DashboardHandler serves the service index, the health check and the
// admin record counts.
type DashboardHandler struct {
	students *service.StudentService
	subs     *service.SubmissionService
	log      *zap.Logger
}

func NewDashboardHandler(students *service.StudentService, subs *service.SubmissionService, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{students: students, subs: subs, log: log}
}

var endpoints = []string{
	"/students (GET, POST)",
	"/students/:id (GET, PUT, PATCH, DELETE)",
	"/submissions (POST)",
	"/submit-form (POST)",
	"/products (GET)",
	"/login (POST)",
	"/logout (POST)",
	"/session (GET)",
	"/admin/* (session required)",
}

func (h *DashboardHandler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Student API is Running",
		"endpoints": endpoints,
	})
}

func (h *DashboardHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	students, err := h.students.Count(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	submissions, approved, err := h.subs.Counts(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"studentCount":    students,
		"submissionCount": submissions,
		"approvedCount":   approved,
	})
}
