package handler

import (
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/maanvikp20/promosite/internal/auth"
	"github.com/maanvikp20/promosite/internal/service"
)

// AdminHandler serves the session-gated review area.
type AdminHandler struct {
	subs *service.SubmissionService
	log  *zap.Logger
	page string
}

// NewAdminHandler takes the path of the admin page file. When page is
// empty the protected endpoint answers with JSON instead.
func NewAdminHandler(subs *service.SubmissionService, page string, log *zap.Logger) *AdminHandler {
	return &AdminHandler{subs: subs, page: page, log: log}
}

func (h *AdminHandler) Protected(w http.ResponseWriter, r *http.Request) {
	if h.page != "" {
		if _, err := os.Stat(h.page); err == nil {
			http.ServeFile(w, r, h.page)
			return
		}
		h.log.Warn("admin page missing, answering with JSON", zap.String("path", h.page))
	}
	var email string
	if sess := auth.GetSession(r.Context()); sess != nil {
		email = sess.Email
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Welcome, admin",
		"email":   email,
	})
}

func (h *AdminHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	subs, err := h.subs.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

func (h *AdminHandler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	sub, err := h.subs.Get(r.Context(), idParam(r))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (h *AdminHandler) UpdateSubmission(w http.ResponseWriter, r *http.Request) {
	body, err := readJSON(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	sub, err := h.subs.Update(r.Context(), idParam(r), body)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (h *AdminHandler) DeleteSubmission(w http.ResponseWriter, r *http.Request) {
	sub, err := h.subs.Delete(r.Context(), idParam(r))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":    "Submission deleted successfully",
		"submission": sub,
	})
}

func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	sub, err := h.subs.Approve(r.Context(), idParam(r))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (h *AdminHandler) ListApproved(w http.ResponseWriter, r *http.Request) {
	subs, err := h.subs.ListApproved(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

func (h *AdminHandler) GetApproved(w http.ResponseWriter, r *http.Request) {
	sub, err := h.subs.GetApproved(r.Context(), idParam(r))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}
