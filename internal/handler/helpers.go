package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/maanvikp20/promosite/internal/apperr"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Error    string              `json:"error"`
	Expected string              `json:"expected,omitempty"`
	Details  []apperr.FieldError `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to its status code. Causes of internal errors are
// logged and never sent to the client.
func writeError(w http.ResponseWriter, log *zap.Logger, err error) {
	e := apperr.From(err)
	if e.Kind == apperr.KindInternal {
		log.Error(e.Message, zap.Error(e.Cause))
	}
	writeJSON(w, e.Status(), errorBody{Error: e.Message, Expected: e.Expected, Details: e.Details})
}

// readJSON decodes a JSON object body. Numbers stay json.Number so ids and
// integers round-trip unchanged. An empty body decodes to an empty object.
func readJSON(r *http.Request) (map[string]any, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return nil, apperr.BadRequest("Could not read request body", "")
	}
	if len(data) > maxBodyBytes {
		return nil, apperr.BadRequest("Request body too large", "")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, apperr.BadRequest("Request body must be a JSON object", "")
		}
		return nil, apperr.BadRequest("Invalid JSON body", "")
	}
	if body == nil {
		return nil, apperr.BadRequest("Request body must be a JSON object", "")
	}
	return body, nil
}

// idParam returns the decoded {id} segment. chi routes on the escaped path
// when one is present (an encoded slash, say), so only then is the segment
// still escaped.
func idParam(r *http.Request) string {
	raw := chi.URLParam(r, "id")
	if r.URL.RawPath == "" {
		return raw
	}
	id, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return id
}
