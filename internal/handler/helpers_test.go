package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/maanvikp20/promosite/internal/apperr"
)

func TestReadJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"object", `{"id": 7, "name": "x"}`, false},
		{"empty", ``, false},
		{"whitespace", " \n", false},
		{"array", `[1,2]`, true},
		{"null", `null`, true},
		{"broken", `{"id":`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			body, err := readJSON(r)
			if tt.wantErr {
				assert.True(t, apperr.Is(err, apperr.KindBadRequest))
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, body)
		})
	}
}

func TestReadJSON_KeepsNumbers(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"id": 12345678901234567890}`))
	body, err := readJSON(r)
	require.NoError(t, err)
	assert.Equal(t, json.Number("12345678901234567890"), body["id"])
}

func TestReadJSON_TooLarge(t *testing.T) {
	big := `{"x":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(big))
	_, err := readJSON(r)
	assert.True(t, apperr.Is(err, apperr.KindBadRequest))
}

func TestWriteError(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	log := zap.New(core)

	rec := httptest.NewRecorder()
	writeError(rec, log, apperr.BadRequest("Invalid body", "a, b", apperr.FieldError{Field: "a", Message: "is required"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid body","expected":"a, b","details":[{"field":"a","message":"is required"}]}`, rec.Body.String())
	assert.Equal(t, 0, logs.Len())

	rec = httptest.NewRecorder()
	writeError(rec, log, apperr.Internal("Server failed to read students", errors.New("disk on fire")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Server failed to read students"}`, rec.Body.String())
	require.Equal(t, 1, logs.Len())
	assert.NotContains(t, rec.Body.String(), "disk on fire")

	rec = httptest.NewRecorder()
	writeError(rec, log, errors.New("raw"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "raw")
}
