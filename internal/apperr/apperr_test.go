package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{BadRequest("bad", ""), http.StatusBadRequest},
		{Conflict("dup"), http.StatusConflict},
		{NotFound("gone"), http.StatusNotFound},
		{Unauthorized("no"), http.StatusUnauthorized},
		{Internal("boom", errors.New("disk")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.err.Status(), tc.err.Error())
	}
}

func TestFromWrapsUnknownErrors(t *testing.T) {
	cause := errors.New("read failed")
	e := From(cause)
	assert.Equal(t, KindInternal, e.Kind)
	assert.ErrorIs(t, e, cause)
	assert.Equal(t, "internal server error", e.Message)
}

func TestIsSeesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("create student: %w", Conflict("ID already exists"))
	assert.True(t, Is(err, KindConflict))
	assert.False(t, Is(err, KindNotFound))
	assert.Equal(t, KindConflict, From(err).Kind)
}
