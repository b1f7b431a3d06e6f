package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, Status(Validation("missing field")))
	assert.Equal(t, http.StatusBadRequest, Status(Conflict("wrong state")))
	assert.Equal(t, http.StatusNotFound, Status(NotFound("no such order")))
	assert.Equal(t, http.StatusInternalServerError, Status(errors.New("boom")))
}

func TestWrappedErrorsKeepKind(t *testing.T) {
	err := fmt.Errorf("cancel order: %w", Conflict("already shipped"))
	assert.True(t, errors.Is(err, ErrConflict))
	assert.Equal(t, http.StatusBadRequest, Status(err))
}

func TestMessagePassthrough(t *testing.T) {
	err := NotFound("order 42 not found")
	assert.Equal(t, "order 42 not found", err.Error())
}
