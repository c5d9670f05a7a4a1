package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"gostock/domain/core"
)

func TestWrapTakesCodeFromDomainError(t *testing.T) {
	tests := []struct {
		err    error
		code   string
		status int
	}{
		{core.NewParseError("a.xlsx", stderrors.New("zip: not a valid zip file")), CodeParseError, http.StatusInternalServerError},
		{core.NewIOError("a.xlsx", stderrors.New("permission denied")), CodeIOError, http.StatusInternalServerError},
		{core.NewSchemaMismatchError("Qty", "has no value"), CodeValidationError, http.StatusBadRequest},
		{core.ErrInvalidTransition, CodeConflict, http.StatusConflict},
		{stderrors.New("boom"), CodeInternalError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		wrapped := Wrap(tt.err, "request failed")
		assert.Equal(t, tt.code, GetCode(wrapped))
		assert.Equal(t, tt.status, HTTPStatus(wrapped))
		assert.ErrorIs(t, wrapped, tt.err)
	}
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "nothing"))
	assert.NoError(t, Wrapf(nil, "nothing %d", 1))
	assert.Equal(t, "", GetCode(nil))
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeNotFound, stderrors.New("no export yet"))
	var appErr *AppError
	assert.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, CodeNotFound, GetCode(err))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestAppErrorMessage(t *testing.T) {
	err := Wrapf(stderrors.New("disk full"), "failed to save %s", "stock.xlsx")
	assert.Equal(t, "failed to save stock.xlsx: disk full", err.Error())
}
