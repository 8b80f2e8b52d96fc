package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func respond(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	RespondError(c, err)
	return w
}

func TestRespondErrorMapping(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, respond(NewValidationError("bad input")).Code)
	assert.Equal(t, http.StatusNotFound, respond(NewNotFoundError("missing")).Code)
	assert.Equal(t, http.StatusBadGateway, respond(NewDependencyError("db down", errors.New("timeout"))).Code)
	assert.Equal(t, http.StatusInternalServerError, respond(errors.New("boom")).Code)
}

func TestRespondErrorBody(t *testing.T) {
	w := respond(NewValidationError("This time slot is already booked"))
	assert.JSONEq(t, `{"message":"This time slot is already booked"}`, w.Body.String())
}

func TestErrorPredicates(t *testing.T) {
	assert.True(t, IsValidationError(NewValidationError("x")))
	assert.False(t, IsValidationError(NewNotFoundError("x")))
	assert.True(t, IsNotFoundError(NewNotFoundError("x")))
	assert.False(t, IsNotFoundError(errors.New("x")))
}

func TestDependencyErrorUnwrap(t *testing.T) {
	inner := errors.New("timeout")
	err := NewDependencyError("db down", inner)
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "db down: timeout", err.Error())
}
