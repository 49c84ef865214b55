package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))

	forbidden := NewForbidden("forbidden access")
	wrapped := fmt.Errorf("admin gate: %w", forbidden)
	assert.Same(t, forbidden, ToDomainError(wrapped))

	internal := ToDomainError(errors.New("socket closed"))
	assert.Equal(t, http.StatusInternalServerError, internal.HTTPStatus)
	assert.Equal(t, "internal server error", internal.Message)
	assert.NotContains(t, internal.Message, "socket")
}

func TestWithCause(t *testing.T) {
	cause := errors.New("token expired")
	base := NewUnauthorized("unauthorized access")

	err := base.WithCause(cause)

	assert.ErrorIs(t, err, cause)
	assert.Nil(t, base.Err)
	assert.Equal(t, "unauthorized access: token expired", err.Error())
}

func TestValidateStruct(t *testing.T) {
	type payload struct {
		Email string `json:"email" validate:"required,email"`
		Name  string `json:"name" validate:"required"`
	}

	require.NoError(t, ValidateStruct(payload{Email: "ada@example.com", Name: "Ada"}))

	err := ValidateStruct(payload{Email: "nope"})
	domainErr := ToDomainError(err)
	assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Equal(t, "email must be a valid email", domainErr.Details["email"])
	assert.Equal(t, "name is required", domainErr.Details["name"])
}

func TestCodeForStatus(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", CodeForStatus(http.StatusNotFound))
	assert.Equal(t, "INTERNAL_ERROR", CodeForStatus(http.StatusBadGateway))
	assert.Equal(t, "REQUEST_FAILED", CodeForStatus(http.StatusTeapot))
}
