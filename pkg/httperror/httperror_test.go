package httperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsSetStatus(t *testing.T) {
	cases := map[int]*Error{
		http.StatusNoContent:           NoContent("c", "m", nil),
		http.StatusBadRequest:          BadRequest("c", "m", nil),
		http.StatusUnauthorized:        Unauthorized("c", "m", nil),
		http.StatusForbidden:           Forbidden("c", "m", nil),
		http.StatusNotFound:            NotFound("c", "m", nil),
		http.StatusInternalServerError: InternalServerError("c", "m", nil),
		http.StatusBadGateway:          BadGateway("c", "m", nil),
		http.StatusServiceUnavailable:  ServiceUnavailable("c", "m", nil),
	}

	for status, err := range cases {
		assert.Equal(t, status, err.Status)
	}
}

func TestErrorUnwrapsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", BadRequest("category.create.validation_failed", "Category name cannot be empty.", nil))

	var httpErr *Error
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, "Category name cannot be empty.", httpErr.Message)
	assert.Equal(t, "category.create.validation_failed: Category name cannot be empty.", httpErr.Error())
}
