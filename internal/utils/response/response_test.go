package response_test

import (
	"bytes"
	stdErrors "errors"
	"testing"

	"github.com/aaravmahajanofficial/grocery-storefront/internal/errors"
	"github.com/aaravmahajanofficial/grocery-storefront/internal/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	t.Run("AppError with detail", func(t *testing.T) {
		// Arrange
		var buf bytes.Buffer
		err := errors.NotFoundError("Product not found").WithDetail("id 7")

		// Act
		response.Error(&buf, err)

		// Assert
		assert.Equal(t, "error: Product not found (id 7)\n", buf.String())
	})

	t.Run("plain error is hidden", func(t *testing.T) {
		// Arrange
		var buf bytes.Buffer

		// Act
		response.Error(&buf, stdErrors.New("boom"))

		// Assert
		assert.Equal(t, "error: An unexpected error occurred\n", buf.String())
	})
}

func TestNewErrorResponse(t *testing.T) {
	// Act
	resp := response.NewErrorResponse(errors.AuthError("Invalid email or password"))

	// Assert
	assert.Equal(t, errors.ErrCodeAuth, resp.Code)
	assert.Empty(t, resp.Details)
}

func TestWriteJson(t *testing.T) {
	// Arrange
	var buf bytes.Buffer

	// Act
	err := response.WriteJson(&buf, map[string]int{"lines": 2})

	// Assert
	require.NoError(t, err)
	assert.JSONEq(t, `{"lines": 2}`, buf.String())
}
