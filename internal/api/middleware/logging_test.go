package middleware_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/grocery-storefront/internal/api/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer

	return slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func TestLogging(t *testing.T) {

	t.Run("Adds correlation id and logs completion", func(t *testing.T) {
		// Arrange
		var seenID string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seenID = r.Header.Get(middleware.RequestIDHeader)
			w.WriteHeader(http.StatusAccepted)
		}))
		defer server.Close()

		logger, buf := newBufferedLogger()
		ctx := middleware.WithLogger(context.Background(), logger)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/api/products", nil)
		require.NoError(t, err)

		// Act
		resp, err := middleware.Logging(http.DefaultTransport).RoundTrip(req)

		// Assert
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusAccepted, resp.StatusCode)
		assert.NotEmpty(t, seenID)
		assert.Empty(t, req.Header.Get(middleware.RequestIDHeader), "original request must not be mutated")
		assert.Contains(t, buf.String(), "Request completed")
		assert.Contains(t, buf.String(), seenID)
	})

	t.Run("Keeps caller correlation id", func(t *testing.T) {
		var seenID string
		next := middleware.RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			seenID = r.Header.Get(middleware.RequestIDHeader)
			return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
		})

		req := httptest.NewRequest(http.MethodGet, "http://store/api/products", nil)
		req.Header.Set(middleware.RequestIDHeader, "fixed-id")

		_, err := middleware.Logging(next).RoundTrip(req)

		require.NoError(t, err)
		assert.Equal(t, "fixed-id", seenID)
	})

	t.Run("Logs transport failure", func(t *testing.T) {
		dialErr := errors.New("connection refused")
		next := middleware.RoundTripperFunc(func(*http.Request) (*http.Response, error) {
			return nil, dialErr
		})

		logger, buf := newBufferedLogger()
		req := httptest.NewRequest(http.MethodPost, "http://store/api/auth/login", nil)
		req = req.WithContext(middleware.WithLogger(req.Context(), logger))

		resp, err := middleware.Logging(next).RoundTrip(req)

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, dialErr)
		assert.Contains(t, buf.String(), "Request failed")
	})
}

func TestLoggerFromContext(t *testing.T) {
	assert.Equal(t, slog.Default(), middleware.LoggerFromContext(context.Background()))

	logger, _ := newBufferedLogger()
	assert.Equal(t, logger, middleware.LoggerFromContext(middleware.WithLogger(context.Background(), logger)))
}
