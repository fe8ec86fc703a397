package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caszofficial/Expense-Control/internal/logging"
)

func TestNew(t *testing.T) {
	t.Run("ProductionIsJSON", func(t *testing.T) {
		var buf bytes.Buffer

		logger, err := logging.New(&buf, "production", "info")
		require.NoError(t, err)

		logger.Debug("hidden")
		logger.Info("hello", "k", "v")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "hello", line["msg"])
		assert.Equal(t, "v", line["k"])
	})

	t.Run("DevelopmentIsText", func(t *testing.T) {
		var buf bytes.Buffer

		logger, err := logging.New(&buf, "development", "DEBUG")
		require.NoError(t, err)

		logger.Debug("hello")
		assert.Contains(t, buf.String(), "level=DEBUG msg=hello")
	})

	t.Run("InvalidLevel", func(t *testing.T) {
		_, err := logging.New(&bytes.Buffer{}, "development", "loud")
		assert.Error(t, err)
	})
}

func TestMiddleware(t *testing.T) {
	var (
		buf    bytes.Buffer
		logger = slog.New(slog.NewJSONHandler(&buf, nil))
		seen   string
	)

	h := logging.Middleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.RequestID(r.Context())

		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("nope"))
	}))

	t.Run("ReusesIncomingID", func(t *testing.T) {
		buf.Reset()

		req := httptest.NewRequest(http.MethodGet, "/api/things", nil)
		req.Header.Set(logging.RequestIDHeader, "abc-123")

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", rec.Header().Get(logging.RequestIDHeader))

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "WARN", line["level"])
		assert.Equal(t, "/api/things", line["path"])
		assert.InDelta(t, 404, line["status"], 0)
		assert.InDelta(t, 4, line["bytes"], 0)
	})

	t.Run("GeneratesID", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Len(t, seen, 36)
		assert.Equal(t, seen, rec.Header().Get(logging.RequestIDHeader))
	})
}

func TestRequestID_Missing(t *testing.T) {
	assert.Empty(t, logging.RequestID(context.Background()))
}
