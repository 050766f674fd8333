package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printlabth/printlab-backend/internal/pricing"
	"github.com/printlabth/printlab-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func postQuote(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quote", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	Quote(pricing.NewEngine(), testLogger()).ServeHTTP(rec, req)
	return rec
}

func TestQuoteHandler(t *testing.T) {
	t.Run("express metal", func(t *testing.T) {
		rec := postQuote(t, `{"weight":100,"material":"METAL","quantity":1,"deliveryType":"EXPRESS"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var payload struct {
			Quote pricing.Quote `json:"quote"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		assert.Equal(t, int64(400), payload.Quote.UnitPrice)
		assert.Equal(t, int64(600), payload.Quote.TotalPrice)
	})

	t.Run("quantity defaults to one", func(t *testing.T) {
		rec := postQuote(t, `{"weight":50,"material":"PLA"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var payload struct {
			Quote pricing.Quote `json:"quote"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		assert.Equal(t, int64(100), payload.Quote.TotalPrice)
	})

	t.Run("lowercase material is normalized", func(t *testing.T) {
		rec := postQuote(t, `{"weight":50,"material":"pla"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var payload struct {
			Quote pricing.Quote `json:"quote"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		assert.Equal(t, int64(100), payload.Quote.UnitPrice)
	})

	t.Run("missing weight is a validation error", func(t *testing.T) {
		rec := postQuote(t, `{"material":"PLA"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var payload map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		_, ok := payload["error"].(string)
		assert.True(t, ok)
	})

	t.Run("invalid delivery type", func(t *testing.T) {
		rec := postQuote(t, `{"weight":50,"material":"PLA","deliveryType":"TELEPORT"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		rec := postQuote(t, `{weight:}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
