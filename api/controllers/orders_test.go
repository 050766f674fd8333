package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ordersvc "github.com/printlabth/printlab-backend/internal/orders"
	"github.com/printlabth/printlab-backend/pkg/db/models"
	"github.com/printlabth/printlab-backend/pkg/enums"
	pkgerrors "github.com/printlabth/printlab-backend/pkg/errors"
)

type stubOrdersService struct {
	submitResult *ordersvc.SubmitOrderResult
	submitErr    error
	submitted    []ordersvc.SubmitOrderInput
	order        *models.Order
	orderErr     error
	listed       []models.Order
	listErr      error
	updated      *models.Order
	updateErr    error
	updateInput  ordersvc.UpdateOrderInput
}

func (s *stubOrdersService) SubmitOrder(ctx context.Context, input ordersvc.SubmitOrderInput) (*ordersvc.SubmitOrderResult, error) {
	s.submitted = append(s.submitted, input)
	return s.submitResult, s.submitErr
}

func (s *stubOrdersService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.order, s.orderErr
}

func (s *stubOrdersService) ListOrdersByEmail(ctx context.Context, email string) ([]models.Order, error) {
	return s.listed, s.listErr
}

func (s *stubOrdersService) UpdateOrder(ctx context.Context, id uuid.UUID, input ordersvc.UpdateOrderInput) (*models.Order, error) {
	s.updateInput = input
	return s.updated, s.updateErr
}

func buildOrderForm(t *testing.T, fields map[string]string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, w.WriteField(key, value))
	}
	for name, content := range files {
		fw, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func intakeFields() map[string]string {
	return map[string]string{
		"name":         "Somchai",
		"email":        "somchai@example.com",
		"phone":        "0812345678",
		"address":      "Bangkok",
		"material":     "PLA",
		"color":        "black",
		"quantity":     "2",
		"deliveryType": "STANDARD",
		"weight":       "50",
		"notes":        "leave at door",
	}
}

func TestSubmitOrderHandler(t *testing.T) {
	t.Run("valid submission returns 201", func(t *testing.T) {
		svc := &stubOrdersService{submitResult: &ordersvc.SubmitOrderResult{
			Order: &models.Order{OrderNumber: "3DP-A-B", TotalAmount: 200},
		}}

		body, contentType := buildOrderForm(t, intakeFields(), map[string]string{"model.stl": "solid"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		SubmitOrder(svc, testLogger()).ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		require.Len(t, svc.submitted, 1)
		input := svc.submitted[0]
		assert.Equal(t, "somchai@example.com", input.Email)
		assert.Equal(t, 50, input.WeightGrams)
		assert.Equal(t, enums.MaterialPLA, input.Material)
		assert.Equal(t, 2, input.Quantity)
		require.Len(t, input.Files, 1)
		assert.Equal(t, "model.stl", input.Files[0].FileName)

		var payload ordersvc.SubmitOrderResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		assert.Equal(t, "3DP-A-B", payload.Order.OrderNumber)
	})

	t.Run("no files returns 400", func(t *testing.T) {
		svc := &stubOrdersService{}
		body, contentType := buildOrderForm(t, intakeFields(), nil)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		SubmitOrder(svc, testLogger()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, svc.submitted)
	})

	t.Run("non-numeric weight returns 400", func(t *testing.T) {
		fields := intakeFields()
		fields["weight"] = "heavy"
		svc := &stubOrdersService{}
		body, contentType := buildOrderForm(t, fields, map[string]string{"model.stl": "solid"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		SubmitOrder(svc, testLogger()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("service validation error maps to 400 with error string", func(t *testing.T) {
		svc := &stubOrdersService{submitErr: pkgerrors.New(pkgerrors.CodeValidation, "missing required fields")}
		body, contentType := buildOrderForm(t, intakeFields(), map[string]string{"model.stl": "solid"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		SubmitOrder(svc, testLogger()).ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var payload map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		assert.Equal(t, "missing required fields", payload["error"])
	})
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestGetOrderHandler(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := &stubOrdersService{order: &models.Order{OrderNumber: "3DP-A-B"}}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+uuid.NewString(), nil)
		req = withURLParam(req, "id", uuid.NewString())
		rec := httptest.NewRecorder()
		GetOrder(svc, testLogger()).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		svc := &stubOrdersService{}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/nope", nil)
		req = withURLParam(req, "id", "nope")
		rec := httptest.NewRecorder()
		GetOrder(svc, testLogger()).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing order maps to 404", func(t *testing.T) {
		svc := &stubOrdersService{orderErr: pkgerrors.New(pkgerrors.CodeNotFound, "order not found")}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+uuid.NewString(), nil)
		req = withURLParam(req, "id", uuid.NewString())
		rec := httptest.NewRecorder()
		GetOrder(svc, testLogger()).ServeHTTP(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
		var payload map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		assert.Equal(t, "order not found", payload["error"])
	})
}

func TestListOrdersHandler(t *testing.T) {
	t.Run("by email", func(t *testing.T) {
		svc := &stubOrdersService{listed: []models.Order{{OrderNumber: "3DP-A-B"}}}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders?email=somchai@example.com", nil)
		rec := httptest.NewRecorder()
		ListOrders(svc, testLogger()).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var payload struct {
			Orders []models.Order `json:"orders"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		assert.Len(t, payload.Orders, 1)
	})

	t.Run("missing email", func(t *testing.T) {
		svc := &stubOrdersService{listErr: pkgerrors.New(pkgerrors.CodeValidation, "email is required")}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
		rec := httptest.NewRecorder()
		ListOrders(svc, testLogger()).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateOrderHandler(t *testing.T) {
	t.Run("status and tracking", func(t *testing.T) {
		svc := &stubOrdersService{updated: &models.Order{OrderNumber: "3DP-A-B"}}
		id := uuid.NewString()
		body := strings.NewReader(`{"status":"shipped","trackingNumber":"TH123"}`)
		req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/api/v1/orders/%s", id), body)
		req.Header.Set("Content-Type", "application/json")
		req = withURLParam(req, "id", id)
		rec := httptest.NewRecorder()
		UpdateOrder(svc, testLogger()).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, svc.updateInput.Status)
		assert.Equal(t, enums.OrderStatusShipped, *svc.updateInput.Status)
		require.NotNil(t, svc.updateInput.TrackingNumber)
		assert.Equal(t, "TH123", *svc.updateInput.TrackingNumber)
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		svc := &stubOrdersService{}
		id := uuid.NewString()
		body := strings.NewReader(`{"totalAmount":0}`)
		req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/api/v1/orders/%s", id), body)
		req.Header.Set("Content-Type", "application/json")
		req = withURLParam(req, "id", id)
		rec := httptest.NewRecorder()
		UpdateOrder(svc, testLogger()).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
