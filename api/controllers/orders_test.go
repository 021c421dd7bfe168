package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	ordersvc "github.com/ravetagbd/ravetag-backend/internal/orders"
	"github.com/ravetagbd/ravetag-backend/pkg/enums"
	pkgerrors "github.com/ravetagbd/ravetag-backend/pkg/errors"
	"github.com/ravetagbd/ravetag-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

type stubOrderService struct {
	placed      *ordersvc.PlaceOrderInput
	cancelled   string
	statusID    uuid.UUID
	statusValue string
	listFilters *ordersvc.ListFilters
	err         error
}

func (s *stubOrderService) Place(ctx context.Context, input ordersvc.PlaceOrderInput) (*ordersvc.OrderDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.placed = &input
	return &ordersvc.OrderDTO{ID: uuid.New(), Code: "RT-AB12CD34EF", Status: enums.OrderStatusPending}, nil
}

func (s *stubOrderService) Cancel(ctx context.Context, code string) (*ordersvc.OrderDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.cancelled = code
	return &ordersvc.OrderDTO{Code: code, Status: enums.OrderStatusCancelled}, nil
}

func (s *stubOrderService) ChangeStatus(ctx context.Context, id uuid.UUID, status string) (*ordersvc.OrderDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.statusID = id
	s.statusValue = status
	return &ordersvc.OrderDTO{ID: id, Status: enums.OrderStatusProcessing}, nil
}

func (s *stubOrderService) List(ctx context.Context, filters ordersvc.ListFilters) ([]ordersvc.OrderDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.listFilters = &filters
	return []ordersvc.OrderDTO{}, nil
}

const placeOrderBody = `{
	"customer": {"phone": "+8801700000000", "name": "Rahim", "address": "Dhaka"},
	"items": [{"product_id": "6ba7b810-9dad-11d1-80b4-00c04fd430c8", "variant_name": "red", "size": "M", "quantity": 2}]
}`

func TestPlaceOrderController(t *testing.T) {
	logg := testLogger()

	t.Run("success", func(t *testing.T) {
		stub := &stubOrderService{}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/place-order", strings.NewReader(placeOrderBody))
		rec := httptest.NewRecorder()
		PlaceOrder(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.placed == nil || len(stub.placed.Items) != 1 {
			t.Fatalf("expected service invoked with one item")
		}
		if stub.placed.Items[0].Quantity != 2 {
			t.Fatalf("expected quantity forwarded, got %d", stub.placed.Items[0].Quantity)
		}
	})

	t.Run("missing items", func(t *testing.T) {
		stub := &stubOrderService{}
		body := `{"customer": {"phone": "+8801700000000", "name": "Rahim", "address": "Dhaka"}, "items": []}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/place-order", strings.NewReader(body))
		rec := httptest.NewRecorder()
		PlaceOrder(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if stub.placed != nil {
			t.Fatalf("service must not be invoked on invalid payload")
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		stub := &stubOrderService{}
		body := `{"customer": {"phone": "1", "name": "x", "address": "y"}, "items": [], "surprise": true}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/place-order", strings.NewReader(body))
		rec := httptest.NewRecorder()
		PlaceOrder(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("insufficient stock surfaces state conflict", func(t *testing.T) {
		stub := &stubOrderService{err: pkgerrors.New(pkgerrors.CodeStateConflict, "insufficient stock")}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/place-order", strings.NewReader(placeOrderBody))
		rec := httptest.NewRecorder()
		PlaceOrder(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
	})
}

func TestCancelOrderController(t *testing.T) {
	logg := testLogger()

	t.Run("success", func(t *testing.T) {
		stub := &stubOrderService{}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cancel-order", strings.NewReader(`{"code": "RT-AB12CD34EF"}`))
		rec := httptest.NewRecorder()
		CancelOrder(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.cancelled != "RT-AB12CD34EF" {
			t.Fatalf("expected code forwarded, got %q", stub.cancelled)
		}
	})

	t.Run("unknown code", func(t *testing.T) {
		stub := &stubOrderService{err: pkgerrors.New(pkgerrors.CodeNotFound, "no order matches the code")}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cancel-order", strings.NewReader(`{"code": "RT-NOPE"}`))
		rec := httptest.NewRecorder()
		CancelOrder(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("missing code", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cancel-order", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		CancelOrder(&stubOrderService{}, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestChangeOrderStatusController(t *testing.T) {
	logg := testLogger()
	orderID := uuid.New()

	t.Run("success", func(t *testing.T) {
		stub := &stubOrderService{}
		body := `{"id": "` + orderID.String() + `", "status": "processing"}`
		req := httptest.NewRequest(http.MethodPut, "/api/v1/change-order-status", strings.NewReader(body))
		rec := httptest.NewRecorder()
		ChangeOrderStatus(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.statusID != orderID || stub.statusValue != "processing" {
			t.Fatalf("expected id and status forwarded, got %s %q", stub.statusID, stub.statusValue)
		}
	})

	t.Run("missing status", func(t *testing.T) {
		body := `{"id": "` + orderID.String() + `"}`
		req := httptest.NewRequest(http.MethodPut, "/api/v1/change-order-status", strings.NewReader(body))
		rec := httptest.NewRecorder()
		ChangeOrderStatus(&stubOrderService{}, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestListOrdersController(t *testing.T) {
	logg := testLogger()

	t.Run("requires phone", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
		rec := httptest.NewRecorder()
		ListOrders(&stubOrderService{}, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 without phone, got %d", rec.Code)
		}
	})

	t.Run("forwards filters", func(t *testing.T) {
		stub := &stubOrderService{}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders?phone=%2B8801700000000&status=pending", nil)
		rec := httptest.NewRecorder()
		ListOrders(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.listFilters == nil || stub.listFilters.Phone != "+8801700000000" {
			t.Fatalf("expected phone filter forwarded: %+v", stub.listFilters)
		}
		if stub.listFilters.Status == nil || *stub.listFilters.Status != enums.OrderStatusPending {
			t.Fatalf("expected status filter forwarded: %+v", stub.listFilters)
		}
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders?phone=%2B8801700000000&status=shipped", nil)
		rec := httptest.NewRecorder()
		ListOrders(&stubOrderService{}, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAdminListOrdersController(t *testing.T) {
	logg := testLogger()
	stub := &stubOrderService{}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin-orders", nil)
	rec := httptest.NewRecorder()
	AdminListOrders(stub, logg).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 without filters, got %d", rec.Code)
	}
	if stub.listFilters == nil || stub.listFilters.Phone != "" || stub.listFilters.Status != nil {
		t.Fatalf("expected empty filters: %+v", stub.listFilters)
	}

	var payload struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
}
