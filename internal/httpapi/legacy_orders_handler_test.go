package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const validLegacyPayload = `{
	"items": [{"productId": 1, "name": "Backpack", "price": 109.95, "quantity": 1, "imageUrl": "https://example.com/1.png"}],
	"deliveryOption": {"id": "free", "label": "Free Delivery", "date": "Saturday, June 6", "price": 0, "isFree": true},
	"pricing": {"itemsTotal": 109.95, "shippingCost": 0, "tax": 10.995, "orderTotal": 120.945}
}`

func TestLegacyCreate_Success(t *testing.T) {
	handler := NewLegacyOrdersHandler()
	handler.now = func() time.Time { return time.UnixMilli(1748700000000) }

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/orders", strings.NewReader(validLegacyPayload))

	handler.Create(recorder, request)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected %d, got %d", http.StatusCreated, recorder.Code)
	}

	var response LegacyOrderResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !response.Success {
		t.Errorf("expected success true")
	}
	if response.OrderID != "ORD-1748700000000" {
		t.Errorf("expected 'ORD-1748700000000', got '%s'", response.OrderID)
	}
	if response.Message != "Order placed successfully" {
		t.Errorf("unexpected message '%s'", response.Message)
	}
}

func TestLegacyCreate_MissingFields(t *testing.T) {
	handler := NewLegacyOrdersHandler()

	cases := []string{
		`{}`,
		`{"items": []}`,
		`{"items": [{"productId": 1}]}`,
		`not json at all`,
	}

	for _, body := range cases {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest("POST", "/api/orders", strings.NewReader(body))

		handler.Create(recorder, request)

		if recorder.Code != http.StatusBadRequest {
			t.Errorf("body %q: expected %d, got %d", body, http.StatusBadRequest, recorder.Code)
		}

		var response map[string]string
		if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if response["error"] == "" {
			t.Errorf("expected an error field")
		}
	}
}

func TestLegacyList_EmptyPlaceholder(t *testing.T) {
	handler := NewLegacyOrdersHandler()

	recorder := httptest.NewRecorder()
	handler.List(recorder, httptest.NewRequest("GET", "/api/orders", nil))

	if recorder.Code != http.StatusOK {
		t.Errorf("expected %d, got %d", http.StatusOK, recorder.Code)
	}

	body := strings.TrimSpace(recorder.Body.String())
	if body != `{"orders":[]}` {
		t.Errorf("expected '{\"orders\":[]}', got '%s'", body)
	}
}
