package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestSource(t *testing.T, handler http.HandlerFunc) *HTTPSource {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	source, err := NewHTTPSource(server.URL, server.Client(), nil)
	if err != nil {
		t.Fatalf("Failed to create source: %v", err)
	}
	return source
}

func TestNewHTTPSource_InvalidURL(t *testing.T) {
	cases := []string{"", "   ", "localhost:5000", "ftp://catalog"}
	for _, baseURL := range cases {
		if _, err := NewHTTPSource(baseURL, nil, nil); err == nil {
			t.Errorf("Expected error for base URL %q", baseURL)
		}
	}
}

func TestHTTPSource_FetchAll(t *testing.T) {
	source := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/get-product" {
			t.Errorf("Expected path '/get-product', got '%s'", r.URL.Path)
		}
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET method, got '%s'", r.Method)
		}
		if r.Header.Get(RequestIDHeader) == "" {
			t.Error("Expected request id header to be set")
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "products": [
			{"_id": 1, "name": "Vase", "category": "Gift Boxes", "price": 50, "inStockValue": 3},
			{"_id": "abc", "name": "Novel", "category": "Books", "price": 12.5, "inStockValue": 0, "description": "paperback"}
		]}`))
	})

	products, err := source.Fetch(context.Background(), All)
	if err != nil {
		t.Fatalf("Failed to fetch: %v", err)
	}

	if len(products) != 2 {
		t.Fatalf("Expected 2 products, got %d", len(products))
	}
	if products[0].ID != "1" || products[0].Name != "Vase" || products[0].Stock != 3 {
		t.Errorf("Unexpected first product: %+v", products[0])
	}
	if products[1].ID != "abc" || products[1].Description != "paperback" || products[1].InStock() {
		t.Errorf("Unexpected second product: %+v", products[1])
	}
}

func TestHTTPSource_FetchByCategory(t *testing.T) {
	source := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/product/category" {
			t.Errorf("Expected path '/product/category', got '%s'", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST method, got '%s'", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected JSON content type, got '%s'", ct)
		}

		var req categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		if req.Category != "Books" {
			t.Errorf("Expected category 'Books', got '%s'", req.Category)
		}

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"products": []map[string]interface{}{
				{"_id": "b1", "name": "Novel", "category": "Books", "price": 12, "inStockValue": 2},
				{"_id": "b2", "name": "Atlas", "category": "Books", "price": 30, "inStockValue": 1},
			},
		})
	})

	products, err := source.Fetch(context.Background(), Filter("Books"))
	if err != nil {
		t.Fatalf("Failed to fetch: %v", err)
	}

	// Server order is kept
	if len(products) != 2 || products[0].ID != "b1" || products[1].ID != "b2" {
		t.Errorf("Expected products [b1 b2] in server order, got %+v", products)
	}
}

func TestHTTPSource_Failures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind ErrorKind
	}{
		{name: "success false", status: http.StatusOK, body: `{"success": false, "message": "db down"}`, wantKind: KindApplication},
		{name: "server error", status: http.StatusInternalServerError, body: `oops`, wantKind: KindApplication},
		{name: "not json", status: http.StatusOK, body: `<html>`, wantKind: KindMalformed},
		{name: "missing success", status: http.StatusOK, body: `{"products": []}`, wantKind: KindMalformed},
		{name: "negative stock", status: http.StatusOK, body: `{"success": true, "products": [{"_id": "1", "name": "x", "price": 1, "inStockValue": -1}]}`, wantKind: KindMalformed},
		{name: "bad id", status: http.StatusOK, body: `{"success": true, "products": [{"_id": true, "name": "x"}]}`, wantKind: KindMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := source.Fetch(context.Background(), All)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}

			var fe *FetchError
			if !errors.As(err, &fe) {
				t.Fatalf("Expected *FetchError, got %T", err)
			}
			if fe.Kind != tt.wantKind {
				t.Errorf("Expected kind %s, got %s (%v)", tt.wantKind, fe.Kind, fe)
			}
			if fe.Filter != All {
				t.Errorf("Expected filter 'all', got '%s'", fe.Filter)
			}
		})
	}
}

func TestHTTPSource_ApplicationMessage(t *testing.T) {
	source := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"success": false, "message": "maintenance"}`))
	})

	_, err := source.Fetch(context.Background(), All)

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("Expected *FetchError, got %v", err)
	}
	if fe.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", fe.StatusCode)
	}
	if fe.Message != "maintenance" {
		t.Errorf("Expected message 'maintenance', got '%s'", fe.Message)
	}
	if fe.IsRetryable() {
		t.Error("Application errors should not be retryable")
	}
}

func TestHTTPSource_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	source, err := NewHTTPSource(baseURL, nil, nil)
	if err != nil {
		t.Fatalf("Failed to create source: %v", err)
	}

	_, err = source.Fetch(context.Background(), All)
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("Expected network error, got %v", err)
	}
	if !IsRetryableError(err) {
		t.Error("Expected network error to be retryable")
	}
}

func TestHTTPSource_Timeout(t *testing.T) {
	release := make(chan struct{})
	source := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := source.Fetch(ctx, All)
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("Expected timeout error, got %v", err)
	}
}
