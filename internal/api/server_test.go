package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/splitsmart-dev/splitsmart/internal/auth"
	"github.com/splitsmart-dev/splitsmart/internal/service"
	"github.com/splitsmart-dev/splitsmart/internal/storage/sqlite"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("test-secret-key-that-is-long-enough", time.Hour)
	authService := service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager)
	groupService := service.NewGroupService(store)
	expenseService := service.NewExpenseService(store, nil)

	return NewServer(authService, groupService, expenseService, jwtManager).Routes()
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return out
}

func registerTestUser(t *testing.T, handler http.Handler) string {
	t.Helper()
	rec := doJSON(t, handler, "POST", "/api/v1/auth/register", "", map[string]string{
		"email":        "alice@example.com",
		"display_name": "Alice",
		"password":     "password123",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: status %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decode[authResponse](t, rec)
	if resp.Token == "" {
		t.Fatal("register: empty token")
	}
	return resp.Token
}

func TestAuthEndpoints(t *testing.T) {
	handler := newTestServer(t)
	registerTestUser(t, handler)

	t.Run("login succeeds with the registered password", func(t *testing.T) {
		rec := doJSON(t, handler, "POST", "/api/v1/auth/login", "", map[string]string{
			"email":    "alice@example.com",
			"password": "password123",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("login fails with a wrong password", func(t *testing.T) {
		rec := doJSON(t, handler, "POST", "/api/v1/auth/login", "", map[string]string{
			"email":    "alice@example.com",
			"password": "nope-nope-nope",
		})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status %d, want 401", rec.Code)
		}
	})

	t.Run("duplicate registration conflicts", func(t *testing.T) {
		rec := doJSON(t, handler, "POST", "/api/v1/auth/register", "", map[string]string{
			"email":        "alice@example.com",
			"display_name": "Alice Again",
			"password":     "password456",
		})
		if rec.Code != http.StatusConflict {
			t.Fatalf("status %d, want 409", rec.Code)
		}
	})

	t.Run("protected routes reject missing tokens", func(t *testing.T) {
		rec := doJSON(t, handler, "GET", "/api/v1/groups", "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status %d, want 401", rec.Code)
		}
	})
}

func TestExpenseFlow(t *testing.T) {
	handler := newTestServer(t)
	token := registerTestUser(t, handler)

	rec := doJSON(t, handler, "POST", "/api/v1/groups", token, map[string]any{
		"name": "Roommates",
		"members": []map[string]string{
			{"id": "alice", "name": "Alice"},
			{"id": "bob", "name": "Bob"},
			{"id": "carol", "name": "Carol"},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create group: status %d, body %s", rec.Code, rec.Body.String())
	}
	group := decode[groupResponse](t, rec)

	rec = doJSON(t, handler, "POST", fmt.Sprintf("/api/v1/groups/%s/expenses", group.ID), token, map[string]any{
		"title":      "Lunch",
		"amount":     15.0,
		"payer_id":   "alice",
		"split_mode": "manual",
		"shares":     map[string]float64{"alice": 5.0, "bob": 5.0, "carol": 5.0},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create expense: status %d, body %s", rec.Code, rec.Body.String())
	}
	expense := decode[expenseResponse](t, rec)
	if expense.Settled {
		t.Error("new expense must start unsettled")
	}

	t.Run("balances reflect the expense", func(t *testing.T) {
		rec := doJSON(t, handler, "GET", fmt.Sprintf("/api/v1/groups/%s/balances", group.ID), token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
		}
		body := decode[map[string]map[string]float64](t, rec)
		if math.Abs(body["balances"]["alice"]-10.0) > 0.001 {
			t.Errorf("alice balance = %v, want 10", body["balances"]["alice"])
		}
	})

	t.Run("pending amount for an ower", func(t *testing.T) {
		rec := doJSON(t, handler, "GET", fmt.Sprintf("/api/v1/groups/%s/members/bob/pending", group.ID), token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
		}
		body := decode[map[string]float64](t, rec)
		if math.Abs(body["pending"]-5.0) > 0.001 {
			t.Errorf("pending = %v, want 5", body["pending"])
		}
	})

	t.Run("mismatched manual split is a 400", func(t *testing.T) {
		rec := doJSON(t, handler, "POST", fmt.Sprintf("/api/v1/groups/%s/expenses", group.ID), token, map[string]any{
			"title":      "Dinner",
			"amount":     19.0,
			"payer_id":   "alice",
			"split_mode": "manual",
			"shares":     map[string]float64{"alice": 10.00, "bob": 10.01},
		})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status %d, want 400, body %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("settle then re-settle", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/groups/%s/expenses/%s/settle", group.ID, expense.ID)

		rec := doJSON(t, handler, "POST", path, token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("settle: status %d, body %s", rec.Code, rec.Body.String())
		}
		settled := decode[expenseResponse](t, rec)
		if !settled.Settled {
			t.Error("expected settled expense")
		}

		rec = doJSON(t, handler, "POST", path, token, nil)
		if rec.Code != http.StatusConflict {
			t.Fatalf("re-settle: status %d, want 409", rec.Code)
		}
	})

	t.Run("unknown expense is a 404", func(t *testing.T) {
		rec := doJSON(t, handler, "GET", fmt.Sprintf("/api/v1/groups/%s/expenses/nope", group.ID), token, nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status %d, want 404", rec.Code)
		}
	})

	t.Run("delete expense", func(t *testing.T) {
		rec := doJSON(t, handler, "DELETE", fmt.Sprintf("/api/v1/groups/%s/expenses/%s", group.ID, expense.ID), token, nil)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("status %d, want 204, body %s", rec.Code, rec.Body.String())
		}
	})
}

func TestReceiptExtractEndpoint(t *testing.T) {
	handler := newTestServer(t)

	rec := doJSON(t, handler, "POST", "/api/v1/receipts/extract", "", map[string]any{
		"text":   "Joe's Diner\n123 Main St\nBurger $5.00\nTax $0.40\nTotal $5.40\n01/15/2024",
		"blocks": []string{"Joe's Diner", "123 Main St", "Burger $5.00\nTax $0.40\nTotal $5.40", "01/15/2024"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}

	resp := decode[receiptResponse](t, rec)
	if resp.TotalAmount == nil || math.Abs(*resp.TotalAmount-5.40) > 0.001 {
		t.Errorf("total = %v, want 5.40", resp.TotalAmount)
	}
	if resp.MerchantName == nil || *resp.MerchantName != "Joe's Diner" {
		t.Errorf("merchant = %v, want Joe's Diner", resp.MerchantName)
	}
	if resp.Date == nil || *resp.Date != "2024-01-15" {
		t.Errorf("date = %v, want 2024-01-15", resp.Date)
	}

	t.Run("empty text is a 400", func(t *testing.T) {
		rec := doJSON(t, handler, "POST", "/api/v1/receipts/extract", "", map[string]any{"text": ""})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status %d, want 400", rec.Code)
		}
	})
}

func TestHealthz(t *testing.T) {
	handler := newTestServer(t)
	rec := doJSON(t, handler, "GET", "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
}
