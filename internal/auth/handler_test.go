package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret-key-12345")

	service := NewService(NewInMemoryStaffRepository())
	if err := service.EnsureStaff(context.Background(), "kitchen", "Password@123"); err != nil {
		t.Fatalf("seed staff: %v", err)
	}

	r := gin.New()
	r.POST("/staff/login", NewHandler(service).Login)
	return r
}

func postLogin(r *gin.Engine, payload map[string]string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/staff/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginSuccess(t *testing.T) {
	r := setupTestRouter(t)

	w := postLogin(r, map[string]string{"username": "kitchen", "password": "Password@123"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)

	_, role, err := ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("returned token invalid: %v", err)
	}
	if role != RoleStaff || resp.Role != RoleStaff {
		t.Fatalf("expected STAFF role, got %s/%s", role, resp.Role)
	}
}

func TestLoginMissingFields(t *testing.T) {
	r := setupTestRouter(t)

	w := postLogin(r, map[string]string{"username": "kitchen"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	r := setupTestRouter(t)

	w := postLogin(r, map[string]string{"username": "kitchen", "password": "nope"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}
