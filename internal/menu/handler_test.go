package menu

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupMenuTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	handler := NewHandler(newDefaultService(t))
	r.GET("/menu", handler.List)
	r.GET("/menu/categories", handler.Categories)
	r.GET("/menu/items/:id", handler.Get)

	return r
}

func TestMenuList_FilterByCategory(t *testing.T) {
	router := setupMenuTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/menu?category=Pizza", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Items []Item `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Items) != 1 || resp.Items[0].ID != 2 {
		t.Fatalf("expected only the pizza, got %+v", resp.Items)
	}
}

func TestMenuCategories(t *testing.T) {
	router := setupMenuTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/menu/categories", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp struct {
		Categories []string `json:"categories"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)

	if len(resp.Categories) == 0 || resp.Categories[0] != AllCategories {
		t.Fatalf("expected All first, got %v", resp.Categories)
	}
}

func TestMenuGetItem(t *testing.T) {
	router := setupMenuTestRouter(t)

	cases := map[string]int{
		"/menu/items/1":   http.StatusOK,
		"/menu/items/404": http.StatusNotFound,
		"/menu/items/abc": http.StatusBadRequest,
	}

	for path, want := range cases {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != want {
			t.Errorf("%s: expected %d, got %d", path, want, w.Code)
		}
	}
}
