package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareCountsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New("api")

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/menu/items/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
	})

	for _, path := range []string{"/menu/items/1", "/menu/items/2"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if got := testutil.ToFloat64(m.Requests.WithLabelValues("/menu/items/:id", "200")); got != 2 {
		t.Fatalf("expected 2 item requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.Requests.WithLabelValues("unmatched", "404")); got != 1 {
		t.Fatalf("expected 1 unmatched request, got %v", got)
	}
}

func TestDomainCounters(t *testing.T) {
	m := New("api")
	m.OrderPlaced("card")
	m.OrderPlaced("card")
	m.StatusChanged("preparing")
	m.CartChanged("add")
	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()

	if got := testutil.ToFloat64(m.OrdersPlaced.WithLabelValues("card")); got != 2 {
		t.Fatalf("orders placed = %v", got)
	}
	if got := testutil.ToFloat64(m.StatusTransitions.WithLabelValues("preparing")); got != 1 {
		t.Fatalf("transitions = %v", got)
	}
	if got := testutil.ToFloat64(m.CartMutations.WithLabelValues("add")); got != 1 {
		t.Fatalf("cart mutations = %v", got)
	}
	if got := testutil.ToFloat64(m.ActiveSessions); got != 1 {
		t.Fatalf("active sessions = %v", got)
	}
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	m.OrderPlaced("cash")
	m.StatusChanged("ready")
	m.CartChanged("clear")
	m.SessionOpened()
	m.SessionClosed()
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New("api")
	m.OrderPlaced("mobile")

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if !strings.Contains(string(body), `tableorder_api_orders_placed_total{payment_method="mobile"} 1`) {
		t.Fatalf("metric missing from output:\n%s", body)
	}
}
