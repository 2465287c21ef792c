package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"food-order-service/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// newTestRouter swaps a sqlmock connection into the shared pool and
// returns a router wired like main.go (minus middleware).
func newTestRouter(t *testing.T) (sqlmock.Sqlmock, *gin.Engine) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	orig := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = orig })

	gin.SetMode(gin.TestMode)
	r := gin.New()

	api := r.Group("/api")
	api.GET("/restaurants", ListRestaurants)
	api.GET("/menu/:restaurant_id", GetMenu)
	api.PUT("/menu/:item_id", UpdateMenuItem)
	api.DELETE("/menu/:item_id", DeleteMenuItem)
	api.POST("/register", Register)
	api.POST("/orders", CreateOrder)
	api.GET("/orders/:user_id", GetUserOrders)
	api.PUT("/orders/:order_id/status", UpdateOrderStatus)
	api.DELETE("/orders/:order_id", CancelOrder)
	api.GET("/analytics/dashboard", GetDashboardAnalytics)

	return mock, r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	decodeBody(t, w, &body)
	return body["error"]
}
