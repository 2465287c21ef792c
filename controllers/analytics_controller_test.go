package controllers

import (
	"net/http"
	"testing"

	"food-order-service/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboardAnalytics(t *testing.T) {
	mock, r := newTestRouter(t)

	mock.ExpectQuery("FROM restaurants r").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "cuisine_type", "order_count",
			"completed_orders", "unique_customers", "total_revenue", "avg_order_value",
		}).
			AddRow(1, "Pasta Palace", "Italian", 12, 12, 5, 240.0, 20.0).
			AddRow(2, "Dragon Wok", "Chinese", 4, 4, 3, 80.0, 20.0))

	mock.ExpectQuery("FROM menu_items mi").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "restaurant_name", "total_sold", "total_revenue"}).
			AddRow(3, "Margherita Pizza", "Pasta Palace", 20, 190.0))

	mock.ExpectQuery("FROM users u").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "total_orders", "lifetime_value"}).
			AddRow(1, "Alice Example", "alice@example.com", 8, 160.0))

	w := doJSON(t, r, http.MethodGet, "/api/analytics/dashboard", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var dashboard models.DashboardResponse
	decodeBody(t, w, &dashboard)
	require.Len(t, dashboard.Restaurants, 2)
	assert.Equal(t, "Pasta Palace", dashboard.Restaurants[0].Name)
	assert.InDelta(t, 240.0, dashboard.Restaurants[0].TotalRevenue, 1e-9)
	require.Len(t, dashboard.TopItems, 1)
	assert.Equal(t, 20, dashboard.TopItems[0].TotalSold)
	require.Len(t, dashboard.TopCustomers, 1)
	assert.InDelta(t, 160.0, dashboard.TopCustomers[0].LifetimeValue, 1e-9)

	require.NoError(t, mock.ExpectationsWereMet())
}
