package controllers

import (
	"net/http"

	"food-order-service/database"
	"food-order-service/models"

	"github.com/gin-gonic/gin"
)

// GetDashboardAnalytics aggregates restaurant performance, the top 10
// items by quantity sold, and the top 10 customers by lifetime spend.
func GetDashboardAnalytics(c *gin.Context) {
	rows, err := database.DB.Query(`
		SELECT
			r.id,
			r.name,
			r.cuisine_type,
			r.order_count,
			COUNT(DISTINCT o.id) AS completed_orders,
			COUNT(DISTINCT o.user_id) AS unique_customers,
			COALESCE(SUM(o.total_price), 0) AS total_revenue,
			COALESCE(AVG(o.total_price), 0) AS avg_order_value
		FROM restaurants r
		LEFT JOIN orders o ON r.id = o.restaurant_id
		GROUP BY r.id, r.name, r.cuisine_type, r.order_count
		ORDER BY total_revenue DESC
	`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rows.Close()

	restaurants := []models.RestaurantPerformance{}
	for rows.Next() {
		var r models.RestaurantPerformance
		if err := rows.Scan(&r.ID, &r.Name, &r.CuisineType, &r.OrderCount,
			&r.CompletedOrders, &r.UniqueCustomers, &r.TotalRevenue, &r.AvgOrderValue); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		restaurants = append(restaurants, r)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	itemRows, err := database.DB.Query(`
		SELECT
			mi.id,
			mi.name,
			r.name AS restaurant_name,
			SUM(oi.quantity) AS total_sold,
			SUM(oi.price * oi.quantity) AS total_revenue
		FROM menu_items mi
		JOIN order_items oi ON mi.id = oi.item_id
		JOIN restaurants r ON mi.restaurant_id = r.id
		GROUP BY mi.id, mi.name, r.name
		ORDER BY total_sold DESC
		LIMIT 10
	`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer itemRows.Close()

	topItems := []models.TopItem{}
	for itemRows.Next() {
		var t models.TopItem
		if err := itemRows.Scan(&t.ID, &t.Name, &t.RestaurantName, &t.TotalSold, &t.TotalRevenue); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		topItems = append(topItems, t)
	}
	if err := itemRows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	customerRows, err := database.DB.Query(`
		SELECT
			u.id,
			u.name,
			u.email,
			COUNT(o.id) AS total_orders,
			COALESCE(SUM(o.total_price), 0) AS lifetime_value
		FROM users u
		LEFT JOIN orders o ON u.id = o.user_id
		GROUP BY u.id, u.name, u.email
		ORDER BY lifetime_value DESC
		LIMIT 10
	`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer customerRows.Close()

	topCustomers := []models.TopCustomer{}
	for customerRows.Next() {
		var t models.TopCustomer
		if err := customerRows.Scan(&t.ID, &t.Name, &t.Email, &t.TotalOrders, &t.LifetimeValue); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		topCustomers = append(topCustomers, t)
	}
	if err := customerRows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.DashboardResponse{
		Restaurants:  restaurants,
		TopItems:     topItems,
		TopCustomers: topCustomers,
	})
}
