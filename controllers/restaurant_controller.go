package controllers

import (
	"database/sql"
	"net/http"
	"strconv"

	"food-order-service/database"
	"food-order-service/models"

	"github.com/gin-gonic/gin"
)

func ListRestaurants(c *gin.Context) {
	rows, err := database.DB.Query("SELECT id, name, cuisine_type, order_count FROM restaurants")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rows.Close()

	restaurants := []models.Restaurant{}
	for rows.Next() {
		var r models.Restaurant
		if err := rows.Scan(&r.ID, &r.Name, &r.CuisineType, &r.OrderCount); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		restaurants = append(restaurants, r)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, restaurants)
}

// GetMenu returns a restaurant's menu. An empty result is a 404: the
// restaurant is unknown or simply has nothing on offer, and the two
// cases are deliberately not distinguished.
func GetMenu(c *gin.Context) {
	restaurantID, err := strconv.ParseInt(c.Param("restaurant_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid restaurant ID"})
		return
	}

	rows, err := database.DB.Query(
		"SELECT id, restaurant_id, name, description, price, category, available FROM menu_items WHERE restaurant_id = ?",
		restaurantID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rows.Close()

	items := []models.MenuItem{}
	for rows.Next() {
		var m models.MenuItem
		var description sql.NullString
		if err := rows.Scan(&m.ID, &m.RestaurantID, &m.Name, &description, &m.Price, &m.Category, &m.Available); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		m.Description = description.String
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if len(items) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found or no menu items"})
		return
	}

	c.JSON(http.StatusOK, items)
}
