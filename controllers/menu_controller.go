package controllers

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"food-order-service/database"
	"food-order-service/models"

	"github.com/gin-gonic/gin"
)

// UpdateMenuItem applies a partial update. Only fields present in the
// payload are written; an empty field set is a 400.
func UpdateMenuItem(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("item_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var req models.MenuItemUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	var id int64
	err = database.DB.QueryRow("SELECT id FROM menu_items WHERE id = ?", itemID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if req.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	setClauses := []string{}
	args := []interface{}{}
	if req.Name != nil {
		setClauses = append(setClauses, "name = ?")
		args = append(args, *req.Name)
	}
	if req.Description != nil {
		setClauses = append(setClauses, "description = ?")
		args = append(args, *req.Description)
	}
	if req.Price != nil {
		setClauses = append(setClauses, "price = ?")
		args = append(args, *req.Price)
	}
	if req.Category != nil {
		setClauses = append(setClauses, "category = ?")
		args = append(args, *req.Category)
	}
	if req.Available != nil {
		setClauses = append(setClauses, "available = ?")
		args = append(args, *req.Available)
	}
	args = append(args, itemID)

	query := fmt.Sprintf("UPDATE menu_items SET %s WHERE id = ?", strings.Join(setClauses, ", "))
	if _, err := database.DB.Exec(query, args...); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var item models.MenuItem
	var description sql.NullString
	err = database.DB.QueryRow(
		"SELECT id, restaurant_id, name, description, price, category, available FROM menu_items WHERE id = ?",
		itemID,
	).Scan(&item.ID, &item.RestaurantID, &item.Name, &description, &item.Price, &item.Category, &item.Available)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	item.Description = description.String

	c.JSON(http.StatusOK, item)
}

// DeleteMenuItem removes an item unless any order references it. The
// check is at the application layer on top of the foreign keys, so the
// client gets a 409 with a count instead of a driver error.
func DeleteMenuItem(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("item_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var id int64
	err = database.DB.QueryRow("SELECT id FROM menu_items WHERE id = ?", itemID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var count int
	if err := database.DB.QueryRow("SELECT COUNT(*) FROM order_items WHERE item_id = ?", itemID).Scan(&count); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Cannot delete item. It appears in %d order(s)", count)})
		return
	}

	if _, err := database.DB.Exec("DELETE FROM menu_items WHERE id = ?", itemID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted successfully", "id": itemID})
}
