package controllers

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"food-order-service/database"
	"food-order-service/middlewares"
	"food-order-service/models"
	"food-order-service/rabbitmq"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var rabbitMQ *rabbitmq.RabbitMQ

func SetRabbitMQ(rmq *rabbitmq.RabbitMQ) {
	rabbitMQ = rmq
}

// publishOrderEvent is best-effort: a broker failure never affects the
// response already sent to the client.
func publishOrderEvent(event models.OrderEvent) {
	if rabbitMQ == nil {
		return
	}
	if err := rabbitMQ.PublishOrderEvent(event); err != nil {
		logrus.WithError(err).WithField("order_id", event.OrderID).
			Warn("failed to publish order event")
	}
}

// CreateOrder prices and persists an order. All lines are validated
// and priced against the given restaurant before anything is written;
// the header and item rows then go in one transaction, so a failure
// anywhere leaves no partial state.
func CreateOrder(c *gin.Context) {
	defer func() {
		ok := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOrderOperation("create", ok)
	}()

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: user_id, restaurant_id, items"})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Items must be a non-empty list"})
		return
	}

	userID := *req.UserID
	restaurantID := *req.RestaurantID

	var id int64
	err := database.DB.QueryRow("SELECT id FROM users WHERE id = ?", userID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	err = database.DB.QueryRow("SELECT id FROM restaurants WHERE id = ?", restaurantID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	type pricedLine struct {
		itemID   int64
		quantity int
		price    float64
	}

	var totalPrice float64
	lines := make([]pricedLine, 0, len(req.Items))
	details := make([]models.OrderLineDetail, 0, len(req.Items))

	for _, item := range req.Items {
		if item.ItemID == nil || item.Quantity == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Each item must have item_id and quantity"})
			return
		}

		itemID := *item.ItemID
		quantity := *item.Quantity

		if quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be positive"})
			return
		}

		// Restaurant-scoped lookup: an item id that belongs to a
		// different restaurant is treated as not found. The price read
		// here is the snapshot written to order_items below.
		var price float64
		var name string
		err := database.DB.QueryRow(
			"SELECT price, name FROM menu_items WHERE id = ? AND restaurant_id = ?",
			itemID, restaurantID,
		).Scan(&price, &name)
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Menu item %d not found for this restaurant", itemID)})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		subtotal := price * float64(quantity)
		totalPrice += subtotal
		lines = append(lines, pricedLine{itemID: itemID, quantity: quantity, price: price})
		details = append(details, models.OrderLineDetail{
			Name:     name,
			Quantity: quantity,
			Price:    price,
			Subtotal: subtotal,
		})
	}

	tx, err := database.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result, err := tx.Exec(
		"INSERT INTO orders (user_id, restaurant_id, total_price, status) VALUES (?, ?, ?, ?)",
		userID, restaurantID, totalPrice, models.StatusPending,
	)
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	orderID, err := result.LastInsertId()
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	for _, line := range lines {
		if _, err := tx.Exec(
			"INSERT INTO order_items (order_id, item_id, quantity, price) VALUES (?, ?, ?, ?)",
			orderID, line.itemID, line.quantity, line.price,
		); err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, models.CreateOrderResponse{
		OrderID:    orderID,
		TotalPrice: totalPrice,
		Status:     models.StatusPending,
		Items:      details,
	})

	publishOrderEvent(models.OrderEvent{
		OrderID:  orderID,
		UserID:   userID,
		Type:     "created",
		Status:   models.StatusPending,
		Total:    totalPrice,
		Occurred: time.Now(),
	})
}

// GetUserOrders lists a user's orders newest first, each with the
// restaurant name and its items with menu item names.
func GetUserOrders(c *gin.Context) {
	defer func() {
		ok := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOrderOperation("list", ok)
	}()

	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	rows, err := database.DB.Query(`
		SELECT o.id, o.user_id, o.restaurant_id, o.total_price, o.status, o.created_at, r.name
		FROM orders o
		JOIN restaurants r ON o.restaurant_id = r.id
		WHERE o.user_id = ?
		ORDER BY o.created_at DESC
	`, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rows.Close()

	orders := []models.UserOrder{}
	for rows.Next() {
		var o models.UserOrder
		if err := rows.Scan(&o.ID, &o.UserID, &o.RestaurantID, &o.TotalPrice, &o.Status, &o.CreatedAt, &o.RestaurantName); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		o.Items = []models.UserOrderItem{}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	for i := range orders {
		itemRows, err := database.DB.Query(`
			SELECT oi.id, oi.order_id, oi.item_id, oi.quantity, oi.price, mi.name
			FROM order_items oi
			JOIN menu_items mi ON oi.item_id = mi.id
			WHERE oi.order_id = ?
		`, orders[i].ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		for itemRows.Next() {
			var item models.UserOrderItem
			if err := itemRows.Scan(&item.ID, &item.OrderID, &item.ItemID, &item.Quantity, &item.Price, &item.ItemName); err != nil {
				itemRows.Close()
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			orders[i].Items = append(orders[i].Items, item)
		}
		itemRows.Close()
	}

	c.JSON(http.StatusOK, orders)
}

// UpdateOrderStatus moves an order to any status within the enum.
// Only the cancel endpoint enforces the pending-only rule.
func UpdateOrderStatus(c *gin.Context) {
	defer func() {
		ok := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOrderOperation("update_status", ok)
	}()

	orderID, err := strconv.ParseInt(c.Param("order_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: status"})
		return
	}
	if !models.IsValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Invalid status. Must be one of: %s", strings.Join(models.ValidStatuses(), ", ")),
		})
		return
	}

	var id int64
	err = database.DB.QueryRow("SELECT id FROM orders WHERE id = ?", orderID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if _, err := database.DB.Exec("UPDATE orders SET status = ? WHERE id = ?", req.Status, orderID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	err = database.DB.QueryRow(
		"SELECT id, user_id, restaurant_id, total_price, status, created_at FROM orders WHERE id = ?",
		orderID,
	).Scan(&order.ID, &order.UserID, &order.RestaurantID, &order.TotalPrice, &order.Status, &order.CreatedAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, order)

	publishOrderEvent(models.OrderEvent{
		OrderID:  order.ID,
		UserID:   order.UserID,
		Type:     "status_updated",
		Status:   order.Status,
		Total:    order.TotalPrice,
		Occurred: time.Now(),
	})
}

// CancelOrder soft-deletes by flipping a pending order to cancelled.
func CancelOrder(c *gin.Context) {
	defer func() {
		ok := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOrderOperation("cancel", ok)
	}()

	orderID, err := strconv.ParseInt(c.Param("order_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var userID int64
	var totalPrice float64
	var status string
	err = database.DB.QueryRow(
		"SELECT user_id, total_price, status FROM orders WHERE id = ?", orderID,
	).Scan(&userID, &totalPrice, &status)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if status != models.StatusPending {
		c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Cannot cancel order with status '%s'", status)})
		return
	}

	if _, err := database.DB.Exec("UPDATE orders SET status = ? WHERE id = ?", models.StatusCancelled, orderID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "id": orderID})

	publishOrderEvent(models.OrderEvent{
		OrderID:  orderID,
		UserID:   userID,
		Type:     "cancelled",
		Status:   models.StatusCancelled,
		Total:    totalPrice,
		Occurred: time.Now(),
	})
}
