package models

import (
	"time"
)

// OrderStatus values an order may hold. Cancellation is a status
// change, never a row delete.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

var validStatuses = []string{StatusPending, StatusConfirmed, StatusDelivered, StatusCancelled}

func IsValidStatus(status string) bool {
	for _, s := range validStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func ValidStatuses() []string {
	return validStatuses
}

type Order struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	RestaurantID int64     `json:"restaurant_id"`
	TotalPrice   float64   `json:"total_price"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateOrderRequest uses pointer fields so that absent keys are
// rejected at the binding boundary instead of silently defaulting.
type CreateOrderRequest struct {
	UserID       *int64             `json:"user_id" binding:"required"`
	RestaurantID *int64             `json:"restaurant_id" binding:"required"`
	Items        []OrderLineRequest `json:"items" binding:"required"`
}

// OrderLineRequest fields are pointers so the handler can tell an
// absent key from a zero value; both are checked per line, in input
// order.
type OrderLineRequest struct {
	ItemID   *int64 `json:"item_id"`
	Quantity *int   `json:"quantity"`
}

// OrderLineDetail is the priced summary of one accepted line, echoed
// back to the caller on creation.
type OrderLineDetail struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Subtotal float64 `json:"subtotal"`
}

type CreateOrderResponse struct {
	OrderID    int64             `json:"order_id"`
	TotalPrice float64           `json:"total_price"`
	Status     string            `json:"status"`
	Items      []OrderLineDetail `json:"items"`
}

// UserOrder is an order as listed for a user: header joined with the
// restaurant name plus its items joined with menu item names.
type UserOrder struct {
	ID             int64           `json:"id"`
	UserID         int64           `json:"user_id"`
	RestaurantID   int64           `json:"restaurant_id"`
	RestaurantName string          `json:"restaurant_name"`
	TotalPrice     float64         `json:"total_price"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	Items          []UserOrderItem `json:"items"`
}

type UserOrderItem struct {
	ID       int64   `json:"id"`
	OrderID  int64   `json:"order_id"`
	ItemID   int64   `json:"item_id"`
	ItemName string  `json:"item_name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderEvent is published to the broker after a successful write.
// Purely informational; no request depends on its delivery.
type OrderEvent struct {
	OrderID  int64     `json:"order_id"`
	UserID   int64     `json:"user_id"`
	Type     string    `json:"type"` // created, status_updated, cancelled
	Status   string    `json:"status"`
	Total    float64   `json:"total"`
	Occurred time.Time `json:"occurred"`
}
