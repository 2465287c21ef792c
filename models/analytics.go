package models

// RestaurantPerformance aggregates per-restaurant order activity.
// order_count comes from the trigger-maintained column; the rest are
// computed over the orders table.
type RestaurantPerformance struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	CuisineType     string  `json:"cuisine_type"`
	OrderCount      int     `json:"order_count"`
	CompletedOrders int     `json:"completed_orders"`
	UniqueCustomers int     `json:"unique_customers"`
	TotalRevenue    float64 `json:"total_revenue"`
	AvgOrderValue   float64 `json:"avg_order_value"`
}

type TopItem struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	RestaurantName string  `json:"restaurant_name"`
	TotalSold      int     `json:"total_sold"`
	TotalRevenue   float64 `json:"total_revenue"`
}

type TopCustomer struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	TotalOrders   int     `json:"total_orders"`
	LifetimeValue float64 `json:"lifetime_value"`
}

type DashboardResponse struct {
	Restaurants  []RestaurantPerformance `json:"restaurants"`
	TopItems     []TopItem               `json:"top_items"`
	TopCustomers []TopCustomer           `json:"top_customers"`
}
