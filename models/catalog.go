package models

type Restaurant struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	CuisineType string `json:"cuisine_type"`
	OrderCount  int    `json:"order_count"`
}

type MenuItem struct {
	ID           int64   `json:"id"`
	RestaurantID int64   `json:"restaurant_id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Category     string  `json:"category"`
	Available    bool    `json:"available"`
}

// MenuItemUpdate carries a partial update: nil means the caller did
// not supply the field, so it is left untouched. Keys outside this set
// are ignored by the JSON decoder.
type MenuItemUpdate struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Available   *bool    `json:"available"`
}

// Empty reports whether no updatable field was supplied at all.
func (u *MenuItemUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.Price == nil &&
		u.Category == nil && u.Available == nil
}
