package controllers

import (
	"database/sql"
	"net/http"
	"regexp"
	"testing"

	"food-order-service/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectMenuItemExists(mock sqlmock.Sqlmock, itemID int64) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM menu_items WHERE id = ?")).
		WithArgs(itemID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(itemID))
}

func TestUpdateMenuItemPartialFields(t *testing.T) {
	mock, r := newTestRouter(t)

	expectMenuItemExists(mock, 3)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE menu_items SET price = ?, available = ? WHERE id = ?")).
		WithArgs(10.5, false, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, restaurant_id, name, description, price, category, available FROM menu_items WHERE id = ?")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "restaurant_id", "name", "description", "price", "category", "available"}).
			AddRow(3, 1, "Margherita Pizza", "Tomato, mozzarella, basil", 10.5, "Mains", false))

	w := doJSON(t, r, http.MethodPut, "/api/menu/3", map[string]interface{}{
		"price":     10.5,
		"available": false,
		"rating":    5, // not in the allow-list, silently ignored
	})

	require.Equal(t, http.StatusOK, w.Code)

	var item models.MenuItem
	decodeBody(t, w, &item)
	assert.InDelta(t, 10.5, item.Price, 1e-9)
	assert.False(t, item.Available)
	assert.Equal(t, "Margherita Pizza", item.Name)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMenuItemNullDescriptionReadBack(t *testing.T) {
	mock, r := newTestRouter(t)

	expectMenuItemExists(mock, 3)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE menu_items SET price = ? WHERE id = ?")).
		WithArgs(10.5, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, restaurant_id, name, description, price, category, available FROM menu_items WHERE id = ?")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "restaurant_id", "name", "description", "price", "category", "available"}).
			AddRow(3, 1, "Margherita Pizza", nil, 10.5, "Mains", true))

	w := doJSON(t, r, http.MethodPut, "/api/menu/3", map[string]interface{}{"price": 10.5})

	require.Equal(t, http.StatusOK, w.Code)

	var item models.MenuItem
	decodeBody(t, w, &item)
	assert.Equal(t, "", item.Description)

	require.NoError(t, mock.ExpectationsWereMet())
}

// An empty update payload changes nothing and is rejected.
func TestUpdateMenuItemEmptyPayload(t *testing.T) {
	mock, r := newTestRouter(t)

	expectMenuItemExists(mock, 3)

	w := doJSON(t, r, http.MethodPut, "/api/menu/3", map[string]interface{}{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No valid fields to update", errorMessage(t, w))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMenuItemNotFound(t *testing.T) {
	mock, r := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM menu_items WHERE id = ?")).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	w := doJSON(t, r, http.MethodPut, "/api/menu/99", map[string]interface{}{"price": 1.0})

	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMenuItemSuccess(t *testing.T) {
	mock, r := newTestRouter(t)

	expectMenuItemExists(mock, 7)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM order_items WHERE item_id = ?")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM menu_items WHERE id = ?")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := doJSON(t, r, http.MethodDelete, "/api/menu/7", nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

// A menu item referenced by existing orders must survive.
func TestDeleteMenuItemReferencedByOrders(t *testing.T) {
	mock, r := newTestRouter(t)

	expectMenuItemExists(mock, 3)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM order_items WHERE item_id = ?")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	w := doJSON(t, r, http.MethodDelete, "/api/menu/3", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Cannot delete item. It appears in 2 order(s)", errorMessage(t, w))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMenuItemNotFound(t *testing.T) {
	mock, r := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM menu_items WHERE id = ?")).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	w := doJSON(t, r, http.MethodDelete, "/api/menu/99", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
