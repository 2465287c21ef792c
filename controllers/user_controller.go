package controllers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"food-order-service/database"
	"food-order-service/models"

	"github.com/gin-gonic/gin"
)

// Register creates a user. Email uniqueness is checked before the
// insert; the column is UNIQUE as well, so a race loses with a 500
// rather than a duplicate row.
func Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: name, email, phone"})
		return
	}

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	phone := strings.TrimSpace(req.Phone)

	if name == "" || email == "" || phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields must be non-empty"})
		return
	}

	var existingID int64
	err := database.DB.QueryRow("SELECT id FROM users WHERE email = ?", email).Scan(&existingID)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result, err := database.DB.Exec(
		"INSERT INTO users (name, email, phone) VALUES (?, ?, ?)",
		name, email, phone,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	userID, err := result.LastInsertId()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, models.User{
		ID:    userID,
		Name:  name,
		Email: email,
		Phone: phone,
	})
}
