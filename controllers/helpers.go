package controllers

import (
	"Pairly/middleware"
	models "Pairly/models/postgres"
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// currentUsername resolves the authenticated user's profile username from
// the request's Bearer token. The JWT decoder aborts the request itself on
// auth failures.
func currentUsername(c *gin.Context, db *gorm.DB) (string, error) {
	email, err := middleware.JWT_decoder(c)
	if err != nil {
		return "", err
	}

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return "", errors.New("user not found: invalid email")
	}
	return user.ProfileUsername, nil
}
