package controllers

import (
	"Pairly/middleware"
	models "Pairly/models/postgres"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// @Summary Ping the server
// @Description Returns pong
// @Tags misc
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// @Summary Sign up a new user
// @Description Creates the user and its player profile
// @Tags user
// @Accept x-www-form-urlencoded
// @Produce json
// @Param email formData string true "Email"
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /signup [post]
func SignUp(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := strings.TrimSpace(c.PostForm("email"))
		username := strings.TrimSpace(c.PostForm("username"))
		password := c.PostForm("password")

		if email == "" || username == "" || password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parameters can't be empty"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing password"})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			profile := models.PlayerProfile{Username: username, DisplayName: username}
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}
			user := models.User{
				Email:           email,
				ProfileUsername: username,
				PasswordHash:    string(hash),
			}
			return tx.Create(&user).Error
		})
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email or username already taken"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "User created successfully"})
	}
}

// @Summary Log in
// @Description Checks credentials and returns a JWT bearer token
// @Tags user
// @Accept x-www-form-urlencoded
// @Produce json
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Success 200 {object} object{token=string}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Router /login [post]
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.PostForm("email")
		password := c.PostForm("password")

		// Minimum input sanitizing
		if strings.Trim(email, " ") == "" || strings.Trim(password, " ") == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parameters can't be empty"})
			return
		}

		var user models.User
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password!"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password!"})
			return
		}

		token, err := middleware.GenerateToken(user.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating token"})
			return
		}

		session := sessions.Default(c)
		session.Set("Email", user.Email)
		if err := session.Save(); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No session!"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token, "username": user.ProfileUsername})
	}
}

// @Summary Log out
// @Description Deletes the session associated with the Email key
// @Tags user
// @Produce json
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Router /auth/logout [delete]
// @Security ApiKeyAuth
func Logout(c *gin.Context) {
	session := sessions.Default(c)
	user := session.Get("Email")
	// There is no session for the user, won't delete nothing
	if user == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session token"})
		return
	}

	session.Delete("Email")
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

// @Summary Get the authenticated user's private info
// @Tags user
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {object} object{email=string,username=string}
// @Failure 401 {object} object{error=string}
// @Router /auth/me [get]
// @Security ApiKeyAuth
func GetUserPrivateInfo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, err := middleware.JWT_decoder(c)
		if err != nil {
			return
		}

		var user models.User
		if err := db.Preload("PlayerProfile").Where("email = ?", email).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found: invalid email"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"email":        user.Email,
			"username":     user.ProfileUsername,
			"display_name": user.PlayerProfile.DisplayName,
			"icon":         user.PlayerProfile.UserIcon,
			"member_since": user.MemberSince,
		})
	}
}

// @Summary Get a user's public info
// @Tags user
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} object{username=string,icon=integer}
// @Failure 404 {object} object{error=string}
// @Router /users/{username} [get]
func GetUserPublicInfo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")

		var profile models.PlayerProfile
		if err := db.Where("username = ?", username).First(&profile).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"username":     profile.Username,
			"display_name": profile.DisplayName,
			"icon":         profile.UserIcon,
		})
	}
}

// @Summary Update the authenticated user's profile
// @Tags user
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param display_name formData string false "Display name"
// @Param icon formData integer false "Icon id"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Router /auth/update [patch]
// @Security ApiKeyAuth
func UpdateUserInfo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, err := currentUsername(c, db)
		if err != nil {
			return
		}

		updates := map[string]interface{}{}
		if displayName := c.PostForm("display_name"); displayName != "" {
			updates["display_name"] = displayName
		}
		if icon := c.PostForm("icon"); icon != "" {
			updates["user_icon"] = icon
		}
		if len(updates) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
			return
		}

		if err := db.Model(&models.PlayerProfile{}).
			Where("username = ?", username).
			Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating profile"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
	}
}
