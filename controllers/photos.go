package controllers

import (
	models "Pairly/models/postgres"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gorm.io/gorm"
)

// @Summary List the shared photo timeline
// @Description Returns the couple's photos (own plus friends'), newest first
// @Tags photos
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {array} object{id=string,url=string,caption=string}
// @Failure 500 {object} object{error=string}
// @Security ApiKeyAuth
// @Router /auth/photos [get]
func ListTimelinePhotos(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, err := currentUsername(c, db)
		if err != nil {
			return
		}

		// Own photos plus those of friends
		var friendships []models.Friendship
		if err := db.Where("username1 = ? OR username2 = ?", username, username).
			Find(&friendships).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching friendships"})
			return
		}

		owners := []string{username}
		for _, friendship := range friendships {
			if friendship.Username1 == username {
				owners = append(owners, friendship.Username2)
			} else {
				owners = append(owners, friendship.Username1)
			}
		}

		var photos []models.TimelinePhoto
		if err := db.Where("owner_username IN (?)", owners).
			Order("taken_at DESC").
			Find(&photos).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching photos"})
			return
		}

		out := make([]gin.H, len(photos))
		for i, photo := range photos {
			out[i] = gin.H{
				"id":       photo.ID,
				"owner":    photo.OwnerUsername,
				"caption":  photo.Caption,
				"url":      photo.URL,
				"taken_at": photo.TakenAt,
			}
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary Add a photo to the timeline
// @Tags photos
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param url formData string true "Photo URL (already uploaded to blob storage)"
// @Param caption formData string false "Caption"
// @Param taken_at formData string false "RFC3339 timestamp"
// @Success 200 {object} object{id=string}
// @Failure 400 {object} object{error=string}
// @Security ApiKeyAuth
// @Router /auth/photos [post]
func AddTimelinePhoto(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, err := currentUsername(c, db)
		if err != nil {
			return
		}

		url := c.PostForm("url")
		if url == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
			return
		}

		takenAt := time.Now()
		if raw := c.PostForm("taken_at"); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "taken_at must be RFC3339"})
				return
			}
			takenAt = parsed
		}

		photo := models.TimelinePhoto{
			OwnerUsername: username,
			Caption:       c.PostForm("caption"),
			URL:           url,
			TakenAt:       takenAt,
		}
		if err := db.Create(&photo).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving photo"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": photo.ID, "message": "Photo added"})
	}
}

// @Summary Delete an own photo from the timeline
// @Tags photos
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param photo_id path string true "Photo id"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Security ApiKeyAuth
// @Router /auth/photos/{photo_id} [delete]
func DeleteTimelinePhoto(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, err := currentUsername(c, db)
		if err != nil {
			return
		}

		photoID := c.Param("photo_id")

		result := db.Where("id = ? AND owner_username = ?", photoID, username).
			Delete(&models.TimelinePhoto{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting photo"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Photo not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Photo deleted"})
	}
}
