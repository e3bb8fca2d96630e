package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"offerwall-service/internal/helpers"
	"offerwall-service/internal/models"
	"offerwall-service/internal/serializers"
	"offerwall-service/internal/stores"
)

type OfferWallRequest struct {
	Name        string  `json:"name" binding:"required"`
	URL         string  `json:"url" binding:"required"`
	Description *string `json:"description"`
}

type WallOfferRequest struct {
	OfferID int `json:"offer_id" binding:"required"`
	Order   int `json:"order"`
}

type WallOfferOrderRequest struct {
	Order int `json:"order"`
}

type WallPopupOfferRequest struct {
	OfferID int `json:"offer_id" binding:"required"`
}

func CreateOfferWall(c *gin.Context) {
	var req OfferWallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	wall := models.OfferWall{
		Name:        req.Name,
		URL:         req.URL,
		Description: req.Description,
	}
	if err := stores.NewOfferWallStore(gormDB).Create(&wall); err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create offer wall.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Offer wall created successfully.",
		"id":      wall.ID,
		"token":   wall.Token,
	})
}

func ListOfferWalls(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid page number.")
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid limit.")
		return
	}

	walls, totalCount, err := stores.NewOfferWallStore(gormDB).List(page, limit)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving offer walls.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"offerwalls":  walls,
		"total":       totalCount,
		"page":        page,
		"limit":       limit,
		"total_pages": (totalCount + int64(limit) - 1) / int64(limit),
	})
}

// GetOfferWallAdmin returns the same projection as the public endpoint so
// the two surfaces cannot drift.
func GetOfferWallAdmin(c *gin.Context) {
	wallID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid offer wall id.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	store := stores.NewOfferWallStore(gormDB)
	wall, err := store.GetByID(wallID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		helpers.RespondNotFound(c)
		return
	}
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving offer wall.")
		return
	}

	view, err := store.ResolveByToken(wall.Token)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving offer wall.")
		return
	}

	c.JSON(http.StatusOK, serializers.NewOfferWallJSON(view))
}

func UpdateOfferWall(c *gin.Context) {
	wallID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid offer wall id.")
		return
	}

	var req OfferWallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	store := stores.NewOfferWallStore(gormDB)
	wall, err := store.GetByID(wallID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		helpers.RespondNotFound(c)
		return
	}
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding offer wall.")
		return
	}

	wall.Name = req.Name
	wall.URL = req.URL
	wall.Description = req.Description

	if err := store.Update(wall); err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update offer wall.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Offer wall updated successfully.",
		"offerwall": wall,
	})
}

func DeleteOfferWall(c *gin.Context) {
	wallID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid offer wall id.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	err = stores.NewOfferWallStore(gormDB).Delete(wallID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		helpers.RespondNotFound(c)
		return
	}
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete offer wall.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Offer wall deleted successfully."})
}

func AddWallOffer(c *gin.Context) {
	wallID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid offer wall id.")
		return
	}

	var req WallOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	assignment, err := stores.NewOfferWallStore(gormDB).AddOffer(wallID, req.OfferID, req.Order)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		helpers.RespondNotFound(c)
		return
	}
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to assign offer.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Offer assigned successfully.",
		"assignment_id": assignment.ID,
	})
}

func UpdateWallOfferOrder(c *gin.Context) {
	wallID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid offer wall id.")
		return
	}
	assignmentID, err := strconv.Atoi(c.Param("assignmentID"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid assignment id.")
		return
	}

	var req WallOfferOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	err = stores.NewOfferWallStore(gormDB).UpdateOfferOrder(wallID, assignmentID, req.Order)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		helpers.RespondNotFound(c)
		return
	}
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to reorder assignment.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Assignment reordered successfully."})
}

func RemoveWallOffer(c *gin.Context) {
	wallID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid offer wall id.")
		return
	}
	assignmentID, err := strconv.Atoi(c.Param("assignmentID"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid assignment id.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	err = stores.NewOfferWallStore(gormDB).RemoveOffer(wallID, assignmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		helpers.RespondNotFound(c)
		return
	}
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to remove assignment.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Assignment removed successfully."})
}

func AddWallPopupOffer(c *gin.Context) {
	wallID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid offer wall id.")
		return
	}

	var req WallPopupOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	assignment, err := stores.NewOfferWallStore(gormDB).AddPopupOffer(wallID, req.OfferID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		helpers.RespondNotFound(c)
		return
	}
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to assign popup offer.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Popup offer assigned successfully.",
		"assignment_id": assignment.ID,
	})
}

func RemoveWallPopupOffer(c *gin.Context) {
	wallID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid offer wall id.")
		return
	}
	assignmentID, err := strconv.Atoi(c.Param("assignmentID"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid assignment id.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	err = stores.NewOfferWallStore(gormDB).RemovePopupOffer(wallID, assignmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		helpers.RespondNotFound(c)
		return
	}
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to remove popup assignment.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Popup assignment removed successfully."})
}
