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

type OfferRequest struct {
	ID          int     `json:"id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	URL         string  `json:"url"`
	IsActive    bool    `json:"is_active"`
	SumTo       float64 `json:"sum_to" binding:"required"`
	TermTo      int     `json:"term_to" binding:"required"`
	PercentRate float64 `json:"percent_rate"`
}

type BulkActionRequest struct {
	Action   string `json:"action" binding:"required"`
	OfferIDs []int  `json:"offer_ids" binding:"required,min=1"`
}

// bulkActions is the command table for admin bulk operations; each action
// takes the target ids and reports the affected count.
var bulkActions = map[string]func(*stores.OfferStore, []int) (int64, error){
	"activate": func(s *stores.OfferStore, ids []int) (int64, error) {
		return s.SetActive(ids, true)
	},
	"deactivate": func(s *stores.OfferStore, ids []int) (int64, error) {
		return s.SetActive(ids, false)
	},
	"remove_from_all_offerwalls": func(s *stores.OfferStore, ids []int) (int64, error) {
		return s.DetachFromAllWalls(ids)
	},
}

func CreateOffer(c *gin.Context) {
	var req OfferRequest
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

	if !models.IsKnownOfferName(req.Name) {
		helpers.RespondWithError(c, http.StatusBadRequest, "Unknown offer name: "+req.Name)
		return
	}

	offer := models.Offer{
		ID:          req.ID,
		Name:        req.Name,
		URL:         req.URL,
		IsActive:    req.IsActive,
		SumTo:       req.SumTo,
		TermTo:      req.TermTo,
		PercentRate: req.PercentRate,
	}
	if err := gormDB.Create(&offer).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create offer.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Offer created successfully.",
		"offer":   serializers.NewOfferJSON(offer),
	})
}

func GetOffer(c *gin.Context) {
	offerID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid offer id.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	offer, err := stores.NewOfferStore(gormDB).GetByID(offerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		helpers.RespondNotFound(c)
		return
	}
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving offer.")
		return
	}

	c.JSON(http.StatusOK, serializers.NewOfferJSON(*offer))
}

func ListOffers(c *gin.Context) {
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

	offers, totalCount, err := stores.NewOfferStore(gormDB).List(page, limit)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving offers.")
		return
	}

	offerJSONs := make([]serializers.OfferJSON, 0, len(offers))
	for _, offer := range offers {
		offerJSONs = append(offerJSONs, serializers.NewOfferJSON(offer))
	}

	c.JSON(http.StatusOK, gin.H{
		"offers":      offerJSONs,
		"total":       totalCount,
		"page":        page,
		"limit":       limit,
		"total_pages": (totalCount + int64(limit) - 1) / int64(limit),
	})
}

func UpdateOffer(c *gin.Context) {
	offerID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid offer id.")
		return
	}

	var req OfferRequest
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

	if !models.IsKnownOfferName(req.Name) {
		helpers.RespondWithError(c, http.StatusBadRequest, "Unknown offer name: "+req.Name)
		return
	}

	var offer models.Offer
	if err := gormDB.First(&offer, "id = ?", offerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondNotFound(c)
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding offer.")
		return
	}

	offer.Name = req.Name
	offer.URL = req.URL
	offer.IsActive = req.IsActive
	offer.SumTo = req.SumTo
	offer.TermTo = req.TermTo
	offer.PercentRate = req.PercentRate

	if err := gormDB.Save(&offer).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update offer.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Offer updated successfully.",
		"offer":   serializers.NewOfferJSON(offer),
	})
}

func DeleteOffer(c *gin.Context) {
	offerID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid offer id.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	err = stores.NewOfferStore(gormDB).Delete(offerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		helpers.RespondNotFound(c)
		return
	}
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete offer.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Offer deleted successfully."})
}

// BulkOfferAction dispatches an explicit named bulk operation over a set of
// offer ids.
func BulkOfferAction(c *gin.Context) {
	var req BulkActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	action, ok := bulkActions[req.Action]
	if !ok {
		helpers.RespondWithError(c, http.StatusBadRequest, "Unknown action: "+req.Action)
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	count, err := action(stores.NewOfferStore(gormDB), req.OfferIDs)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to apply action.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"action":   req.Action,
		"affected": count,
	})
}
