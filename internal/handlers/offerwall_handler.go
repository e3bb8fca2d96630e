package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"offerwall-service/internal/helpers"
	"offerwall-service/internal/serializers"
	"offerwall-service/internal/stores"
)

// GetOfferWall serves the public wall representation by lookup token.
func GetOfferWall(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	store := stores.NewOfferWallStore(gormDB)
	view, err := store.ResolveByToken(c.Param("token"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		helpers.RespondNotFound(c)
		return
	}
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving offer wall.")
		return
	}

	c.JSON(http.StatusOK, serializers.NewOfferWallJSON(view))
}

// GetOfferNames serves the distinct set of offer names currently stored.
func GetOfferNames(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	store := stores.NewOfferStore(gormDB)
	names, err := store.DistinctNames()
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving offer names.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"offer_names": names})
}
