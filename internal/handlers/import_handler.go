package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"offerwall-service/internal/csvimport"
	"offerwall-service/internal/helpers"
	"offerwall-service/internal/logger"
	"offerwall-service/internal/middleware"
	"offerwall-service/internal/stores"
)

// ImportCSV bulk-upserts offers from an uploaded CSV file. Header problems
// abort the import before any row is applied; row problems come back as
// warnings while the rest of the batch commits.
func ImportCSV(c *gin.Context) {
	fileHeader, err := c.FormFile("csv_file")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Please upload a CSV file.")
		return
	}
	if !strings.HasSuffix(fileHeader.Filename, ".csv") {
		helpers.RespondWithError(c, http.StatusBadRequest, "Please upload a CSV file.")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Error processing file.")
		return
	}
	defer src.Close()

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	importer := csvimport.New(stores.NewOfferStore(gormDB))
	result, err := importer.Import(src)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	logger.Get().Info().
		Int("created", result.Created).
		Int("updated", result.Updated).
		Int("warnings", len(result.Warnings)).
		Msg("csv import finished")

	c.JSON(http.StatusOK, gin.H{
		"message":  "CSV file has been imported successfully!",
		"created":  result.Created,
		"updated":  result.Updated,
		"warnings": result.Warnings,
	})
}

// AddImages stores a batch of uploaded offer images. Only .png files are
// accepted; invalid files get per-file errors without failing the batch.
func AddImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid upload. Please select files.")
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		helpers.RespondWithError(c, http.StatusBadRequest, "No images submitted.")
		return
	}

	mediaRoot := middleware.GetMediaRoot(c)
	if mediaRoot == "" {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Media storage not configured.")
		return
	}

	result, err := helpers.SaveOfferImages(c, files, mediaRoot)
	if err != nil {
		logger.Get().Error().Err(err).Msg("image upload failed")
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error processing file.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Images have been added successfully!",
		"saved":   result.Saved,
		"errors":  result.Errors,
	})
}
