package server

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"offerwall-service/config"
	"offerwall-service/internal/handlers"
	"offerwall-service/internal/middleware"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())

	setupRoutes(r, db, cfg)

	return r.Run(":" + cfg.Port)
}

func setupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.MediaRootMiddleware(cfg.MediaRoot))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static("/media", cfg.MediaRoot)

	api := r.Group("/api")
	{
		api.GET("/offerwalls/get_offer_names", handlers.GetOfferNames)
		api.GET("/offerwalls/:token", handlers.GetOfferWall)
	}

	r.POST("/admin/login", handlers.Login)

	admin := r.Group("/admin")
	admin.Use(middleware.JWTAuthMiddleware())
	{
		offers := admin.Group("/offers")
		{
			offers.GET("", handlers.ListOffers)
			offers.POST("", handlers.CreateOffer)
			offers.GET("/:id", handlers.GetOffer)
			offers.PUT("/:id", handlers.UpdateOffer)
			offers.DELETE("/:id", handlers.DeleteOffer)
			offers.POST("/import-csv", handlers.ImportCSV)
			offers.POST("/add-images", handlers.AddImages)
			offers.POST("/actions", handlers.BulkOfferAction)
		}

		walls := admin.Group("/offerwalls")
		{
			walls.GET("", handlers.ListOfferWalls)
			walls.POST("", handlers.CreateOfferWall)
			walls.GET("/:id", handlers.GetOfferWallAdmin)
			walls.PUT("/:id", handlers.UpdateOfferWall)
			walls.DELETE("/:id", handlers.DeleteOfferWall)

			walls.POST("/:id/offers", handlers.AddWallOffer)
			walls.PUT("/:id/offers/:assignmentID", handlers.UpdateWallOfferOrder)
			walls.DELETE("/:id/offers/:assignmentID", handlers.RemoveWallOffer)
			walls.POST("/:id/popup-offers", handlers.AddWallPopupOffer)
			walls.DELETE("/:id/popup-offers/:assignmentID", handlers.RemoveWallPopupOffer)
		}
	}
}
