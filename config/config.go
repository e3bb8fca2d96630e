package config

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"offerwall-service/internal/logger"
	"offerwall-service/internal/models"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	MediaRoot     string
	Port          string
	AdminEmail    string
	AdminPassword string
}

func LoadConfig() (*Config, error) {
	return &Config{
		DBHost:        os.Getenv("DB_HOST"),
		DBPort:        os.Getenv("DB_PORT"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		MediaRoot:     getenvDefault("MEDIA_ROOT", "./media"),
		Port:          getenvDefault("PORT", "8080"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}, nil
}

func getenvDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.Offer{},
		&models.OfferWall{},
		&models.OfferWallOffer{},
		&models.OfferWallPopupOffer{},
		&models.AdminUser{},
	)
	if err != nil {
		return nil, err
	}

	seedAdmin(db, cfg)

	return db, nil
}

func seedAdmin(db *gorm.DB, cfg *Config) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return
	}

	var existing models.AdminUser
	if result := db.Where("email = ?", cfg.AdminEmail).First(&existing); result.Error == nil {
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Get().Error().Err(err).Msg("failed to hash seed admin password")
		return
	}

	admin := models.AdminUser{
		Email:    cfg.AdminEmail,
		Password: string(hashedPassword),
	}
	if err := db.Create(&admin).Error; err != nil {
		logger.Get().Error().Err(err).Msg("failed to seed admin user")
		return
	}
	logger.Get().Info().Str("email", cfg.AdminEmail).Msg("seeded admin user")
}
