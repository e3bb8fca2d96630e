package stores

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"offerwall-service/internal/models"
)

// setupTestDB opens a throwaway in-memory database named after the test so
// parallel tests never share state.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Offer{},
		&models.OfferWall{},
		&models.OfferWallOffer{},
		&models.OfferWallPopupOffer{},
	)
	require.NoError(t, err)

	return db
}

func mustUpsert(t *testing.T, store *OfferStore, in OfferUpsert) *models.Offer {
	t.Helper()
	offer, _, err := store.UpsertByName(in)
	require.NoError(t, err)
	return offer
}
