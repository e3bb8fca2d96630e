package stores

import (
	"errors"

	"gorm.io/gorm"

	"offerwall-service/internal/models"
)

// ErrUnknownOfferName is returned when an upsert names an offer outside the
// known enumeration. Callers treat it as a per-row warning, not a failure.
var ErrUnknownOfferName = errors.New("unknown offer name")

// OfferUpsert carries one row of offer data keyed by Name. ID is only used
// when the offer does not exist yet; the stored id of an existing offer is
// never reassigned.
type OfferUpsert struct {
	ID          int
	Name        string
	URL         string
	IsActive    bool
	SumTo       float64
	TermTo      int
	PercentRate float64
}

type OfferStore struct {
	db *gorm.DB
}

func NewOfferStore(db *gorm.DB) *OfferStore {
	return &OfferStore{db: db}
}

// UpsertByName creates or updates an offer keyed by name. The second return
// value reports whether a new record was created.
func (s *OfferStore) UpsertByName(in OfferUpsert) (*models.Offer, bool, error) {
	if !models.IsKnownOfferName(in.Name) {
		return nil, false, ErrUnknownOfferName
	}

	var offer models.Offer
	err := s.db.Where("name = ?", in.Name).First(&offer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		offer = models.Offer{
			ID:          in.ID,
			Name:        in.Name,
			URL:         in.URL,
			IsActive:    in.IsActive,
			SumTo:       in.SumTo,
			TermTo:      in.TermTo,
			PercentRate: in.PercentRate,
		}
		if err := s.db.Create(&offer).Error; err != nil {
			return nil, false, err
		}
		return &offer, true, nil
	}
	if err != nil {
		return nil, false, err
	}

	offer.URL = in.URL
	offer.IsActive = in.IsActive
	offer.SumTo = in.SumTo
	offer.TermTo = in.TermTo
	offer.PercentRate = in.PercentRate
	if err := s.db.Save(&offer).Error; err != nil {
		return nil, false, err
	}
	return &offer, false, nil
}

func (s *OfferStore) GetByID(id int) (*models.Offer, error) {
	var offer models.Offer
	if err := s.db.First(&offer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}

func (s *OfferStore) List(page, limit int) ([]models.Offer, int64, error) {
	var totalCount int64
	if err := s.db.Model(&models.Offer{}).Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	var offers []models.Offer
	offset := (page - 1) * limit
	err := s.db.Offset(offset).Limit(limit).Order("name ASC, id ASC").Find(&offers).Error
	if err != nil {
		return nil, 0, err
	}
	return offers, totalCount, nil
}

// DistinctNames returns the set of offer names currently stored, without
// duplicates, sorted for reproducibility.
func (s *OfferStore) DistinctNames() ([]string, error) {
	names := make([]string, 0)
	err := s.db.Model(&models.Offer{}).
		Distinct("name").
		Order("name ASC").
		Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// Delete removes an offer together with every assignment referencing it.
func (s *OfferStore) Delete(id int) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("offer_id = ?", id).Delete(&models.OfferWallOffer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("offer_id = ?", id).Delete(&models.OfferWallPopupOffer{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Offer{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// SetActive flips is_active across the given offers and returns how many
// rows changed.
func (s *OfferStore) SetActive(ids []int, active bool) (int64, error) {
	result := s.db.Model(&models.Offer{}).
		Where("id IN ?", ids).
		Update("is_active", active)
	return result.RowsAffected, result.Error
}

// DetachFromAllWalls removes the given offers from every wall, ordered and
// popup assignments alike, and returns the number of assignments removed.
func (s *OfferStore) DetachFromAllWalls(ids []int) (int64, error) {
	var removed int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("offer_id IN ?", ids).Delete(&models.OfferWallOffer{})
		if result.Error != nil {
			return result.Error
		}
		removed += result.RowsAffected

		result = tx.Where("offer_id IN ?", ids).Delete(&models.OfferWallPopupOffer{})
		if result.Error != nil {
			return result.Error
		}
		removed += result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
