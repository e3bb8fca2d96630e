package stores

import (
	"gorm.io/gorm"

	"offerwall-service/internal/models"
)

// OfferWallView is the aggregate a wall resolves to: wall metadata plus the
// referenced offers of both assignment collections, primary ones in display
// order.
type OfferWallView struct {
	Wall        models.OfferWall
	Offers      []models.Offer
	PopupOffers []models.Offer
}

type OfferWallStore struct {
	db *gorm.DB
}

func NewOfferWallStore(db *gorm.DB) *OfferWallStore {
	return &OfferWallStore{db: db}
}

// ResolveByToken aggregates a wall by its lookup token. It runs a fixed
// fetch plan: the wall, then each assignment collection, then one batched
// offer lookup shared by both collections, so resolving never costs one
// query per assignment. A miss surfaces as gorm.ErrRecordNotFound.
func (s *OfferWallStore) ResolveByToken(token string) (*OfferWallView, error) {
	var wall models.OfferWall
	if err := s.db.Where("token = ?", token).First(&wall).Error; err != nil {
		return nil, err
	}

	var assignments []models.OfferWallOffer
	err := s.db.Where("offer_wall_id = ?", wall.ID).
		Order(`"order" ASC, id ASC`).
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}

	var popupAssignments []models.OfferWallPopupOffer
	err = s.db.Where("offer_wall_id = ?", wall.ID).
		Order("id ASC").
		Find(&popupAssignments).Error
	if err != nil {
		return nil, err
	}

	offerIDs := make([]int, 0, len(assignments)+len(popupAssignments))
	seen := make(map[int]bool)
	for _, assignment := range assignments {
		if !seen[assignment.OfferID] {
			seen[assignment.OfferID] = true
			offerIDs = append(offerIDs, assignment.OfferID)
		}
	}
	for _, assignment := range popupAssignments {
		if !seen[assignment.OfferID] {
			seen[assignment.OfferID] = true
			offerIDs = append(offerIDs, assignment.OfferID)
		}
	}

	offersByID := make(map[int]models.Offer, len(offerIDs))
	if len(offerIDs) > 0 {
		var offers []models.Offer
		if err := s.db.Where("id IN ?", offerIDs).Find(&offers).Error; err != nil {
			return nil, err
		}
		for _, offer := range offers {
			offersByID[offer.ID] = offer
		}
	}

	view := &OfferWallView{
		Wall:        wall,
		Offers:      make([]models.Offer, 0, len(assignments)),
		PopupOffers: make([]models.Offer, 0, len(popupAssignments)),
	}
	for _, assignment := range assignments {
		if offer, ok := offersByID[assignment.OfferID]; ok {
			view.Offers = append(view.Offers, offer)
		}
	}
	for _, assignment := range popupAssignments {
		if offer, ok := offersByID[assignment.OfferID]; ok {
			view.PopupOffers = append(view.PopupOffers, offer)
		}
	}
	return view, nil
}

func (s *OfferWallStore) Create(wall *models.OfferWall) error {
	return s.db.Create(wall).Error
}

func (s *OfferWallStore) GetByID(id int) (*models.OfferWall, error) {
	var wall models.OfferWall
	if err := s.db.First(&wall, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &wall, nil
}

// Update applies name, url and description. The token never changes after
// creation.
func (s *OfferWallStore) Update(wall *models.OfferWall) error {
	return s.db.Model(wall).
		Select("name", "url", "description").
		Updates(map[string]interface{}{
			"name":        wall.Name,
			"url":         wall.URL,
			"description": wall.Description,
		}).Error
}

// Delete removes a wall and cascades both assignment collections in one
// transaction so no orphan assignment rows remain.
func (s *OfferWallStore) Delete(id int) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("offer_wall_id = ?", id).Delete(&models.OfferWallOffer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("offer_wall_id = ?", id).Delete(&models.OfferWallPopupOffer{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.OfferWall{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (s *OfferWallStore) List(page, limit int) ([]models.OfferWall, int64, error) {
	var totalCount int64
	if err := s.db.Model(&models.OfferWall{}).Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	var walls []models.OfferWall
	offset := (page - 1) * limit
	err := s.db.Offset(offset).Limit(limit).Order("name ASC, id ASC").Find(&walls).Error
	if err != nil {
		return nil, 0, err
	}
	return walls, totalCount, nil
}

// AddOffer appends an ordered assignment. Both the wall and the offer must
// exist; a miss surfaces as gorm.ErrRecordNotFound.
func (s *OfferWallStore) AddOffer(wallID, offerID, order int) (*models.OfferWallOffer, error) {
	if err := s.db.First(&models.OfferWall{}, "id = ?", wallID).Error; err != nil {
		return nil, err
	}
	if err := s.db.First(&models.Offer{}, "id = ?", offerID).Error; err != nil {
		return nil, err
	}
	assignment := models.OfferWallOffer{
		OfferWallID: wallID,
		OfferID:     offerID,
		Order:       order,
	}
	if err := s.db.Create(&assignment).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (s *OfferWallStore) UpdateOfferOrder(wallID, assignmentID, order int) error {
	result := s.db.Model(&models.OfferWallOffer{}).
		Where("id = ? AND offer_wall_id = ?", assignmentID, wallID).
		Update("order", order)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *OfferWallStore) RemoveOffer(wallID, assignmentID int) error {
	result := s.db.Where("id = ? AND offer_wall_id = ?", assignmentID, wallID).
		Delete(&models.OfferWallOffer{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *OfferWallStore) AddPopupOffer(wallID, offerID int) (*models.OfferWallPopupOffer, error) {
	if err := s.db.First(&models.OfferWall{}, "id = ?", wallID).Error; err != nil {
		return nil, err
	}
	if err := s.db.First(&models.Offer{}, "id = ?", offerID).Error; err != nil {
		return nil, err
	}
	assignment := models.OfferWallPopupOffer{
		OfferWallID: wallID,
		OfferID:     offerID,
	}
	if err := s.db.Create(&assignment).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (s *OfferWallStore) RemovePopupOffer(wallID, assignmentID int) error {
	result := s.db.Where("id = ? AND offer_wall_id = ?", assignmentID, wallID).
		Delete(&models.OfferWallPopupOffer{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
