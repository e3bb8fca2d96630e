// Package serializers holds the external projections shared by the admin
// surface and the public API so the two never drift apart.
package serializers

import (
	"offerwall-service/internal/models"
	"offerwall-service/internal/stores"
)

type OfferJSON struct {
	UUID        string  `json:"uuid"`
	ID          int     `json:"id"`
	URL         string  `json:"url"`
	IsActive    bool    `json:"is_active"`
	Name        string  `json:"name"`
	SumTo       float64 `json:"sum_to"`
	TermTo      int     `json:"term_to"`
	PercentRate float64 `json:"percent_rate"`
}

type OfferAssignmentJSON struct {
	Offer OfferJSON `json:"offer"`
}

type OfferWallJSON struct {
	Token            string                `json:"token"`
	Name             string                `json:"name"`
	URL              string                `json:"url"`
	Description      *string               `json:"description"`
	OfferAssignments []OfferAssignmentJSON `json:"offer_assignments"`
	PopupAssignments []OfferAssignmentJSON `json:"popup_assignments"`
}

func NewOfferJSON(offer models.Offer) OfferJSON {
	return OfferJSON{
		UUID:        offer.UUID,
		ID:          offer.ID,
		URL:         offer.URL,
		IsActive:    offer.IsActive,
		Name:        offer.Name,
		SumTo:       offer.SumTo,
		TermTo:      offer.TermTo,
		PercentRate: offer.PercentRate,
	}
}

func newAssignments(offers []models.Offer) []OfferAssignmentJSON {
	assignments := make([]OfferAssignmentJSON, 0, len(offers))
	for _, offer := range offers {
		assignments = append(assignments, OfferAssignmentJSON{Offer: NewOfferJSON(offer)})
	}
	return assignments
}

// NewOfferWallJSON projects an aggregated wall view. Assignment order is
// taken from the view as-is; empty collections serialize as [] and a missing
// description as null.
func NewOfferWallJSON(view *stores.OfferWallView) OfferWallJSON {
	return OfferWallJSON{
		Token:            view.Wall.Token,
		Name:             view.Wall.Name,
		URL:              view.Wall.URL,
		Description:      view.Wall.Description,
		OfferAssignments: newAssignments(view.Offers),
		PopupAssignments: newAssignments(view.PopupOffers),
	}
}
