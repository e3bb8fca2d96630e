package serializers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"offerwall-service/internal/models"
	"offerwall-service/internal/stores"
)

func TestOfferJSONFieldSet(t *testing.T) {
	offer := models.Offer{
		ID:          3,
		UUID:        "7b9e6c1e-0000-0000-0000-000000000000",
		URL:         "https://loanplus.example",
		IsActive:    true,
		Name:        "Loanplus",
		SumTo:       1000,
		TermTo:      30,
		PercentRate: 1.5,
	}

	raw, err := json.Marshal(NewOfferJSON(offer))
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))
	for _, key := range []string{"uuid", "id", "url", "is_active", "name", "sum_to", "term_to", "percent_rate"} {
		require.Contains(t, fields, key)
	}
	require.Len(t, fields, 8)
}

func TestOfferWallJSONNullDescriptionAndEmptyCollections(t *testing.T) {
	view := &stores.OfferWallView{
		Wall: models.OfferWall{
			Token: "tok-1",
			Name:  "main",
			URL:   "https://wall.example",
		},
		Offers:      []models.Offer{},
		PopupOffers: []models.Offer{},
	}

	raw, err := json.Marshal(NewOfferWallJSON(view))
	require.NoError(t, err)
	require.JSONEq(t, `{
		"token": "tok-1",
		"name": "main",
		"url": "https://wall.example",
		"description": null,
		"offer_assignments": [],
		"popup_assignments": []
	}`, string(raw))
}

func TestOfferWallJSONPreservesViewOrder(t *testing.T) {
	description := "seasonal wall"
	view := &stores.OfferWallView{
		Wall: models.OfferWall{
			Token:       "tok-2",
			Name:        "seasonal",
			URL:         "https://wall.example/seasonal",
			Description: &description,
		},
		Offers: []models.Offer{
			{ID: 2, Name: "Moneyveo"},
			{ID: 1, Name: "Loanplus"},
		},
		PopupOffers: []models.Offer{
			{ID: 3, Name: "MyCredit"},
		},
	}

	wall := NewOfferWallJSON(view)
	require.Equal(t, "Moneyveo", wall.OfferAssignments[0].Offer.Name)
	require.Equal(t, "Loanplus", wall.OfferAssignments[1].Offer.Name)
	require.Equal(t, "MyCredit", wall.PopupAssignments[0].Offer.Name)
	require.NotNil(t, wall.Description)
	require.Equal(t, description, *wall.Description)
}
