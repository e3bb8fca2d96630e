package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"offerwall-service/internal/middleware"
	"offerwall-service/internal/models"
	"offerwall-service/internal/stores"
)

// setupRouter wires the handlers under test onto a throwaway database. The
// admin routes are mounted without the JWT middleware so tests exercise the
// handlers themselves; the middleware has its own tests.
func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Offer{},
		&models.OfferWall{},
		&models.OfferWallOffer{},
		&models.OfferWallPopupOffer{},
	))

	mediaRoot := t.TempDir()
	r := gin.New()
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.MediaRootMiddleware(mediaRoot))

	r.GET("/api/offerwalls/get_offer_names", GetOfferNames)
	r.GET("/api/offerwalls/:token", GetOfferWall)
	r.GET("/admin/offerwalls/:id", GetOfferWallAdmin)
	r.POST("/admin/offers/import-csv", ImportCSV)
	r.POST("/admin/offers/add-images", AddImages)
	r.POST("/admin/offers/actions", BulkOfferAction)

	return r, db, mediaRoot
}

func seedWall(t *testing.T, db *gorm.DB) (*models.OfferWall, []*models.Offer) {
	t.Helper()
	offers := stores.NewOfferStore(db)
	walls := stores.NewOfferWallStore(db)

	a, _, err := offers.UpsertByName(stores.OfferUpsert{ID: 1, Name: "Loanplus", URL: "https://loanplus.example", IsActive: true, SumTo: 1000, TermTo: 30, PercentRate: 1.5})
	require.NoError(t, err)
	b, _, err := offers.UpsertByName(stores.OfferUpsert{ID: 2, Name: "Moneyveo", URL: "https://moneyveo.example", IsActive: true, SumTo: 2000, TermTo: 60, PercentRate: 2.5})
	require.NoError(t, err)

	wall := models.OfferWall{Name: "main", URL: "https://wall.example"}
	require.NoError(t, db.Create(&wall).Error)

	_, err = walls.AddOffer(wall.ID, b.ID, 2)
	require.NoError(t, err)
	_, err = walls.AddOffer(wall.ID, a.ID, 1)
	require.NoError(t, err)
	_, err = walls.AddPopupOffer(wall.ID, a.ID)
	require.NoError(t, err)

	return &wall, []*models.Offer{a, b}
}

func doRequest(r *gin.Engine, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestGetOfferWallNotFoundBody(t *testing.T) {
	r, _, _ := setupRouter(t)

	w := doRequest(r, http.MethodGet, "/api/offerwalls/no-such-token", nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"detail": "Not found."}`, w.Body.String())
}

func TestGetOfferWallReturnsOrderedAssignments(t *testing.T) {
	r, db, _ := setupRouter(t)
	wall, offers := seedWall(t, db)

	w := doRequest(r, http.MethodGet, "/api/offerwalls/"+wall.Token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Token            string  `json:"token"`
		Description      *string `json:"description"`
		OfferAssignments []struct {
			Offer struct {
				ID   int    `json:"id"`
				Name string `json:"name"`
				UUID string `json:"uuid"`
			} `json:"offer"`
		} `json:"offer_assignments"`
		PopupAssignments []struct {
			Offer struct {
				ID int `json:"id"`
			} `json:"offer"`
		} `json:"popup_assignments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, wall.Token, body.Token)
	require.Nil(t, body.Description)
	require.Len(t, body.OfferAssignments, 2)
	require.Equal(t, offers[0].ID, body.OfferAssignments[0].Offer.ID)
	require.Equal(t, offers[1].ID, body.OfferAssignments[1].Offer.ID)
	require.NotEmpty(t, body.OfferAssignments[0].Offer.UUID)
	require.Len(t, body.PopupAssignments, 1)
	require.Equal(t, offers[0].ID, body.PopupAssignments[0].Offer.ID)
}

func TestAdminAndPublicWallProjectionsMatch(t *testing.T) {
	r, db, _ := setupRouter(t)
	wall, _ := seedWall(t, db)

	public := doRequest(r, http.MethodGet, "/api/offerwalls/"+wall.Token, nil, "")
	admin := doRequest(r, http.MethodGet, fmt.Sprintf("/admin/offerwalls/%d", wall.ID), nil, "")

	require.Equal(t, http.StatusOK, public.Code)
	require.Equal(t, http.StatusOK, admin.Code)
	require.JSONEq(t, public.Body.String(), admin.Body.String())
}

func TestGetOfferNamesDistinct(t *testing.T) {
	r, db, _ := setupRouter(t)
	seedWall(t, db)

	w := doRequest(r, http.MethodGet, "/api/offerwalls/get_offer_names", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"offer_names": ["Loanplus", "Moneyveo"]}`, w.Body.String())
}

func multipartBody(t *testing.T, field string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, content := range files {
		part, err := writer.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestImportCSVRejectsNonCSVFilename(t *testing.T) {
	r, db, _ := setupRouter(t)

	body, contentType := multipartBody(t, "csv_file", map[string][]byte{
		"offers.txt": []byte("id,name,sum_to,term_to,percent_rate,status,url\n"),
	})
	w := doRequest(r, http.MethodPost, "/admin/offers/import-csv", body, contentType)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Offer{}).Count(&count).Error)
	require.Equal(t, int64(0), count)
}

func TestImportCSVAppliesRowsAndReportsWarnings(t *testing.T) {
	r, db, _ := setupRouter(t)

	csv := "id,name,sum_to,term_to,percent_rate,status,url\n" +
		"1,Loanplus,1000,30,1.5,true,https://loanplus.example\n" +
		"2,UnknownOffer,500,15,2.0,true,https://unknown.example\n"
	body, contentType := multipartBody(t, "csv_file", map[string][]byte{"offers.csv": []byte(csv)})

	w := doRequest(r, http.MethodPost, "/admin/offers/import-csv", body, contentType)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Created  int      `json:"created"`
		Updated  int      `json:"updated"`
		Warnings []string `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, 1, response.Created)
	require.Len(t, response.Warnings, 1)

	var count int64
	require.NoError(t, db.Model(&models.Offer{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestBulkOfferActionDispatch(t *testing.T) {
	r, db, _ := setupRouter(t)
	_, offers := seedWall(t, db)

	payload, err := json.Marshal(gin.H{
		"action":    "deactivate",
		"offer_ids": []int{offers[0].ID, offers[1].ID},
	})
	require.NoError(t, err)

	w := doRequest(r, http.MethodPost, "/admin/offers/actions", bytes.NewReader(payload), "application/json")
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Action   string `json:"action"`
		Affected int64  `json:"affected"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "deactivate", response.Action)
	require.Equal(t, int64(2), response.Affected)

	var active int64
	require.NoError(t, db.Model(&models.Offer{}).Where("is_active = ?", true).Count(&active).Error)
	require.Equal(t, int64(0), active)
}

func TestBulkOfferActionUnknownAction(t *testing.T) {
	r, _, _ := setupRouter(t)

	payload, err := json.Marshal(gin.H{"action": "explode", "offer_ids": []int{1}})
	require.NoError(t, err)

	w := doRequest(r, http.MethodPost, "/admin/offers/actions", bytes.NewReader(payload), "application/json")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBulkDetachRemovesAssignments(t *testing.T) {
	r, db, _ := setupRouter(t)
	wall, offers := seedWall(t, db)

	payload, err := json.Marshal(gin.H{
		"action":    "remove_from_all_offerwalls",
		"offer_ids": []int{offers[0].ID},
	})
	require.NoError(t, err)

	w := doRequest(r, http.MethodPost, "/admin/offers/actions", bytes.NewReader(payload), "application/json")
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Affected int64 `json:"affected"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	// One ordered and one popup assignment referenced the offer.
	require.Equal(t, int64(2), response.Affected)

	view, err := stores.NewOfferWallStore(db).ResolveByToken(wall.Token)
	require.NoError(t, err)
	require.Len(t, view.Offers, 1)
	require.Equal(t, offers[1].ID, view.Offers[0].ID)
	require.Empty(t, view.PopupOffers)
}
