package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/models"
)

type stubServiceLister struct {
	services []models.Service
	err      error
	calls    int
}

func (s *stubServiceLister) ListActive(context.Context) ([]models.Service, error) {
	s.calls++
	return s.services, s.err
}

func TestListServices(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lister := &stubServiceLister{services: []models.Service{
		{ID: 1, TitleEn: "Air Ticketing", Icon: "plane", DisplayOrder: 1, Status: "active"},
		{ID: 2, TitleEn: "Visa Assistance", Icon: "passport", DisplayOrder: 2, Status: "active"},
	}}
	h := NewCatalogHandler(nil, lister, nil)

	r := gin.New()
	r.GET("/api/services", h.ListServices)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/services", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeEnvelope(t, w)
	assert.Equal(t, true, body["success"])
	data := body["data"].([]interface{})
	require.Len(t, data, 2)
	assert.Equal(t, "Air Ticketing", data[0].(map[string]interface{})["title_en"])
	assert.Equal(t, 1, lister.calls)
}

func TestListServicesEmptyIsArrayNotNull(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewCatalogHandler(nil, &stubServiceLister{}, nil)

	r := gin.New()
	r.GET("/api/services", h.ListServices)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/services", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)
}

func TestListServicesStorageError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewCatalogHandler(nil, &stubServiceLister{err: assert.AnError}, nil)

	r := gin.New()
	r.GET("/api/services", h.ListServices)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/services", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, decodeEnvelope(t, w)["success"])
}
