package handler

import (
	"bytes"
	"context"
	"database/sql"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/models"
	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/service"
	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/storage"
)

type memPackageStore struct {
	packages map[int]*models.Package
	nextID   int
}

func newMemPackageStore() *memPackageStore {
	return &memPackageStore{packages: make(map[int]*models.Package), nextID: 1}
}

func (m *memPackageStore) List(_ context.Context, status, category string, limit int) ([]models.Package, error) {
	var out []models.Package
	for _, p := range m.packages {
		if status != "" && p.Status != status {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		out = append(out, *p)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memPackageStore) GetByID(_ context.Context, id int) (*models.Package, error) {
	p, ok := m.packages[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (m *memPackageStore) Create(_ context.Context, p *models.Package) error {
	p.ID = m.nextID
	m.nextID++
	cp := *p
	m.packages[p.ID] = &cp
	return nil
}

func (m *memPackageStore) Update(_ context.Context, p *models.Package) error {
	if _, ok := m.packages[p.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *p
	m.packages[p.ID] = &cp
	return nil
}

func (m *memPackageStore) Delete(_ context.Context, id int) (bool, error) {
	if _, ok := m.packages[id]; !ok {
		return false, nil
	}
	delete(m.packages, id)
	return true, nil
}

func packageTestRouter(t *testing.T) (*gin.Engine, *memPackageStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newMemPackageStore()
	images, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	svc := service.NewPackageService(store, images, nil)

	h := NewPackageHandler(svc)
	catalog := NewCatalogHandler(svc, nil, nil)

	r := gin.New()
	r.GET("/api/packages", catalog.ListPackages)
	r.GET("/api/admin/packages", h.List)
	r.POST("/api/admin/packages", h.Create)
	r.PUT("/api/admin/packages", h.Update)
	r.DELETE("/api/admin/packages", h.Delete)
	return r, store
}

func packageFields(overrides map[string]string) map[string]string {
	fields := map[string]string{
		"category":       "tour",
		"title_en":       "Highlands Circuit",
		"title_si":       "කඳුකර චාරිකාව",
		"title_ta":       "மலைநாட்டு சுற்றுலா",
		"description_en": "Five days through Kandy, Nuwara Eliya and Ella.",
		"price":          "1250.00",
		"duration":       "5 days",
		"status":         "active",
	}
	for k, v := range overrides {
		fields[k] = v
	}
	return fields
}

func multipartRequest(t *testing.T, method, path string, fields map[string]string, imageName string, imageData []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if imageName != "" {
		fw, err := mw.CreateFormFile("image", imageName)
		require.NoError(t, err)
		_, err = fw.Write(imageData)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestCreatePackageMultipart(t *testing.T) {
	r, store := packageTestRouter(t)

	w := httptest.NewRecorder()
	req := multipartRequest(t, http.MethodPost, "/api/admin/packages",
		packageFields(nil), "beach.jpg", []byte("jpeg-bytes"))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["id"])

	pkg := store.packages[1]
	require.NotNil(t, pkg)
	assert.Equal(t, "Highlands Circuit", pkg.TitleEn)
	assert.Equal(t, "කඳුකර චාරිකාව", pkg.TitleSi)
	assert.Equal(t, 1250.00, pkg.Price)
	assert.True(t, storage.IsUploaded(pkg.Image))
	assert.True(t, strings.HasSuffix(pkg.Image, ".jpg"))
}

func TestCreatePackageURLEncodedWithoutImage(t *testing.T) {
	r, store := packageTestRouter(t)

	form := url.Values{}
	for k, v := range packageFields(nil) {
		form.Set(k, v)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/packages", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, store.packages[1].Image)
}

func TestCreatePackageValidation(t *testing.T) {
	r, store := packageTestRouter(t)

	for _, missing := range []string{"category", "title_en", "description_en", "duration"} {
		w := httptest.NewRecorder()
		req := multipartRequest(t, http.MethodPost, "/api/admin/packages",
			packageFields(map[string]string{missing: ""}), "", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, missing)
	}

	w := httptest.NewRecorder()
	req := multipartRequest(t, http.MethodPost, "/api/admin/packages",
		packageFields(map[string]string{"status": "draft"}), "", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Empty(t, store.packages)
}

func TestUpdatePackage(t *testing.T) {
	r, store := packageTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, http.MethodPost, "/api/admin/packages",
		packageFields(nil), "", nil))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, http.MethodPut, "/api/admin/packages",
		packageFields(map[string]string{"id": "1", "title_en": "Highlands Circuit Deluxe", "status": "inactive"}), "", nil))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "Highlands Circuit Deluxe", store.packages[1].TitleEn)
	assert.Equal(t, models.PackageStatusInactive, store.packages[1].Status)
}

func TestUpdatePackageUnknownID(t *testing.T) {
	r, _ := packageTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, http.MethodPut, "/api/admin/packages",
		packageFields(map[string]string{"id": "42"}), "", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Package not found", decodeEnvelope(t, w)["message"])
}

func TestUpdatePackageRequiresID(t *testing.T) {
	r, _ := packageTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, http.MethodPut, "/api/admin/packages",
		packageFields(nil), "", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeletePackage(t *testing.T) {
	r, store := packageTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, http.MethodPost, "/api/admin/packages",
		packageFields(nil), "", nil))
	require.Equal(t, http.StatusCreated, w.Code)

	form := strings.NewReader("id=1")
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/admin/packages", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.packages)
}

func TestGetPackageByID(t *testing.T) {
	r, _ := packageTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, http.MethodPost, "/api/admin/packages",
		packageFields(nil), "", nil))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/packages?id=1", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Highlands Circuit", data["title_en"])

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/admin/packages?id=7", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublicListingDefaultsToActive(t *testing.T) {
	r, _ := packageTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, http.MethodPost, "/api/admin/packages",
		packageFields(nil), "", nil))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, http.MethodPost, "/api/admin/packages",
		packageFields(map[string]string{"title_en": "Unpublished", "status": "inactive"}), "", nil))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/packages", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	pkgs := decodeEnvelope(t, w)["data"].([]interface{})
	require.Len(t, pkgs, 1)
	assert.Equal(t, "Highlands Circuit", pkgs[0].(map[string]interface{})["title_en"])

	// The admin listing sees both.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/admin/packages", nil)
	r.ServeHTTP(w, req)
	assert.Len(t, decodeEnvelope(t, w)["data"], 2)
}
