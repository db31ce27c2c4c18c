package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/cache"
	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/models"
	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/service"
	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/utils"
)

type serviceLister interface {
	ListActive(ctx context.Context) ([]models.Service, error)
}

// CatalogHandler serves the public, unauthenticated catalog endpoints.
type CatalogHandler struct {
	packageService *service.PackageService
	services       serviceLister
	catalog        *cache.CatalogCache
}

// NewCatalogHandler constructs a CatalogHandler. catalog may be nil when the
// cache is disabled.
func NewCatalogHandler(packageService *service.PackageService, services serviceLister, catalog *cache.CatalogCache) *CatalogHandler {
	return &CatalogHandler{packageService: packageService, services: services, catalog: catalog}
}

// ListPackages handles GET /api/packages. Status defaults to active so the
// public site only sees published packages.
func (h *CatalogHandler) ListPackages(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	pkgs, err := h.packageService.ListPublic(c.Request.Context(), c.Query("category"), c.Query("status"), limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve public packages")
		utils.Error(c, 500, "Failed to retrieve packages")
		return
	}
	if pkgs == nil {
		pkgs = []models.Package{}
	}
	utils.Success(c, 200, "Packages retrieved", pkgs)
}

// ListServices handles GET /api/services.
func (h *CatalogHandler) ListServices(c *gin.Context) {
	if services, ok := h.catalog.GetServices(c.Request.Context()); ok {
		utils.Success(c, 200, "Services retrieved", services)
		return
	}

	services, err := h.services.ListActive(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve services")
		utils.Error(c, 500, "Failed to retrieve services")
		return
	}
	if services == nil {
		services = []models.Service{}
	}
	h.catalog.SetServices(c.Request.Context(), services)
	utils.Success(c, 200, "Services retrieved", services)
}
