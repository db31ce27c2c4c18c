package handler

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/models"
	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/service"
	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/utils"
)

// Uploaded images larger than this are rejected before hitting storage.
const maxImageBytes = 5 << 20

// PackageHandler handles the admin package CRUD endpoints.
type PackageHandler struct {
	packageService *service.PackageService
}

// NewPackageHandler constructs a PackageHandler.
func NewPackageHandler(packageService *service.PackageService) *PackageHandler {
	return &PackageHandler{packageService: packageService}
}

// List handles GET /api/admin/packages. With an id query it returns a single
// package, otherwise a filtered listing.
func (h *PackageHandler) List(c *gin.Context) {
	if raw := c.Query("id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			utils.Error(c, 400, "Invalid package id")
			return
		}
		pkg, err := h.packageService.Get(c.Request.Context(), id)
		if err != nil {
			h.fail(c, err, "Failed to retrieve package")
			return
		}
		utils.Success(c, 200, "Package retrieved", pkg)
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}
	pkgs, err := h.packageService.ListAdmin(c.Request.Context(), c.Query("status"), c.Query("category"), limit)
	if err != nil {
		h.fail(c, err, "Failed to retrieve packages")
		return
	}
	if pkgs == nil {
		pkgs = []models.Package{}
	}
	utils.Success(c, 200, "Packages retrieved", pkgs)
}

// Create handles POST /api/admin/packages (multipart form with optional image).
func (h *PackageHandler) Create(c *gin.Context) {
	in, img, err := bindPackageForm(c)
	if err != nil {
		utils.Error(c, 400, err.Error())
		return
	}

	pkg, err := h.packageService.Create(c.Request.Context(), in, img)
	if err != nil {
		h.fail(c, err, "Failed to create package")
		return
	}
	utils.Success(c, 201, "Package created", gin.H{"id": pkg.ID})
}

// Update handles PUT /api/admin/packages. The body may be multipart (to carry
// a replacement image) or urlencoded; both normalize into the same input.
func (h *PackageHandler) Update(c *gin.Context) {
	in, img, err := bindPackageForm(c)
	if err != nil {
		utils.Error(c, 400, err.Error())
		return
	}
	if in.ID <= 0 {
		utils.Error(c, 400, "Package id is required")
		return
	}

	pkg, err := h.packageService.Update(c.Request.Context(), in, img)
	if err != nil {
		h.fail(c, err, "Failed to update package")
		return
	}
	utils.Success(c, 200, "Package updated", pkg)
}

// Delete handles DELETE /api/admin/packages with a form-encoded id.
func (h *PackageHandler) Delete(c *gin.Context) {
	var req struct {
		ID int `form:"id" json:"id"`
	}
	if err := c.ShouldBind(&req); err != nil || req.ID <= 0 {
		utils.Error(c, 400, "Package id is required")
		return
	}

	if err := h.packageService.Delete(c.Request.Context(), req.ID); err != nil {
		h.fail(c, err, "Failed to delete package")
		return
	}
	utils.Success(c, 200, "Package deleted", nil)
}

// fail maps service errors onto the envelope.
func (h *PackageHandler) fail(c *gin.Context, err error, generic string) {
	switch {
	case errors.Is(err, utils.ErrNotFound):
		utils.Error(c, 404, "Package not found")
	case errors.Is(err, utils.ErrInvalidInput):
		utils.Error(c, 400, err.Error())
	default:
		log.Error().Err(err).Msg(generic)
		utils.Error(c, 500, generic)
	}
}

// bindPackageForm is the single content-negotiation step for package writes:
// multipart and urlencoded bodies both bind into one typed input, and the
// optional image file is read here. Handlers never branch on encoding again.
func bindPackageForm(c *gin.Context) (*service.PackageInput, *service.ImageUpload, error) {
	var in service.PackageInput
	if err := c.ShouldBind(&in); err != nil {
		return nil, nil, errors.New("Invalid form data")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		// No file attached; urlencoded bodies land here as well.
		return &in, nil, nil
	}
	if fileHeader.Size > maxImageBytes {
		return nil, nil, errors.New("Image exceeds the 5MB limit")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, nil, errors.New("Failed to read uploaded image")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
	if err != nil || len(data) > maxImageBytes {
		return nil, nil, errors.New("Failed to read uploaded image")
	}

	return &in, &service.ImageUpload{
		Name:        fileHeader.Filename,
		Data:        data,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}, nil
}
