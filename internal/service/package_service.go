package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/cache"
	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/models"
	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/storage"
	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/utils"
)

// PackageStore is the package data access contract.
type PackageStore interface {
	List(ctx context.Context, status, category string, limit int) ([]models.Package, error)
	GetByID(ctx context.Context, id int) (*models.Package, error)
	Create(ctx context.Context, p *models.Package) error
	Update(ctx context.Context, p *models.Package) error
	Delete(ctx context.Context, id int) (bool, error)
}

// PackageInput is the normalized form input for package create and update.
// Both multipart and urlencoded bodies bind into this one shape before any
// validation runs.
type PackageInput struct {
	ID            int     `form:"id"`
	Category      string  `form:"category"`
	TitleEn       string  `form:"title_en"`
	TitleSi       string  `form:"title_si"`
	TitleTa       string  `form:"title_ta"`
	DescriptionEn string  `form:"description_en"`
	DescriptionSi string  `form:"description_si"`
	DescriptionTa string  `form:"description_ta"`
	Price         float64 `form:"price"`
	Duration      string  `form:"duration"`
	Status        string  `form:"status"`
}

// ImageUpload carries an uploaded image file read from a multipart body.
type ImageUpload struct {
	Name        string
	Data        []byte
	ContentType string
}

// PackageService implements admin package CRUD and the public listing.
type PackageService struct {
	packages PackageStore
	images   storage.ImageStore
	catalog  *cache.CatalogCache
}

// NewPackageService constructs a PackageService. catalog may be nil when the
// cache is disabled.
func NewPackageService(packages PackageStore, images storage.ImageStore, catalog *cache.CatalogCache) *PackageService {
	return &PackageService{packages: packages, images: images, catalog: catalog}
}

func (s *PackageService) validate(in *PackageInput) error {
	switch {
	case in.Category == "":
		return fmt.Errorf("%w: category is required", utils.ErrInvalidInput)
	case in.TitleEn == "":
		return fmt.Errorf("%w: title_en is required", utils.ErrInvalidInput)
	case in.DescriptionEn == "":
		return fmt.Errorf("%w: description_en is required", utils.ErrInvalidInput)
	case in.Price < 0:
		return fmt.Errorf("%w: price must not be negative", utils.ErrInvalidInput)
	case in.Duration == "":
		return fmt.Errorf("%w: duration is required", utils.ErrInvalidInput)
	case in.Status != models.PackageStatusActive && in.Status != models.PackageStatusInactive:
		return fmt.Errorf("%w: status must be 'active' or 'inactive'", utils.ErrInvalidInput)
	}
	return nil
}

// ListAdmin returns packages for the admin panel with optional filters.
func (s *PackageService) ListAdmin(ctx context.Context, status, category string, limit int) ([]models.Package, error) {
	return s.packages.List(ctx, status, category, limit)
}

// ListPublic returns the public listing. Status defaults to active and the
// result is served from the catalog cache when possible.
func (s *PackageService) ListPublic(ctx context.Context, category, status string, limit int) ([]models.Package, error) {
	if status == "" {
		status = models.PackageStatusActive
	}
	if pkgs, ok := s.catalog.GetPackages(ctx, category, status, limit); ok {
		return pkgs, nil
	}

	pkgs, err := s.packages.List(ctx, status, category, limit)
	if err != nil {
		return nil, err
	}
	s.catalog.SetPackages(ctx, category, status, limit, pkgs)
	return pkgs, nil
}

// Get returns one package by id.
func (s *PackageService) Get(ctx context.Context, id int) (*models.Package, error) {
	p, err := s.packages.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Create validates the input, stores the image if one was uploaded, and
// inserts the package.
func (s *PackageService) Create(ctx context.Context, in *PackageInput, img *ImageUpload) (*models.Package, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	ref := ""
	if img != nil {
		var err error
		if ref, err = s.images.Save(ctx, img.Name, img.Data, img.ContentType); err != nil {
			return nil, err
		}
	}

	pkg := &models.Package{
		Category:      in.Category,
		TitleEn:       in.TitleEn,
		TitleSi:       in.TitleSi,
		TitleTa:       in.TitleTa,
		DescriptionEn: in.DescriptionEn,
		DescriptionSi: in.DescriptionSi,
		DescriptionTa: in.DescriptionTa,
		Price:         in.Price,
		Duration:      in.Duration,
		Image:         ref,
		Status:        in.Status,
	}
	if err := s.packages.Create(ctx, pkg); err != nil {
		if ref != "" {
			if rmErr := s.images.Remove(ctx, ref); rmErr != nil {
				log.Warn().Err(rmErr).Str("image", ref).Msg("Failed to remove orphaned upload")
			}
		}
		return nil, err
	}

	s.catalog.Invalidate(ctx)
	return pkg, nil
}

// Update rewrites a package. A newly uploaded image replaces the previous
// one; the old file is removed only if it was an upload, never a stock asset.
func (s *PackageService) Update(ctx context.Context, in *PackageInput, img *ImageUpload) (*models.Package, error) {
	if in.ID <= 0 {
		return nil, fmt.Errorf("%w: id is required", utils.ErrInvalidInput)
	}
	if err := s.validate(in); err != nil {
		return nil, err
	}

	pkg, err := s.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	oldImage := pkg.Image
	if img != nil {
		ref, err := s.images.Save(ctx, img.Name, img.Data, img.ContentType)
		if err != nil {
			return nil, err
		}
		pkg.Image = ref
	}

	pkg.Category = in.Category
	pkg.TitleEn = in.TitleEn
	pkg.TitleSi = in.TitleSi
	pkg.TitleTa = in.TitleTa
	pkg.DescriptionEn = in.DescriptionEn
	pkg.DescriptionSi = in.DescriptionSi
	pkg.DescriptionTa = in.DescriptionTa
	pkg.Price = in.Price
	pkg.Duration = in.Duration
	pkg.Status = in.Status

	if err := s.packages.Update(ctx, pkg); err != nil {
		return nil, err
	}

	if img != nil && oldImage != "" && storage.IsUploaded(oldImage) {
		if err := s.images.Remove(ctx, oldImage); err != nil {
			log.Warn().Err(err).Str("image", oldImage).Msg("Failed to remove replaced upload")
		}
	}

	s.catalog.Invalidate(ctx)
	return pkg, nil
}

// Delete removes a package and its uploaded image, if any.
func (s *PackageService) Delete(ctx context.Context, id int) error {
	pkg, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	existed, err := s.packages.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		return utils.ErrNotFound
	}

	if pkg.Image != "" && storage.IsUploaded(pkg.Image) {
		if err := s.images.Remove(ctx, pkg.Image); err != nil {
			log.Warn().Err(err).Str("image", pkg.Image).Msg("Failed to remove deleted package image")
		}
	}

	s.catalog.Invalidate(ctx)
	return nil
}
