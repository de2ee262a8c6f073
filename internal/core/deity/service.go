// Copyright (c) 2026 Temple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deity

import (
	"context"
	"log/slog"
	"mime/multipart"

	"github.com/taibuivan/temple/internal/platform/apperr"
	"github.com/taibuivan/temple/internal/platform/cache"
	"github.com/taibuivan/temple/internal/platform/dberr"
	"github.com/taibuivan/temple/internal/platform/validate"
	"github.com/taibuivan/temple/pkg/pagination"
)

// Form is a decoded multipart Deity submission.
type Form struct {
	Values map[string][]string
	Files  map[string][]*multipart.FileHeader
}

// # Service Layer

// Service orchestrates media, bulk import, caching and persistence of deities.
type Service struct {
	repo        Repository
	media       MediaStore
	cache       cache.Store[*Deity]
	observer    BulkObserver
	concurrency int
	logger      *slog.Logger
}

// NewService constructs a new deity [Service].
//
// concurrency caps the number of rows a bulk import inserts at once.
func NewService(repo Repository, media MediaStore, store cache.Store[*Deity], observer BulkObserver, concurrency int, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		media:       media,
		cache:       store,
		observer:    observer,
		concurrency: max(concurrency, 1),
		logger:      logger,
	}
}

// Create uploads the submitted images and persists a new deity.
func (service *Service) Create(context context.Context, form Form) (*Deity, error) {
	uploaded, err := service.uploadMedia(context, form.Files)
	if err != nil {
		return nil, err
	}

	patch, err := buildPatch(mergeMedia(form.Values, uploaded))
	if err != nil {
		service.discardUploads(context, uploaded)
		return nil, err
	}

	deity := &Deity{}
	patch.Apply(deity)
	if err := service.repo.Create(context, deity); err != nil {
		service.discardUploads(context, uploaded)
		return nil, err
	}
	service.discardUploads(context, unusedUploads(uploaded, patch))

	service.logger.InfoContext(context, "deity_created", slog.String("deity_id", deity.ID))
	return deity, nil
}

// Query returns one page of deities.
func (service *Service) Query(context context.Context, filter Filter, opts pagination.Options) (pagination.Page[*Deity], error) {
	return service.repo.Query(context, filter, opts)
}

// GetByID returns a deity, served from cache when possible.
func (service *Service) GetByID(context context.Context, id string) (*Deity, error) {
	if cached, ok := service.cache.Get(context, id); ok {
		return cached, nil
	}

	deity, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, notFound(err)
	}

	service.cache.Set(context, id, deity)
	return deity, nil
}

// UpdateByID uploads replacement images and merges the form onto a deity.
//
// Images that are no longer referenced afterwards are removed from storage,
// judged against the row as it was locked by the update.
func (service *Service) UpdateByID(context context.Context, id string, form Form) (*Deity, error) {
	if _, err := service.repo.FindByID(context, id); err != nil {
		return nil, notFound(err)
	}

	uploaded, err := service.uploadMedia(context, form.Files)
	if err != nil {
		return nil, err
	}

	patch, err := buildPatch(mergeMedia(form.Values, uploaded))
	if err == nil && len(patch) == 0 {
		validator := &validate.Validator{}
		err = validator.Custom("body", true, "At least one field must be provided").Err()
	}
	if err != nil {
		service.discardUploads(context, uploaded)
		return nil, err
	}

	deity, previous, err := service.repo.UpdateByID(context, id, patch)
	if err != nil {
		service.discardUploads(context, uploaded)
		return nil, notFound(err)
	}

	service.cache.Delete(context, id)
	service.discardUploads(context, unusedUploads(uploaded, patch))

	current := media(deity)
	for field, path := range media(previous) {
		if current[field] != path {
			service.deleteMedia(context, path)
		}
	}

	service.logger.InfoContext(context, "deity_updated", slog.String("deity_id", id))
	return deity, nil
}

// DeleteByID removes a deity and, best effort, its images.
func (service *Service) DeleteByID(context context.Context, id string) (*Deity, error) {
	deity, err := service.repo.DeleteByID(context, id)
	if err != nil {
		return nil, notFound(err)
	}

	service.cache.Delete(context, id)
	for _, path := range media(deity) {
		service.deleteMedia(context, path)
	}

	service.logger.WarnContext(context, "deity_deleted", slog.String("deity_id", id))
	return deity, nil
}

// buildPatch keeps the known form fields and normalises the media references.
func buildPatch(values map[string][]string) (Patch, error) {
	paths, err := NormalizeMedia(values)
	if err != nil {
		return nil, err
	}

	patch := NewPatch(values)
	for field, path := range paths {
		patch[field] = path
	}

	if err := patch.Validate(); err != nil {
		return nil, err
	}
	return patch, nil
}

func notFound(err error) error {
	if dberr.IsNotFound(err) {
		return apperr.NotFound("Deity")
	}
	return err
}
