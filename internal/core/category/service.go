// Copyright (c) 2026 Temple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"log/slog"

	"github.com/taibuivan/temple/internal/platform/apperr"
	"github.com/taibuivan/temple/internal/platform/cache"
	"github.com/taibuivan/temple/internal/platform/dberr"
	"github.com/taibuivan/temple/internal/platform/validate"
	"github.com/taibuivan/temple/pkg/pagination"
)

const maxNameLen = 255

// # Service Layer

// Service orchestrates validation, caching and persistence of categories.
type Service struct {
	repo   Repository
	cache  cache.Store[*Category]
	logger *slog.Logger
}

// NewService constructs a new category [Service].
func NewService(repo Repository, store cache.Store[*Category], logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  store,
		logger: logger,
	}
}

// Create validates and persists a new category.
func (service *Service) Create(context context.Context, category *Category) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, category.Name).MaxLen(FieldName, category.Name, maxNameLen)
	if category.HiName != nil {
		validator.MaxLen(FieldHiName, *category.HiName, maxNameLen)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.Create(context, category); err != nil {
		return err
	}

	service.logger.InfoContext(context, "category_created", slog.String("category_id", category.ID))
	return nil
}

// Query returns one page of categories.
func (service *Service) Query(context context.Context, filter Filter, opts pagination.Options) (pagination.Page[*Category], error) {
	return service.repo.Query(context, filter, opts)
}

// GetByID returns a category, served from cache when possible.
func (service *Service) GetByID(context context.Context, id string) (*Category, error) {
	if cached, ok := service.cache.Get(context, id); ok {
		return cached, nil
	}

	category, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, notFound(err)
	}

	service.cache.Set(context, id, category)
	return category, nil
}

// UpdateByID merges patch onto an existing category.
func (service *Service) UpdateByID(context context.Context, id string, patch Patch) (*Category, error) {
	validator := &validate.Validator{}
	validator.Custom("body", patch.Empty(), "At least one field must be provided")
	if patch.Name != nil {
		validator.Required(FieldName, *patch.Name).MaxLen(FieldName, *patch.Name, maxNameLen)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	category, err := service.repo.UpdateByID(context, id, patch)
	if err != nil {
		return nil, notFound(err)
	}

	service.cache.Delete(context, id)
	service.logger.InfoContext(context, "category_updated", slog.String("category_id", id))
	return category, nil
}

// DeleteByID removes a category that nothing references any more.
func (service *Service) DeleteByID(context context.Context, id string) (*Category, error) {
	category, err := service.repo.DeleteByID(context, id)
	if err != nil {
		return nil, notFound(err)
	}

	service.cache.Delete(context, id)
	service.logger.WarnContext(context, "category_deleted", slog.String("category_id", id))
	return category, nil
}

func notFound(err error) error {
	if dberr.IsNotFound(err) {
		return apperr.NotFound("Category")
	}
	return err
}
