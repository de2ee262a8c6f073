// Copyright (c) 2026 Temple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package subcategory

import (
	"context"
	"log/slog"

	"github.com/taibuivan/temple/internal/core/category"
	"github.com/taibuivan/temple/internal/platform/apperr"
	"github.com/taibuivan/temple/internal/platform/cache"
	"github.com/taibuivan/temple/internal/platform/dberr"
	"github.com/taibuivan/temple/internal/platform/validate"
	"github.com/taibuivan/temple/pkg/pagination"
)

const (
	maxNameLen     = 255
	maxLanguageLen = 16
)

// CategoryFinder resolves the parent category of a subcategory listing.
type CategoryFinder interface {
	GetByID(context context.Context, id string) (*category.Category, error)
}

// # Service Layer

// Service orchestrates validation, caching and persistence of subcategories.
type Service struct {
	repo       Repository
	categories CategoryFinder
	cache      cache.Store[*Subcategory]
	logger     *slog.Logger
}

// NewService constructs a new subcategory [Service].
func NewService(repo Repository, categories CategoryFinder, store cache.Store[*Subcategory], logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		cache:      store,
		logger:     logger,
	}
}

/*
Create validates and persists a new subcategory.

The parent category must exist; the foreign key rejects dangling ids with a
validation error.
*/
func (service *Service) Create(context context.Context, subcategory *Subcategory) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, subcategory.Name).MaxLen(FieldName, subcategory.Name, maxNameLen)
	validator.UUID(FieldCategoryID, subcategory.CategoryID)
	if subcategory.Language != nil {
		validator.MaxLen(FieldLanguage, *subcategory.Language, maxLanguageLen)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.Create(context, subcategory); err != nil {
		return err
	}

	service.logger.InfoContext(context, "subcategory_created",
		slog.String("subcategory_id", subcategory.ID),
		slog.String("category_id", subcategory.CategoryID),
	)
	return nil
}

// Query returns one page of subcategories.
func (service *Service) Query(context context.Context, filter Filter, opts pagination.Options) (pagination.Page[*Subcategory], error) {
	return service.repo.Query(context, filter, opts)
}

// ListByCategory returns one page of the subcategories of an existing category.
func (service *Service) ListByCategory(context context.Context, categoryID string, opts pagination.Options) (pagination.Page[*Subcategory], error) {
	if _, err := service.categories.GetByID(context, categoryID); err != nil {
		return pagination.Page[*Subcategory]{}, err
	}
	return service.repo.Query(context, Filter{CategoryID: categoryID}, opts)
}

// GetByID returns a subcategory, served from cache when possible.
func (service *Service) GetByID(context context.Context, id string) (*Subcategory, error) {
	if cached, ok := service.cache.Get(context, id); ok {
		return cached, nil
	}

	subcategory, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, notFound(err)
	}

	service.cache.Set(context, id, subcategory)
	return subcategory, nil
}

// UpdateByID merges patch onto an existing subcategory.
func (service *Service) UpdateByID(context context.Context, id string, patch Patch) (*Subcategory, error) {
	validator := &validate.Validator{}
	validator.Custom("body", patch.Empty(), "At least one field must be provided")
	if patch.Name != nil {
		validator.Required(FieldName, *patch.Name).MaxLen(FieldName, *patch.Name, maxNameLen)
	}
	validator.OptionalUUID(FieldCategoryID, patch.CategoryID)
	if patch.Language != nil {
		validator.MaxLen(FieldLanguage, *patch.Language, maxLanguageLen)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	subcategory, err := service.repo.UpdateByID(context, id, patch)
	if err != nil {
		return nil, notFound(err)
	}

	service.cache.Delete(context, id)
	service.logger.InfoContext(context, "subcategory_updated", slog.String("subcategory_id", id))
	return subcategory, nil
}

// DeleteByID removes a subcategory that no Deity references.
func (service *Service) DeleteByID(context context.Context, id string) (*Subcategory, error) {
	subcategory, err := service.repo.DeleteByID(context, id)
	if err != nil {
		return nil, notFound(err)
	}

	service.cache.Delete(context, id)
	service.logger.WarnContext(context, "subcategory_deleted", slog.String("subcategory_id", id))
	return subcategory, nil
}

func notFound(err error) error {
	if dberr.IsNotFound(err) {
		return apperr.NotFound("Subcategory")
	}
	return err
}
