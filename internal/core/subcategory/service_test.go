// Copyright (c) 2026 Temple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package subcategory_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/temple/internal/core/category"
	"github.com/taibuivan/temple/internal/core/subcategory"
	"github.com/taibuivan/temple/internal/platform/apperr"
	"github.com/taibuivan/temple/internal/platform/cache"
	"github.com/taibuivan/temple/internal/platform/dberr"
	"github.com/taibuivan/temple/pkg/pagination"
	"github.com/taibuivan/temple/pkg/pointer"
	"github.com/taibuivan/temple/pkg/uuid"
)

type memRepository struct {
	mu     sync.Mutex
	rows   []*subcategory.Subcategory
	writes int
}

func (m *memRepository) Create(_ context.Context, s *subcategory.Subcategory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = uuid.New()
	copied := *s
	m.rows = append(m.rows, &copied)
	m.writes++
	return nil
}

func (m *memRepository) FindByID(_ context.Context, id string) (*subcategory.Subcategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.ID == id {
			copied := *row
			return &copied, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (m *memRepository) Query(_ context.Context, filter subcategory.Filter, opts pagination.Options) (pagination.Page[*subcategory.Subcategory], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []*subcategory.Subcategory
	for _, row := range m.rows {
		if filter.CategoryID != "" && row.CategoryID != filter.CategoryID {
			continue
		}
		if filter.Language != "" && pointer.Val(row.Language) != filter.Language {
			continue
		}
		matched = append(matched, row)
	}
	start := min(opts.Offset(), len(matched))
	end := min(start+opts.Limit, len(matched))
	return pagination.NewPage(matched[start:end], opts, len(matched)), nil
}

func (m *memRepository) UpdateByID(_ context.Context, id string, patch subcategory.Patch) (*subcategory.Subcategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.ID == id {
			patch.Apply(row)
			m.writes++
			copied := *row
			return &copied, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (m *memRepository) DeleteByID(_ context.Context, id string) (*subcategory.Subcategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, row := range m.rows {
		if row.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			m.writes++
			return row, nil
		}
	}
	return nil, dberr.ErrNotFound
}

type knownCategories map[string]bool

func (k knownCategories) GetByID(_ context.Context, id string) (*category.Category, error) {
	if !k[id] {
		return nil, apperr.NotFound("Category")
	}
	return &category.Category{ID: id, Name: "known"}, nil
}

func newService(categoryIDs ...string) (*subcategory.Service, *memRepository) {
	known := knownCategories{}
	for _, id := range categoryIDs {
		known[id] = true
	}
	repo := &memRepository{}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return subcategory.NewService(repo, known, cache.Nop[*subcategory.Subcategory]{}, logger), repo
}

/*
TestService_CreateValidation requires a name and a well-formed category id.
*/
func TestService_CreateValidation(t *testing.T) {
	service, repo := newService()

	err := service.Create(context.Background(), &subcategory.Subcategory{Name: "", CategoryID: "64b7f0c2e4b0a1a2b3c4d5e6"})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Len(t, ae.Details, 2)
	assert.Equal(t, 0, repo.writes)
}

/*
TestService_ListByCategory filters by parent and 404s for an unknown parent.
*/
func TestService_ListByCategory(t *testing.T) {
	parent, other := uuid.New(), uuid.New()
	service, _ := newService(parent, other)
	ctx := context.Background()

	require.NoError(t, service.Create(ctx, &subcategory.Subcategory{Name: "Avatars", CategoryID: parent, Language: pointer.To("en")}))
	require.NoError(t, service.Create(ctx, &subcategory.Subcategory{Name: "अवतार", CategoryID: parent, Language: pointer.To("hd")}))
	require.NoError(t, service.Create(ctx, &subcategory.Subcategory{Name: "Forms", CategoryID: other}))

	page, err := service.ListByCategory(ctx, parent, pagination.Options{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalResults)

	_, err = service.ListByCategory(ctx, uuid.New(), pagination.Options{Page: 1, Limit: 10})
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_UpdateAndDelete covers patch validation and NotFound mapping.
*/
func TestService_UpdateAndDelete(t *testing.T) {
	parent := uuid.New()
	service, repo := newService(parent)
	ctx := context.Background()

	created := &subcategory.Subcategory{Name: "Avatars", CategoryID: parent}
	require.NoError(t, service.Create(ctx, created))

	_, err := service.UpdateByID(ctx, created.ID, subcategory.Patch{CategoryID: pointer.To("not-a-uuid")})
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	updated, err := service.UpdateByID(ctx, created.ID, subcategory.Patch{Language: pointer.To("en")})
	require.NoError(t, err)
	assert.Equal(t, "Avatars", updated.Name)
	assert.Equal(t, "en", pointer.Val(updated.Language))

	writes := repo.writes
	_, err = service.UpdateByID(ctx, uuid.New(), subcategory.Patch{Name: pointer.To("x")})
	assert.Equal(t, "Subcategory not found", apperr.As(err).Message)
	assert.Equal(t, writes, repo.writes)

	_, err = service.DeleteByID(ctx, created.ID)
	require.NoError(t, err)
	_, err = service.DeleteByID(ctx, created.ID)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
