// Copyright (c) 2026 Temple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/temple/internal/core/category"
	"github.com/taibuivan/temple/internal/platform/apperr"
	"github.com/taibuivan/temple/internal/platform/cache"
	"github.com/taibuivan/temple/internal/platform/dberr"
	"github.com/taibuivan/temple/pkg/pagination"
	"github.com/taibuivan/temple/pkg/pointer"
	"github.com/taibuivan/temple/pkg/uuid"
)

// memRepository is an in-memory [category.Repository] preserving insertion order.
type memRepository struct {
	mu      sync.Mutex
	rows    []*category.Category
	writes  int
	lookups int
}

func (m *memRepository) Create(_ context.Context, c *category.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	copied := *c
	m.rows = append(m.rows, &copied)
	m.writes++
	return nil
}

func (m *memRepository) FindByID(_ context.Context, id string) (*category.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lookups++
	for _, row := range m.rows {
		if row.ID == id {
			copied := *row
			return &copied, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (m *memRepository) Query(_ context.Context, filter category.Filter, opts pagination.Options) (pagination.Page[*category.Category], error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []*category.Category
	for _, row := range m.rows {
		if filter.Name == "" || strings.Contains(strings.ToLower(row.Name), strings.ToLower(filter.Name)) {
			matched = append(matched, row)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	start := min(opts.Offset(), len(matched))
	end := min(start+opts.Limit, len(matched))
	return pagination.NewPage(matched[start:end], opts, len(matched)), nil
}

func (m *memRepository) UpdateByID(_ context.Context, id string, patch category.Patch) (*category.Category, error) {
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

func (m *memRepository) DeleteByID(_ context.Context, id string) (*category.Category, error) {
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

// mapCache is a [cache.Store] kept in a map so tests can observe hits.
type mapCache struct {
	mu      sync.Mutex
	entries map[string]*category.Category
}

func (m *mapCache) Get(_ context.Context, id string) (*category.Category, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.entries[id]
	return value, ok
}

func (m *mapCache) Set(_ context.Context, id string, value *category.Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id] = value
}

func (m *mapCache) Delete(_ context.Context, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
}

func newService(store cache.Store[*category.Category]) (*category.Service, *memRepository) {
	repo := &memRepository{}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return category.NewService(repo, store, logger), repo
}

/*
TestService_Create validates the required name.
*/
func TestService_Create(t *testing.T) {
	service, repo := newService(cache.Nop[*category.Category]{})
	ctx := context.Background()

	err := service.Create(ctx, &category.Category{Name: "  "})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Equal(t, 0, repo.writes)

	created := &category.Category{Name: "Shaivism", HiName: pointer.To("शैव")}
	require.NoError(t, service.Create(ctx, created))
	assert.True(t, uuid.Valid(created.ID))
}

/*
TestService_UpdateMissing verifies NotFound and no write for an unknown id.
*/
func TestService_UpdateMissing(t *testing.T) {
	service, repo := newService(cache.Nop[*category.Category]{})

	_, err := service.UpdateByID(context.Background(), uuid.New(), category.Patch{Name: pointer.To("x")})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
	assert.Equal(t, "Category not found", ae.Message)
	assert.Equal(t, 0, repo.writes)
}

/*
TestService_UpdateEmptyPatch rejects a body with no fields.
*/
func TestService_UpdateEmptyPatch(t *testing.T) {
	service, _ := newService(cache.Nop[*category.Category]{})

	_, err := service.UpdateByID(context.Background(), uuid.New(), category.Patch{})
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestService_PatchIsShallowMerge keeps fields absent from the patch.
*/
func TestService_PatchIsShallowMerge(t *testing.T) {
	service, _ := newService(cache.Nop[*category.Category]{})
	ctx := context.Background()

	created := &category.Category{Name: "Vaishnavism", Description: pointer.To("Devotion to Vishnu")}
	require.NoError(t, service.Create(ctx, created))

	updated, err := service.UpdateByID(ctx, created.ID, category.Patch{HiName: pointer.To("वैष्णव")})
	require.NoError(t, err)

	assert.Equal(t, "Vaishnavism", updated.Name)
	assert.Equal(t, "Devotion to Vishnu", pointer.Val(updated.Description))
	assert.Equal(t, "वैष्णव", pointer.Val(updated.HiName))
}

/*
TestService_DeleteTwice verifies that a second delete is NotFound.
*/
func TestService_DeleteTwice(t *testing.T) {
	service, _ := newService(cache.Nop[*category.Category]{})
	ctx := context.Background()

	created := &category.Category{Name: "Shaktism"}
	require.NoError(t, service.Create(ctx, created))

	removed, err := service.DeleteByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shaktism", removed.Name)

	_, err = service.DeleteByID(ctx, created.ID)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_CacheInvalidation serves reads from cache and evicts on write.
*/
func TestService_CacheInvalidation(t *testing.T) {
	store := &mapCache{entries: map[string]*category.Category{}}
	service, repo := newService(store)
	ctx := context.Background()

	created := &category.Category{Name: "Smartism"}
	require.NoError(t, service.Create(ctx, created))

	_, err := service.GetByID(ctx, created.ID)
	require.NoError(t, err)
	_, err = service.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lookups)

	_, err = service.UpdateByID(ctx, created.ID, category.Patch{Name: pointer.To("Smarta")})
	require.NoError(t, err)

	fresh, err := service.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Smarta", fresh.Name)
	assert.Equal(t, 2, repo.lookups)
}

/*
TestService_QuerySecondPage returns the second record in insertion order.
*/
func TestService_QuerySecondPage(t *testing.T) {
	service, _ := newService(cache.Nop[*category.Category]{})
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		require.NoError(t, service.Create(ctx, &category.Category{Name: name}))
	}

	page, err := service.Query(ctx, category.Filter{}, pagination.Options{Page: 2, Limit: 1})
	require.NoError(t, err)

	require.Len(t, page.Results, 1)
	assert.Equal(t, "second", page.Results[0].Name)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 3, page.TotalResults)
}
