// Copyright (c) 2026 Temple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/temple/internal/api"
	"github.com/taibuivan/temple/internal/core/category"
	"github.com/taibuivan/temple/internal/core/deity"
	"github.com/taibuivan/temple/internal/core/subcategory"
	"github.com/taibuivan/temple/internal/platform/cache"
	"github.com/taibuivan/temple/internal/platform/config"
	"github.com/taibuivan/temple/internal/platform/metrics"
	"github.com/taibuivan/temple/internal/platform/sec"
)

type rejectingVerifier struct{}

func (rejectingVerifier) VerifyToken(string) (*sec.AuthClaims, error) {
	return nil, sec.ErrInvalidToken
}

// newHandler wires the router with services whose stores are never reached.
func newHandler(t *testing.T, dbErr error) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	appMetrics := metrics.New()

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(context.Context) error { return dbErr },
		CheckCache:    func(context.Context) error { return nil },
	}, logger)

	categoryService := category.NewService(nil, cache.Nop[*category.Category]{}, logger)
	subcategoryService := subcategory.NewService(nil, categoryService, cache.Nop[*subcategory.Subcategory]{}, logger)
	deityService := deity.NewService(nil, nil, cache.Nop[*deity.Deity]{}, appMetrics, 1, logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := &config.Config{ServerPort: "0", Environment: "test", AllowedOriginSuffix: "lmscontent.in"}
	server := api.NewServer(ctx, cfg, logger, rejectingVerifier{}, appMetrics, api.Handlers{
		Liveness:    liveness,
		Readiness:   readiness,
		Metrics:     metrics.Handler(metrics.NewRegistry(appMetrics)),
		Deity:       deity.NewHandler(deityService, 1<<20),
		Category:    category.NewHandler(categoryService),
		Subcategory: subcategory.NewHandler(subcategoryService),
	})
	return server.Handler()
}

/*
TestServer_HealthEndpoints covers liveness, readiness and the metrics endpoint.
*/
func TestServer_HealthEndpoints(t *testing.T) {
	handler := newHandler(t, nil)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"temple-api"`)

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"ready"`)

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `route="/health"`)
}

/*
TestServer_ReadinessDegraded reports 503 when a dependency is down.
*/
func TestServer_ReadinessDegraded(t *testing.T) {
	handler := newHandler(t, errors.New("connection refused"))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"degraded"`)
	assert.Contains(t, recorder.Body.String(), "connection refused")
}

/*
TestServer_ProtectedRoutes verifies authentication on every write and subcategory route.
*/
func TestServer_ProtectedRoutes(t *testing.T) {
	handler := newHandler(t, nil)

	tests := []struct {
		name   string
		method string
		target string
		token  string
		status int
	}{
		{"deity_create", http.MethodPost, "/api/v1/deity", "", http.StatusUnauthorized},
		{"deity_bulk", http.MethodPost, "/api/v1/deity/bulk-upload", "", http.StatusUnauthorized},
		{"category_delete", http.MethodDelete, "/api/v1/category/x", "", http.StatusUnauthorized},
		{"subcategory_list", http.MethodGet, "/api/v1/subcategory", "", http.StatusUnauthorized},
		{"category_children", http.MethodGet, "/api/v1/category/x/subcategory", "", http.StatusUnauthorized},
		{"bad_token", http.MethodGet, "/api/v1/subcategory", "Bearer garbage", http.StatusUnauthorized},
		{"unknown_route", http.MethodGet, "/api/v1/temples", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.token != "" {
				request.Header.Set("Authorization", tt.token)
			}

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)
			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}
