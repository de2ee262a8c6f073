// Copyright (c) 2026 Temple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package subcategory_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/temple/internal/core/subcategory"
	"github.com/taibuivan/temple/internal/platform/ctxutil"
	"github.com/taibuivan/temple/internal/platform/middleware"
	"github.com/taibuivan/temple/internal/platform/sec"
	"github.com/taibuivan/temple/pkg/uuid"
)

func newRouter(service *subcategory.Service, role sec.UserRole) http.Handler {
	handler := subcategory.NewHandler(service)

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if role != "" {
				claims := &sec.AuthClaims{UserID: "editor-1", Role: string(role)}
				request = request.WithContext(ctxutil.WithClaims(request.Context(), claims))
			}
			next.ServeHTTP(writer, request)
		})
	})
	router.Route("/subcategory", handler.RegisterRoutes)
	router.With(middleware.RequireRole(sec.RoleUser)).Get("/category/{id}/subcategory", handler.ListByCategory)
	return router
}

/*
TestHandler_CreateAndListByCategory creates over JSON and lists through the parent route.
*/
func TestHandler_CreateAndListByCategory(t *testing.T) {
	parent := uuid.New()
	service, _ := newService(parent)
	router := newRouter(service, sec.RoleUser)

	recorder := httptest.NewRecorder()
	body := `{"name":"Avatars","language":"en","categoryId":"` + parent + `"}`
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/subcategory", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var created subcategory.Subcategory
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	assert.Equal(t, parent, created.CategoryID)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/category/"+parent+"/subcategory", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var page struct {
		Results      []subcategory.Subcategory `json:"results"`
		TotalResults int                       `json:"totalResults"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &page))
	assert.Equal(t, 1, page.TotalResults)
	assert.Equal(t, created.ID, page.Results[0].ID)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/category/"+uuid.New()+"/subcategory", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

/*
TestHandler_ReadsRequireAuth rejects anonymous reads as well as writes.
*/
func TestHandler_ReadsRequireAuth(t *testing.T) {
	service, _ := newService()
	router := newRouter(service, "")

	for _, target := range []string{"/subcategory", "/subcategory/" + uuid.New(), "/category/" + uuid.New() + "/subcategory"} {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusUnauthorized, recorder.Code, target)
	}
}
