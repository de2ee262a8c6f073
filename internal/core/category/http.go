/*
Package category provides the Category taxonomy: storage, business rules and
the HTTP endpoints mounted under /category.

# Routing Strategy

  - Public: listing and detail views.
  - Role "user" or above: create, update, delete.

Listing the subcategories of one category is served by the subcategory
package on /category/{id}/subcategory.
*/
package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/temple/internal/platform/middleware"
	requestutil "github.com/taibuivan/temple/internal/platform/request"
	"github.com/taibuivan/temple/internal/platform/respond"
	"github.com/taibuivan/temple/internal/platform/sec"
	"github.com/taibuivan/temple/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listCategories)
	router.Get("/{id}", handler.getCategory)

	// Editors
	router.Group(func(editorRoute chi.Router) {
		editorRoute.Use(middleware.RequireRole(sec.RoleUser))

		editorRoute.Post("/", handler.createCategory)
		editorRoute.Patch("/{id}", handler.updateCategory)
		editorRoute.Delete("/{id}", handler.deleteCategory)
	})
}

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	// "role" is accepted for parity with the Deity list and ignored.
	filter := Filter{
		Name: request.URL.Query().Get("name"),
	}

	page, err := handler.service.Query(request.Context(), filter, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, page)
}

func (handler *Handler) getCategory(writer http.ResponseWriter, request *http.Request) {
	category, err := handler.service.GetByID(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}

func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input Category
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Create(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateCategory(writer http.ResponseWriter, request *http.Request) {
	var patch Patch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.UpdateByID(request.Context(), requestutil.Param(request, "id"), patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}

func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	if _, err := handler.service.DeleteByID(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
