/*
Package subcategory provides the second level of the Deity taxonomy.

# Routing Strategy

Every endpoint requires role "user" or above. The handler is mounted on
/subcategory, and [Handler.ListByCategory] on /category/{id}/subcategory.
*/
package subcategory

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
	router.Use(middleware.RequireRole(sec.RoleUser))

	router.Post("/", handler.createSubcategory)
	router.Get("/", handler.listSubcategories)
	router.Get("/{id}", handler.getSubcategory)
	router.Patch("/{id}", handler.updateSubcategory)
	router.Delete("/{id}", handler.deleteSubcategory)
}

// ListByCategory serves GET /category/{id}/subcategory.
func (handler *Handler) ListByCategory(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.service.ListByCategory(request.Context(), requestutil.Param(request, "id"), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, page)
}

func (handler *Handler) listSubcategories(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	filter := Filter{
		Name:       query.Get("name"),
		Language:   query.Get("language"),
		CategoryID: query.Get("categoryId"),
	}

	page, err := handler.service.Query(request.Context(), filter, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, page)
}

func (handler *Handler) getSubcategory(writer http.ResponseWriter, request *http.Request) {
	subcategory, err := handler.service.GetByID(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, subcategory)
}

func (handler *Handler) createSubcategory(writer http.ResponseWriter, request *http.Request) {
	var input Subcategory
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

func (handler *Handler) updateSubcategory(writer http.ResponseWriter, request *http.Request) {
	var patch Patch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	subcategory, err := handler.service.UpdateByID(request.Context(), requestutil.Param(request, "id"), patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, subcategory)
}

func (handler *Handler) deleteSubcategory(writer http.ResponseWriter, request *http.Request) {
	if _, err := handler.service.DeleteByID(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
