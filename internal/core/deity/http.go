/*
Package deity provides the bilingual Deity record: storage, media handling,
the CSV bulk import pipeline and the HTTP endpoints mounted under /deity.

# Routing Strategy

  - Public: listing and detail views.
  - Role "user" or above: create, bulk upload, update, delete.

Create and update take multipart forms. Image fields may carry either an
absolute URL or an uploaded file; both are stored as the URL path.
*/
package deity

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/temple/internal/platform/apperr"
	"github.com/taibuivan/temple/internal/platform/middleware"
	requestutil "github.com/taibuivan/temple/internal/platform/request"
	"github.com/taibuivan/temple/internal/platform/respond"
	"github.com/taibuivan/temple/internal/platform/sec"
	"github.com/taibuivan/temple/pkg/csvrows"
	"github.com/taibuivan/temple/pkg/pagination"
)

// bulkFileField is the multipart field carrying the CSV document.
const bulkFileField = "file"

type Handler struct {
	service        *Service
	maxUploadBytes int64
}

func NewHandler(service *Service, maxUploadBytes int64) *Handler {
	return &Handler{service: service, maxUploadBytes: maxUploadBytes}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listDeities)
	router.Get("/{id}", handler.getDeity)

	// Editors
	router.Group(func(editorRoute chi.Router) {
		editorRoute.Use(middleware.RequireRole(sec.RoleUser))

		editorRoute.Post("/", handler.createDeity)
		editorRoute.Post("/bulk-upload", handler.bulkUpload)
		editorRoute.Patch("/{id}", handler.updateDeity)
		editorRoute.Delete("/{id}", handler.deleteDeity)
	})
}

// bulkResponse is returned with 201 whatever the per-row outcome.
type bulkResponse struct {
	Success         bool       `json:"success"`
	UploadedRecords []*Deity   `json:"uploadedRecords"`
	FailedRecords   []RowError `json:"failedRecords"`
}

func (handler *Handler) listDeities(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	filter := Filter{
		Name:          query.Get("name"),
		Role:          query.Get("role"),
		CategoryID:    query.Get("categoryId"),
		SubCategoryID: query.Get("subCategoryId"),
	}

	page, err := handler.service.Query(request.Context(), filter, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, page)
}

func (handler *Handler) getDeity(writer http.ResponseWriter, request *http.Request) {
	deity, err := handler.service.GetByID(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, deity)
}

func (handler *Handler) createDeity(writer http.ResponseWriter, request *http.Request) {
	form, err := handler.parseForm(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	deity, err := handler.service.Create(request.Context(), form)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, deity)
}

func (handler *Handler) bulkUpload(writer http.ResponseWriter, request *http.Request) {
	if err := requestutil.ParseMultipart(writer, request, handler.maxUploadBytes); err != nil {
		respond.Error(writer, request, err)
		return
	}

	headers := requestutil.FormFiles(request)[bulkFileField]
	if len(headers) == 0 {
		respond.Error(writer, request, apperr.BadRequest("CSV file is required"))
		return
	}

	file, err := headers[0].Open()
	if err != nil {
		respond.Error(writer, request, apperr.BadRequest("Unreadable CSV file"))
		return
	}
	defer file.Close()

	records, err := csvrows.Parse(file)
	if errors.Is(err, csvrows.ErrNoHeader) {
		respond.Error(writer, request, apperr.BadRequest("CSV file is empty"))
		return
	}
	if err != nil {
		respond.Error(writer, request, apperr.BadRequest("Unreadable CSV file"))
		return
	}

	result, err := handler.service.BulkUpload(request.Context(), csvrows.Values(records),
		request.FormValue(FieldENCategoryID),
		request.FormValue(FieldHDCategoryID),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	for i := range result.ErrorResults {
		result.ErrorResults[i].Line = records[result.ErrorResults[i].Row-1].Line
	}

	respond.Created(writer, bulkResponse{
		Success:         true,
		UploadedRecords: result.SuccessResults,
		FailedRecords:   result.ErrorResults,
	})
}

func (handler *Handler) updateDeity(writer http.ResponseWriter, request *http.Request) {
	form, err := handler.parseForm(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	deity, err := handler.service.UpdateByID(request.Context(), requestutil.Param(request, "id"), form)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, deity)
}

func (handler *Handler) deleteDeity(writer http.ResponseWriter, request *http.Request) {
	if _, err := handler.service.DeleteByID(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) parseForm(writer http.ResponseWriter, request *http.Request) (Form, error) {
	if err := requestutil.ParseMultipart(writer, request, handler.maxUploadBytes); err != nil {
		return Form{}, err
	}
	return Form{
		Values: requestutil.FormValues(request),
		Files:  requestutil.FormFiles(request),
	}, nil
}
