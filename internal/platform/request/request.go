// Copyright (c) 2026 Temple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction, JSON decoding
and multipart handling, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/temple/internal/platform/apperr"
	"github.com/taibuivan/temple/internal/platform/ctxutil"
	"github.com/taibuivan/temple/internal/platform/sec"
	"github.com/taibuivan/temple/internal/platform/validate"
)

// multipartMemory is the part of a multipart body buffered in memory; the rest spills to disk.
const multipartMemory = 8 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
ParseMultipart bounds the body to maxBytes and parses it as multipart/form-data.

Returns:
  - error: apperr.BadRequest if the body is too large or not multipart
*/
func ParseMultipart(writer http.ResponseWriter, request *http.Request, maxBytes int64) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxBytes)

	if err := request.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperr.BadRequest("Upload exceeds the maximum allowed size")
		}
		return apperr.BadRequest("Request must be multipart/form-data")
	}
	return nil
}

/*
FormFiles returns the uploaded files of a parsed multipart request keyed by field name.

Fields without any file are omitted.
*/
func FormFiles(request *http.Request) map[string][]*multipart.FileHeader {
	if request.MultipartForm == nil {
		return nil
	}
	files := make(map[string][]*multipart.FileHeader, len(request.MultipartForm.File))
	for field, headers := range request.MultipartForm.File {
		if len(headers) > 0 {
			files[field] = headers
		}
	}
	return files
}

/*
FormValues returns the text fields of a parsed multipart request.
*/
func FormValues(request *http.Request) map[string][]string {
	if request.MultipartForm == nil {
		return map[string][]string{}
	}
	return request.MultipartForm.Value
}

/*
Claims extracts the authenticated user claims from the request context.

Returns nil if the request is not authenticated.
*/
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.Claims(request.Context())
}
