package deity

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/url"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/temple/internal/platform/apperr"
)

// MediaFields are the image reference fields, in normalisation order.
var MediaFields = []string{FieldIconImage, FieldCoverImage, FieldIconImage1, FieldCoverImage1}

// MediaStore persists uploaded images and removes stale ones.
type MediaStore interface {
	// Upload stores body and returns its absolute public URL.
	Upload(ctx context.Context, filename, contentType string, body io.ReadSeeker, size int64) (string, error)
	// Delete removes the object behind a stored media path.
	Delete(ctx context.Context, storedPath string) error
}

// NormalizeMedia reduces every present media field to the path of its first URL.
//
// Absent fields are left out of the result. A value that is not an absolute
// URL fails the whole call with BadRequest.
func NormalizeMedia(values map[string][]string) (map[string]string, error) {
	paths := make(map[string]string)
	for _, field := range MediaFields {
		list, ok := values[field]
		if !ok || len(list) == 0 {
			continue
		}

		path, ok := urlPath(list[0])
		if !ok {
			return nil, apperr.BadRequest(fmt.Sprintf("Invalid URL for %s", field))
		}
		paths[field] = path
	}
	return paths, nil
}

func urlPath(raw string) (string, bool) {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", false
	}
	if parsed.Path == "" {
		return "/", true
	}
	return parsed.Path, true
}

// mergeMedia puts uploaded URLs ahead of values submitted as text, so a file
// wins over a URL sent for the same field.
func mergeMedia(values map[string][]string, uploaded map[string][]string) map[string][]string {
	merged := make(map[string][]string, len(values)+len(uploaded))
	for field, list := range values {
		merged[field] = list
	}
	for field, urls := range uploaded {
		merged[field] = append(slices.Clone(urls), merged[field]...)
	}
	return merged
}

// unusedUploads returns the uploaded URLs whose path patch does not reference,
// such as a second file sent for the same field.
func unusedUploads(uploaded map[string][]string, patch Patch) map[string][]string {
	unused := make(map[string][]string)
	for field, urls := range uploaded {
		for _, location := range urls {
			if path, ok := urlPath(location); ok && patch[field] == path {
				continue
			}
			unused[field] = append(unused[field], location)
		}
	}
	return unused
}

type pendingUpload struct {
	field  string
	header *multipart.FileHeader
	url    string
}

// uploadMedia stores the files of every media field concurrently.
//
// Files under other field names are ignored. On failure the objects already
// stored are removed again.
func (service *Service) uploadMedia(ctx context.Context, files map[string][]*multipart.FileHeader) (map[string][]string, error) {
	var pending []*pendingUpload
	for _, field := range MediaFields {
		for _, header := range files[field] {
			pending = append(pending, &pendingUpload{field: field, header: header})
		}
	}
	if len(pending) == 0 {
		return nil, nil
	}

	group, groupCtx := errgroup.WithContext(ctx)
	for _, upload := range pending {
		group.Go(func() error {
			file, err := upload.header.Open()
			if err != nil {
				return apperr.BadRequest(fmt.Sprintf("Unreadable file for %s", upload.field))
			}
			defer file.Close()

			contentType := upload.header.Header.Get("Content-Type")
			location, err := service.media.Upload(groupCtx, upload.header.Filename, contentType, file, upload.header.Size)
			if err != nil {
				return apperr.Internal(err)
			}
			upload.url = location
			return nil
		})
	}

	uploaded := make(map[string][]string)
	waitErr := group.Wait()
	for _, upload := range pending {
		if upload.url != "" {
			uploaded[upload.field] = append(uploaded[upload.field], upload.url)
		}
	}

	if waitErr != nil {
		service.discardUploads(ctx, uploaded)
		return nil, waitErr
	}
	return uploaded, nil
}

// discardUploads removes objects stored for a request that then failed.
func (service *Service) discardUploads(ctx context.Context, uploaded map[string][]string) {
	for _, urls := range uploaded {
		for _, location := range urls {
			if path, ok := urlPath(location); ok {
				service.deleteMedia(ctx, path)
			}
		}
	}
}

// deleteMedia removes one stored object. Failures are logged and swallowed.
func (service *Service) deleteMedia(ctx context.Context, path string) {
	if err := service.media.Delete(context.WithoutCancel(ctx), path); err != nil {
		service.logger.WarnContext(ctx, "media_delete_failed",
			slog.String("path", path),
			slog.Any("error", err),
		)
	}
}
