package deity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/temple/internal/platform/apperr"
	"github.com/taibuivan/temple/internal/platform/ctxutil"
	"github.com/taibuivan/temple/internal/platform/validate"
	"github.com/taibuivan/temple/pkg/uuid"
)

// BulkResult is the per-row outcome of a bulk import, in row order.
type BulkResult struct {
	SuccessResults []*Deity
	ErrorResults   []RowError
}

// RowError describes one rejected row.
//
// Row is the 1-based position in the rows passed to [Service.BulkUpload].
// Line is the line of the source file the row started on, when the caller
// knows it.
type RowError struct {
	Row   int    `json:"row"`
	Line  int    `json:"line,omitempty"`
	Error string `json:"error"`
}

// BulkObserver records the outcome of a bulk import.
type BulkObserver interface {
	ObserveBulk(succeeded, failed int, elapsed time.Duration)
}

type rowOutcome struct {
	deity *Deity
	err   error
}

// BulkUpload creates one Deity per row.
//
// Rows are processed concurrently up to the configured limit and every row
// succeeds or fails on its own. The two category ids are stamped onto every
// record. Inserts already issued complete even if ctx is cancelled.
func (service *Service) BulkUpload(ctx context.Context, rows []map[string]string, enCategoryID, hdCategoryID string) (*BulkResult, error) {
	if len(rows) == 0 {
		return nil, apperr.BadRequest("CSV file is empty")
	}

	validator := &validate.Validator{}
	if enCategoryID != "" {
		validator.UUID(FieldENCategoryID, enCategoryID)
	}
	if hdCategoryID != "" {
		validator.UUID(FieldHDCategoryID, hdCategoryID)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	ctx = ctxutil.WithAttrs(ctx, slog.String("bulk_id", uuid.New()), slog.Int("rows", len(rows)))
	started := time.Now()
	detached := context.WithoutCancel(ctx)
	outcomes := make([]rowOutcome, len(rows))

	group := &errgroup.Group{}
	group.SetLimit(service.concurrency)
	for index, row := range rows {
		group.Go(func() (err error) {
			defer func() {
				if recovered := recover(); recovered != nil {
					err = fmt.Errorf("bulk row %d panicked: %v", index+1, recovered)
				}
			}()

			rowCtx := ctxutil.WithAttrs(detached, slog.Int("row", index+1))
			deity, rowErr := service.importRow(rowCtx, row, enCategoryID, hdCategoryID)
			if rowErr != nil {
				service.logger.DebugContext(rowCtx, "bulk_row_rejected", slog.String("error", rowErr.Error()))
			}
			outcomes[index] = rowOutcome{deity: deity, err: rowErr}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		service.logger.ErrorContext(ctx, "bulk_upload_aborted", slog.Any("error", err))
		return nil, apperr.Internal(err)
	}

	result := &BulkResult{
		SuccessResults: make([]*Deity, 0, len(rows)),
		ErrorResults:   make([]RowError, 0),
	}
	for index, outcome := range outcomes {
		if outcome.err != nil {
			result.ErrorResults = append(result.ErrorResults, RowError{Row: index + 1, Error: rowMessage(outcome.err)})
			continue
		}
		result.SuccessResults = append(result.SuccessResults, outcome.deity)
	}

	elapsed := time.Since(started)
	service.observer.ObserveBulk(len(result.SuccessResults), len(result.ErrorResults), elapsed)

	if len(result.ErrorResults) > 0 {
		messages := make([]string, len(result.ErrorResults))
		for i, rowErr := range result.ErrorResults {
			messages[i] = fmt.Sprintf("row %d: %s", rowErr.Row, rowErr.Error)
		}
		service.logger.WarnContext(ctx, "bulk_upload_rows_failed",
			slog.Int("failed", len(result.ErrorResults)),
			slog.Any("errors", messages),
		)
	}

	service.logger.InfoContext(ctx, "bulk_upload_completed",
		slog.Int("succeeded", len(result.SuccessResults)),
		slog.Int("failed", len(result.ErrorResults)),
		slog.Duration("elapsed", elapsed),
	)
	return result, nil
}

// importRow stores one CSV row. Media cells go through [NormalizeMedia] like
// form values do, so a full URL is stored as its path.
func (service *Service) importRow(ctx context.Context, row map[string]string, enCategoryID, hdCategoryID string) (*Deity, error) {
	patch := PatchFromRow(row)
	paths, err := NormalizeMedia(patch.values(MediaFields))
	if err != nil {
		return nil, err
	}
	for field, path := range paths {
		patch[field] = path
	}
	patch[FieldENCategoryID] = enCategoryID
	patch[FieldHDCategoryID] = hdCategoryID

	if err := patch.Validate(); err != nil {
		return nil, err
	}

	deity := &Deity{}
	patch.Apply(deity)
	if err := service.repo.Create(ctx, deity); err != nil {
		return nil, err
	}
	return deity, nil
}

// rowMessage renders a row failure with its field details.
func rowMessage(err error) string {
	var appErr *apperr.AppError
	if !errors.As(err, &appErr) {
		return err.Error()
	}
	if len(appErr.Details) == 0 {
		return appErr.Message
	}

	details := make([]string, len(appErr.Details))
	for i, detail := range appErr.Details {
		details[i] = detail.Field + ": " + detail.Message
	}
	return appErr.Message + " (" + strings.Join(details, "; ") + ")"
}
