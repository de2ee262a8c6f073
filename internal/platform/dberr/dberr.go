// Copyright (c) 2026 Temple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/temple/internal/platform/apperr"
)

var (
	// ErrNotFound is the absence sentinel returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// The action is recorded as the cause prefix for server-side logs only.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 0. Already classified (e.g. returned from inside a transaction callback)
	if apperr.IsAppError(err) {
		return err
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Constraint and input errors reported by Postgres
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return &apperr.AppError{
				Code:       "CONFLICT",
				Message:    "A record with the same value already exists",
				HTTPStatus: http.StatusConflict,
				Cause:      err,
			}
		case pgerrcode.ForeignKeyViolation:
			return foreignKey(err, pgErr)
		case pgerrcode.InvalidTextRepresentation:
			return &apperr.AppError{
				Code:       "VALIDATION_ERROR",
				Message:    "Malformed identifier",
				HTTPStatus: http.StatusBadRequest,
				Cause:      err,
			}
		case pgerrcode.NotNullViolation, pgerrcode.CheckViolation, pgerrcode.StringDataRightTruncationDataException:
			return &apperr.AppError{
				Code:       "VALIDATION_ERROR",
				Message:    "Record violates a storage constraint",
				HTTPStatus: http.StatusBadRequest,
				Cause:      err,
				Details:    []apperr.FieldError{{Field: pgErr.ColumnName, Message: pgErr.Message}},
			}
		}
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(errors.Join(errors.New(action), err))
}

// foreignKey distinguishes a dangling reference on write from a restricted delete.
//
// Postgres reports the restricted delete against the referencing table, so the
// constraint detail is "still referenced" rather than "is not present".
func foreignKey(err error, pgErr *pgconn.PgError) error {
	if strings.Contains(pgErr.Detail, "is still referenced") {
		return &apperr.AppError{
			Code:       "CONFLICT",
			Message:    "Record is still referenced by other records",
			HTTPStatus: http.StatusConflict,
			Cause:      err,
		}
	}

	return &apperr.AppError{
		Code:       "VALIDATION_ERROR",
		Message:    "Referenced record does not exist",
		HTTPStatus: http.StatusBadRequest,
		Cause:      err,
		Details:    []apperr.FieldError{{Field: pgErr.ConstraintName, Message: pgErr.Detail}},
	}
}

// IsNotFound reports whether err is the absence sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
