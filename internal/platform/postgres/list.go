// Copyright (c) 2026 Temple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/temple/internal/platform/dberr"
	"github.com/taibuivan/temple/pkg/pagination"
)

// ListQuery builds the SELECT and COUNT statements of one paginated list request.
//
// Filters are appended with [ListQuery.Equal] and [ListQuery.Contains]; sort
// criteria are resolved against the Sortable allow-list so that only known
// columns ever reach the SQL text.
type ListQuery struct {
	// Table is the fully qualified table name.
	Table string
	// Columns is the SELECT list, in scan order.
	Columns []string
	// IDColumn is the unique tie-break column appended to every ORDER BY.
	IDColumn string
	// Sortable maps API field names to column names.
	Sortable map[string]string
	// DefaultSort is the API field used when no valid criterion is supplied.
	DefaultSort string

	conditions []string
	args       []any
}

// Equal adds "column = value".
func (q *ListQuery) Equal(column string, value any) *ListQuery {
	q.conditions = append(q.conditions, column+" = "+q.bind(value))
	return q
}

// EqualAny adds "(c1 = value OR c2 = value ...)" with a single bound argument.
func (q *ListQuery) EqualAny(value any, columns ...string) *ListQuery {
	placeholder := q.bind(value)
	parts := make([]string, len(columns))
	for i, column := range columns {
		parts[i] = column + " = " + placeholder
	}
	q.conditions = append(q.conditions, "("+strings.Join(parts, " OR ")+")")
	return q
}

// Contains adds a case-insensitive substring match over one or more columns.
//
// LIKE wildcards in term are escaped so user input matches literally.
func (q *ListQuery) Contains(term string, columns ...string) *ListQuery {
	placeholder := q.bind("%" + escapeLike(term) + "%")
	parts := make([]string, len(columns))
	for i, column := range columns {
		parts[i] = column + " ILIKE " + placeholder
	}
	q.conditions = append(q.conditions, "("+strings.Join(parts, " OR ")+")")
	return q
}

// CountSQL returns the total-count statement and its arguments.
func (q *ListQuery) CountSQL() (string, []any) {
	return fmt.Sprintf("SELECT count(*) FROM %s%s", q.Table, q.where()), q.args
}

// SelectSQL returns the page statement and its arguments.
func (q *ListQuery) SelectSQL(opts pagination.Options) (string, []any) {
	args := append([]any{}, q.args...)
	limitPos := strconv.Itoa(len(args) + 1)
	offsetPos := strconv.Itoa(len(args) + 2)
	args = append(args, opts.Limit, opts.Offset())

	query := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s LIMIT $%s OFFSET $%s",
		strings.Join(q.Columns, ", "), q.Table, q.where(), q.orderBy(opts.SortBy), limitPos, offsetPos,
	)
	return query, args
}

// orderBy resolves sort criteria to columns, dropping unknown fields.
func (q *ListQuery) orderBy(fields []pagination.SortField) string {
	var clauses []string
	seen := make(map[string]bool)

	for _, field := range fields {
		column, ok := q.Sortable[field.Field]
		if !ok || seen[column] {
			continue
		}
		seen[column] = true

		direction := "ASC"
		if field.Direction == pagination.Desc {
			direction = "DESC"
		}
		clauses = append(clauses, column+" "+direction)
	}

	if len(clauses) == 0 {
		if column, ok := q.Sortable[q.DefaultSort]; ok {
			clauses = append(clauses, column+" ASC")
			seen[column] = true
		}
	}

	if !seen[q.IDColumn] {
		clauses = append(clauses, q.IDColumn+" ASC")
	}
	return strings.Join(clauses, ", ")
}

func (q *ListQuery) where() string {
	if len(q.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(q.conditions, " AND ")
}

func (q *ListQuery) bind(value any) string {
	q.args = append(q.args, value)
	return "$" + strconv.Itoa(len(q.args))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// QueryPage runs the count and page statements of q and scans the rows with scan.
func QueryPage[T any](ctx context.Context, db Querier, q *ListQuery, opts pagination.Options, scan func(pgx.Row) (T, error), action string) (pagination.Page[T], error) {
	countSQL, countArgs := q.CountSQL()

	var total int
	if err := db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return pagination.Page[T]{}, dberr.Wrap(err, "count_"+action)
	}

	selectSQL, args := q.SelectSQL(opts)
	rows, err := db.Query(ctx, selectSQL, args...)
	if err != nil {
		return pagination.Page[T]{}, dberr.Wrap(err, action)
	}

	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (T, error) {
		return scan(row)
	})
	if err != nil {
		return pagination.Page[T]{}, dberr.Wrap(err, "scan_"+action)
	}

	return pagination.NewPage(results, opts, total), nil
}
