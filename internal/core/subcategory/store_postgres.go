// Copyright (c) 2026 Temple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package subcategory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/temple/internal/platform/database/schema"
	"github.com/taibuivan/temple/internal/platform/dberr"
	"github.com/taibuivan/temple/internal/platform/postgres"
	"github.com/taibuivan/temple/pkg/pagination"
	"github.com/taibuivan/temple/pkg/uuid"
)

var (
	table         = schema.CoreSubcategory
	selectColumns = strings.Join(table.Columns(), ", ")
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed subcategory store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanSubcategory(row pgx.Row) (*Subcategory, error) {
	s := &Subcategory{}
	if err := row.Scan(&s.ID, &s.Name, &s.Language, &s.CategoryID, &s.Description, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return s, nil
}

func (repository *PostgresRepository) Create(context context.Context, s *Subcategory) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING %s, %s
	`,
		table.Table, table.ID, table.Name, table.Language, table.CategoryID, table.Description, table.CreatedAt, table.UpdatedAt,
		table.CreatedAt, table.UpdatedAt,
	)

	s.ID = uuid.New()
	err := repository.db.QueryRow(context, query, s.ID, s.Name, s.Language, s.CategoryID, s.Description).Scan(&s.CreatedAt, &s.UpdatedAt)
	return dberr.Wrap(err, "create_subcategory")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Subcategory, error) {
	if !uuid.Valid(id) {
		return nil, dberr.ErrNotFound
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns, table.Table, table.ID)

	s, err := scanSubcategory(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_subcategory")
	}
	return s, nil
}

/*
Query retrieves one page of subcategories.

An unparsable categoryId filter matches nothing instead of failing the cast
inside Postgres.
*/
func (repository *PostgresRepository) Query(context context.Context, filter Filter, opts pagination.Options) (pagination.Page[*Subcategory], error) {
	if filter.CategoryID != "" && !uuid.Valid(filter.CategoryID) {
		return pagination.NewPage[*Subcategory](nil, opts, 0), nil
	}

	list := &postgres.ListQuery{
		Table:    table.Table,
		Columns:  table.Columns(),
		IDColumn: table.ID,
		Sortable: map[string]string{
			"id":         table.ID,
			"name":       table.Name,
			"language":   table.Language,
			"categoryId": table.CategoryID,
			"createdAt":  table.CreatedAt,
			"updatedAt":  table.UpdatedAt,
		},
		DefaultSort: pagination.DefaultSortField,
	}

	if filter.Name != "" {
		list.Contains(filter.Name, table.Name)
	}
	if filter.Language != "" {
		list.Equal(table.Language, filter.Language)
	}
	if filter.CategoryID != "" {
		list.Equal(table.CategoryID, filter.CategoryID)
	}

	return postgres.QueryPage(context, repository.db, list, opts, scanSubcategory, "list_subcategories")
}

func (repository *PostgresRepository) UpdateByID(ctx context.Context, id string, patch Patch) (*Subcategory, error) {
	if !uuid.Valid(id) {
		return nil, dberr.ErrNotFound
	}

	var updated *Subcategory
	err := postgres.WithTx(ctx, repository.db, func(tx pgx.Tx) error {
		lockQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 FOR UPDATE`, selectColumns, table.Table, table.ID)

		current, err := scanSubcategory(tx.QueryRow(ctx, lockQuery, id))
		if err != nil {
			return dberr.Wrap(err, "lock_subcategory")
		}

		patch.Apply(current)

		updateQuery := fmt.Sprintf(`
			UPDATE %s
			SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
			WHERE %s = $1
			RETURNING %s
		`,
			table.Table, table.Name, table.Language, table.CategoryID, table.Description, table.UpdatedAt,
			table.ID, table.UpdatedAt,
		)

		err = tx.QueryRow(ctx, updateQuery, id, current.Name, current.Language, current.CategoryID, current.Description).Scan(&current.UpdatedAt)
		if err != nil {
			return dberr.Wrap(err, "update_subcategory")
		}

		updated = current
		return nil
	})

	return updated, dberr.Wrap(err, "update_subcategory")
}

func (repository *PostgresRepository) DeleteByID(context context.Context, id string) (*Subcategory, error) {
	if !uuid.Valid(id) {
		return nil, dberr.ErrNotFound
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 RETURNING %s`, table.Table, table.ID, selectColumns)

	s, err := scanSubcategory(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "delete_subcategory")
	}
	return s, nil
}
