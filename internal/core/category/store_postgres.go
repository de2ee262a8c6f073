package category

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

var selectColumns = strings.Join(schema.CoreCategory.Columns(), ", ")

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanCategory(row pgx.Row) (*Category, error) {
	c := &Category{}
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.HiName, &c.HiDescription, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (repository *PostgresRepository) Create(context context.Context, c *Category) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.CoreCategory.Table, schema.CoreCategory.ID, schema.CoreCategory.Name, schema.CoreCategory.Description,
		schema.CoreCategory.HiName, schema.CoreCategory.HiDescription, schema.CoreCategory.CreatedAt, schema.CoreCategory.UpdatedAt,
		schema.CoreCategory.CreatedAt, schema.CoreCategory.UpdatedAt,
	)

	c.ID = uuid.New()
	err := repository.db.QueryRow(context, query, c.ID, c.Name, c.Description, c.HiName, c.HiDescription).Scan(&c.CreatedAt, &c.UpdatedAt)
	return dberr.Wrap(err, "create_category")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Category, error) {
	if !uuid.Valid(id) {
		return nil, dberr.ErrNotFound
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns, schema.CoreCategory.Table, schema.CoreCategory.ID)

	c, err := scanCategory(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_category")
	}
	return c, nil
}

func (repository *PostgresRepository) Query(context context.Context, filter Filter, opts pagination.Options) (pagination.Page[*Category], error) {
	list := &postgres.ListQuery{
		Table:    schema.CoreCategory.Table,
		Columns:  schema.CoreCategory.Columns(),
		IDColumn: schema.CoreCategory.ID,
		Sortable: map[string]string{
			"id":        schema.CoreCategory.ID,
			"name":      schema.CoreCategory.Name,
			"createdAt": schema.CoreCategory.CreatedAt,
			"updatedAt": schema.CoreCategory.UpdatedAt,
		},
		DefaultSort: pagination.DefaultSortField,
	}

	if filter.Name != "" {
		list.Contains(filter.Name, schema.CoreCategory.Name, schema.CoreCategory.HiName)
	}

	return postgres.QueryPage(context, repository.db, list, opts, scanCategory, "list_categories")
}

// UpdateByID locks the row, merges the patch and writes every column back.
func (repository *PostgresRepository) UpdateByID(ctx context.Context, id string, patch Patch) (*Category, error) {
	if !uuid.Valid(id) {
		return nil, dberr.ErrNotFound
	}

	var updated *Category
	err := postgres.WithTx(ctx, repository.db, func(tx pgx.Tx) error {
		lockQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 FOR UPDATE`, selectColumns, schema.CoreCategory.Table, schema.CoreCategory.ID)

		current, err := scanCategory(tx.QueryRow(ctx, lockQuery, id))
		if err != nil {
			return dberr.Wrap(err, "lock_category")
		}

		patch.Apply(current)

		updateQuery := fmt.Sprintf(`
			UPDATE %s
			SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
			WHERE %s = $1
			RETURNING %s
		`,
			schema.CoreCategory.Table, schema.CoreCategory.Name, schema.CoreCategory.Description,
			schema.CoreCategory.HiName, schema.CoreCategory.HiDescription, schema.CoreCategory.UpdatedAt,
			schema.CoreCategory.ID, schema.CoreCategory.UpdatedAt,
		)

		err = tx.QueryRow(ctx, updateQuery, id, current.Name, current.Description, current.HiName, current.HiDescription).Scan(&current.UpdatedAt)
		if err != nil {
			return dberr.Wrap(err, "update_category")
		}

		updated = current
		return nil
	})

	return updated, dberr.Wrap(err, "update_category")
}

func (repository *PostgresRepository) DeleteByID(context context.Context, id string) (*Category, error) {
	if !uuid.Valid(id) {
		return nil, dberr.ErrNotFound
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 RETURNING %s`, schema.CoreCategory.Table, schema.CoreCategory.ID, selectColumns)

	c, err := scanCategory(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "delete_category")
	}
	return c, nil
}
