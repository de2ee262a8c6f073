package deity

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
	selectColumns = strings.Join(schema.CoreDeity.Columns(), ", ")

	insertQuery = func() string {
		columns := []string{schema.CoreDeity.ID}
		placeholders := []string{"$1"}
		for i, spec := range fieldSpecs {
			columns = append(columns, spec.column)
			placeholders = append(placeholders, fmt.Sprintf("$%d", i+2))
		}
		columns = append(columns, schema.CoreDeity.CreatedAt, schema.CoreDeity.UpdatedAt)
		placeholders = append(placeholders, "NOW()", "NOW()")

		return fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING %s, %s`,
			schema.CoreDeity.Table, strings.Join(columns, ", "), strings.Join(placeholders, ", "),
			schema.CoreDeity.CreatedAt, schema.CoreDeity.UpdatedAt,
		)
	}()

	updateQuery = func() string {
		assignments := make([]string, 0, len(fieldSpecs)+1)
		for i, spec := range fieldSpecs {
			assignments = append(assignments, fmt.Sprintf("%s = $%d", spec.column, i+2))
		}
		assignments = append(assignments, schema.CoreDeity.UpdatedAt+" = NOW()")

		return fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $1 RETURNING %s`,
			schema.CoreDeity.Table, strings.Join(assignments, ", "), schema.CoreDeity.ID, schema.CoreDeity.UpdatedAt,
		)
	}()
)

// PostgresRepository implements [Repository] on core.deity.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// writeArgs returns the writable values of d in column order.
func writeArgs(d *Deity) []any {
	args := make([]any, len(fieldSpecs))
	for i, spec := range fieldSpecs {
		args[i] = *spec.ref(d)
	}
	return args
}

func scanDeity(row pgx.Row) (*Deity, error) {
	d := &Deity{}
	dest := make([]any, 0, len(fieldSpecs)+3)
	dest = append(dest, &d.ID)
	for _, spec := range fieldSpecs {
		dest = append(dest, spec.ref(d))
	}
	dest = append(dest, &d.CreatedAt, &d.UpdatedAt)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return d, nil
}

func (repository *PostgresRepository) Create(context context.Context, d *Deity) error {
	d.ID = uuid.New()
	args := append([]any{d.ID}, writeArgs(d)...)

	err := repository.db.QueryRow(context, insertQuery, args...).Scan(&d.CreatedAt, &d.UpdatedAt)
	return dberr.Wrap(err, "create_deity")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Deity, error) {
	if !uuid.Valid(id) {
		return nil, dberr.ErrNotFound
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns, schema.CoreDeity.Table, schema.CoreDeity.ID)

	d, err := scanDeity(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_deity")
	}
	return d, nil
}

func (repository *PostgresRepository) Query(context context.Context, filter Filter, opts pagination.Options) (pagination.Page[*Deity], error) {
	list := &postgres.ListQuery{
		Table:    schema.CoreDeity.Table,
		Columns:  schema.CoreDeity.Columns(),
		IDColumn: schema.CoreDeity.ID,
		Sortable: map[string]string{
			"id":        schema.CoreDeity.ID,
			"name":      schema.CoreDeity.EN.Name,
			"en_name":   schema.CoreDeity.EN.Name,
			"hd_name":   schema.CoreDeity.HD.Name,
			"createdAt": schema.CoreDeity.CreatedAt,
			"updatedAt": schema.CoreDeity.UpdatedAt,
		},
		DefaultSort: pagination.DefaultSortField,
	}

	// Malformed reference ids cannot match any row.
	for _, ref := range []string{filter.CategoryID, filter.SubCategoryID} {
		if ref != "" && !uuid.Valid(ref) {
			return pagination.NewPage[*Deity](nil, opts, 0), nil
		}
	}

	if filter.Name != "" {
		list.Contains(filter.Name, schema.CoreDeity.EN.Name, schema.CoreDeity.HD.Name)
	}
	if filter.Role != "" {
		list.Contains(filter.Role, schema.CoreDeity.EN.RoleSignificance)
	}
	if filter.CategoryID != "" {
		list.EqualAny(filter.CategoryID, schema.CoreDeity.EN.CategoryID, schema.CoreDeity.HD.CategoryID)
	}
	if filter.SubCategoryID != "" {
		list.EqualAny(filter.SubCategoryID, schema.CoreDeity.EN.SubCategoryID, schema.CoreDeity.HD.SubCategoryID)
	}

	return postgres.QueryPage(context, repository.db, list, opts, scanDeity, "list_deities")
}

// UpdateByID locks the row, merges the patch and writes every column back.
func (repository *PostgresRepository) UpdateByID(ctx context.Context, id string, patch Patch) (*Deity, *Deity, error) {
	if !uuid.Valid(id) {
		return nil, nil, dberr.ErrNotFound
	}

	var updated, previous *Deity
	err := postgres.WithTx(ctx, repository.db, func(tx pgx.Tx) error {
		lockQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 FOR UPDATE`, selectColumns, schema.CoreDeity.Table, schema.CoreDeity.ID)

		current, err := scanDeity(tx.QueryRow(ctx, lockQuery, id))
		if err != nil {
			return dberr.Wrap(err, "lock_deity")
		}

		locked := *current
		patch.Apply(current)

		args := append([]any{id}, writeArgs(current)...)
		if err := tx.QueryRow(ctx, updateQuery, args...).Scan(&current.UpdatedAt); err != nil {
			return dberr.Wrap(err, "update_deity")
		}

		updated, previous = current, &locked
		return nil
	})
	if err != nil {
		return nil, nil, dberr.Wrap(err, "update_deity")
	}
	return updated, previous, nil
}

func (repository *PostgresRepository) DeleteByID(context context.Context, id string) (*Deity, error) {
	if !uuid.Valid(id) {
		return nil, dberr.ErrNotFound
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 RETURNING %s`, schema.CoreDeity.Table, schema.CoreDeity.ID, selectColumns)

	d, err := scanDeity(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "delete_deity")
	}
	return d, nil
}
