package category

import (
	"context"

	"github.com/taibuivan/temple/pkg/pagination"
)

// Repository defines the data access contract.
//
// FindByID, UpdateByID and DeleteByID return [dberr.ErrNotFound] when no row matches.
type Repository interface {
	Create(context context.Context, category *Category) error
	FindByID(context context.Context, id string) (*Category, error)
	Query(context context.Context, filter Filter, opts pagination.Options) (pagination.Page[*Category], error)
	UpdateByID(context context.Context, id string, patch Patch) (*Category, error)
	DeleteByID(context context.Context, id string) (*Category, error)
}
