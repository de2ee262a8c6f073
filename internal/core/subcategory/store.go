package subcategory

import (
	"context"

	"github.com/taibuivan/temple/pkg/pagination"
)

// Repository defines the data access contract.
type Repository interface {
	Create(context context.Context, subcategory *Subcategory) error
	FindByID(context context.Context, id string) (*Subcategory, error)
	Query(context context.Context, filter Filter, opts pagination.Options) (pagination.Page[*Subcategory], error)
	UpdateByID(context context.Context, id string, patch Patch) (*Subcategory, error)
	DeleteByID(context context.Context, id string) (*Subcategory, error)
}
