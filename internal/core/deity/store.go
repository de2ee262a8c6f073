package deity

import (
	"context"

	"github.com/taibuivan/temple/pkg/pagination"
)

// Repository defines persistence operations for deities.
type Repository interface {
	Create(ctx context.Context, deity *Deity) error
	FindByID(ctx context.Context, id string) (*Deity, error)
	Query(ctx context.Context, filter Filter, opts pagination.Options) (pagination.Page[*Deity], error)
	// UpdateByID applies patch under a row lock and returns the new row
	// together with the row as it was when locked.
	UpdateByID(ctx context.Context, id string, patch Patch) (updated, previous *Deity, err error)
	DeleteByID(ctx context.Context, id string) (*Deity, error)
}
