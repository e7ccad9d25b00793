package catalog

import (
	"context"

	"github.com/cinelog/cinelog/pkg/pagination"
	"github.com/google/uuid"
)

// System defines the catalog entry operations.
// Implementations handle persistence; validation failures surface as
// *ValidationError so handlers can map them to client errors.
type System interface {
	List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Entry], error)
	Find(ctx context.Context, id uuid.UUID) (*Entry, error)
	Create(ctx context.Context, cmd CreateCommand) (*Entry, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Entry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
