package role

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/voltify-hq/voltify-sdk/modules/org/domain/entities/permission"
)

var ErrNotFound = errors.New("role not found")

// Role is immutable reference data. Level is the hierarchy rank, 1 = lowest;
// it gates leadership eligibility, not visibility (visibility is the
// hierarchy walk in the scope resolver).
type Role struct {
	ID          uuid.UUID
	Name        string
	Level       int
	Permissions permission.Set
}

func (r Role) Has(p *permission.Permission) bool {
	return r.Permissions.Has(p)
}

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Role, error)
	GetAll(ctx context.Context) ([]Role, error)
}
