package leadership

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Assignment, error)
	// OpenForTarget returns the assignment with a nil effectiveTo for the
	// given (roleType, target), or ErrNotFound.
	OpenForTarget(ctx context.Context, roleType RoleType, targetKind TargetKind, targetID uuid.UUID) (Assignment, error)
	// ActiveForTarget selects by interval containment on the given date.
	ActiveForTarget(ctx context.Context, roleType RoleType, targetKind TargetKind, targetID uuid.UUID, date time.Time) (Assignment, error)
	ListActive(ctx context.Context, date time.Time) ([]Assignment, error)
	Create(ctx context.Context, a Assignment) (Assignment, error)
	Update(ctx context.Context, a Assignment) error
}
