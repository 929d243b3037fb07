package person

import (
	"context"

	"github.com/google/uuid"
)

type FindParams struct {
	Q      string
	Status Status
	Limit  int
	Offset int
}

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Person, error)
	GetPaginated(ctx context.Context, params *FindParams) ([]Person, int64, error)
	ListByOffice(ctx context.Context, officeID uuid.UUID) ([]Person, error)
	ListDirectReports(ctx context.Context, managerID uuid.UUID) ([]Person, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, p Person) (Person, error)
	Update(ctx context.Context, p Person) error
}
