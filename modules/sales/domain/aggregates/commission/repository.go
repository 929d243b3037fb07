package commission

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Commission, error)
	ListByDeal(ctx context.Context, dealID uuid.UUID) ([]Commission, error)
	ListByPerson(ctx context.Context, personID uuid.UUID) ([]Commission, error)
	Create(ctx context.Context, c Commission) (Commission, error)
	Update(ctx context.Context, c Commission) error
}
