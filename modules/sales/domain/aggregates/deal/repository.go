package deal

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Deal, error)
	ListByPerson(ctx context.Context, personID uuid.UUID) ([]Deal, error)
	Create(ctx context.Context, d Deal) (Deal, error)
}
