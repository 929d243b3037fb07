package payplan

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (PayPlan, error)
	GetAll(ctx context.Context) ([]PayPlan, error)
	Create(ctx context.Context, p PayPlan) (PayPlan, error)
	Update(ctx context.Context, p PayPlan) error
}
