package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/voltify-hq/voltify-sdk/modules/sales/domain/aggregates/payplan"
	"github.com/voltify-hq/voltify-sdk/pkg/composables"
)

type PayPlanService struct {
	repo payplan.Repository
}

func NewPayPlanService(repo payplan.Repository) *PayPlanService {
	return &PayPlanService{repo: repo}
}

func (s *PayPlanService) GetByID(ctx context.Context, id uuid.UUID) (payplan.PayPlan, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PayPlanService) GetAll(ctx context.Context) ([]payplan.PayPlan, error) {
	return s.repo.GetAll(ctx)
}

func (s *PayPlanService) Create(ctx context.Context, p payplan.PayPlan) (payplan.PayPlan, error) {
	if err := authorizeSales(ctx, PayPlansAuthzObject, "create"); err != nil {
		return payplan.PayPlan{}, err
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (payplan.PayPlan, error) {
		return s.repo.Create(txCtx, p)
	})
}

func (s *PayPlanService) Update(ctx context.Context, p payplan.PayPlan) error {
	if err := authorizeSales(ctx, PayPlansAuthzObject, "update"); err != nil {
		return err
	}
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.Update(txCtx, p)
	})
}
