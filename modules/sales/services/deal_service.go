package services

import (
	"context"

	"github.com/google/uuid"

	orgservices "github.com/voltify-hq/voltify-sdk/modules/org/services"
	"github.com/voltify-hq/voltify-sdk/modules/sales/domain/aggregates/deal"
	"github.com/voltify-hq/voltify-sdk/pkg/composables"
	"github.com/voltify-hq/voltify-sdk/pkg/eventbus"
)

// ClosedEvent fires when a deal is recorded. The commission resolver is
// subscribed to it at module wiring.
type ClosedEvent struct {
	Result deal.Deal
}

type DealService struct {
	repo      deal.Repository
	scopes    ScopeResolver
	gate      *orgservices.VisibilityService
	publisher eventbus.EventBus
}

func NewDealService(
	repo deal.Repository,
	scopes ScopeResolver,
	gate *orgservices.VisibilityService,
	publisher eventbus.EventBus,
) *DealService {
	return &DealService{
		repo:      repo,
		scopes:    scopes,
		gate:      gate,
		publisher: publisher,
	}
}

func (s *DealService) Create(ctx context.Context, d deal.Deal) (deal.Deal, error) {
	if err := authorizeSales(ctx, DealsAuthzObject, "create"); err != nil {
		return deal.Deal{}, err
	}
	created, err := composables.InTxResult(ctx, func(txCtx context.Context) (deal.Deal, error) {
		return s.repo.Create(txCtx, d)
	})
	if err != nil {
		return deal.Deal{}, err
	}
	s.publisher.Publish(ClosedEvent{Result: created})
	return created, nil
}

// GetVisible returns the deal when the actor's scope admits it. Denial
// reads as not-found so existence does not leak.
func (s *DealService) GetVisible(ctx context.Context, dealID, actorID uuid.UUID) (deal.Deal, error) {
	d, err := s.repo.GetByID(ctx, dealID)
	if err != nil {
		return deal.Deal{}, err
	}

	sc, err := s.scopes.ResolveScope(ctx, actorID)
	if err != nil {
		return deal.Deal{}, err
	}

	target := orgservices.DealTarget{
		SetterID: d.SetterID(),
		CloserID: d.CloserID(),
		OfficeID: d.OfficeID(),
	}
	if !s.gate.CanViewDeal(actorID, sc, target) {
		return deal.Deal{}, deal.ErrNotFound
	}
	return d, nil
}

// ListVisibleForPerson lists a person's deals, filtered by the actor's
// scope.
func (s *DealService) ListVisibleForPerson(ctx context.Context, personID, actorID uuid.UUID) ([]deal.Deal, error) {
	deals, err := s.repo.ListByPerson(ctx, personID)
	if err != nil {
		return nil, err
	}

	sc, err := s.scopes.ResolveScope(ctx, actorID)
	if err != nil {
		return nil, err
	}

	visible := make([]deal.Deal, 0, len(deals))
	for _, d := range deals {
		target := orgservices.DealTarget{
			SetterID: d.SetterID(),
			CloserID: d.CloserID(),
			OfficeID: d.OfficeID(),
		}
		if s.gate.CanViewDeal(actorID, sc, target) {
			visible = append(visible, d)
		}
	}
	return visible, nil
}
