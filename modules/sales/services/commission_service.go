package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/voltify-hq/voltify-sdk/modules/org/domain/aggregates/person"
	"github.com/voltify-hq/voltify-sdk/modules/org/domain/entities/scope"
	orgservices "github.com/voltify-hq/voltify-sdk/modules/org/services"
	"github.com/voltify-hq/voltify-sdk/modules/sales/domain/aggregates/commission"
	"github.com/voltify-hq/voltify-sdk/modules/sales/domain/aggregates/deal"
	"github.com/voltify-hq/voltify-sdk/modules/sales/domain/aggregates/payplan"
	"github.com/voltify-hq/voltify-sdk/modules/sales/domain/entities/snapshot"
	"github.com/voltify-hq/voltify-sdk/pkg/composables"
	"github.com/voltify-hq/voltify-sdk/pkg/eventbus"
)

// HierarchyWalker walks the person chains the override ladder is built on.
type HierarchyWalker interface {
	ReportsToChain(ctx context.Context, personID uuid.UUID, levels int) ([]uuid.UUID, error)
	RecruitedByChain(ctx context.Context, personID uuid.UUID, levels int) ([]uuid.UUID, error)
}

// LeaderDirectory answers who held each office-hierarchy seat on a date.
type LeaderDirectory interface {
	LeadersForOffice(ctx context.Context, officeID uuid.UUID, date time.Time) (orgservices.Leaders, error)
}

// ScopeResolver computes the actor's visibility envelope.
type ScopeResolver interface {
	ResolveScope(ctx context.Context, actorID uuid.UUID) (scope.Scope, error)
}

// VisibilityGate is the commission-facing slice of the org gate.
type VisibilityGate interface {
	CanViewCommission(actorID uuid.UUID, sc scope.Scope, target orgservices.CommissionTarget) bool
}

// ComputedEvent fires after a deal's line items are persisted.
type ComputedEvent struct {
	DealID uuid.UUID
	Count  int
}

// reportsToTypes and recruitedByTypes index commission type by override
// level. The ladder stops at level 2 regardless of configuration.
var reportsToTypes = map[int]commission.Type{
	1: commission.TypeOverrideReportsToL1,
	2: commission.TypeOverrideReportsToL2,
}

var recruitedByTypes = map[int]commission.Type{
	1: commission.TypeOverrideRecruitedByL1,
	2: commission.TypeOverrideRecruitedByL2,
}

type CommissionService struct {
	deals          deal.Repository
	plans          payplan.Repository
	commissions    commission.Repository
	persons        person.Repository
	snapshots      *SnapshotService
	graph          HierarchyWalker
	leaders        LeaderDirectory
	scopes         ScopeResolver
	gate           VisibilityGate
	publisher      eventbus.EventBus
	overrideLevels int
}

func NewCommissionService(
	deals deal.Repository,
	plans payplan.Repository,
	commissions commission.Repository,
	persons person.Repository,
	snapshots *SnapshotService,
	graph HierarchyWalker,
	leaders LeaderDirectory,
	scopes ScopeResolver,
	gate VisibilityGate,
	publisher eventbus.EventBus,
	overrideLevels int,
) *CommissionService {
	if overrideLevels < 1 || overrideLevels > 2 {
		overrideLevels = 2
	}
	return &CommissionService{
		deals:          deals,
		plans:          plans,
		commissions:    commissions,
		persons:        persons,
		snapshots:      snapshots,
		graph:          graph,
		leaders:        leaders,
		scopes:         scopes,
		gate:           gate,
		publisher:      publisher,
		overrideLevels: overrideLevels,
	}
}

// ComputeCommissionsForDeal resolves every line item the deal owes. The
// call is a no-op when undiscarded line items already exist; use
// RecalculateCommissionsForDeal to redo a deal.
func (s *CommissionService) ComputeCommissionsForDeal(ctx context.Context, dealID uuid.UUID) ([]commission.Commission, error) {
	if err := authorizeSales(ctx, CommissionsAuthzObject, "update"); err != nil {
		return nil, err
	}

	existing, err := s.commissions.ListByDeal(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if live := discardVoided(existing); len(live) > 0 {
		return live, nil
	}

	d, err := s.deals.GetByID(ctx, dealID)
	if err != nil {
		return nil, err
	}

	items, err := composables.InTxResult(ctx, func(txCtx context.Context) ([]commission.Commission, error) {
		return s.compute(txCtx, d)
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ComputedEvent{DealID: dealID, Count: len(items)})
	return items, nil
}

// RecalculateCommissionsForDeal voids the pending items and recomputes from
// scratch. Rejected once any item is approved or paid.
func (s *CommissionService) RecalculateCommissionsForDeal(ctx context.Context, dealID uuid.UUID) ([]commission.Commission, error) {
	if err := authorizeSales(ctx, CommissionsAuthzObject, "update"); err != nil {
		return nil, err
	}

	existing, err := s.commissions.ListByDeal(ctx, dealID)
	if err != nil {
		return nil, err
	}
	for _, c := range existing {
		if c.IsSettled() {
			return nil, ErrRecalcSettled
		}
	}

	d, err := s.deals.GetByID(ctx, dealID)
	if err != nil {
		return nil, err
	}

	items, err := composables.InTxResult(ctx, func(txCtx context.Context) ([]commission.Commission, error) {
		for _, c := range existing {
			if c.Status() == commission.StatusVoid {
				continue
			}
			voided, err := c.Void("recalculated")
			if err != nil {
				return nil, err
			}
			if err := s.commissions.Update(txCtx, voided); err != nil {
				return nil, err
			}
		}
		return s.compute(txCtx, d)
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ComputedEvent{DealID: dealID, Count: len(items)})
	return items, nil
}

// GetVisibleCommissionsForDeal lists the deal's line items the actor may
// see. The scope is resolved once; each item then passes through the gate
// with its transparency and management-chain carve-outs.
func (s *CommissionService) GetVisibleCommissionsForDeal(ctx context.Context, dealID, actorID uuid.UUID) ([]commission.Commission, error) {
	d, err := s.deals.GetByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	items, err := s.commissions.ListByDeal(ctx, dealID)
	if err != nil {
		return nil, err
	}

	sc, err := s.scopes.ResolveScope(ctx, actorID)
	if err != nil {
		return nil, err
	}

	visible := make([]commission.Commission, 0, len(items))
	for _, c := range discardVoided(items) {
		target := orgservices.CommissionTarget{
			PersonID:     c.PersonID(),
			DealSetterID: d.SetterID(),
			DealCloserID: d.CloserID(),
		}
		recipient, err := s.persons.GetByID(ctx, c.PersonID())
		switch {
		case err == nil:
			target.PersonOfficeID = recipient.OfficeID()
			target.PersonReportsToID = recipient.ReportsToID()
		case errors.Is(err, person.ErrNotFound):
			// Terminated rows survive; a truly missing person still gets
			// the bare key check.
		default:
			return nil, err
		}
		if s.gate.CanViewCommission(actorID, sc, target) {
			visible = append(visible, c)
		}
	}
	return visible, nil
}

func (s *CommissionService) Approve(ctx context.Context, id uuid.UUID) (commission.Commission, error) {
	return s.transition(ctx, id, commission.Commission.Approve)
}

func (s *CommissionService) MarkPaid(ctx context.Context, id uuid.UUID) (commission.Commission, error) {
	return s.transition(ctx, id, commission.Commission.MarkPaid)
}

func (s *CommissionService) Release(ctx context.Context, id uuid.UUID) (commission.Commission, error) {
	return s.transition(ctx, id, commission.Commission.Release)
}

func (s *CommissionService) Hold(ctx context.Context, id uuid.UUID, reason string) (commission.Commission, error) {
	return s.transition(ctx, id, func(c commission.Commission) (commission.Commission, error) {
		return c.Hold(reason)
	})
}

func (s *CommissionService) Void(ctx context.Context, id uuid.UUID, reason string) (commission.Commission, error) {
	return s.transition(ctx, id, func(c commission.Commission) (commission.Commission, error) {
		return c.Void(reason)
	})
}

func (s *CommissionService) transition(
	ctx context.Context,
	id uuid.UUID,
	fn func(commission.Commission) (commission.Commission, error),
) (commission.Commission, error) {
	if err := authorizeSales(ctx, CommissionsAuthzObject, "update"); err != nil {
		return commission.Commission{}, err
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (commission.Commission, error) {
		current, err := s.commissions.GetByID(txCtx, id)
		if err != nil {
			return commission.Commission{}, err
		}
		updated, err := fn(current)
		if err != nil {
			return commission.Commission{}, err
		}
		if err := s.commissions.Update(txCtx, updated); err != nil {
			return commission.Commission{}, err
		}
		return updated, nil
	})
}

// compute builds and persists the full set of line items for one deal.
// Unresolvable lines become logged calculation gaps; the rest of the deal
// still computes. Only a corrupted hierarchy (cycle) aborts.
func (s *CommissionService) compute(ctx context.Context, d deal.Deal) ([]commission.Commission, error) {
	logger := composables.UseLogger(ctx).WithField("deal_id", d.ID())
	m := measuresOf(d)
	var items []commission.Commission

	gap := func(format string, args ...any) {
		calculationGaps.Inc()
		logger.Warnf("commission gap: "+format, args...)
	}

	persist := func(c commission.Commission) error {
		created, err := s.commissions.Create(ctx, c)
		if err != nil {
			return err
		}
		commissionsComputed.WithLabelValues(string(created.CommissionType())).Inc()
		items = append(items, created)
		return nil
	}

	// Primary participants. Self-gen deals pay a single self_gen line
	// instead of the setter/closer split.
	originSnap, originOK, err := s.participantSnapshot(ctx, d.SetterID(), d.CloseDate(), gap)
	if err != nil {
		return nil, err
	}

	if d.IsSelfGen() {
		if originOK {
			item, err := s.primaryLine(ctx, d, m, originSnap, payplan.RuleSelfGen, commission.TypeSelfGen, gap)
			if err != nil {
				return nil, err
			}
			if item != nil {
				if err := persist(*item); err != nil {
					return nil, err
				}
			}
		}
	} else {
		if originOK {
			item, err := s.primaryLine(ctx, d, m, originSnap, payplan.RuleSetter, commission.TypeSetter, gap)
			if err != nil {
				return nil, err
			}
			if item != nil {
				if err := persist(*item); err != nil {
					return nil, err
				}
			}
		}

		closerSnap, closerOK, err := s.participantSnapshot(ctx, d.CloserID(), d.CloseDate(), gap)
		if err != nil {
			return nil, err
		}
		if closerOK {
			item, err := s.primaryLine(ctx, d, m, closerSnap, payplan.RuleCloser, commission.TypeCloser, gap)
			if err != nil {
				return nil, err
			}
			if item != nil {
				if err := persist(*item); err != nil {
					return nil, err
				}
			}
		}
	}

	// Override ladders hang off the setter. Without the setter's snapshot
	// there is nothing to evaluate conditions against, so they all skip.
	if originOK {
		if err := s.chainOverrides(ctx, d, m, originSnap, payplan.OverrideReportsTo, reportsToTypes, s.graph.ReportsToChain, persist, gap); err != nil {
			return nil, err
		}
		if err := s.chainOverrides(ctx, d, m, originSnap, payplan.OverrideRecruitedBy, recruitedByTypes, s.graph.RecruitedByChain, persist, gap); err != nil {
			return nil, err
		}
		if err := s.officeOverrides(ctx, d, m, originSnap, persist, gap); err != nil {
			return nil, err
		}
	}

	return items, nil
}

func (s *CommissionService) participantSnapshot(
	ctx context.Context,
	personID uuid.UUID,
	closeDate time.Time,
	gap func(string, ...any),
) (snapshot.Snapshot, bool, error) {
	snap, err := s.snapshots.GetOrCreateSnapshot(ctx, personID, closeDate)
	if err != nil {
		if errors.Is(err, person.ErrNotFound) {
			gap("no snapshot for person %s: person missing", personID)
			return snapshot.Snapshot{}, false, nil
		}
		return snapshot.Snapshot{}, false, err
	}
	return snap, true, nil
}

// primaryLine computes a setter, closer or self_gen item from the
// participant's own plan. No matching rules means no line, which is normal
// for plans that simply do not pay that role.
func (s *CommissionService) primaryLine(
	ctx context.Context,
	d deal.Deal,
	m Measures,
	snap snapshot.Snapshot,
	ruleType payplan.RuleType,
	commissionType commission.Type,
	gap func(string, ...any),
) (*commission.Commission, error) {
	plan, ok, err := s.planForSnapshot(ctx, snap, gap)
	if err != nil || !ok {
		return nil, err
	}

	rules := MatchRules(plan, ruleType, d.DealType(), snap, m)
	if len(rules) == 0 {
		return nil, nil
	}

	item := buildItem(d, snap.PersonID, commissionType, plan, rules, snap, m)
	return &item, nil
}

func (s *CommissionService) chainOverrides(
	ctx context.Context,
	d deal.Deal,
	m Measures,
	originSnap snapshot.Snapshot,
	source payplan.OverrideSource,
	types map[int]commission.Type,
	walk func(context.Context, uuid.UUID, int) ([]uuid.UUID, error),
	persist func(commission.Commission) error,
	gap func(string, ...any),
) error {
	chain, err := walk(ctx, d.SetterID(), s.overrideLevels)
	if err != nil {
		return err
	}

	for i, overriderID := range chain {
		level := i + 1
		commissionType, ok := types[level]
		if !ok {
			break
		}
		if err := s.overrideLine(ctx, d, m, originSnap, overriderID, source, level, commissionType, persist, gap); err != nil {
			return err
		}
	}
	return nil
}

func (s *CommissionService) officeOverrides(
	ctx context.Context,
	d deal.Deal,
	m Measures,
	originSnap snapshot.Snapshot,
	persist func(commission.Commission) error,
	gap func(string, ...any),
) error {
	if d.OfficeID() == nil {
		return nil
	}

	leaders, err := s.leaders.LeadersForOffice(ctx, *d.OfficeID(), d.CloseDate())
	if err != nil {
		gap("office %s leadership unresolved: %v", *d.OfficeID(), err)
		return nil
	}

	seats := []struct {
		personID       *uuid.UUID
		level          int
		commissionType commission.Type
	}{
		{leaders.AD, 1, commission.TypeOverrideOfficeAD},
		{leaders.Regional, 2, commission.TypeOverrideOfficeRegional},
		{leaders.Divisional, 3, commission.TypeOverrideOfficeDiv},
		{leaders.VP, 4, commission.TypeOverrideOfficeVP},
	}
	for _, seat := range seats {
		if seat.personID == nil {
			continue
		}
		if err := s.overrideLine(ctx, d, m, originSnap, *seat.personID, payplan.OverrideOfficeHierarchy, seat.level, seat.commissionType, persist, gap); err != nil {
			return err
		}
	}
	return nil
}

// overrideLine matches the overriding person's own plan at one
// (source, level), with conditions read from the origin snapshot.
func (s *CommissionService) overrideLine(
	ctx context.Context,
	d deal.Deal,
	m Measures,
	originSnap snapshot.Snapshot,
	overriderID uuid.UUID,
	source payplan.OverrideSource,
	level int,
	commissionType commission.Type,
	persist func(commission.Commission) error,
	gap func(string, ...any),
) error {
	overrider, err := s.persons.GetByID(ctx, overriderID)
	if err != nil {
		if errors.Is(err, person.ErrNotFound) {
			gap("%s override level %d: person %s missing", source, level, overriderID)
			return nil
		}
		return err
	}
	if overrider.PayPlanID() == nil {
		gap("%s override level %d: person %s has no pay plan", source, level, overriderID)
		return nil
	}

	plan, err := s.plans.GetByID(ctx, *overrider.PayPlanID())
	if err != nil {
		if errors.Is(err, payplan.ErrNotFound) {
			gap("%s override level %d: pay plan %s missing", source, level, *overrider.PayPlanID())
			return nil
		}
		return err
	}

	rules := MatchOverrideRules(plan, source, level, d.DealType(), originSnap, m)
	if len(rules) == 0 {
		return nil
	}

	return persist(buildItem(d, overriderID, commissionType, plan, rules, originSnap, m))
}

func (s *CommissionService) planForSnapshot(
	ctx context.Context,
	snap snapshot.Snapshot,
	gap func(string, ...any),
) (payplan.PayPlan, bool, error) {
	if snap.PayPlanID == nil {
		gap("person %s has no pay plan", snap.PersonID)
		return payplan.PayPlan{}, false, nil
	}
	plan, err := s.plans.GetByID(ctx, *snap.PayPlanID)
	if err != nil {
		if errors.Is(err, payplan.ErrNotFound) {
			gap("pay plan %s missing for person %s", *snap.PayPlanID, snap.PersonID)
			return payplan.PayPlan{}, false, nil
		}
		return payplan.PayPlan{}, false, err
	}
	return plan, true, nil
}

func buildItem(
	d deal.Deal,
	personID uuid.UUID,
	commissionType commission.Type,
	plan payplan.PayPlan,
	rules []payplan.Rule,
	snap snapshot.Snapshot,
	m Measures,
) commission.Commission {
	total := decimal.Zero
	matched := make([]commission.MatchedRule, 0, len(rules))
	for _, r := range rules {
		result, formula := applyRule(r, m)
		total = total.Add(result)
		matched = append(matched, commission.MatchedRule{
			RuleID:     r.ID,
			CalcMethod: string(r.CalcMethod),
			RuleAmount: r.Amount,
			Formula:    formula,
			Result:     result,
		})
	}

	snapID := snap.ID
	planID := plan.ID()
	details := commission.CalcDetails{
		SnapshotID:   &snapID,
		PayPlanID:    &planID,
		MatchedRules: matched,
		Inputs: commission.Inputs{
			SystemSizeKw: m.SystemSizeKw,
			PricePerWatt: m.PricePerWatt,
			DealValue:    m.DealValue,
		},
	}
	if len(rules) > 1 {
		details.Notes = append(details.Notes,
			fmt.Sprintf("AmbiguousConfiguration: %d rules matched and stacked", len(rules)))
	}

	return commission.New(d.ID(), personID, commissionType, total, details)
}

func applyRule(r payplan.Rule, m Measures) (decimal.Decimal, string) {
	switch r.CalcMethod {
	case payplan.CalcFlatPerKw:
		return r.Amount.Mul(m.SystemSizeKw),
			fmt.Sprintf("%s per kW x %s kW", r.Amount, m.SystemSizeKw)
	case payplan.CalcPercentageOfDeal:
		return r.Amount.Div(decimal.NewFromInt(100)).Mul(m.DealValue),
			fmt.Sprintf("%s%% of %s", r.Amount, m.DealValue)
	case payplan.CalcFlatFee:
		return r.Amount, "flat fee"
	default:
		return decimal.Zero, fmt.Sprintf("unknown calc method %s", r.CalcMethod)
	}
}

func discardVoided(items []commission.Commission) []commission.Commission {
	out := make([]commission.Commission, 0, len(items))
	for _, c := range items {
		if c.Status() == commission.StatusVoid {
			continue
		}
		out = append(out, c)
	}
	return out
}
