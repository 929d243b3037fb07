package services

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/voltify-hq/voltify-sdk/modules/sales/domain/aggregates/deal"
	"github.com/voltify-hq/voltify-sdk/modules/sales/domain/aggregates/payplan"
	"github.com/voltify-hq/voltify-sdk/modules/sales/domain/entities/snapshot"
)

// Measures are the deal numbers rule conditions and formulas consume.
type Measures struct {
	SystemSizeKw decimal.Decimal
	PricePerWatt decimal.Decimal
	DealValue    decimal.Decimal
}

func measuresOf(d deal.Deal) Measures {
	return Measures{
		SystemSizeKw: d.SystemSizeKw(),
		PricePerWatt: d.PricePerWatt(),
		DealValue:    d.DealValue(),
	}
}

// MatchRules returns every active rule of the plan that survives the filter
// chain, ordered by sortOrder. All survivors apply; when more than one
// matches the amounts stack, and the caller flags the configuration in the
// audit trail rather than picking a winner here.
func MatchRules(plan payplan.PayPlan, ruleType payplan.RuleType, dealType deal.Type, snap snapshot.Snapshot, m Measures) []payplan.Rule {
	var out []payplan.Rule
	for _, r := range plan.Rules() {
		if !r.IsActive {
			continue
		}
		if r.RuleType != ruleType {
			continue
		}
		if !r.AppliesToDealType(dealType) {
			continue
		}
		if r.AppliesToRoleID != nil && *r.AppliesToRoleID != snap.RoleID {
			continue
		}
		if !conditionsMatch(r.Conditions, snap, m) {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out
}

// MatchOverrideRules narrows override rules to one source and level before
// running the shared filter chain. Conditions are still evaluated against
// the originating seller's snapshot, not the overriding person's.
func MatchOverrideRules(
	plan payplan.PayPlan,
	source payplan.OverrideSource,
	level int,
	dealType deal.Type,
	snap snapshot.Snapshot,
	m Measures,
) []payplan.Rule {
	matched := MatchRules(plan, payplan.RuleOverride, dealType, snap, m)
	var out []payplan.Rule
	for _, r := range matched {
		if r.OverrideSource == nil || *r.OverrideSource != source {
			continue
		}
		if r.OverrideLevel == nil || *r.OverrideLevel != level {
			continue
		}
		out = append(out, r)
	}
	return out
}

func conditionsMatch(c payplan.Conditions, snap snapshot.Snapshot, m Measures) bool {
	if len(c.SetterTiers) > 0 {
		if snap.SetterTier == nil {
			return false
		}
		found := false
		for _, tier := range c.SetterTiers {
			if tier == *snap.SetterTier {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if c.MinKw != nil && m.SystemSizeKw.LessThan(*c.MinKw) {
		return false
	}
	if c.PpwFloor != nil && m.PricePerWatt.LessThan(*c.PpwFloor) {
		return false
	}
	return true
}
