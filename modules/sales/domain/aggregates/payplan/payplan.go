package payplan

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/voltify-hq/voltify-sdk/modules/sales/domain/aggregates/deal"
)

var ErrNotFound = errors.New("pay plan not found")

type RuleType string

const (
	RuleSetter          RuleType = "setter"
	RuleCloser          RuleType = "closer"
	RuleSelfGen         RuleType = "self_gen"
	RuleOverride        RuleType = "override"
	RuleRecruitingBonus RuleType = "recruiting_bonus"
	RuleDraw            RuleType = "draw"
)

type CalcMethod string

const (
	CalcFlatPerKw        CalcMethod = "flat_per_kw"
	CalcPercentageOfDeal CalcMethod = "percentage_of_deal"
	CalcFlatFee          CalcMethod = "flat_fee"
)

type OverrideSource string

const (
	OverrideReportsTo       OverrideSource = "reports_to"
	OverrideRecruitedBy     OverrideSource = "recruited_by"
	OverrideOfficeHierarchy OverrideSource = "office_hierarchy"
)

// Rule is one compensation line of a pay plan. Rules are soft-deactivated
// rather than deleted so historical commissions keep a valid rule reference.
type Rule struct {
	ID              uuid.UUID
	RuleType        RuleType
	CalcMethod      CalcMethod
	Amount          decimal.Decimal
	AppliesToRoleID *uuid.UUID
	DealTypes       []deal.Type
	OverrideLevel   *int
	OverrideSource  *OverrideSource
	Conditions      Conditions
	SortOrder       int
	IsActive        bool
}

// AppliesToDealType treats a nil DealTypes list as a wildcard.
func (r Rule) AppliesToDealType(t deal.Type) bool {
	if len(r.DealTypes) == 0 {
		return true
	}
	for _, dt := range r.DealTypes {
		if dt == t {
			return true
		}
	}
	return false
}

// PayPlan is an ordered set of commission rules assignable to people.
type PayPlan struct {
	id        uuid.UUID
	name      string
	rules     []Rule
	isActive  bool
	createdAt time.Time
	updatedAt time.Time
}

func New(name string, rules []Rule) PayPlan {
	return PayPlan{
		name:     name,
		rules:    rules,
		isActive: true,
	}
}

func Hydrate(id uuid.UUID, name string, rules []Rule, isActive bool, createdAt, updatedAt time.Time) PayPlan {
	return PayPlan{
		id:        id,
		name:      name,
		rules:     rules,
		isActive:  isActive,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (p PayPlan) ID() uuid.UUID        { return p.id }
func (p PayPlan) Name() string         { return p.name }
func (p PayPlan) Rules() []Rule        { return p.rules }
func (p PayPlan) IsActive() bool       { return p.isActive }
func (p PayPlan) CreatedAt() time.Time { return p.createdAt }
func (p PayPlan) UpdatedAt() time.Time { return p.updatedAt }
func (p PayPlan) IsZero() bool         { return p.id == uuid.Nil && p.name == "" }
