package commission

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("commission not found")
	ErrInvalidTransition = errors.New("invalid commission status transition")
)

type Type string

const (
	TypeSetter                 Type = "setter"
	TypeCloser                 Type = "closer"
	TypeSelfGen                Type = "self_gen"
	TypeOverrideReportsToL1    Type = "override_reports_to_l1"
	TypeOverrideReportsToL2    Type = "override_reports_to_l2"
	TypeOverrideRecruitedByL1  Type = "override_recruited_by_l1"
	TypeOverrideRecruitedByL2  Type = "override_recruited_by_l2"
	TypeOverrideOfficeAD       Type = "override_office_ad"
	TypeOverrideOfficeRegional Type = "override_office_regional"
	TypeOverrideOfficeDiv      Type = "override_office_divisional"
	TypeOverrideOfficeVP       Type = "override_office_vp"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusPaid     Status = "paid"
	StatusHeld     Status = "held"
	StatusVoid     Status = "void"
)

// MatchedRule records one pay plan rule that contributed to the amount.
// Multiple matches stack; every contributor is kept for the audit trail.
type MatchedRule struct {
	RuleID     uuid.UUID       `json:"rule_id"`
	CalcMethod string          `json:"calc_method"`
	RuleAmount decimal.Decimal `json:"rule_amount"`
	Formula    string          `json:"formula"`
	Result     decimal.Decimal `json:"result"`
}

// Inputs are the deal measures the formulas were evaluated against.
type Inputs struct {
	SystemSizeKw decimal.Decimal `json:"system_size_kw"`
	PricePerWatt decimal.Decimal `json:"price_per_watt"`
	DealValue    decimal.Decimal `json:"deal_value"`
}

// CalcDetails is the audit record of how the amount was computed. It must
// be enough to re-derive the number by hand months later.
type CalcDetails struct {
	SnapshotID   *uuid.UUID    `json:"snapshot_id,omitempty"`
	PayPlanID    *uuid.UUID    `json:"pay_plan_id,omitempty"`
	MatchedRules []MatchedRule `json:"matched_rules"`
	Inputs       Inputs        `json:"inputs"`
	Notes        []string      `json:"notes,omitempty"`
}

// Commission is one line item owed to one person for one deal. The
// (deal, person, type) triple is unique; stacked rule matches merge into a
// single line with every contributor listed in CalcDetails.
type Commission struct {
	id             uuid.UUID
	dealID         uuid.UUID
	personID       uuid.UUID
	commissionType Type
	amount         decimal.Decimal
	status         Status
	statusReason   *string
	calcDetails    CalcDetails
	createdAt      time.Time
	updatedAt      time.Time
}

func New(dealID, personID uuid.UUID, commissionType Type, amount decimal.Decimal, details CalcDetails) Commission {
	return Commission{
		dealID:         dealID,
		personID:       personID,
		commissionType: commissionType,
		amount:         amount,
		status:         StatusPending,
		calcDetails:    details,
	}
}

func Hydrate(
	id uuid.UUID,
	dealID, personID uuid.UUID,
	commissionType Type,
	amount decimal.Decimal,
	status Status,
	statusReason *string,
	details CalcDetails,
	createdAt, updatedAt time.Time,
) Commission {
	return Commission{
		id:             id,
		dealID:         dealID,
		personID:       personID,
		commissionType: commissionType,
		amount:         amount,
		status:         status,
		statusReason:   statusReason,
		calcDetails:    details,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (c Commission) ID() uuid.UUID           { return c.id }
func (c Commission) DealID() uuid.UUID       { return c.dealID }
func (c Commission) PersonID() uuid.UUID     { return c.personID }
func (c Commission) CommissionType() Type    { return c.commissionType }
func (c Commission) Amount() decimal.Decimal { return c.amount }
func (c Commission) Status() Status          { return c.status }
func (c Commission) StatusReason() *string   { return c.statusReason }
func (c Commission) CalcDetails() CalcDetails { return c.calcDetails }
func (c Commission) CreatedAt() time.Time    { return c.createdAt }
func (c Commission) UpdatedAt() time.Time    { return c.updatedAt }

// Approve accepts a pending or held line for payout.
func (c Commission) Approve() (Commission, error) {
	if c.status != StatusPending && c.status != StatusHeld {
		return Commission{}, errors.Wrapf(ErrInvalidTransition, "%s -> approved", c.status)
	}
	c.status = StatusApproved
	c.statusReason = nil
	return c, nil
}

// MarkPaid records the payout of an approved line.
func (c Commission) MarkPaid() (Commission, error) {
	if c.status != StatusApproved {
		return Commission{}, errors.Wrapf(ErrInvalidTransition, "%s -> paid", c.status)
	}
	c.status = StatusPaid
	return c, nil
}

// Hold parks a pending line, usually during a dispute.
func (c Commission) Hold(reason string) (Commission, error) {
	if c.status != StatusPending {
		return Commission{}, errors.Wrapf(ErrInvalidTransition, "%s -> held", c.status)
	}
	c.status = StatusHeld
	c.statusReason = &reason
	return c, nil
}

// Release puts a held line back into the pending queue.
func (c Commission) Release() (Commission, error) {
	if c.status != StatusHeld {
		return Commission{}, errors.Wrapf(ErrInvalidTransition, "%s -> pending", c.status)
	}
	c.status = StatusPending
	c.statusReason = nil
	return c, nil
}

// Void cancels a line that has not been approved or paid.
func (c Commission) Void(reason string) (Commission, error) {
	if c.status != StatusPending && c.status != StatusHeld {
		return Commission{}, errors.Wrapf(ErrInvalidTransition, "%s -> void", c.status)
	}
	c.status = StatusVoid
	c.statusReason = &reason
	return c, nil
}

// IsSettled reports whether the line has passed the point of recomputation.
func (c Commission) IsSettled() bool {
	return c.status == StatusApproved || c.status == StatusPaid
}
