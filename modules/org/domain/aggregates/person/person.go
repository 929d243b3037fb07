package person

import (
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/voltify-hq/voltify-sdk/modules/org/domain/entities/role"
)

var ErrNotFound = errors.New("person not found")

type Status string

const (
	StatusOnboarding Status = "onboarding"
	StatusActive     Status = "active"
	StatusInactive   Status = "inactive"
	StatusTerminated Status = "terminated"
)

// SetterTier ranks setters for commission-rule conditions.
type SetterTier string

const (
	TierRookie   SetterTier = "Rookie"
	TierVeteran  SetterTier = "Veteran"
	TierTeamLead SetterTier = "TeamLead"
)

// Person is a member of the sales organization. The reports-to and
// recruited-by links are independent chains: a rep may be managed by one
// person and have been recruited by another.
type Person struct {
	id            uuid.UUID
	displayName   string
	role          role.Role
	officeID      *uuid.UUID
	reportsToID   *uuid.UUID
	recruitedByID *uuid.UUID
	payPlanID     *uuid.UUID
	setterTier    *SetterTier
	status        Status
	createdAt     time.Time
	updatedAt     time.Time
}

func New(displayName string, r role.Role) Person {
	return Person{
		displayName: strings.TrimSpace(displayName),
		role:        r,
		status:      StatusOnboarding,
	}
}

func Hydrate(
	id uuid.UUID,
	displayName string,
	r role.Role,
	officeID *uuid.UUID,
	reportsToID *uuid.UUID,
	recruitedByID *uuid.UUID,
	payPlanID *uuid.UUID,
	setterTier *SetterTier,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
) Person {
	return Person{
		id:            id,
		displayName:   strings.TrimSpace(displayName),
		role:          r,
		officeID:      officeID,
		reportsToID:   reportsToID,
		recruitedByID: recruitedByID,
		payPlanID:     payPlanID,
		setterTier:    setterTier,
		status:        status,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (p Person) ID() uuid.UUID             { return p.id }
func (p Person) DisplayName() string       { return p.displayName }
func (p Person) Role() role.Role           { return p.role }
func (p Person) OfficeID() *uuid.UUID      { return p.officeID }
func (p Person) ReportsToID() *uuid.UUID   { return p.reportsToID }
func (p Person) RecruitedByID() *uuid.UUID { return p.recruitedByID }
func (p Person) PayPlanID() *uuid.UUID     { return p.payPlanID }
func (p Person) SetterTier() *SetterTier   { return p.setterTier }
func (p Person) Status() Status            { return p.status }
func (p Person) CreatedAt() time.Time      { return p.createdAt }
func (p Person) UpdatedAt() time.Time      { return p.updatedAt }
func (p Person) IsZero() bool              { return p.id == uuid.Nil && p.displayName == "" }

func (p Person) Activate() Person {
	p.status = StatusActive
	return p
}

// Transfer moves the person to another office, clearing nothing else. Pass
// nil to detach.
func (p Person) Transfer(officeID *uuid.UUID) Person {
	p.officeID = officeID
	return p
}

func (p Person) AssignManager(managerID *uuid.UUID) Person {
	p.reportsToID = managerID
	return p
}

func (p Person) AssignRecruiter(recruiterID *uuid.UUID) Person {
	p.recruitedByID = recruiterID
	return p
}

func (p Person) ChangeRole(r role.Role) Person {
	p.role = r
	return p
}

func (p Person) AssignPayPlan(payPlanID *uuid.UUID) Person {
	p.payPlanID = payPlanID
	return p
}

func (p Person) SetSetterTier(tier *SetterTier) Person {
	p.setterTier = tier
	return p
}

// Terminate soft-retires the person. Rows are never deleted: historical
// commissions keep pointing at them.
func (p Person) Terminate() Person {
	p.status = StatusTerminated
	return p
}
