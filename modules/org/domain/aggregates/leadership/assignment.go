package leadership

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("leadership assignment not found")

type RoleType string

const (
	RoleTypeAD         RoleType = "ad"
	RoleTypeRegional   RoleType = "regional"
	RoleTypeDivisional RoleType = "divisional"
	RoleTypeVP         RoleType = "vp"
)

type TargetKind string

const (
	TargetOffice   TargetKind = "office"
	TargetRegion   TargetKind = "region"
	TargetDivision TargetKind = "division"
)

// MinLevelFor returns the minimum role level a person must hold to be
// assigned the given leadership role. Current policy: team lead >= 2 is
// enforced at team creation, the rest here.
func MinLevelFor(roleType RoleType) int {
	switch roleType {
	case RoleTypeAD:
		return 3
	case RoleTypeRegional:
		return 4
	case RoleTypeDivisional:
		return 5
	case RoleTypeVP:
		return 6
	default:
		return 0
	}
}

// Assignment is a time-bounded leadership record. At most one open
// assignment (nil effectiveTo) exists per (roleType, target); the
// transition workflow maintains that, while readers always select by
// interval containment instead of trusting it.
type Assignment struct {
	id            uuid.UUID
	roleType      RoleType
	targetKind    TargetKind
	targetID      uuid.UUID
	personID      uuid.UUID
	effectiveFrom time.Time
	effectiveTo   *time.Time
	createdAt     time.Time
}

func New(roleType RoleType, targetKind TargetKind, targetID, personID uuid.UUID, effectiveFrom time.Time) Assignment {
	return Assignment{
		roleType:      roleType,
		targetKind:    targetKind,
		targetID:      targetID,
		personID:      personID,
		effectiveFrom: dateOnly(effectiveFrom),
	}
}

func Hydrate(
	id uuid.UUID,
	roleType RoleType,
	targetKind TargetKind,
	targetID uuid.UUID,
	personID uuid.UUID,
	effectiveFrom time.Time,
	effectiveTo *time.Time,
	createdAt time.Time,
) Assignment {
	return Assignment{
		id:            id,
		roleType:      roleType,
		targetKind:    targetKind,
		targetID:      targetID,
		personID:      personID,
		effectiveFrom: effectiveFrom,
		effectiveTo:   effectiveTo,
		createdAt:     createdAt,
	}
}

func (a Assignment) ID() uuid.UUID            { return a.id }
func (a Assignment) RoleType() RoleType       { return a.roleType }
func (a Assignment) TargetKind() TargetKind   { return a.targetKind }
func (a Assignment) TargetID() uuid.UUID      { return a.targetID }
func (a Assignment) PersonID() uuid.UUID      { return a.personID }
func (a Assignment) EffectiveFrom() time.Time { return a.effectiveFrom }
func (a Assignment) EffectiveTo() *time.Time  { return a.effectiveTo }
func (a Assignment) CreatedAt() time.Time     { return a.createdAt }
func (a Assignment) IsOpen() bool             { return a.effectiveTo == nil }

// Covers reports whether the assignment interval contains the given date.
// Both bounds are inclusive.
func (a Assignment) Covers(d time.Time) bool {
	d = dateOnly(d)
	if d.Before(dateOnly(a.effectiveFrom)) {
		return false
	}
	if a.effectiveTo == nil {
		return true
	}
	return !d.After(dateOnly(*a.effectiveTo))
}

// End closes the assignment the day before the handover date.
func (a Assignment) End(handover time.Time) Assignment {
	to := dateOnly(handover).AddDate(0, 0, -1)
	a.effectiveTo = &to
	return a
}

func dateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
