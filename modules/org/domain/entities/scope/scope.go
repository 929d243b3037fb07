package scope

import "github.com/google/uuid"

// Scope is the visibility envelope computed once per actor and treated as
// immutable for the rest of the request. It is a closed sum: the visibility
// gate switches exhaustively over the concrete types below.
type Scope interface {
	isScope()
	Kind() Kind
}

type Kind string

const (
	KindAll    Kind = "all"
	KindRegion Kind = "region"
	KindOffice Kind = "office"
	KindTeam   Kind = "team"
	KindSelf   Kind = "self"
)

// All sees the whole organization.
type All struct{}

func (All) isScope()   {}
func (All) Kind() Kind { return KindAll }

// Region sees every office of the actor's region.
type Region struct {
	OfficeIDs []uuid.UUID
}

func (Region) isScope()   {}
func (Region) Kind() Kind { return KindRegion }

// Office sees the actor's own office.
type Office struct {
	OfficeIDs []uuid.UUID
}

func (Office) isScope()   {}
func (Office) Kind() Kind { return KindOffice }

// Team sees an explicit set of people, plus the offices implied by the team
// for office-keyed entities such as recruits.
type Team struct {
	PersonIDs []uuid.UUID
	OfficeIDs []uuid.UUID
}

func (Team) isScope()   {}
func (Team) Kind() Kind { return KindTeam }

// Self sees only the actor. This is the fail-closed default.
type Self struct {
	PersonID uuid.UUID
}

func (Self) isScope()   {}
func (Self) Kind() Kind { return KindSelf }

func ContainsOffice(ids []uuid.UUID, officeID *uuid.UUID) bool {
	if officeID == nil {
		return false
	}
	for _, id := range ids {
		if id == *officeID {
			return true
		}
	}
	return false
}

func ContainsPerson(ids []uuid.UUID, personID uuid.UUID) bool {
	for _, id := range ids {
		if id == personID {
			return true
		}
	}
	return false
}
