package services

import (
	"github.com/google/uuid"

	"github.com/voltify-hq/voltify-sdk/modules/org/domain/entities/scope"
)

// Target descriptors carry only the foreign keys the gate needs, so other
// modules can check visibility without handing their aggregates to org.

type PersonTarget struct {
	ID       uuid.UUID
	OfficeID *uuid.UUID
}

type DealTarget struct {
	SetterID uuid.UUID
	CloserID uuid.UUID
	OfficeID *uuid.UUID
}

type RecruitTarget struct {
	ID             uuid.UUID
	RecruiterID    uuid.UUID
	TargetOfficeID *uuid.UUID
}

type CommissionTarget struct {
	PersonID          uuid.UUID
	PersonOfficeID    *uuid.UUID
	PersonReportsToID *uuid.UUID
	DealSetterID      uuid.UUID
	DealCloserID      uuid.UUID
}

// VisibilityService answers can-view / can-manage questions as pure
// predicates. Denial is false, never an error: the gate has no failure mode
// of its own.
type VisibilityService struct{}

func NewVisibilityService() *VisibilityService {
	return &VisibilityService{}
}

func (s *VisibilityService) CanViewPerson(actorID uuid.UUID, sc scope.Scope, target PersonTarget) bool {
	if actorID == target.ID {
		return true
	}
	return s.allows(actorID, sc, target.ID, target.OfficeID)
}

// CanManagePerson currently shares the view rules; it exists as a separate
// gate so manage policy can diverge without touching call sites.
func (s *VisibilityService) CanManagePerson(actorID uuid.UUID, sc scope.Scope, target PersonTarget) bool {
	return s.CanViewPerson(actorID, sc, target)
}

func (s *VisibilityService) CanSendDocumentTo(actorID uuid.UUID, sc scope.Scope, target PersonTarget) bool {
	return s.CanViewPerson(actorID, sc, target)
}

func (s *VisibilityService) CanViewDeal(actorID uuid.UUID, sc scope.Scope, target DealTarget) bool {
	if actorID == target.SetterID || actorID == target.CloserID {
		return true
	}
	switch v := sc.(type) {
	case scope.All:
		return true
	case scope.Region:
		return scope.ContainsOffice(v.OfficeIDs, target.OfficeID)
	case scope.Office:
		return scope.ContainsOffice(v.OfficeIDs, target.OfficeID)
	case scope.Team:
		return scope.ContainsPerson(v.PersonIDs, target.SetterID) ||
			scope.ContainsPerson(v.PersonIDs, target.CloserID)
	case scope.Self:
		return false
	default:
		return false
	}
}

// CanViewRecruit keys on the office the candidate targets. A team scope
// without an office list falls back to nothing here because the recruit
// carries no person-level key the team set could match.
func (s *VisibilityService) CanViewRecruit(actorID uuid.UUID, sc scope.Scope, target RecruitTarget) bool {
	if actorID == target.RecruiterID {
		return true
	}
	switch v := sc.(type) {
	case scope.All:
		return true
	case scope.Region:
		return scope.ContainsOffice(v.OfficeIDs, target.TargetOfficeID)
	case scope.Office:
		return scope.ContainsOffice(v.OfficeIDs, target.TargetOfficeID)
	case scope.Team:
		return scope.ContainsOffice(v.OfficeIDs, target.TargetOfficeID)
	case scope.Self:
		return false
	default:
		return false
	}
}

// CanViewCommission applies two carve-outs before the hierarchy check:
// the deal's closer may see the setter's line item on the same deal
// (transparency), and the recipient's direct manager may always see it.
func (s *VisibilityService) CanViewCommission(actorID uuid.UUID, sc scope.Scope, target CommissionTarget) bool {
	if actorID == target.PersonID {
		return true
	}
	if actorID == target.DealCloserID && target.PersonID == target.DealSetterID {
		return true
	}
	if target.PersonReportsToID != nil && *target.PersonReportsToID == actorID {
		return true
	}
	return s.allows(actorID, sc, target.PersonID, target.PersonOfficeID)
}

func (s *VisibilityService) allows(actorID uuid.UUID, sc scope.Scope, targetPersonID uuid.UUID, targetOfficeID *uuid.UUID) bool {
	switch v := sc.(type) {
	case scope.All:
		return true
	case scope.Region:
		return scope.ContainsOffice(v.OfficeIDs, targetOfficeID)
	case scope.Office:
		return scope.ContainsOffice(v.OfficeIDs, targetOfficeID)
	case scope.Team:
		return scope.ContainsPerson(v.PersonIDs, targetPersonID)
	case scope.Self:
		return v.PersonID == targetPersonID
	default:
		// Unknown scope shapes deny. Fail closed.
		return false
	}
}
