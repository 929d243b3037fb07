package services

import (
	"context"
	"errors"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/voltify-hq/voltify-sdk/modules/org/domain/aggregates/leadership"
	"github.com/voltify-hq/voltify-sdk/modules/org/domain/aggregates/person"
	"github.com/voltify-hq/voltify-sdk/modules/org/domain/entities/location"
	"github.com/voltify-hq/voltify-sdk/pkg/composables"
	"github.com/voltify-hq/voltify-sdk/pkg/eventbus"
)

// Leaders is the set of office-hierarchy leaders in effect for one office on
// one date. Absent links (office without region, vacant seat) come back nil.
type Leaders struct {
	AD         *uuid.UUID
	Regional   *uuid.UUID
	Divisional *uuid.UUID
	VP         *uuid.UUID
}

type TransitionedEvent struct {
	RoleType   leadership.RoleType
	TargetKind leadership.TargetKind
	TargetID   uuid.UUID
	PersonID   uuid.UUID
	From       time.Time
}

type LeadershipService struct {
	assignments leadership.Repository
	persons     person.Repository
	locations   location.Repository
	publisher   eventbus.EventBus
}

func NewLeadershipService(
	assignments leadership.Repository,
	persons person.Repository,
	locations location.Repository,
	publisher eventbus.EventBus,
) *LeadershipService {
	return &LeadershipService{
		assignments: assignments,
		persons:     persons,
		locations:   locations,
		publisher:   publisher,
	}
}

// TransitionLeadership ends the open assignment for (roleType, target) the
// day before effectiveFrom and opens a new one for newPersonID, as a single
// transaction. A failure after the old assignment was ended surfaces as
// ErrLeadershipTransitionRetry so callers know the target may be vacant.
func (s *LeadershipService) TransitionLeadership(
	ctx context.Context,
	roleType leadership.RoleType,
	targetKind leadership.TargetKind,
	targetID uuid.UUID,
	newPersonID uuid.UUID,
	effectiveFrom time.Time,
) (leadership.Assignment, error) {
	if err := authorizeOrg(ctx, LeadershipAuthzObject, "update"); err != nil {
		return leadership.Assignment{}, err
	}

	leader, err := s.persons.GetByID(ctx, newPersonID)
	if err != nil {
		return leadership.Assignment{}, err
	}
	if leader.Role().Level < leadership.MinLevelFor(roleType) {
		return leadership.Assignment{}, ErrLeaderLevelTooLow
	}

	return composables.InTxResult(ctx, func(txCtx context.Context) (leadership.Assignment, error) {
		ended := false

		open, err := s.assignments.OpenForTarget(txCtx, roleType, targetKind, targetID)
		switch {
		case err == nil:
			if err := s.assignments.Update(txCtx, open.End(effectiveFrom)); err != nil {
				return leadership.Assignment{}, gerrors.Wrap(err, "failed to end open assignment")
			}
			ended = true
		case errors.Is(err, leadership.ErrNotFound):
			// First assignment for this target.
		default:
			return leadership.Assignment{}, err
		}

		created, err := s.assignments.Create(txCtx, leadership.New(roleType, targetKind, targetID, newPersonID, effectiveFrom))
		if err != nil {
			if ended {
				return leadership.Assignment{}, gerrors.Wrap(ErrLeadershipTransitionRetry, err.Error())
			}
			return leadership.Assignment{}, err
		}

		s.publisher.Publish(TransitionedEvent{
			RoleType:   roleType,
			TargetKind: targetKind,
			TargetID:   targetID,
			PersonID:   newPersonID,
			From:       effectiveFrom,
		})
		return created, nil
	})
}

// ActiveAssignments lists every assignment whose interval covers the date.
func (s *LeadershipService) ActiveAssignments(ctx context.Context, date time.Time) ([]leadership.Assignment, error) {
	return s.assignments.ListActive(ctx, date)
}

// LeadersForOffice resolves the office's location chain and returns the
// leaders whose assignment intervals cover the date: the AD on the office,
// the regional on the region, the divisional and VP on the division.
func (s *LeadershipService) LeadersForOffice(ctx context.Context, officeID uuid.UUID, date time.Time) (Leaders, error) {
	chain, err := s.locations.ResolveChain(ctx, officeID)
	if err != nil {
		return Leaders{}, err
	}

	var leaders Leaders
	leaders.AD, err = s.activePerson(ctx, leadership.RoleTypeAD, leadership.TargetOffice, chain.Office.ID, date)
	if err != nil {
		return Leaders{}, err
	}

	if chain.Region != nil {
		leaders.Regional, err = s.activePerson(ctx, leadership.RoleTypeRegional, leadership.TargetRegion, chain.Region.ID, date)
		if err != nil {
			return Leaders{}, err
		}
	}

	if chain.Division != nil {
		leaders.Divisional, err = s.activePerson(ctx, leadership.RoleTypeDivisional, leadership.TargetDivision, chain.Division.ID, date)
		if err != nil {
			return Leaders{}, err
		}
		leaders.VP, err = s.activePerson(ctx, leadership.RoleTypeVP, leadership.TargetDivision, chain.Division.ID, date)
		if err != nil {
			return Leaders{}, err
		}
	}

	return leaders, nil
}

func (s *LeadershipService) activePerson(
	ctx context.Context,
	roleType leadership.RoleType,
	targetKind leadership.TargetKind,
	targetID uuid.UUID,
	date time.Time,
) (*uuid.UUID, error) {
	a, err := s.assignments.ActiveForTarget(ctx, roleType, targetKind, targetID, date)
	if err != nil {
		if errors.Is(err, leadership.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	id := a.PersonID()
	return &id, nil
}
