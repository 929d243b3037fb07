package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/voltify-hq/voltify-sdk/modules/org/domain/aggregates/person"
	"github.com/voltify-hq/voltify-sdk/modules/org/domain/entities/location"
	"github.com/voltify-hq/voltify-sdk/modules/org/domain/entities/scope"
	"github.com/voltify-hq/voltify-sdk/modules/org/permissions"
)

// ScopeService computes the visibility envelope for an actor. The result is
// computed once per request and never recomputed mid-request: if the org
// graph changes concurrently, the scope stays a snapshot-in-time of the
// authorization decision.
type ScopeService struct {
	persons   person.Repository
	locations location.Repository
}

func NewScopeService(persons person.Repository, locations location.Repository) *ScopeService {
	return &ScopeService{
		persons:   persons,
		locations: locations,
	}
}

// ResolveScope checks the actor's permission set in priority order and
// returns the widest scope it grants. Permissions that cannot be honored
// (region manager without a region) fall through to the next tier; no match
// fails closed to Self.
func (s *ScopeService) ResolveScope(ctx context.Context, actorID uuid.UUID) (scope.Scope, error) {
	actor, err := s.persons.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	perms := actor.Role().Permissions

	if perms.Has(permissions.ViewAll) {
		scopeResolutions.WithLabelValues(string(scope.KindAll)).Inc()
		return scope.All{}, nil
	}

	if perms.Has(permissions.ManageRegion) && actor.OfficeID() != nil {
		officeIDs, err := s.regionOfficeIDs(ctx, *actor.OfficeID())
		if err != nil {
			return nil, err
		}
		if len(officeIDs) > 0 {
			scopeResolutions.WithLabelValues(string(scope.KindRegion)).Inc()
			return scope.Region{OfficeIDs: officeIDs}, nil
		}
	}

	if perms.Has(permissions.ManageOffice) && actor.OfficeID() != nil {
		scopeResolutions.WithLabelValues(string(scope.KindOffice)).Inc()
		return scope.Office{OfficeIDs: []uuid.UUID{*actor.OfficeID()}}, nil
	}

	if perms.Has(permissions.ManageTeam) {
		teamScope, err := s.teamScope(ctx, actor)
		if err != nil {
			return nil, err
		}
		scopeResolutions.WithLabelValues(string(scope.KindTeam)).Inc()
		return teamScope, nil
	}

	scopeResolutions.WithLabelValues(string(scope.KindSelf)).Inc()
	return scope.Self{PersonID: actorID}, nil
}

func (s *ScopeService) regionOfficeIDs(ctx context.Context, officeID uuid.UUID) ([]uuid.UUID, error) {
	office, err := s.locations.GetOffice(ctx, officeID)
	if err != nil {
		return nil, err
	}
	if office.RegionID == nil {
		return nil, nil
	}
	return s.locations.ListOfficeIDsByRegion(ctx, *office.RegionID)
}

// teamScope is intentionally broad per current policy: a team lead sees
// their direct reports plus everyone sharing their office.
func (s *ScopeService) teamScope(ctx context.Context, actor person.Person) (scope.Team, error) {
	personIDs := []uuid.UUID{actor.ID()}
	seen := map[uuid.UUID]struct{}{actor.ID(): {}}

	reports, err := s.persons.ListDirectReports(ctx, actor.ID())
	if err != nil {
		return scope.Team{}, err
	}
	for _, p := range reports {
		if _, ok := seen[p.ID()]; ok {
			continue
		}
		seen[p.ID()] = struct{}{}
		personIDs = append(personIDs, p.ID())
	}

	var officeIDs []uuid.UUID
	if actor.OfficeID() != nil {
		officeIDs = []uuid.UUID{*actor.OfficeID()}
		mates, err := s.persons.ListByOffice(ctx, *actor.OfficeID())
		if err != nil {
			return scope.Team{}, err
		}
		for _, p := range mates {
			if _, ok := seen[p.ID()]; ok {
				continue
			}
			seen[p.ID()] = struct{}{}
			personIDs = append(personIDs, p.ID())
		}
	}

	return scope.Team{PersonIDs: personIDs, OfficeIDs: officeIDs}, nil
}
