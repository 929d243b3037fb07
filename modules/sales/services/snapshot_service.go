package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/voltify-hq/voltify-sdk/modules/org/domain/aggregates/person"
	"github.com/voltify-hq/voltify-sdk/modules/org/domain/entities/location"
	"github.com/voltify-hq/voltify-sdk/modules/org/domain/entities/team"
	"github.com/voltify-hq/voltify-sdk/modules/sales/domain/entities/snapshot"
	"github.com/voltify-hq/voltify-sdk/pkg/composables"
)

// SnapshotService lazily freezes a person's org position per calendar date.
// Creation captures the live row at call time, not the state that held on a
// past date; the resolver therefore snapshots at deal close, when the two
// coincide. Recomputing an old deal reuses the frozen row.
type SnapshotService struct {
	snapshots snapshot.Repository
	persons   person.Repository
	locations location.Repository
	teams     team.Repository
}

func NewSnapshotService(
	snapshots snapshot.Repository,
	persons person.Repository,
	locations location.Repository,
	teams team.Repository,
) *SnapshotService {
	return &SnapshotService{
		snapshots: snapshots,
		persons:   persons,
		locations: locations,
		teams:     teams,
	}
}

// GetOrCreateSnapshot is idempotent on (personID, date). When two callers
// race, the storage unique key picks a winner and the loser re-reads.
func (s *SnapshotService) GetOrCreateSnapshot(ctx context.Context, personID uuid.UUID, date time.Time) (snapshot.Snapshot, error) {
	date = snapshot.NormalizeDate(date)

	existing, err := s.snapshots.GetByPersonAndDate(ctx, personID, date)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, snapshot.ErrNotFound) {
		return snapshot.Snapshot{}, err
	}

	built, err := s.build(ctx, personID, date)
	if err != nil {
		return snapshot.Snapshot{}, err
	}

	created, err := s.snapshots.Create(ctx, built)
	if err != nil {
		if errors.Is(err, snapshot.ErrAlreadyExists) {
			// Lost the race. First writer wins.
			return s.snapshots.GetByPersonAndDate(ctx, personID, date)
		}
		return snapshot.Snapshot{}, err
	}

	snapshotsCreated.Inc()
	composables.UseLogger(ctx).
		WithField("person_id", personID).
		WithField("snapshot_date", date.Format("2006-01-02")).
		Info("created org snapshot")
	return created, nil
}

func (s *SnapshotService) build(ctx context.Context, personID uuid.UUID, date time.Time) (snapshot.Snapshot, error) {
	p, err := s.persons.GetByID(ctx, personID)
	if err != nil {
		return snapshot.Snapshot{}, err
	}

	snap := snapshot.Snapshot{
		PersonID:      personID,
		SnapshotDate:  date,
		RoleID:        p.Role().ID,
		RoleName:      p.Role().Name,
		RoleLevel:     p.Role().Level,
		OfficeID:      p.OfficeID(),
		ReportsToID:   p.ReportsToID(),
		RecruitedByID: p.RecruitedByID(),
		PayPlanID:     p.PayPlanID(),
	}
	if tier := p.SetterTier(); tier != nil {
		v := string(*tier)
		snap.SetterTier = &v
	}

	if p.OfficeID() != nil {
		office, err := s.locations.GetOffice(ctx, *p.OfficeID())
		switch {
		case err == nil:
			snap.OfficeName = &office.Name
		case errors.Is(err, location.ErrNotFound):
			// Dangling office reference; keep the id, drop the name.
		default:
			return snapshot.Snapshot{}, err
		}
	}

	snap.ReportsToName, err = s.personName(ctx, p.ReportsToID())
	if err != nil {
		return snapshot.Snapshot{}, err
	}
	snap.RecruitedByName, err = s.personName(ctx, p.RecruitedByID())
	if err != nil {
		return snapshot.Snapshot{}, err
	}

	snap.TeamIDs, err = s.teams.ListTeamIDsForPerson(ctx, personID)
	if err != nil {
		return snapshot.Snapshot{}, err
	}

	return snap, nil
}

func (s *SnapshotService) personName(ctx context.Context, id *uuid.UUID) (*string, error) {
	if id == nil {
		return nil, nil
	}
	p, err := s.persons.GetByID(ctx, *id)
	if err != nil {
		if errors.Is(err, person.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	name := p.DisplayName()
	return &name, nil
}
