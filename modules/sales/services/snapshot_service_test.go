package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/voltify-hq/voltify-sdk/modules/org/domain/aggregates/person"
	"github.com/voltify-hq/voltify-sdk/modules/org/domain/entities/location"
)

func TestSnapshotService_CreatesOncePerPersonAndDate(t *testing.T) {
	f := newFixture()

	officeID := uuid.New()
	f.locations.offices[officeID] = location.Office{ID: officeID, Name: "Phoenix"}

	manager := f.seedRep("Manager", nil, nil)
	rep := f.persons.put(person.Hydrate(
		uuid.New(), "Rep", roleOf("setter", 1), &officeID, ptr(manager.ID()), nil,
		nil, ptr(person.TierVeteran), person.StatusActive, time.Now().UTC(), time.Now().UTC(),
	))
	teamID := uuid.New()
	f.teams.teamsByPerson[rep.ID()] = []uuid.UUID{teamID}

	ctx := context.Background()
	when := time.Date(2026, time.April, 10, 17, 45, 3, 0, time.FixedZone("MST", -7*3600))

	snap, err := f.snapSvc.GetOrCreateSnapshot(ctx, rep.ID(), when)
	require.NoError(t, err)
	require.Equal(t, rep.ID(), snap.PersonID)
	// Timestamps normalize to the UTC calendar date.
	require.Equal(t, time.Date(2026, time.April, 11, 0, 0, 0, 0, time.UTC), snap.SnapshotDate)
	require.Equal(t, "setter", snap.RoleName)
	require.Equal(t, "Phoenix", *snap.OfficeName)
	require.Equal(t, "Manager", *snap.ReportsToName)
	require.Equal(t, "Veteran", *snap.SetterTier)
	require.Equal(t, []uuid.UUID{teamID}, snap.TeamIDs)

	// A second call on the same date reuses the frozen row even after the
	// live row changed.
	moved := rep.Transfer(ptr(uuid.New()))
	require.NoError(t, f.persons.Update(ctx, moved))

	again, err := f.snapSvc.GetOrCreateSnapshot(ctx, rep.ID(), when)
	require.NoError(t, err)
	require.Equal(t, snap.ID, again.ID)
	require.Equal(t, officeID, *again.OfficeID)
	require.Equal(t, 1, f.snapshots.creates)
}

func TestSnapshotService_DifferentDatesDifferentRows(t *testing.T) {
	f := newFixture()
	rep := f.seedRep("Rep", nil, nil)

	ctx := context.Background()
	first, err := f.snapSvc.GetOrCreateSnapshot(ctx, rep.ID(), time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	second, err := f.snapSvc.GetOrCreateSnapshot(ctx, rep.ID(), time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)
	require.Equal(t, 2, f.snapshots.creates)
}

func TestSnapshotService_MissingPersonFails(t *testing.T) {
	f := newFixture()

	_, err := f.snapSvc.GetOrCreateSnapshot(context.Background(), uuid.New(), time.Now())
	require.ErrorIs(t, err, person.ErrNotFound)
}

func TestSnapshotService_DanglingReferencesKeepIDsDropNames(t *testing.T) {
	f := newFixture()

	ghostManager := uuid.New()
	ghostOffice := uuid.New()
	rep := f.persons.put(person.Hydrate(
		uuid.New(), "Rep", roleOf("setter", 1), &ghostOffice, &ghostManager, nil,
		nil, nil, person.StatusActive, time.Now().UTC(), time.Now().UTC(),
	))

	snap, err := f.snapSvc.GetOrCreateSnapshot(context.Background(), rep.ID(), time.Now())
	require.NoError(t, err)
	require.Equal(t, ghostOffice, *snap.OfficeID)
	require.Nil(t, snap.OfficeName)
	require.Equal(t, ghostManager, *snap.ReportsToID)
	require.Nil(t, snap.ReportsToName)
}

func TestSnapshotService_LosingTheRaceRereads(t *testing.T) {
	f := newFixture()
	rep := f.seedRep("Rep", nil, nil)

	ctx := context.Background()
	when := time.Date(2026, time.May, 5, 0, 0, 0, 0, time.UTC)

	// Simulate a concurrent writer landing first.
	winner, err := f.snapSvc.GetOrCreateSnapshot(ctx, rep.ID(), when)
	require.NoError(t, err)

	// A direct Create with the same key loses.
	_, err = f.snapshots.Create(ctx, winner)
	require.Error(t, err)

	got, err := f.snapSvc.GetOrCreateSnapshot(ctx, rep.ID(), when)
	require.NoError(t, err)
	require.Equal(t, winner.ID, got.ID)
}
