package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/voltify-hq/voltify-sdk/modules/org/domain/aggregates/leadership"
	"github.com/voltify-hq/voltify-sdk/modules/org/domain/aggregates/person"
	"github.com/voltify-hq/voltify-sdk/modules/org/domain/entities/location"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newLeadershipFixture() (*LeadershipService, *memLeadershipRepo, *memPersonRepo, *memLocationRepo) {
	assignments := newMemLeadershipRepo()
	persons := newMemPersonRepo()
	locations := newMemLocationRepo()
	svc := NewLeadershipService(assignments, persons, locations, &stubPublisher{})
	return svc, assignments, persons, locations
}

func seedLeader(persons *memPersonRepo, level int) person.Person {
	return persons.put(person.Hydrate(
		uuid.New(), "leader", roleWithPerms("leader", level),
		nil, nil, nil, nil, nil, person.StatusActive, zeroTime(), zeroTime(),
	))
}

func TestLeadershipService_FirstAssignmentOpensInterval(t *testing.T) {
	svc, assignments, persons, _ := newLeadershipFixture()
	leader := seedLeader(persons, 3)
	officeID := uuid.New()

	created, err := svc.TransitionLeadership(
		context.Background(),
		leadership.RoleTypeAD, leadership.TargetOffice, officeID,
		leader.ID(), date(2026, time.March, 1),
	)
	require.NoError(t, err)
	require.True(t, created.IsOpen())
	require.Equal(t, leader.ID(), created.PersonID())

	open, err := assignments.OpenForTarget(context.Background(), leadership.RoleTypeAD, leadership.TargetOffice, officeID)
	require.NoError(t, err)
	require.Equal(t, created.ID(), open.ID())
}

func TestLeadershipService_TransitionEndsPredecessorDayBefore(t *testing.T) {
	svc, assignments, persons, _ := newLeadershipFixture()
	old := seedLeader(persons, 3)
	next := seedLeader(persons, 3)
	officeID := uuid.New()

	first, err := svc.TransitionLeadership(
		context.Background(),
		leadership.RoleTypeAD, leadership.TargetOffice, officeID,
		old.ID(), date(2026, time.January, 1),
	)
	require.NoError(t, err)

	_, err = svc.TransitionLeadership(
		context.Background(),
		leadership.RoleTypeAD, leadership.TargetOffice, officeID,
		next.ID(), date(2026, time.June, 15),
	)
	require.NoError(t, err)

	ended, err := assignments.GetByID(context.Background(), first.ID())
	require.NoError(t, err)
	require.False(t, ended.IsOpen())
	require.Equal(t, date(2026, time.June, 14), *ended.EffectiveTo())

	// Exactly one assignment covers any given date.
	before, err := assignments.ActiveForTarget(context.Background(), leadership.RoleTypeAD, leadership.TargetOffice, officeID, date(2026, time.June, 14))
	require.NoError(t, err)
	require.Equal(t, old.ID(), before.PersonID())

	after, err := assignments.ActiveForTarget(context.Background(), leadership.RoleTypeAD, leadership.TargetOffice, officeID, date(2026, time.June, 15))
	require.NoError(t, err)
	require.Equal(t, next.ID(), after.PersonID())
}

func TestLeadershipService_RejectsUnderqualifiedLeader(t *testing.T) {
	svc, _, persons, _ := newLeadershipFixture()
	junior := seedLeader(persons, 2)

	_, err := svc.TransitionLeadership(
		context.Background(),
		leadership.RoleTypeVP, leadership.TargetDivision, uuid.New(),
		junior.ID(), date(2026, time.March, 1),
	)
	require.ErrorIs(t, err, ErrLeaderLevelTooLow)
}

func TestLeadershipService_FailureAfterEndSurfacesRetry(t *testing.T) {
	svc, assignments, persons, _ := newLeadershipFixture()
	old := seedLeader(persons, 3)
	next := seedLeader(persons, 3)
	officeID := uuid.New()

	_, err := svc.TransitionLeadership(
		context.Background(),
		leadership.RoleTypeAD, leadership.TargetOffice, officeID,
		old.ID(), date(2026, time.January, 1),
	)
	require.NoError(t, err)

	assignments.failCreate = true
	_, err = svc.TransitionLeadership(
		context.Background(),
		leadership.RoleTypeAD, leadership.TargetOffice, officeID,
		next.ID(), date(2026, time.June, 1),
	)
	require.ErrorIs(t, err, ErrLeadershipTransitionRetry)
}

func TestLeadershipService_LeadersForOfficeWalksLocationChain(t *testing.T) {
	svc, _, persons, locations := newLeadershipFixture()

	divisionID := uuid.New()
	regionID := uuid.New()
	officeID := uuid.New()
	locations.divisions[divisionID] = location.Division{ID: divisionID, Name: "National"}
	locations.regions[regionID] = location.Region{ID: regionID, Name: "West", DivisionID: &divisionID}
	locations.offices[officeID] = location.Office{ID: officeID, Name: "Phoenix", RegionID: &regionID}

	ad := seedLeader(persons, 3)
	regional := seedLeader(persons, 4)
	divisional := seedLeader(persons, 5)
	vp := seedLeader(persons, 6)

	ctx := context.Background()
	from := date(2026, time.January, 1)
	_, err := svc.TransitionLeadership(ctx, leadership.RoleTypeAD, leadership.TargetOffice, officeID, ad.ID(), from)
	require.NoError(t, err)
	_, err = svc.TransitionLeadership(ctx, leadership.RoleTypeRegional, leadership.TargetRegion, regionID, regional.ID(), from)
	require.NoError(t, err)
	_, err = svc.TransitionLeadership(ctx, leadership.RoleTypeDivisional, leadership.TargetDivision, divisionID, divisional.ID(), from)
	require.NoError(t, err)
	_, err = svc.TransitionLeadership(ctx, leadership.RoleTypeVP, leadership.TargetDivision, divisionID, vp.ID(), from)
	require.NoError(t, err)

	leaders, err := svc.LeadersForOffice(ctx, officeID, date(2026, time.July, 1))
	require.NoError(t, err)
	require.Equal(t, ad.ID(), *leaders.AD)
	require.Equal(t, regional.ID(), *leaders.Regional)
	require.Equal(t, divisional.ID(), *leaders.Divisional)
	require.Equal(t, vp.ID(), *leaders.VP)

	// Before any assignment started, every seat reads vacant.
	vacant, err := svc.LeadersForOffice(ctx, officeID, date(2025, time.December, 31))
	require.NoError(t, err)
	require.Nil(t, vacant.AD)
	require.Nil(t, vacant.Regional)
	require.Nil(t, vacant.Divisional)
	require.Nil(t, vacant.VP)
}

func TestLeadershipService_HistoricalDatePicksHistoricalLeader(t *testing.T) {
	svc, _, persons, locations := newLeadershipFixture()

	officeID := uuid.New()
	locations.offices[officeID] = location.Office{ID: officeID, Name: "Standalone"}

	old := seedLeader(persons, 3)
	next := seedLeader(persons, 3)

	ctx := context.Background()
	_, err := svc.TransitionLeadership(ctx, leadership.RoleTypeAD, leadership.TargetOffice, officeID, old.ID(), date(2025, time.May, 1))
	require.NoError(t, err)
	_, err = svc.TransitionLeadership(ctx, leadership.RoleTypeAD, leadership.TargetOffice, officeID, next.ID(), date(2026, time.February, 1))
	require.NoError(t, err)

	then, err := svc.LeadersForOffice(ctx, officeID, date(2025, time.October, 10))
	require.NoError(t, err)
	require.Equal(t, old.ID(), *then.AD)

	now, err := svc.LeadersForOffice(ctx, officeID, date(2026, time.February, 1))
	require.NoError(t, err)
	require.Equal(t, next.ID(), *now.AD)
}
