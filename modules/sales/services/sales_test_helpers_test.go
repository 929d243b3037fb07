package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/voltify-hq/voltify-sdk/modules/org/domain/aggregates/person"
	"github.com/voltify-hq/voltify-sdk/modules/org/domain/entities/location"
	"github.com/voltify-hq/voltify-sdk/modules/org/domain/entities/role"
	"github.com/voltify-hq/voltify-sdk/modules/org/domain/entities/scope"
	"github.com/voltify-hq/voltify-sdk/modules/org/domain/entities/team"
	orgservices "github.com/voltify-hq/voltify-sdk/modules/org/services"
	"github.com/voltify-hq/voltify-sdk/modules/sales/domain/aggregates/commission"
	"github.com/voltify-hq/voltify-sdk/modules/sales/domain/aggregates/deal"
	"github.com/voltify-hq/voltify-sdk/modules/sales/domain/aggregates/payplan"
	"github.com/voltify-hq/voltify-sdk/modules/sales/domain/entities/snapshot"
)

type memDealRepo struct {
	deals map[uuid.UUID]deal.Deal
}

func newMemDealRepo() *memDealRepo {
	return &memDealRepo{deals: map[uuid.UUID]deal.Deal{}}
}

func (m *memDealRepo) put(d deal.Deal) deal.Deal {
	if d.ID() == uuid.Nil {
		d = deal.Hydrate(
			uuid.New(), d.SetterID(), d.CloserID(), d.DealType(),
			d.SystemSizeKw(), d.PricePerWatt(), d.DealValue(),
			d.CloseDate(), d.OfficeID(), d.IsSelfGen(), time.Now().UTC(),
		)
	}
	m.deals[d.ID()] = d
	return d
}

func (m *memDealRepo) GetByID(ctx context.Context, id uuid.UUID) (deal.Deal, error) {
	d, ok := m.deals[id]
	if !ok {
		return deal.Deal{}, deal.ErrNotFound
	}
	return d, nil
}

func (m *memDealRepo) ListByPerson(ctx context.Context, personID uuid.UUID) ([]deal.Deal, error) {
	var out []deal.Deal
	for _, d := range m.deals {
		if d.SetterID() == personID || d.CloserID() == personID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *memDealRepo) Create(ctx context.Context, d deal.Deal) (deal.Deal, error) {
	return m.put(d), nil
}

type memPayPlanRepo struct {
	plans map[uuid.UUID]payplan.PayPlan
}

func newMemPayPlanRepo() *memPayPlanRepo {
	return &memPayPlanRepo{plans: map[uuid.UUID]payplan.PayPlan{}}
}

func (m *memPayPlanRepo) put(p payplan.PayPlan) payplan.PayPlan {
	if p.ID() == uuid.Nil {
		p = payplan.Hydrate(uuid.New(), p.Name(), p.Rules(), p.IsActive(), time.Now().UTC(), time.Now().UTC())
	}
	m.plans[p.ID()] = p
	return p
}

func (m *memPayPlanRepo) GetByID(ctx context.Context, id uuid.UUID) (payplan.PayPlan, error) {
	p, ok := m.plans[id]
	if !ok {
		return payplan.PayPlan{}, payplan.ErrNotFound
	}
	return p, nil
}

func (m *memPayPlanRepo) GetAll(ctx context.Context) ([]payplan.PayPlan, error) {
	out := make([]payplan.PayPlan, 0, len(m.plans))
	for _, p := range m.plans {
		out = append(out, p)
	}
	return out, nil
}

func (m *memPayPlanRepo) Create(ctx context.Context, p payplan.PayPlan) (payplan.PayPlan, error) {
	return m.put(p), nil
}

func (m *memPayPlanRepo) Update(ctx context.Context, p payplan.PayPlan) error {
	if _, ok := m.plans[p.ID()]; !ok {
		return payplan.ErrNotFound
	}
	m.plans[p.ID()] = p
	return nil
}

type memCommissionRepo struct {
	items map[uuid.UUID]commission.Commission
}

func newMemCommissionRepo() *memCommissionRepo {
	return &memCommissionRepo{items: map[uuid.UUID]commission.Commission{}}
}

func (m *memCommissionRepo) GetByID(ctx context.Context, id uuid.UUID) (commission.Commission, error) {
	c, ok := m.items[id]
	if !ok {
		return commission.Commission{}, commission.ErrNotFound
	}
	return c, nil
}

func (m *memCommissionRepo) ListByDeal(ctx context.Context, dealID uuid.UUID) ([]commission.Commission, error) {
	var out []commission.Commission
	for _, c := range m.items {
		if c.DealID() == dealID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCommissionRepo) ListByPerson(ctx context.Context, personID uuid.UUID) ([]commission.Commission, error) {
	var out []commission.Commission
	for _, c := range m.items {
		if c.PersonID() == personID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCommissionRepo) Create(ctx context.Context, c commission.Commission) (commission.Commission, error) {
	hydrated := commission.Hydrate(
		uuid.New(), c.DealID(), c.PersonID(), c.CommissionType(),
		c.Amount(), c.Status(), c.StatusReason(), c.CalcDetails(),
		time.Now().UTC(), time.Now().UTC(),
	)
	m.items[hydrated.ID()] = hydrated
	return hydrated, nil
}

func (m *memCommissionRepo) Update(ctx context.Context, c commission.Commission) error {
	if _, ok := m.items[c.ID()]; !ok {
		return commission.ErrNotFound
	}
	m.items[c.ID()] = c
	return nil
}

type snapKey struct {
	personID uuid.UUID
	date     time.Time
}

type memSnapshotRepo struct {
	byKey   map[snapKey]snapshot.Snapshot
	creates int
}

func newMemSnapshotRepo() *memSnapshotRepo {
	return &memSnapshotRepo{byKey: map[snapKey]snapshot.Snapshot{}}
}

func (m *memSnapshotRepo) GetByID(ctx context.Context, id uuid.UUID) (snapshot.Snapshot, error) {
	for _, s := range m.byKey {
		if s.ID == id {
			return s, nil
		}
	}
	return snapshot.Snapshot{}, snapshot.ErrNotFound
}

func (m *memSnapshotRepo) GetByPersonAndDate(ctx context.Context, personID uuid.UUID, date time.Time) (snapshot.Snapshot, error) {
	s, ok := m.byKey[snapKey{personID: personID, date: snapshot.NormalizeDate(date)}]
	if !ok {
		return snapshot.Snapshot{}, snapshot.ErrNotFound
	}
	return s, nil
}

func (m *memSnapshotRepo) Create(ctx context.Context, s snapshot.Snapshot) (snapshot.Snapshot, error) {
	key := snapKey{personID: s.PersonID, date: snapshot.NormalizeDate(s.SnapshotDate)}
	if _, ok := m.byKey[key]; ok {
		return snapshot.Snapshot{}, snapshot.ErrAlreadyExists
	}
	m.creates++
	s.ID = uuid.New()
	s.CreatedAt = time.Now().UTC()
	m.byKey[key] = s
	return s, nil
}

// memPersonRepo is the minimal slice of the org person repository the sales
// services touch.
type memPersonRepo struct {
	people map[uuid.UUID]person.Person
}

func newMemPersonRepo() *memPersonRepo {
	return &memPersonRepo{people: map[uuid.UUID]person.Person{}}
}

func (m *memPersonRepo) put(p person.Person) person.Person {
	m.people[p.ID()] = p
	return p
}

func (m *memPersonRepo) GetByID(ctx context.Context, id uuid.UUID) (person.Person, error) {
	p, ok := m.people[id]
	if !ok {
		return person.Person{}, person.ErrNotFound
	}
	return p, nil
}

func (m *memPersonRepo) GetPaginated(ctx context.Context, params *person.FindParams) ([]person.Person, int64, error) {
	out := make([]person.Person, 0, len(m.people))
	for _, p := range m.people {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (m *memPersonRepo) ListByOffice(ctx context.Context, officeID uuid.UUID) ([]person.Person, error) {
	var out []person.Person
	for _, p := range m.people {
		if p.OfficeID() != nil && *p.OfficeID() == officeID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPersonRepo) ListDirectReports(ctx context.Context, managerID uuid.UUID) ([]person.Person, error) {
	var out []person.Person
	for _, p := range m.people {
		if p.ReportsToID() != nil && *p.ReportsToID() == managerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPersonRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.people)), nil
}

func (m *memPersonRepo) Create(ctx context.Context, p person.Person) (person.Person, error) {
	m.people[p.ID()] = p
	return p, nil
}

func (m *memPersonRepo) Update(ctx context.Context, p person.Person) error {
	m.people[p.ID()] = p
	return nil
}

type memLocationRepo struct {
	offices map[uuid.UUID]location.Office
}

func newMemLocationRepo() *memLocationRepo {
	return &memLocationRepo{offices: map[uuid.UUID]location.Office{}}
}

func (m *memLocationRepo) GetOffice(ctx context.Context, id uuid.UUID) (location.Office, error) {
	o, ok := m.offices[id]
	if !ok {
		return location.Office{}, location.ErrNotFound
	}
	return o, nil
}

func (m *memLocationRepo) GetRegion(ctx context.Context, id uuid.UUID) (location.Region, error) {
	return location.Region{}, location.ErrNotFound
}

func (m *memLocationRepo) GetDivision(ctx context.Context, id uuid.UUID) (location.Division, error) {
	return location.Division{}, location.ErrNotFound
}

func (m *memLocationRepo) ResolveChain(ctx context.Context, officeID uuid.UUID) (location.Chain, error) {
	o, ok := m.offices[officeID]
	if !ok {
		return location.Chain{}, location.ErrNotFound
	}
	return location.Chain{Office: o}, nil
}

func (m *memLocationRepo) ListOfficeIDsByRegion(ctx context.Context, regionID uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

type memTeamRepo struct {
	teamsByPerson map[uuid.UUID][]uuid.UUID
}

func newMemTeamRepo() *memTeamRepo {
	return &memTeamRepo{teamsByPerson: map[uuid.UUID][]uuid.UUID{}}
}

func (m *memTeamRepo) GetByID(ctx context.Context, id uuid.UUID) (team.Team, error) {
	return team.Team{}, team.ErrNotFound
}

func (m *memTeamRepo) ListByOffice(ctx context.Context, officeID uuid.UUID) ([]team.Team, error) {
	return nil, nil
}

func (m *memTeamRepo) ListMemberIDs(ctx context.Context, teamID uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

func (m *memTeamRepo) ListTeamIDsForPerson(ctx context.Context, personID uuid.UUID) ([]uuid.UUID, error) {
	return m.teamsByPerson[personID], nil
}

// stubGraph serves fixed ancestor chains.
type stubGraph struct {
	reportsTo   map[uuid.UUID][]uuid.UUID
	recruitedBy map[uuid.UUID][]uuid.UUID
	err         error
}

func (g *stubGraph) ReportsToChain(ctx context.Context, personID uuid.UUID, levels int) ([]uuid.UUID, error) {
	if g.err != nil {
		return nil, g.err
	}
	return clip(g.reportsTo[personID], levels), nil
}

func (g *stubGraph) RecruitedByChain(ctx context.Context, personID uuid.UUID, levels int) ([]uuid.UUID, error) {
	if g.err != nil {
		return nil, g.err
	}
	return clip(g.recruitedBy[personID], levels), nil
}

func clip(ids []uuid.UUID, n int) []uuid.UUID {
	if len(ids) > n {
		return ids[:n]
	}
	return ids
}

type stubLeaders struct {
	leaders orgservices.Leaders
}

func (l *stubLeaders) LeadersForOffice(ctx context.Context, officeID uuid.UUID, date time.Time) (orgservices.Leaders, error) {
	return l.leaders, nil
}

// stubScopes hands every actor a fixed scope.
type stubScopes struct {
	scopes map[uuid.UUID]scope.Scope
}

func (s *stubScopes) ResolveScope(ctx context.Context, actorID uuid.UUID) (scope.Scope, error) {
	if sc, ok := s.scopes[actorID]; ok {
		return sc, nil
	}
	return scope.Self{PersonID: actorID}, nil
}

type stubPublisher struct{}

func (s *stubPublisher) Publish(args ...interface{})     {}
func (s *stubPublisher) Subscribe(handler interface{})   {}
func (s *stubPublisher) Unsubscribe(handler interface{}) {}
func (s *stubPublisher) Clear()                          {}
func (s *stubPublisher) SubscribersCount() int           { return 0 }

type fixture struct {
	deals       *memDealRepo
	plans       *memPayPlanRepo
	commissions *memCommissionRepo
	snapshots   *memSnapshotRepo
	persons     *memPersonRepo
	locations   *memLocationRepo
	teams       *memTeamRepo
	graph       *stubGraph
	leaders     *stubLeaders
	scopes      *stubScopes
	snapSvc     *SnapshotService
	svc         *CommissionService
}

func newFixture() *fixture {
	f := &fixture{
		deals:       newMemDealRepo(),
		plans:       newMemPayPlanRepo(),
		commissions: newMemCommissionRepo(),
		snapshots:   newMemSnapshotRepo(),
		persons:     newMemPersonRepo(),
		locations:   newMemLocationRepo(),
		teams:       newMemTeamRepo(),
		graph:       &stubGraph{reportsTo: map[uuid.UUID][]uuid.UUID{}, recruitedBy: map[uuid.UUID][]uuid.UUID{}},
		leaders:     &stubLeaders{},
		scopes:      &stubScopes{scopes: map[uuid.UUID]scope.Scope{}},
	}
	f.snapSvc = NewSnapshotService(f.snapshots, f.persons, f.locations, f.teams)
	f.svc = NewCommissionService(
		f.deals, f.plans, f.commissions, f.persons, f.snapSvc,
		f.graph, f.leaders, f.scopes, orgservices.NewVisibilityService(),
		&stubPublisher{}, 2,
	)
	return f
}

// seedRep creates a person carrying the given pay plan.
func (f *fixture) seedRep(name string, planID *uuid.UUID, tier *person.SetterTier) person.Person {
	return f.persons.put(person.Hydrate(
		uuid.New(), name, role.Role{ID: uuid.New(), Name: "rep", Level: 1},
		nil, nil, nil, planID, tier, person.StatusActive,
		time.Now().UTC(), time.Now().UTC(),
	))
}

func roleOf(name string, level int) role.Role {
	return role.Role{ID: uuid.New(), Name: name, Level: level}
}

func ptr[T any](v T) *T { return &v }
