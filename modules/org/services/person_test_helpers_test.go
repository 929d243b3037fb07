package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/voltify-hq/voltify-sdk/modules/org/domain/aggregates/leadership"
	"github.com/voltify-hq/voltify-sdk/modules/org/domain/aggregates/person"
	"github.com/voltify-hq/voltify-sdk/modules/org/domain/entities/location"
	"github.com/voltify-hq/voltify-sdk/modules/org/domain/entities/permission"
	"github.com/voltify-hq/voltify-sdk/modules/org/domain/entities/role"
)

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
		if params != nil && params.Q != "" && !strings.Contains(strings.ToLower(p.DisplayName()), strings.ToLower(params.Q)) {
			continue
		}
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
	hydrated := person.Hydrate(
		uuid.New(), p.DisplayName(), p.Role(), p.OfficeID(), p.ReportsToID(),
		p.RecruitedByID(), p.PayPlanID(), p.SetterTier(), p.Status(),
		time.Now().UTC(), time.Now().UTC(),
	)
	m.people[hydrated.ID()] = hydrated
	return hydrated, nil
}

func (m *memPersonRepo) Update(ctx context.Context, p person.Person) error {
	if _, ok := m.people[p.ID()]; !ok {
		return person.ErrNotFound
	}
	m.people[p.ID()] = p
	return nil
}

type memLocationRepo struct {
	offices   map[uuid.UUID]location.Office
	regions   map[uuid.UUID]location.Region
	divisions map[uuid.UUID]location.Division
}

func newMemLocationRepo() *memLocationRepo {
	return &memLocationRepo{
		offices:   map[uuid.UUID]location.Office{},
		regions:   map[uuid.UUID]location.Region{},
		divisions: map[uuid.UUID]location.Division{},
	}
}

func (m *memLocationRepo) GetOffice(ctx context.Context, id uuid.UUID) (location.Office, error) {
	o, ok := m.offices[id]
	if !ok {
		return location.Office{}, location.ErrNotFound
	}
	return o, nil
}

func (m *memLocationRepo) GetRegion(ctx context.Context, id uuid.UUID) (location.Region, error) {
	r, ok := m.regions[id]
	if !ok {
		return location.Region{}, location.ErrNotFound
	}
	return r, nil
}

func (m *memLocationRepo) GetDivision(ctx context.Context, id uuid.UUID) (location.Division, error) {
	d, ok := m.divisions[id]
	if !ok {
		return location.Division{}, location.ErrNotFound
	}
	return d, nil
}

func (m *memLocationRepo) ResolveChain(ctx context.Context, officeID uuid.UUID) (location.Chain, error) {
	office, ok := m.offices[officeID]
	if !ok {
		return location.Chain{}, location.ErrNotFound
	}
	chain := location.Chain{Office: office}
	if office.RegionID != nil {
		if region, ok := m.regions[*office.RegionID]; ok {
			chain.Region = &region
			if region.DivisionID != nil {
				if division, ok := m.divisions[*region.DivisionID]; ok {
					chain.Division = &division
				}
			}
		}
	}
	return chain, nil
}

func (m *memLocationRepo) ListOfficeIDsByRegion(ctx context.Context, regionID uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for _, o := range m.offices {
		if o.RegionID != nil && *o.RegionID == regionID {
			out = append(out, o.ID)
		}
	}
	return out, nil
}

type memLeadershipRepo struct {
	assignments map[uuid.UUID]leadership.Assignment
	failCreate  bool
}

func newMemLeadershipRepo() *memLeadershipRepo {
	return &memLeadershipRepo{assignments: map[uuid.UUID]leadership.Assignment{}}
}

func (m *memLeadershipRepo) GetByID(ctx context.Context, id uuid.UUID) (leadership.Assignment, error) {
	a, ok := m.assignments[id]
	if !ok {
		return leadership.Assignment{}, leadership.ErrNotFound
	}
	return a, nil
}

func (m *memLeadershipRepo) OpenForTarget(ctx context.Context, roleType leadership.RoleType, targetKind leadership.TargetKind, targetID uuid.UUID) (leadership.Assignment, error) {
	for _, a := range m.assignments {
		if a.RoleType() == roleType && a.TargetKind() == targetKind && a.TargetID() == targetID && a.IsOpen() {
			return a, nil
		}
	}
	return leadership.Assignment{}, leadership.ErrNotFound
}

func (m *memLeadershipRepo) ActiveForTarget(ctx context.Context, roleType leadership.RoleType, targetKind leadership.TargetKind, targetID uuid.UUID, date time.Time) (leadership.Assignment, error) {
	for _, a := range m.assignments {
		if a.RoleType() == roleType && a.TargetKind() == targetKind && a.TargetID() == targetID && a.Covers(date) {
			return a, nil
		}
	}
	return leadership.Assignment{}, leadership.ErrNotFound
}

func (m *memLeadershipRepo) ListActive(ctx context.Context, date time.Time) ([]leadership.Assignment, error) {
	var out []leadership.Assignment
	for _, a := range m.assignments {
		if a.Covers(date) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memLeadershipRepo) Create(ctx context.Context, a leadership.Assignment) (leadership.Assignment, error) {
	if m.failCreate {
		return leadership.Assignment{}, context.DeadlineExceeded
	}
	hydrated := leadership.Hydrate(
		uuid.New(), a.RoleType(), a.TargetKind(), a.TargetID(), a.PersonID(),
		a.EffectiveFrom(), a.EffectiveTo(), time.Now().UTC(),
	)
	m.assignments[hydrated.ID()] = hydrated
	return hydrated, nil
}

func (m *memLeadershipRepo) Update(ctx context.Context, a leadership.Assignment) error {
	if _, ok := m.assignments[a.ID()]; !ok {
		return leadership.ErrNotFound
	}
	m.assignments[a.ID()] = a
	return nil
}

type stubPublisher struct{}

func (s *stubPublisher) Publish(args ...interface{})     {}
func (s *stubPublisher) Subscribe(handler interface{})   {}
func (s *stubPublisher) Unsubscribe(handler interface{}) {}
func (s *stubPublisher) Clear()                          {}
func (s *stubPublisher) SubscribersCount() int           { return 0 }

func roleWithPerms(name string, level int, perms ...*permission.Permission) role.Role {
	return role.Role{
		ID:          uuid.New(),
		Name:        name,
		Level:       level,
		Permissions: permission.Set(perms),
	}
}

func ptr[T any](v T) *T { return &v }

func zeroTime() time.Time { return time.Time{} }
