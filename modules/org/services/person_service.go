package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/voltify-hq/voltify-sdk/modules/org/domain/aggregates/person"
	"github.com/voltify-hq/voltify-sdk/modules/org/domain/entities/role"
	"github.com/voltify-hq/voltify-sdk/pkg/composables"
	"github.com/voltify-hq/voltify-sdk/pkg/eventbus"
)

type PersonService struct {
	repo      person.Repository
	publisher eventbus.EventBus
}

func NewPersonService(repo person.Repository, publisher eventbus.EventBus) *PersonService {
	return &PersonService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *PersonService) Count(ctx context.Context) (int64, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (int64, error) {
		return s.repo.Count(txCtx)
	})
}

func (s *PersonService) GetByID(ctx context.Context, id uuid.UUID) (person.Person, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (person.Person, error) {
		return s.repo.GetByID(txCtx, id)
	})
}

func (s *PersonService) GetPaginated(ctx context.Context, params *person.FindParams) ([]person.Person, int64, error) {
	type page struct {
		items []person.Person
		total int64
	}
	res, err := composables.InTxResult(ctx, func(txCtx context.Context) (page, error) {
		items, total, err := s.repo.GetPaginated(txCtx, params)
		return page{items: items, total: total}, err
	})
	return res.items, res.total, err
}

func (s *PersonService) Create(ctx context.Context, p person.Person) (person.Person, error) {
	if err := authorizeOrg(ctx, PersonsAuthzObject, "create"); err != nil {
		return person.Person{}, err
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (person.Person, error) {
		created, err := s.repo.Create(txCtx, p)
		if err != nil {
			return person.Person{}, err
		}
		s.publisher.Publish(person.CreatedEvent{Result: created})
		return created, nil
	})
}

// Transfer applies an office and/or manager change. The mutation is
// historized through TransferredEvent; commission math never reads the live
// row for past dates.
func (s *PersonService) Transfer(ctx context.Context, id uuid.UUID, officeID, managerID *uuid.UUID) (person.Person, error) {
	if err := authorizeOrg(ctx, PersonsAuthzObject, "update"); err != nil {
		return person.Person{}, err
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (person.Person, error) {
		current, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return person.Person{}, err
		}

		updated := current.Transfer(officeID).AssignManager(managerID)
		if err := s.repo.Update(txCtx, updated); err != nil {
			return person.Person{}, err
		}

		s.publisher.Publish(person.TransferredEvent{
			PersonID:      id,
			FromOfficeID:  current.OfficeID(),
			ToOfficeID:    officeID,
			FromManagerID: current.ReportsToID(),
			ToManagerID:   managerID,
			Result:        updated,
		})
		return updated, nil
	})
}

func (s *PersonService) ChangeRole(ctx context.Context, id uuid.UUID, newRole role.Role) (person.Person, error) {
	if err := authorizeOrg(ctx, PersonsAuthzObject, "update"); err != nil {
		return person.Person{}, err
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (person.Person, error) {
		current, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return person.Person{}, err
		}

		updated := current.ChangeRole(newRole)
		if err := s.repo.Update(txCtx, updated); err != nil {
			return person.Person{}, err
		}

		s.publisher.Publish(person.RoleChangedEvent{
			PersonID: id,
			FromRole: current.Role().Name,
			ToRole:   newRole.Name,
			Result:   updated,
		})
		return updated, nil
	})
}

func (s *PersonService) Terminate(ctx context.Context, id uuid.UUID) (person.Person, error) {
	if err := authorizeOrg(ctx, PersonsAuthzObject, "delete"); err != nil {
		return person.Person{}, err
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (person.Person, error) {
		current, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return person.Person{}, err
		}

		updated := current.Terminate()
		if err := s.repo.Update(txCtx, updated); err != nil {
			return person.Person{}, err
		}

		s.publisher.Publish(person.TerminatedEvent{PersonID: id, Result: updated})
		return updated, nil
	})
}
