package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/voltify-hq/voltify-sdk/modules/org/domain/aggregates/person"
)

// GraphService walks the two self-referencing person chains. Walks are
// iterative lookups with an explicit depth bound so corrupted data (a cycle)
// terminates as ErrCycleDetected instead of hanging.
type GraphService struct {
	persons       person.Repository
	maxChainDepth int
}

func NewGraphService(persons person.Repository, maxChainDepth int) *GraphService {
	if maxChainDepth < 1 {
		maxChainDepth = 64
	}
	return &GraphService{
		persons:       persons,
		maxChainDepth: maxChainDepth,
	}
}

// ReportsToChain returns up to `levels` ancestors of the management chain,
// nearest first. A dangling reference ends the walk cleanly.
func (s *GraphService) ReportsToChain(ctx context.Context, personID uuid.UUID, levels int) ([]uuid.UUID, error) {
	return s.walk(ctx, personID, levels, person.Person.ReportsToID)
}

// RecruitedByChain returns up to `levels` ancestors of the recruiting chain,
// nearest first.
func (s *GraphService) RecruitedByChain(ctx context.Context, personID uuid.UUID, levels int) ([]uuid.UUID, error) {
	return s.walk(ctx, personID, levels, person.Person.RecruitedByID)
}

func (s *GraphService) walk(
	ctx context.Context,
	start uuid.UUID,
	levels int,
	next func(person.Person) *uuid.UUID,
) ([]uuid.UUID, error) {
	if levels > s.maxChainDepth {
		levels = s.maxChainDepth
	}

	chain := make([]uuid.UUID, 0, levels)
	seen := map[uuid.UUID]struct{}{start: {}}
	current := start

	for depth := 0; depth < levels; depth++ {
		p, err := s.persons.GetByID(ctx, current)
		if err != nil {
			if errors.Is(err, person.ErrNotFound) {
				return chain, nil
			}
			return nil, err
		}
		parentID := next(p)
		if parentID == nil {
			return chain, nil
		}
		if _, dup := seen[*parentID]; dup {
			return nil, ErrCycleDetected
		}
		seen[*parentID] = struct{}{}
		chain = append(chain, *parentID)
		current = *parentID
	}

	return chain, nil
}
