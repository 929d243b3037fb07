package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/voltify-hq/voltify-sdk/modules/org/domain/entities/recruit"
	"github.com/voltify-hq/voltify-sdk/pkg/composables"
)

type RecruitService struct {
	repo   recruit.Repository
	scopes *ScopeService
	gate   *VisibilityService
}

func NewRecruitService(repo recruit.Repository, scopes *ScopeService, gate *VisibilityService) *RecruitService {
	return &RecruitService{
		repo:   repo,
		scopes: scopes,
		gate:   gate,
	}
}

func (s *RecruitService) Create(ctx context.Context, r recruit.Recruit) (recruit.Recruit, error) {
	if err := authorizeOrg(ctx, RecruitsAuthzObject, "create"); err != nil {
		return recruit.Recruit{}, err
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (recruit.Recruit, error) {
		return s.repo.Create(txCtx, r)
	})
}

// GetVisible returns the recruit when the actor's scope admits its target
// office. Denial reads as not-found.
func (s *RecruitService) GetVisible(ctx context.Context, recruitID, actorID uuid.UUID) (recruit.Recruit, error) {
	r, err := composables.InTxResult(ctx, func(txCtx context.Context) (recruit.Recruit, error) {
		return s.repo.GetByID(txCtx, recruitID)
	})
	if err != nil {
		return recruit.Recruit{}, err
	}

	sc, err := s.scopes.ResolveScope(ctx, actorID)
	if err != nil {
		return recruit.Recruit{}, err
	}
	target := RecruitTarget{ID: r.ID, RecruiterID: r.RecruiterID, TargetOfficeID: r.TargetOfficeID}
	if !s.gate.CanViewRecruit(actorID, sc, target) {
		return recruit.Recruit{}, recruit.ErrNotFound
	}
	return r, nil
}

func (s *RecruitService) ListVisibleForOffice(ctx context.Context, officeID, actorID uuid.UUID) ([]recruit.Recruit, error) {
	all, err := composables.InTxResult(ctx, func(txCtx context.Context) ([]recruit.Recruit, error) {
		return s.repo.ListByTargetOffice(txCtx, officeID)
	})
	if err != nil {
		return nil, err
	}

	sc, err := s.scopes.ResolveScope(ctx, actorID)
	if err != nil {
		return nil, err
	}

	visible := make([]recruit.Recruit, 0, len(all))
	for _, r := range all {
		target := RecruitTarget{ID: r.ID, RecruiterID: r.RecruiterID, TargetOfficeID: r.TargetOfficeID}
		if s.gate.CanViewRecruit(actorID, sc, target) {
			visible = append(visible, r)
		}
	}
	return visible, nil
}

// UpdateStatus moves the candidate through the pipeline. Conversion into an
// org person is a separate onboarding flow; this only flips the record.
func (s *RecruitService) UpdateStatus(ctx context.Context, recruitID uuid.UUID, status recruit.Status) (recruit.Recruit, error) {
	if err := authorizeOrg(ctx, RecruitsAuthzObject, "update"); err != nil {
		return recruit.Recruit{}, err
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (recruit.Recruit, error) {
		r, err := s.repo.GetByID(txCtx, recruitID)
		if err != nil {
			return recruit.Recruit{}, err
		}
		r.Status = status
		if err := s.repo.Update(txCtx, r); err != nil {
			return recruit.Recruit{}, err
		}
		return r, nil
	})
}
