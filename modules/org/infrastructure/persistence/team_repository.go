package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/voltify-hq/voltify-sdk/modules/org/domain/entities/team"
	"github.com/voltify-hq/voltify-sdk/pkg/composables"
)

type PgTeamRepository struct{}

func NewTeamRepository() team.Repository {
	return &PgTeamRepository{}
}

func (g *PgTeamRepository) GetByID(ctx context.Context, id uuid.UUID) (team.Team, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return team.Team{}, err
	}

	var (
		t          team.Team
		teamLeadID pgtype.UUID
	)
	err = tx.QueryRow(ctx, `
SELECT id, name, office_id, team_lead_id FROM org_teams WHERE id = $1
`, pgUUID(id)).Scan(&t.ID, &t.Name, &t.OfficeID, &teamLeadID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return team.Team{}, team.ErrNotFound
		}
		return team.Team{}, err
	}
	t.TeamLeadID = uuidPtr(teamLeadID)
	return t, nil
}

func (g *PgTeamRepository) ListByOffice(ctx context.Context, officeID uuid.UUID) ([]team.Team, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
SELECT id, name, office_id, team_lead_id
FROM org_teams
WHERE office_id = $1
ORDER BY name ASC
`, pgUUID(officeID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]team.Team, 0, 8)
	for rows.Next() {
		var (
			t          team.Team
			teamLeadID pgtype.UUID
		)
		if err := rows.Scan(&t.ID, &t.Name, &t.OfficeID, &teamLeadID); err != nil {
			return nil, err
		}
		t.TeamLeadID = uuidPtr(teamLeadID)
		out = append(out, t)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

func (g *PgTeamRepository) ListMemberIDs(ctx context.Context, teamID uuid.UUID) ([]uuid.UUID, error) {
	return g.listIDs(ctx, `
SELECT person_id FROM org_team_members WHERE team_id = $1
`, pgUUID(teamID))
}

func (g *PgTeamRepository) ListTeamIDsForPerson(ctx context.Context, personID uuid.UUID) ([]uuid.UUID, error) {
	return g.listIDs(ctx, `
SELECT team_id FROM org_team_members WHERE person_id = $1
`, pgUUID(personID))
}

func (g *PgTeamRepository) listIDs(ctx context.Context, query string, args ...any) ([]uuid.UUID, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0, 8)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}
