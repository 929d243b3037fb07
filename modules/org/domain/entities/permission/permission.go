package permission

import "github.com/google/uuid"

type Resource string

type Action string

const (
	ActionView   Action = "view"
	ActionManage Action = "manage"
)

// Permission is immutable reference data attached to roles.
type Permission struct {
	ID       uuid.UUID
	Name     string
	Resource Resource
	Action   Action
}

// Set is the capability list carried by a role. Membership is checked by
// permission ID so renamed permissions keep working.
type Set []*Permission

func (s Set) Has(p *Permission) bool {
	if p == nil {
		return false
	}
	for _, candidate := range s {
		if candidate != nil && candidate.ID == p.ID {
			return true
		}
	}
	return false
}
