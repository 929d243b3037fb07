package persistence

import (
	"github.com/google/uuid"

	"github.com/voltify-hq/voltify-sdk/modules/org/domain/entities/permission"
	"github.com/voltify-hq/voltify-sdk/modules/org/domain/entities/role"
	"github.com/voltify-hq/voltify-sdk/modules/org/permissions"
)

var permissionsByID = func() map[uuid.UUID]*permission.Permission {
	out := make(map[uuid.UUID]*permission.Permission, len(permissions.All))
	for _, p := range permissions.All {
		out[p.ID] = p
	}
	return out
}()

// toDomainRole resolves stored permission ids against the registry.
// Ids from retired permissions are dropped silently.
func toDomainRole(id uuid.UUID, name string, level int, permIDs []string) role.Role {
	r := role.Role{ID: id, Name: name, Level: level}
	for _, raw := range permIDs {
		pid, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		if p, ok := permissionsByID[pid]; ok {
			r.Permissions = append(r.Permissions, p)
		}
	}
	return r
}
