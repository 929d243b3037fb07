package permissions

import (
	"github.com/google/uuid"

	"github.com/voltify-hq/voltify-sdk/modules/org/domain/entities/permission"
)

const (
	ResourcePerson  permission.Resource = "person"
	ResourceRecruit permission.Resource = "recruit"
	ResourceOrg     permission.Resource = "org"
)

var (
	// ViewAll grants unscoped visibility over the whole organization.
	ViewAll = &permission.Permission{
		ID:       uuid.MustParse("0ac92404-21d1-4e53-8df5-6d3d64f2b90a"),
		Name:     "Org.ViewAll",
		Resource: ResourceOrg,
		Action:   permission.ActionView,
	}
	ManageRegion = &permission.Permission{
		ID:       uuid.MustParse("5b16e3c4-77c8-4b35-b3a0-5f9574e38d82"),
		Name:     "Org.ManageRegion",
		Resource: ResourceOrg,
		Action:   permission.ActionManage,
	}
	ManageOffice = &permission.Permission{
		ID:       uuid.MustParse("c1d0aa85-29cf-47f5-a0a9-8e6da941bc1f"),
		Name:     "Org.ManageOffice",
		Resource: ResourceOrg,
		Action:   permission.ActionManage,
	}
	ManageTeam = &permission.Permission{
		ID:       uuid.MustParse("9f2b4a8e-6a6e-4d82-9d31-2a3f1f5c7e04"),
		Name:     "Org.ManageTeam",
		Resource: ResourceOrg,
		Action:   permission.ActionManage,
	}
	PersonManage = &permission.Permission{
		ID:       uuid.MustParse("e86f3bd0-4ef4-44e5-94a1-1cde36c1a7b3"),
		Name:     "Person.Manage",
		Resource: ResourcePerson,
		Action:   permission.ActionManage,
	}
	RecruitManage = &permission.Permission{
		ID:       uuid.MustParse("74c0d15a-b1ad-4f6b-8a25-61f7f6f9f582"),
		Name:     "Recruit.Manage",
		Resource: ResourceRecruit,
		Action:   permission.ActionManage,
	}
)

// All lists every permission the module registers at seed time.
var All = permission.Set{
	ViewAll,
	ManageRegion,
	ManageOffice,
	ManageTeam,
	PersonManage,
	RecruitManage,
}
