package org

import (
	"embed"

	"github.com/voltify-hq/voltify-sdk/modules/org/infrastructure/persistence"
	"github.com/voltify-hq/voltify-sdk/modules/org/services"
	"github.com/voltify-hq/voltify-sdk/pkg/application"
	"github.com/voltify-hq/voltify-sdk/pkg/configuration"
)

//go:embed infrastructure/persistence/schema/org-schema.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.RegisterSchema(&migrationFiles)

	conf := configuration.Use()
	persons := persistence.NewPersonRepository()
	locations := persistence.NewLocationRepository()

	scopes := services.NewScopeService(persons, locations)
	gate := services.NewVisibilityService()

	app.RegisterServices(
		services.NewPersonService(persons, app.EventPublisher()),
		scopes,
		gate,
		services.NewGraphService(persons, conf.Commission.MaxChainDepth),
		services.NewLeadershipService(
			persistence.NewLeadershipRepository(),
			persons,
			locations,
			app.EventPublisher(),
		),
		services.NewDocumentService(persistence.NewDocumentRepository(), persons, scopes, gate),
		services.NewRecruitService(persistence.NewRecruitRepository(), scopes, gate),
	)

	return nil
}

func (m *Module) Name() string {
	return "org"
}
