package sales

import (
	"context"
	"embed"

	orgpersistence "github.com/voltify-hq/voltify-sdk/modules/org/infrastructure/persistence"
	orgservices "github.com/voltify-hq/voltify-sdk/modules/org/services"
	"github.com/voltify-hq/voltify-sdk/modules/sales/infrastructure/persistence"
	"github.com/voltify-hq/voltify-sdk/modules/sales/services"
	"github.com/voltify-hq/voltify-sdk/pkg/application"
	"github.com/voltify-hq/voltify-sdk/pkg/composables"
	"github.com/voltify-hq/voltify-sdk/pkg/configuration"
)

//go:embed infrastructure/persistence/schema/sales-schema.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

// Module wires the commission resolver on top of the org module's scope,
// gate, graph and leadership services. Org must be registered first.
type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.RegisterSchema(&migrationFiles)

	conf := configuration.Use()
	scopes := app.Service(orgservices.ScopeService{}).(*orgservices.ScopeService)
	gate := app.Service(orgservices.VisibilityService{}).(*orgservices.VisibilityService)
	graph := app.Service(orgservices.GraphService{}).(*orgservices.GraphService)
	leaders := app.Service(orgservices.LeadershipService{}).(*orgservices.LeadershipService)

	persons := orgpersistence.NewPersonRepository()
	snapshots := services.NewSnapshotService(
		persistence.NewSnapshotRepository(),
		persons,
		orgpersistence.NewLocationRepository(),
		orgpersistence.NewTeamRepository(),
	)
	commissions := services.NewCommissionService(
		persistence.NewDealRepository(),
		persistence.NewPayPlanRepository(),
		persistence.NewCommissionRepository(),
		persons,
		snapshots,
		graph,
		leaders,
		scopes,
		gate,
		app.EventPublisher(),
		conf.Commission.OverrideLevels,
	)
	deals := services.NewDealService(
		persistence.NewDealRepository(),
		scopes,
		gate,
		app.EventPublisher(),
	)

	app.RegisterServices(
		snapshots,
		commissions,
		deals,
		services.NewPayPlanService(persistence.NewPayPlanRepository()),
	)

	// Every recorded deal is resolved immediately, as a background job
	// without an actor. A failure is logged and left for
	// RecalculateCommissionsForDeal to repair.
	app.EventPublisher().Subscribe(func(event services.ClosedEvent) {
		ctx := composables.WithPool(context.Background(), app.Pool())
		if _, err := commissions.ComputeCommissionsForDeal(ctx, event.Result.ID()); err != nil {
			app.Logger().WithError(err).Errorf("commission resolution failed for deal %s", event.Result.ID())
		}
	})

	return nil
}

func (m *Module) Name() string {
	return "sales"
}
