package application

import (
	"embed"
	"fmt"
	"reflect"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/voltify-hq/voltify-sdk/pkg/eventbus"
)

// Module is a self-registering unit of the application (org, sales, ...).
type Module interface {
	Name() string
	Register(app Application) error
}

// Controller mounts HTTP handlers onto the shared router.
type Controller interface {
	Register(r *mux.Router)
	Key() string
}

// Application is the composition root shared by all modules.
type Application interface {
	Pool() *pgxpool.Pool
	Logger() *logrus.Logger
	EventPublisher() eventbus.EventBus

	RegisterModule(module Module) error
	RegisterServices(services ...interface{})
	RegisterControllers(controllers ...Controller)
	RegisterSchema(fs *embed.FS)

	Controllers() []Controller
	Middleware() []mux.MiddlewareFunc
	RegisterMiddleware(middleware ...mux.MiddlewareFunc)
	SchemaFS() []*embed.FS

	Service(service interface{}) interface{}
}

type ApplicationOptions struct {
	Pool     *pgxpool.Pool
	EventBus eventbus.EventBus
	Logger   *logrus.Logger
}

func New(opts *ApplicationOptions) Application {
	return &application{
		pool:      opts.Pool,
		eventBus:  opts.EventBus,
		logger:    opts.Logger,
		services:  make(map[reflect.Type]interface{}),
		schemaFSs: []*embed.FS{},
	}
}

type application struct {
	pool        *pgxpool.Pool
	eventBus    eventbus.EventBus
	logger      *logrus.Logger
	services    map[reflect.Type]interface{}
	controllers []Controller
	middleware  []mux.MiddlewareFunc
	schemaFSs   []*embed.FS
}

func (a *application) Pool() *pgxpool.Pool               { return a.pool }
func (a *application) Logger() *logrus.Logger            { return a.logger }
func (a *application) EventPublisher() eventbus.EventBus { return a.eventBus }
func (a *application) Controllers() []Controller         { return a.controllers }
func (a *application) Middleware() []mux.MiddlewareFunc  { return a.middleware }
func (a *application) SchemaFS() []*embed.FS             { return a.schemaFSs }

func (a *application) RegisterModule(module Module) error {
	if err := module.Register(a); err != nil {
		return fmt.Errorf("failed to register module %q: %w", module.Name(), err)
	}
	return nil
}

func (a *application) RegisterServices(services ...interface{}) {
	for _, service := range services {
		serviceType := reflect.TypeOf(service).Elem()
		a.services[serviceType] = service
	}
}

func (a *application) RegisterControllers(controllers ...Controller) {
	a.controllers = append(a.controllers, controllers...)
}

func (a *application) RegisterMiddleware(middleware ...mux.MiddlewareFunc) {
	a.middleware = append(a.middleware, middleware...)
}

func (a *application) RegisterSchema(fs *embed.FS) {
	a.schemaFSs = append(a.schemaFSs, fs)
}

// Service returns the registered service matching the argument's type.
// Panics when the service was never registered, which is a wiring bug.
func (a *application) Service(service interface{}) interface{} {
	serviceType := reflect.TypeOf(service)
	if serviceType.Kind() == reflect.Ptr {
		serviceType = serviceType.Elem()
	}
	svc, ok := a.services[serviceType]
	if !ok {
		panic(fmt.Sprintf("service %s not registered", serviceType.Name()))
	}
	return svc
}
