package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"runtime/debug"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/voltify-hq/voltify-sdk/modules"
	"github.com/voltify-hq/voltify-sdk/pkg/application"
	"github.com/voltify-hq/voltify-sdk/pkg/authz"
	"github.com/voltify-hq/voltify-sdk/pkg/configuration"
	"github.com/voltify-hq/voltify-sdk/pkg/eventbus"
	"github.com/voltify-hq/voltify-sdk/pkg/middleware"
	"github.com/voltify-hq/voltify-sdk/pkg/server"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(conf.Database.Opts)
	if err != nil {
		logger.WithError(err).Fatal("failed to parse database config")
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to database")
	}
	defer pool.Close()

	// Fail fast on a bad model or policy file instead of on first request.
	authz.Use()

	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	if err := modules.Load(app, modules.BuiltInModules...); err != nil {
		logger.WithError(err).Fatal("failed to load modules")
	}
	if err := application.ApplySchemas(ctx, pool, app.SchemaFS()); err != nil {
		logger.WithError(err).Fatal("failed to apply schemas")
	}

	app.RegisterMiddleware(
		middleware.WithPool(pool),
		middleware.WithActor(),
		middleware.RequestLogger(logger),
	)
	app.RegisterControllers(newOpsController(conf, pool))

	srv := server.NewHTTPServer(
		app,
		http.NotFoundHandler(),
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}),
	)

	logger.Infof("listening on %s", conf.SocketAddress)
	if err := srv.Start(conf.SocketAddress); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
