package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/voltify-hq/voltify-sdk/pkg/configuration"
)

// opsController mounts the operational endpoints: liveness, readiness
// (database ping) and, when enabled, the prometheus scrape path.
type opsController struct {
	conf *configuration.Configuration
	pool *pgxpool.Pool
}

func newOpsController(conf *configuration.Configuration, pool *pgxpool.Pool) opsController {
	return opsController{conf: conf, pool: pool}
}

func (c opsController) Key() string { return "ops" }

func (c opsController) Register(r *mux.Router) {
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	r.HandleFunc("/ready", func(w http.ResponseWriter, req *http.Request) {
		if err := c.pool.Ping(req.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	}).Methods(http.MethodGet)

	if c.conf.Prometheus.Enabled {
		r.Handle(c.conf.Prometheus.Path, promhttp.Handler()).Methods(http.MethodGet)
	}
}
