package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sidelinehq/sideline-backend/api/controllers"
	"github.com/sidelinehq/sideline-backend/api/middleware"
	"github.com/sidelinehq/sideline-backend/internal/auth"
	"github.com/sidelinehq/sideline-backend/internal/authz"
	"github.com/sidelinehq/sideline-backend/internal/masquerade"
	"github.com/sidelinehq/sideline-backend/internal/users"
	"github.com/sidelinehq/sideline-backend/pkg/config"
	"github.com/sidelinehq/sideline-backend/pkg/db"
	"github.com/sidelinehq/sideline-backend/pkg/logger"
	"github.com/sidelinehq/sideline-backend/pkg/metrics"
)

// RouterParams bundles everything the HTTP surface needs.
type RouterParams struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Sessions    middleware.SessionChecker
	AuthService auth.Service
	UserService users.Service
	Memberships controllers.MembershipLister
	Authorizer  authz.Authorizer
	Masquerade  *masquerade.Manager
	Registry    *prometheus.Registry
}

func NewRouter(p RouterParams) http.Handler {
	r := chi.NewRouter()

	var httpMetrics *metrics.HTTPMetrics
	if p.Registry != nil {
		httpMetrics = metrics.NewHTTPMetrics(p.Registry)
	}

	r.Use(
		middleware.Recoverer(p.Logger),
		middleware.RequestID(p.Logger),
		middleware.Logging(p.Logger, httpMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(p.Config))
		r.Get("/ready", controllers.HealthReady(p.Config, p.DB, p.Logger))
	})

	if p.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.Login(p.AuthService, p.Logger))
	})

	rootPath := p.Config.App.RootPath

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(
			middleware.Auth(p.Config.JWT, p.Sessions, p.Logger),
			middleware.Masquerade(p.Masquerade, p.Logger),
		)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.UsersList(p.UserService, p.Authorizer, p.Logger))
			r.Post("/", controllers.UsersCreate(p.UserService, p.Authorizer, p.Logger))
			r.Get("/{userID}", controllers.UsersShow(p.UserService, p.Authorizer, p.Logger))
			r.Put("/{userID}", controllers.UsersUpdate(p.UserService, p.Authorizer, p.Logger))
			r.Delete("/{userID}", controllers.UsersDelete(p.UserService, p.Authorizer, p.Logger))
			r.Get("/{userID}/group-memberships", controllers.UserGroupMemberships(p.UserService, p.Memberships, p.Authorizer, p.Logger))
			r.Post("/{userID}/masquerade", controllers.MasqueradeStart(p.UserService, p.Masquerade, p.Authorizer, rootPath, p.Logger))
		})

		r.Delete("/masquerade", controllers.MasqueradeStop(p.Masquerade, rootPath, p.Logger))
	})

	return r
}
