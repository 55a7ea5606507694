// internal/handlers/router.go
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sanjkatariya/infraFix/internal/auth"
	"github.com/sanjkatariya/infraFix/internal/config"
	"github.com/sanjkatariya/infraFix/internal/handlers/admin"
	"github.com/sanjkatariya/infraFix/internal/handlers/analytics"
	"github.com/sanjkatariya/infraFix/internal/handlers/assistant"
	"github.com/sanjkatariya/infraFix/internal/handlers/complaints"
	"github.com/sanjkatariya/infraFix/internal/handlers/crew"
	"github.com/sanjkatariya/infraFix/internal/handlers/inventory"
	"github.com/sanjkatariya/infraFix/internal/handlers/resources"
	"github.com/sanjkatariya/infraFix/internal/handlers/status"
	"github.com/sanjkatariya/infraFix/internal/handlers/workorders"
	httpserver "github.com/sanjkatariya/infraFix/internal/http"
	"github.com/sanjkatariya/infraFix/internal/middleware"
	"github.com/sanjkatariya/infraFix/internal/models"
	"github.com/sanjkatariya/infraFix/internal/repo"
	"github.com/sanjkatariya/infraFix/internal/security"
	"github.com/sanjkatariya/infraFix/internal/session"
)

// Deps are the long-lived services the routes are built on.
type Deps struct {
	Repo      repo.Repo
	Sessions  *session.Store
	Deny      *security.Denylist
	Assistant assistant.Chatter
}

// NewRouter builds the full handler: middleware chain, API routes under
// the configured base path and JSON 404/405 fallbacks.
func NewRouter(cfg config.Config, d Deps) http.Handler {
	mux := chi.NewRouter()

	mux.Use(middleware.RequestID(cfg.Security.RequestID.TrustHeader))
	mux.Use(middleware.OptionalAuth(d.Sessions, d.Deny))
	mux.Use(middleware.EnrichLogger)
	mux.Use(middleware.SlogRequestLogger)
	mux.Use(middleware.Recover)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	mux.Use(middleware.Denylist(d.Deny))
	if rl := cfg.Security.RateLimit; rl.Enabled {
		mux.Use(middleware.RateLimitWith(rl.RequestsPerMinute, rl.Burst, rl.TTL))
	}
	mux.Use(chimw.StripSlashes)

	mux.NotFound(notFound)
	mux.MethodNotAllowed(methodNotAllowed)

	if cfg.Server.BasePath == "" {
		RegisterRoutes(mux, d, cfg.Security.EnforceRoles)
		return mux
	}
	api := chi.NewRouter()
	api.NotFound(notFound)
	api.MethodNotAllowed(methodNotAllowed)
	RegisterRoutes(api, d, cfg.Security.EnforceRoles)
	mux.Mount(cfg.Server.BasePath, api)
	return mux
}

// RegisterRoutes wires every API route onto r. Literal sub-paths
// (/complaints/user/..., /crew/available/list) are registered next to the
// {id} routes; chi prefers static segments so they never reach Get.
func RegisterRoutes(r chi.Router, d Deps, enforceRoles bool) {
	c := complaints.New(d.Repo)
	wo := workorders.New(d.Repo)
	cr := crew.New(d.Repo)
	inv := inventory.New(d.Repo)
	res := resources.New(d.Repo)
	st := status.New(d.Repo)
	an := analytics.New(d.Repo)
	ah := auth.New(d.Sessions, d.Deny)

	// Admin-only writes, when role enforcement is on.
	adminOnly := func(next http.Handler) http.Handler { return next }
	if enforceRoles {
		adminOnly = middleware.RequireRole(models.RoleAdmin)
	}

	r.Get("/health", health)

	r.Route("/auth", func(sr chi.Router) {
		sr.Post("/login", ah.Login)
		sr.Post("/logout", ah.Logout)
		sr.With(middleware.RequireAuth).Get("/me", ah.Me)
	})

	r.Route("/complaints", func(sr chi.Router) {
		sr.Get("/", c.List)
		sr.Post("/", c.Create)
		sr.Get("/user/{userId}", c.ByUser)
		sr.Get("/{id}", c.Get)
		sr.Patch("/{id}", c.Update)
		sr.Patch("/{id}/status", c.UpdateStatus)
		sr.Delete("/{id}", c.Delete)
	})

	r.Route("/workorders", func(sr chi.Router) {
		sr.Get("/", wo.List)
		sr.Get("/complaint/{complaintId}", wo.ByComplaint)
		sr.Get("/{id}", wo.Get)
		sr.Group(func(w chi.Router) {
			w.Use(adminOnly)
			w.Post("/", wo.Create)
			w.Patch("/{id}", wo.Update)
			w.Patch("/{id}/status", wo.UpdateStatus)
			w.Delete("/{id}", wo.Delete)
		})
	})

	r.Route("/crew", func(sr chi.Router) {
		sr.Get("/", cr.List)
		sr.Get("/available/list", cr.Available)
		sr.Get("/{id}", cr.Get)
		sr.Group(func(w chi.Router) {
			w.Use(adminOnly)
			w.Post("/", cr.Create)
			w.Patch("/{id}", cr.Update)
			w.Patch("/{id}/status", cr.UpdateStatus)
			w.Delete("/{id}", cr.Delete)
		})
	})

	r.Route("/inventory", func(sr chi.Router) {
		sr.Get("/", inv.List)
		sr.Get("/category/{category}", inv.ByCategory)
		sr.Get("/{id}", inv.Get)
		sr.Group(func(w chi.Router) {
			w.Use(adminOnly)
			w.Post("/", inv.Create)
			w.Patch("/{id}", inv.Update)
			w.Patch("/{id}/stock", inv.UpdateStock)
			w.Delete("/{id}", inv.Delete)
		})
	})

	r.Route("/resources", func(sr chi.Router) {
		sr.Get("/", res.List)
		sr.Get("/{id}", res.Get)
		sr.Group(func(w chi.Router) {
			w.Use(adminOnly)
			w.Post("/", res.Create)
			w.Patch("/{id}", res.Update)
			w.Patch("/{id}/assign", res.Assign)
			w.Patch("/{id}/release", res.Release)
			w.Delete("/{id}", res.Delete)
		})
	})

	r.Route("/status", func(sr chi.Router) {
		sr.Get("/complaint/{id}", st.Complaint)
		sr.Get("/workorder/{id}", st.WorkOrder)
		sr.Get("/overview", st.Overview)
	})

	r.Route("/analytics", func(sr chi.Router) {
		sr.Get("/dashboard", an.Dashboard)
		sr.Get("/stats", an.Stats)
		sr.Get("/categories", an.Categories)
		sr.Get("/trends", an.Trends)
	})

	// Always admin-only, independent of enforceRoles.
	r.Route("/admin", func(sr chi.Router) {
		sr.Use(middleware.RequireAuth, middleware.RequireRole(models.RoleAdmin))
		sr.Get("/sessions", admin.ListSessionsHandler(d.Sessions))
	})

	if d.Assistant != nil {
		r.Post("/assistant/chat", assistant.New(d.Assistant).Chat)
	}
}

func health(w http.ResponseWriter, _ *http.Request) {
	httpserver.JSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "InfraFix API Server is running",
	})
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	httpserver.Fail(w, http.StatusNotFound, "Route not found")
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	httpserver.Fail(w, http.StatusMethodNotAllowed, "Method not allowed")
}
