// Package httptransport assembles the chi router that fronts the directory,
// auth and page routes.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	authhandler "minnetherapy/internal/auth/handler"
	dirhandler "minnetherapy/internal/directory/handler"
	platformmetrics "minnetherapy/internal/platform/metrics"
	rlmw "minnetherapy/internal/ratelimit/middleware"
	rlmodels "minnetherapy/internal/ratelimit/models"
	id "minnetherapy/pkg/domain"
	dErrors "minnetherapy/pkg/domain-errors"
	"minnetherapy/pkg/platform/httputil"
	authmw "minnetherapy/pkg/platform/middleware/auth"
	"minnetherapy/pkg/platform/middleware/logging"
	"minnetherapy/pkg/platform/middleware/metadata"
	"minnetherapy/pkg/platform/middleware/request"
	"minnetherapy/pkg/platform/middleware/requesttime"
	"minnetherapy/pkg/platform/middleware/rolegate"
	"minnetherapy/pkg/requestcontext"
)

const healthTimeout = 2 * time.Second

// HealthCheck pings one backing dependency.
type HealthCheck func(ctx context.Context) error

// Deps carries everything the router mounts. Metrics, MetricsHandler and
// Health are optional.
type Deps struct {
	Logger         *slog.Logger
	Directory      *dirhandler.Handler
	Auth           *authhandler.Handler
	Validator      authmw.JWTValidator
	RateLimit      *rlmw.Middleware
	Metrics        *platformmetrics.Metrics
	MetricsHandler http.Handler
	Health         map[string]HealthCheck
	// TracerProvider defaults to the global provider.
	TracerProvider trace.TracerProvider
}

// NewRouter builds the full handler tree, wrapped for OpenTelemetry.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(logging.AccessLog(d.Logger))
	r.Use(d.Metrics.Middleware)
	r.Use(routeSpan)

	r.Get("/health", healthHandler(d.Health, d.Logger))
	if d.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", d.MetricsHandler)
	}

	r.Group(func(r chi.Router) {
		r.Use(d.RateLimit.GlobalThrottle())

		r.Group(func(r chi.Router) {
			r.Use(d.RateLimit.RateLimit(rlmodels.ClassSearch))
			d.Directory.RegisterPublic(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(d.RateLimit.RateLimit(rlmodels.ClassAuth))
			d.Auth.Register(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(authmw.RequireAuth(d.Validator, d.Logger))
			r.Use(authmw.RequireRole(d.Logger, id.RoleProvider))
			d.Directory.RegisterSelfService(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(rolegate.Middleware(d.Validator, d.Logger))
			r.Get("/", page("home"))
			r.Get(rolegate.LoginPath, page("login"))
			r.Route("/provider", func(r chi.Router) {
				r.Get("/dashboard", page("provider_dashboard"))
				r.Get("/*", pageNotFound)
			})
			r.Route("/patient", func(r chi.Router) {
				r.Get("/dashboard", page("patient_dashboard"))
				r.Get("/*", pageNotFound)
			})
			r.Route("/admin", func(r chi.Router) {
				r.Get("/", page("admin"))
				r.Get("/*", pageNotFound)
			})
		})
	})

	opts := []otelhttp.Option{
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method
		}),
	}
	if d.TracerProvider != nil {
		opts = append(opts, otelhttp.WithTracerProvider(d.TracerProvider))
	}
	return otelhttp.NewHandler(r, "directory", opts...)
}

// routeSpan renames the otelhttp server span to the matched chi route pattern
// once routing has run, keeping span names bounded for parameterised paths.
func routeSpan(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
		rctx := chi.RouteContext(r.Context())
		if rctx == nil {
			return
		}
		if pattern := rctx.RoutePattern(); pattern != "" {
			span := trace.SpanFromContext(r.Context())
			span.SetName(r.Method + " " + pattern)
			span.SetAttributes(attribute.String("http.route", pattern))
		}
	})
}

// PageResponse describes a page route. Rendering happens client-side.
type PageResponse struct {
	Page string `json:"page"`
	Role string `json:"role,omitempty"`
}

// pageNotFound answers paths inside a role area that have no page, after the
// gate has let the caller through.
func pageNotFound(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "page not found"))
}

func page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := requestcontext.Role(r.Context())
		httputil.WriteJSON(w, http.StatusOK, PageResponse{Page: name, Role: string(role)})
	}
}

// HealthResponse reports overall and per-dependency status.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthHandler(checks map[string]HealthCheck, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		resp := HealthResponse{Status: "ok", Checks: make(map[string]string, len(checks))}
		status := http.StatusOK
		for name, check := range checks {
			if err := check(ctx); err != nil {
				logger.WarnContext(ctx, "health check failed", "dependency", name, "error", err)
				resp.Checks[name] = "unavailable"
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
		httputil.WriteJSON(w, status, resp)
	}
}
