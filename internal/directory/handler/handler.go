package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"minnetherapy/internal/directory/models"
	"minnetherapy/internal/directory/service"
	id "minnetherapy/pkg/domain"
	dErrors "minnetherapy/pkg/domain-errors"
	"minnetherapy/pkg/platform/httputil"
	"minnetherapy/pkg/requestcontext"
)

// Service defines the directory operations the handler needs.
type Service interface {
	Search(ctx context.Context, q service.Query) ([]models.Provider, error)
	GetProvider(ctx context.Context, providerID id.ProviderID) (*models.Provider, error)
	GetOwnProfile(ctx context.Context, userID id.UserID) (*models.Provider, error)
	UpdateProfile(ctx context.Context, userID id.UserID, update models.ProfileUpdate) (*models.Provider, error)
	UpdateAvailability(ctx context.Context, userID id.UserID, slots []models.AvailabilitySlot) ([]models.AvailabilitySlot, error)
	ListSpecializations(ctx context.Context) ([]models.Specialization, error)
}

// Handler wires directory endpoints to the directory service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterPublic mounts the anonymous read endpoints.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/api/therapists", h.HandleSearch)
	r.Get("/api/specializations", h.HandleListSpecializations)
	r.Get("/api/providers/{id}", h.HandleGetProvider)
}

// RegisterSelfService mounts the provider's own-profile endpoints. The router
// must already require an authenticated PROVIDER.
func (h *Handler) RegisterSelfService(r chi.Router) {
	r.Get("/api/providers/me", h.HandleGetOwnProfile)
	r.Put("/api/providers/me", h.HandleUpdateProfile)
	r.Put("/api/providers/me/availability", h.HandleUpdateAvailability)
}

// HandleSearch handles GET /api/therapists.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	criteria, geoFilter, err := parseSearchQuery(r.URL.Query())
	if err != nil {
		h.logger.WarnContext(ctx, "invalid search parameters",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	results, err := h.service.Search(ctx, service.Query{Criteria: criteria, Geo: geoFilter})
	if err != nil {
		h.logger.ErrorContext(ctx, "therapist search failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "therapist search",
		"request_id", requestID,
		"geo", geoFilter != nil,
		"results", len(results),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, toProviders(results))
}

// HandleListSpecializations handles GET /api/specializations.
func (h *Handler) HandleListSpecializations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	specs, err := h.service.ListSpecializations(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list specializations failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toSpecializations(specs))
}

// HandleGetProvider handles GET /api/providers/{id}.
func (h *Handler) HandleGetProvider(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	providerID, err := id.ParseProviderID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "provider not found"))
		return
	}
	p, err := h.service.GetProvider(ctx, providerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toProvider(p))
}

// HandleGetOwnProfile handles GET /api/providers/me.
func (h *Handler) HandleGetOwnProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.requireUser(w, ctx)
	if !ok {
		return
	}
	p, err := h.service.GetOwnProfile(ctx, userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toProfile(p))
}

// HandleUpdateProfile handles PUT /api/providers/me.
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	userID, ok := h.requireUser(w, ctx)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateProfileRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	p, err := h.service.UpdateProfile(ctx, userID, req.toModel())
	if err != nil {
		h.logger.WarnContext(ctx, "provider profile update failed",
			"request_id", requestID,
			"user_id", userID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toProfile(p))
}

// HandleUpdateAvailability handles PUT /api/providers/me/availability.
func (h *Handler) HandleUpdateAvailability(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	userID, ok := h.requireUser(w, ctx)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateAvailabilityRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	slots, err := h.service.UpdateAvailability(ctx, userID, req.toModel())
	if err != nil {
		h.logger.WarnContext(ctx, "availability update failed",
			"request_id", requestID,
			"user_id", userID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, AvailabilityResponse{Slots: toSlots(slots)})
}

func (h *Handler) requireUser(w http.ResponseWriter, ctx context.Context) (id.UserID, bool) {
	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return id.UserID{}, false
	}
	return userID, true
}
