package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "github.com/lunafeifei-creator/UAE-Telecom-Dashboard/internal/errors"
	custommw "github.com/lunafeifei-creator/UAE-Telecom-Dashboard/internal/middleware"
	"github.com/lunafeifei-creator/UAE-Telecom-Dashboard/pkg/contracts/domain"
)

// DashboardHandler serves the executive and operations dashboard views.
type DashboardHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *custommw.ValidationMiddleware
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
		validate:     custommw.NewValidationMiddleware(logger, errorHandler),
	}
}

// Routes returns the dashboard routes.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/executive", h.GetExecutive)
	r.Get("/operations", h.GetOperations)
	r.Get("/filters", h.GetFilters)

	return r
}

// ParseFilterSpec reads the dashboard filter parameters from a query string.
// start and end take YYYY-MM-DD dates; the membership filters repeat, e.g.
// ?city=Dubai&city=Sharjah. Absent parameters leave their field unconstrained.
// Membership and range constraints are declared as struct tags on FilterSpec
// and checked by ValidationMiddleware.ValidateStruct after parsing.
func ParseFilterSpec(q url.Values) (*domain.FilterSpec, error) {
	spec := &domain.FilterSpec{
		Cities:           q["city"],
		PlanTypes:        q["plan_type"],
		PlanNames:        q["plan_name"],
		TicketCategories: q["category"],
		Statuses:         q["status"],
	}

	parseDate := func(param string, dst *time.Time) error {
		raw := q.Get(param)
		if raw == "" {
			return nil
		}
		t, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return apierrors.ErrValidation(param,
				fmt.Sprintf("%s must be a date in YYYY-MM-DD format", param))
		}
		*dst = t
		return nil
	}
	if err := parseDate("start", &spec.Start); err != nil {
		return nil, err
	}
	if err := parseDate("end", &spec.End); err != nil {
		return nil, err
	}

	return spec, nil
}

// filterSpec parses and validates the filter parameters, writing the problem
// response itself on failure.
func (h *DashboardHandler) filterSpec(w http.ResponseWriter, r *http.Request) (*domain.FilterSpec, bool) {
	spec, err := ParseFilterSpec(r.URL.Query())
	if err == nil {
		err = h.validate.ValidateStruct(spec)
	}
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return nil, false
	}
	return spec, true
}

// GetExecutive handles GET /api/dashboard/executive
func (h *DashboardHandler) GetExecutive(w http.ResponseWriter, r *http.Request) {
	spec, ok := h.filterSpec(w, r)
	if !ok {
		return
	}

	view, err := h.service.ExecutiveView(r.Context(), spec)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to build executive view",
			slog.String("error", err.Error()),
		)
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   view,
	})
}

// GetOperations handles GET /api/dashboard/operations
func (h *DashboardHandler) GetOperations(w http.ResponseWriter, r *http.Request) {
	spec, ok := h.filterSpec(w, r)
	if !ok {
		return
	}

	view, err := h.service.OperationsView(r.Context(), spec)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to build operations view",
			slog.String("error", err.Error()),
		)
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   view,
	})
}

// GetFilters handles GET /api/dashboard/filters
func (h *DashboardHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	opts, err := h.service.FilterOptions(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to build filter options",
			slog.String("error", err.Error()),
		)
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   opts,
	})
}
