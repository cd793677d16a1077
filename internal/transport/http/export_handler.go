package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/lunafeifei-creator/UAE-Telecom-Dashboard/internal/errors"
	"github.com/lunafeifei-creator/UAE-Telecom-Dashboard/internal/exporter"
	custommw "github.com/lunafeifei-creator/UAE-Telecom-Dashboard/internal/middleware"
)

// ExportHandler serves filtered dashboard views as CSV or Excel downloads.
type ExportHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	query        *custommw.QueryParamValidator
	validate     *custommw.ValidationMiddleware
}

// NewExportHandler creates an export handler.
func NewExportHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ExportHandler {
	return &ExportHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "export_handler")),
		errorHandler: errorHandler,
		query:        custommw.NewQueryParamValidator(logger, errorHandler),
		validate:     custommw.NewValidationMiddleware(logger, errorHandler),
	}
}

// Routes returns the export routes.
func (h *ExportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{view}", h.Export)
	return r
}

// Export handles GET /api/export/{view}?format=csv|xlsx plus the standard
// dashboard filter parameters.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	view := chi.URLParam(r, "view")
	format, ok := h.query.ValidateEnum(w, r, "format", []string{"csv", "xlsx"}, "csv")
	if !ok {
		return
	}

	spec, err := ParseFilterSpec(r.URL.Query())
	if err == nil {
		err = h.validate.ValidateStruct(spec)
	}
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	var tables []exporter.Table
	switch view {
	case "executive":
		ev, err := h.service.ExecutiveView(r.Context(), spec)
		if err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}
		tables = exporter.ExecutiveTables(ev)
	case "operations":
		ov, err := h.service.OperationsView(r.Context(), spec)
		if err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}
		tables = exporter.OperationsTables(ov)
	case "dataset":
		fv, err := h.service.FilteredViews(r.Context(), spec)
		if err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}
		tables = exporter.DatasetTables(fv)
	default:
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("view",
			fmt.Sprintf("unknown view %q, expected executive, operations or dataset", view)))
		return
	}

	filename := fmt.Sprintf("%s-dashboard-%s.%s", view, time.Now().Format("20060102"), format)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	var writeErr error
	if format == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		writeErr = exporter.WriteCSV(w, tables)
	} else {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		writeErr = exporter.WriteXLSX(w, tables)
	}
	if writeErr != nil {
		// Headers are already on the wire, all we can do is log.
		h.logger.ErrorContext(r.Context(), "export write failed",
			slog.String("view", view),
			slog.String("format", format),
			slog.String("error", writeErr.Error()),
		)
	}
}
