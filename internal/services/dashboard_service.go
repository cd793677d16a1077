package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/lunafeifei-creator/UAE-Telecom-Dashboard/internal/analytics"
	"github.com/lunafeifei-creator/UAE-Telecom-Dashboard/internal/dataprocessing"
	"github.com/lunafeifei-creator/UAE-Telecom-Dashboard/pkg/contracts/domain"
)

// DashboardService answers dashboard queries against the shared dataset
// snapshot. Tenure and service tier depend on the evaluation time, so every
// query re-derives them from the immutable snapshot before filtering.
type DashboardService struct {
	store  *dataprocessing.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewDashboardService creates a dashboard service over the given store.
func NewDashboardService(store *dataprocessing.Store, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		store:  store,
		logger: logger.With(slog.String("service", "dashboard")),
		now:    time.Now,
	}
}

// views loads the snapshot, derives the time-dependent attributes and
// applies the filter spec.
func (s *DashboardService) views(ctx context.Context, spec *domain.FilterSpec) (*analytics.Views, error) {
	snap, err := s.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	derived := dataprocessing.Derive(snap.Tables, s.now())
	return analytics.BuildViews(derived, spec), nil
}

// ExecutiveView computes the revenue dashboard for one filter spec.
func (s *DashboardService) ExecutiveView(ctx context.Context, spec *domain.FilterSpec) (*analytics.ExecutiveView, error) {
	start := time.Now()
	views, err := s.views(ctx, spec)
	if err != nil {
		return nil, err
	}
	view := analytics.BuildExecutiveView(views)

	s.logger.DebugContext(ctx, "executive view computed",
		slog.Int("subscribers", len(views.Subscribers)),
		slog.Int("bills", len(views.Billing)),
		slog.String("duration", time.Since(start).String()),
	)
	return view, nil
}

// OperationsView computes the service-operations dashboard for one filter spec.
func (s *DashboardService) OperationsView(ctx context.Context, spec *domain.FilterSpec) (*analytics.OperationsView, error) {
	start := time.Now()
	views, err := s.views(ctx, spec)
	if err != nil {
		return nil, err
	}
	view := analytics.BuildOperationsView(views)

	s.logger.DebugContext(ctx, "operations view computed",
		slog.Int("tickets", len(views.Tickets)),
		slog.Int("outages", len(views.Outages)),
		slog.String("duration", time.Since(start).String()),
	)
	return view, nil
}

// FilterOptions returns the selectable filter values for the sidebar.
func (s *DashboardService) FilterOptions(ctx context.Context) (*analytics.FilterOptions, error) {
	snap, err := s.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.BuildFilterOptions(snap.Tables), nil
}

// FilteredViews exposes the raw filtered slices for export.
func (s *DashboardService) FilteredViews(ctx context.Context, spec *domain.FilterSpec) (*analytics.Views, error) {
	return s.views(ctx, spec)
}
