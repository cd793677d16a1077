package http

import (
	"context"

	"github.com/lunafeifei-creator/UAE-Telecom-Dashboard/internal/analytics"
	"github.com/lunafeifei-creator/UAE-Telecom-Dashboard/internal/services"
	"github.com/lunafeifei-creator/UAE-Telecom-Dashboard/pkg/contracts/domain"
)

// DashboardServiceInterface defines what the dashboard handlers need from
// the service layer. Narrow on purpose so tests can stub it.
type DashboardServiceInterface interface {
	ExecutiveView(ctx context.Context, spec *domain.FilterSpec) (*analytics.ExecutiveView, error)
	OperationsView(ctx context.Context, spec *domain.FilterSpec) (*analytics.OperationsView, error)
	FilterOptions(ctx context.Context) (*analytics.FilterOptions, error)
	FilteredViews(ctx context.Context, spec *domain.FilterSpec) (*analytics.Views, error)
}

// HealthServiceInterface defines the health check contract.
type HealthServiceInterface interface {
	Check(ctx context.Context) *services.HealthStatus
}
