package services

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"time"

	"github.com/lunafeifei-creator/UAE-Telecom-Dashboard/internal/dataprocessing"
)

// HealthService reports service liveness, source-file availability and the
// state of the cached dataset.
type HealthService struct {
	version   string
	sources   map[string]string
	store     *dataprocessing.Store
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus is the health endpoint payload.
type HealthStatus struct {
	Status        string                        `json:"status"`
	Timestamp     time.Time                     `json:"timestamp"`
	Version       string                        `json:"version"`
	UptimeSeconds float64                       `json:"uptime_seconds"`
	GoVersion     string                        `json:"go_version"`
	DataLoaded    bool                          `json:"data_loaded"`
	LoadedAt      *time.Time                    `json:"data_loaded_at,omitempty"`
	TableCounts   map[string]int                `json:"table_counts,omitempty"`
	CleaningStats *dataprocessing.CleaningStats `json:"cleaning_stats,omitempty"`
	MissingFiles  []string                      `json:"missing_source_files,omitempty"`
}

// NewHealthService creates a health service.
func NewHealthService(version string, sources map[string]string, store *dataprocessing.Store, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		sources:   sources,
		store:     store,
		startTime: time.Now(),
		logger:    logger.With(slog.String("service", "health")),
	}
}

// Check builds the current health status. The check never triggers the
// initial dataset load; once a snapshot exists it is read through the store,
// which may refresh it when the source files changed on disk.
func (s *HealthService) Check(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:        "healthy",
		Timestamp:     time.Now(),
		Version:       s.version,
		UptimeSeconds: time.Since(s.startTime).Seconds(),
		GoVersion:     runtime.Version(),
		DataLoaded:    s.store.Loaded(),
	}

	for name, path := range s.sources {
		if _, err := os.Stat(path); err != nil {
			status.MissingFiles = append(status.MissingFiles, name)
		}
	}
	sort.Strings(status.MissingFiles)
	if len(status.MissingFiles) > 0 {
		status.Status = "degraded"
		s.logger.WarnContext(ctx, "source files missing",
			slog.Any("tables", status.MissingFiles))
	}

	if status.DataLoaded {
		if snap, err := s.store.Get(ctx); err == nil {
			status.LoadedAt = &snap.LoadedAt
			status.TableCounts = snap.Tables.Counts()
			status.CleaningStats = snap.Stats
		}
	}

	return status
}
