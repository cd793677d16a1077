package dataprocessing

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/lunafeifei-creator/UAE-Telecom-Dashboard/internal/errors"
	"github.com/lunafeifei-creator/UAE-Telecom-Dashboard/pkg/contracts/domain"
)

// Table names used as keys into the source-file map.
const (
	TableSubscribers = "subscribers"
	TableUsage       = "usage_records"
	TableBilling     = "billing"
	TableTickets     = "tickets"
	TableOutages     = "network_outages"
)

// dateTimeLayouts are tried in order when parsing timestamp cells. Outage
// start and end times carry a time component, every other date is plain.
var dateTimeLayouts = []string{
	"2006-01-02 15:04:05",
	time.DateOnly,
	time.RFC3339,
}

// Loader reads the five source tables from disk. CSV and XLSX inputs are
// supported, chosen by file extension.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a loader with the given logger.
func NewLoader(logger *slog.Logger) *Loader {
	return &Loader{
		logger: logger.With(slog.String("component", "loader")),
	}
}

// Load reads all five tables concurrently. A missing or unreadable file is
// fatal: the dashboard cannot start on a partial dataset.
func (l *Loader) Load(ctx context.Context, sources map[string]string) (*domain.Tables, error) {
	start := time.Now()
	tables := &domain.Tables{}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := l.readRows(ctx, sources[TableSubscribers])
		if err != nil {
			return err
		}
		tables.Subscribers, err = parseSubscribers(rows)
		return err
	})
	g.Go(func() error {
		rows, err := l.readRows(ctx, sources[TableUsage])
		if err != nil {
			return err
		}
		tables.Usage, err = parseUsage(rows)
		return err
	})
	g.Go(func() error {
		rows, err := l.readRows(ctx, sources[TableBilling])
		if err != nil {
			return err
		}
		tables.Billing, err = parseBilling(rows)
		return err
	})
	g.Go(func() error {
		rows, err := l.readRows(ctx, sources[TableTickets])
		if err != nil {
			return err
		}
		tables.Tickets, err = parseTickets(rows)
		return err
	})
	g.Go(func() error {
		rows, err := l.readRows(ctx, sources[TableOutages])
		if err != nil {
			return err
		}
		tables.Outages, err = parseOutages(rows)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	l.logger.InfoContext(ctx, "source tables loaded",
		slog.Int("subscribers", len(tables.Subscribers)),
		slog.Int("usage_records", len(tables.Usage)),
		slog.Int("billing", len(tables.Billing)),
		slog.Int("tickets", len(tables.Tickets)),
		slog.Int("outages", len(tables.Outages)),
		slog.String("duration", time.Since(start).String()),
	)

	return tables, nil
}

// SourceModTimes stats every source file and returns its modification time.
// Used by the store to detect stale caches.
func SourceModTimes(sources map[string]string) (map[string]time.Time, error) {
	mtimes := make(map[string]time.Time, len(sources))
	for name, path := range sources {
		info, err := os.Stat(path)
		if err != nil {
			return nil, apperrors.NewConfigError(
				fmt.Sprintf("source file for %s is not accessible: %s", name, path), err)
		}
		mtimes[name] = info.ModTime()
	}
	return mtimes, nil
}

// readRows reads a tabular file into string rows, header included.
func (l *Loader) readRows(ctx context.Context, path string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return l.readCSV(path)
	case ".xlsx":
		return l.readXLSX(path)
	default:
		return nil, apperrors.NewConfigError(
			fmt.Sprintf("unsupported source file format: %s", path), nil)
	}
}

func (l *Loader) readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewConfigError(
			fmt.Sprintf("failed to open source file: %s", path), err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, apperrors.NewParsingError(
			fmt.Sprintf("failed to read CSV file: %s", path), err)
	}
	return rows, nil
}

func (l *Loader) readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewConfigError(
			fmt.Sprintf("failed to open source file: %s", path), err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewParsingError(
			fmt.Sprintf("no sheets in workbook: %s", path), nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.NewParsingError(
			fmt.Sprintf("failed to read sheet %q in %s", sheets[0], path), err)
	}
	return rows, nil
}

// columnIndex maps lowercased, trimmed header names to their positions.
func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return cols
}

// rowReader wraps one data row with typed, missing-tolerant accessors.
// Unparseable numerics read as zero and unparseable dates as nil, matching
// the cleaning pipeline's treat-as-missing policy.
type rowReader struct {
	cols map[string]int
	row  []string
}

func (r rowReader) getString(col string) string {
	if idx, ok := r.cols[col]; ok && idx < len(r.row) {
		return strings.TrimSpace(r.row[idx])
	}
	return ""
}

func (r rowReader) getFloat(col string) float64 {
	v, _ := strconv.ParseFloat(strings.ReplaceAll(r.getString(col), ",", ""), 64)
	return v
}

func (r rowReader) getFloatPtr(col string) *float64 {
	s := strings.ReplaceAll(r.getString(col), ",", "")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func (r rowReader) getInt(col string) int {
	s := strings.ReplaceAll(r.getString(col), ",", "")
	// XLSX numeric cells sometimes render integers as "24.0"
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return int(v)
	}
	return 0
}

func (r rowReader) getDatePtr(col string) *time.Time {
	s := r.getString(col)
	if s == "" {
		return nil
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func parseSubscribers(rows [][]string) ([]domain.Subscriber, error) {
	if len(rows) == 0 {
		return nil, apperrors.NewParsingError("subscribers table has no header row", nil)
	}
	cols := columnIndex(rows[0])

	subs := make([]domain.Subscriber, 0, len(rows)-1)
	for _, row := range rows[1:] {
		r := rowReader{cols: cols, row: row}
		id := r.getString("subscriber_id")
		if id == "" {
			continue
		}
		subs = append(subs, domain.Subscriber{
			ID:             id,
			Name:           r.getString("subscriber_name"),
			City:           r.getString("city"),
			Zone:           r.getString("zone"),
			PlanType:       r.getString("plan_type"),
			PlanName:       r.getString("plan_name"),
			MonthlyCharge:  r.getFloat("monthly_charge"),
			ActivationDate: r.getDatePtr("activation_date"),
			Status:         r.getString("status"),
		})
	}
	return subs, nil
}

func parseUsage(rows [][]string) ([]domain.UsageRecord, error) {
	if len(rows) == 0 {
		return nil, apperrors.NewParsingError("usage_records table has no header row", nil)
	}
	cols := columnIndex(rows[0])

	usage := make([]domain.UsageRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		r := rowReader{cols: cols, row: row}
		id := r.getString("usage_id")
		if id == "" {
			continue
		}
		usage = append(usage, domain.UsageRecord{
			ID:             id,
			SubscriberID:   r.getString("subscriber_id"),
			UsageDate:      r.getDatePtr("usage_date"),
			DataUsageGB:    r.getFloatPtr("data_usage_gb"),
			VoiceMinutes:   r.getInt("voice_minutes"),
			SMSCount:       r.getInt("sms_count"),
			RoamingCharges: r.getFloat("roaming_charges"),
			AddonCharges:   r.getFloat("addon_charges"),
		})
	}
	return usage, nil
}

func parseBilling(rows [][]string) ([]domain.BillingRecord, error) {
	if len(rows) == 0 {
		return nil, apperrors.NewParsingError("billing table has no header row", nil)
	}
	cols := columnIndex(rows[0])

	billing := make([]domain.BillingRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		r := rowReader{cols: cols, row: row}
		id := r.getString("bill_id")
		if id == "" {
			continue
		}
		billing = append(billing, domain.BillingRecord{
			ID:               id,
			SubscriberID:     r.getString("subscriber_id"),
			BillingMonth:     r.getDatePtr("billing_month"),
			BillAmount:       r.getFloat("bill_amount"),
			PaymentStatus:    r.getString("payment_status"),
			PaymentDate:      r.getDatePtr("payment_date"),
			CreditAdjustment: r.getFloat("credit_adjustment"),
			AdjustmentReason: r.getString("adjustment_reason"),
		})
	}
	return billing, nil
}

func parseTickets(rows [][]string) ([]domain.Ticket, error) {
	if len(rows) == 0 {
		return nil, apperrors.NewParsingError("tickets table has no header row", nil)
	}
	cols := columnIndex(rows[0])

	tickets := make([]domain.Ticket, 0, len(rows)-1)
	for _, row := range rows[1:] {
		r := rowReader{cols: cols, row: row}
		id := r.getString("ticket_id")
		if id == "" {
			continue
		}
		tickets = append(tickets, domain.Ticket{
			ID:             id,
			SubscriberID:   r.getString("subscriber_id"),
			TicketDate:     r.getDatePtr("ticket_date"),
			Channel:        r.getString("ticket_channel"),
			Category:       r.getString("ticket_category"),
			Priority:       r.getString("priority"),
			Status:         r.getString("status"),
			ResolutionDate: r.getDatePtr("resolution_date"),
			SLATargetHours: r.getFloat("sla_target_hours"),
			AssignedTeam:   r.getString("assigned_team"),
			City:           r.getString("city"),
			Zone:           r.getString("zone"),
		})
	}
	return tickets, nil
}

func parseOutages(rows [][]string) ([]domain.Outage, error) {
	if len(rows) == 0 {
		return nil, apperrors.NewParsingError("network_outages table has no header row", nil)
	}
	cols := columnIndex(rows[0])

	outages := make([]domain.Outage, 0, len(rows)-1)
	for _, row := range rows[1:] {
		r := rowReader{cols: cols, row: row}
		id := r.getString("outage_id")
		if id == "" {
			continue
		}
		outages = append(outages, domain.Outage{
			ID:                  id,
			Zone:                r.getString("zone"),
			City:                r.getString("city"),
			OutageDate:          r.getDatePtr("outage_date"),
			StartTime:           r.getDatePtr("outage_start_time"),
			EndTime:             r.getDatePtr("outage_end_time"),
			DurationMins:        r.getFloatPtr("outage_duration_mins"),
			Type:                r.getString("outage_type"),
			AffectedSubscribers: r.getInt("affected_subscribers"),
		})
	}
	return outages, nil
}
