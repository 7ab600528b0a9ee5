package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	analyticsModel "tourly/internal/domains/analytics/model"
	analyticsService "tourly/internal/domains/analytics/service"
	"tourly/infras/otel"
	"tourly/shared/constant"
	"tourly/shared/timezone"
)

const (
	reportTitle = "Tour Booking Report"
)

type Report interface {
	Export(ctx context.Context) (filename string, data []byte, err error)
}

type serviceImpl struct {
	analytics analyticsService.Analytics
	otel      otel.Otel
}

func New(analytics analyticsService.Analytics, otel otel.Otel) Report {
	return &serviceImpl{
		analytics: analytics,
		otel:      otel,
	}
}

// Export aggregates a fresh stats snapshot and serializes it for download.
func (s *serviceImpl) Export(ctx context.Context) (filename string, data []byte, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Export")
	defer scope.End()
	defer scope.TraceIfError(err)

	stats, err := s.analytics.GetDashboardStats(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("failed to aggregate stats for report: %w", err)
	}

	data, err = BuildCSV(stats)
	if err != nil {
		return "", nil, err
	}

	return Filename(timezone.Now()), data, nil
}

// Filename follows the tour_report_<ISO-date>.csv pattern.
func Filename(now time.Time) string {
	return fmt.Sprintf("tour_report_%s.csv", now.Format(constant.DateOnlyFormat))
}

// BuildCSV serializes the stats snapshot: title block, generated-timestamp
// line, summary table, and the trailing 6-month table. Row order is fixed;
// quoting and quote-doubling follow RFC 4180.
func BuildCSV(stats analyticsModel.DashboardStats) ([]byte, error) {
	var buf bytes.Buffer

	writer := csv.NewWriter(&buf)

	rows := [][]string{
		{reportTitle},
		{"Generated", stats.GeneratedAt.Format(constant.DateFormat)},
		{},
		{"Metric", "Value"},
		{"Total Bookings", strconv.Itoa(stats.TotalBookings)},
		{"Total Revenue", formatAmount(stats.TotalRevenue)},
		{"Booking Trend", stats.BookingTrend},
		{"Revenue Trend", stats.RevenueTrend},
		{"Available Tours", strconv.Itoa(stats.AvailableTours)},
		{"Total Customers", strconv.Itoa(stats.TotalCustomers)},
		{},
		{"Month", "Bookings", "Revenue"},
	}

	for i := range stats.MonthLabels {
		rows = append(rows, []string{
			stats.MonthLabels[i],
			strconv.Itoa(stats.MonthlyBookings[i]),
			formatAmount(stats.MonthlyRevenue[i]),
		})
	}

	if err := writer.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write report rows: %w", err)
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush report: %w", err)
	}

	return buf.Bytes(), nil
}

func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
