package service_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analyticsModel "tourly/internal/domains/analytics/model"
	"tourly/internal/domains/report/service"
)

func sampleStats() analyticsModel.DashboardStats {
	return analyticsModel.DashboardStats{
		TotalBookings:   42,
		TotalRevenue:    12345.5,
		AvailableTours:  7,
		TotalCustomers:  19,
		MonthLabels:     [analyticsModel.MonthWindow]string{"Mar", "Apr", "May", "Jun", "Jul", "Aug"},
		MonthlyBookings: [analyticsModel.MonthWindow]int{1, 0, 0, 3, 5, 2},
		MonthlyRevenue:  [analyticsModel.MonthWindow]float64{400, 0, 0, 900, 1500.25, 600},
		BookingTrend:    "-60%",
		RevenueTrend:    "-60%",
		GeneratedAt:     time.Date(2025, 8, 15, 10, 30, 0, 0, time.UTC),
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2025, 8, 15, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, "tour_report_2025-08-15.csv", service.Filename(now))
}

func TestBuildCSV_RowLayout(t *testing.T) {
	data, err := service.BuildCSV(sampleStats())
	require.NoError(t, err)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	require.NoError(t, err)

	// The reader drops the blank separator lines, leaving title, generated
	// line, summary header plus six metrics, and month header plus six rows.
	require.Len(t, records, 16)

	assert.Equal(t, []string{"Tour Booking Report"}, records[0])
	assert.Equal(t, []string{"Generated", "2025-08-15T10:30:00Z"}, records[1])
	assert.Equal(t, []string{"Metric", "Value"}, records[2])
	assert.Equal(t, []string{"Total Bookings", "42"}, records[3])
	assert.Equal(t, []string{"Total Revenue", "12345.50"}, records[4])
	assert.Equal(t, []string{"Booking Trend", "-60%"}, records[5])
	assert.Equal(t, []string{"Revenue Trend", "-60%"}, records[6])
	assert.Equal(t, []string{"Available Tours", "7"}, records[7])
	assert.Equal(t, []string{"Total Customers", "19"}, records[8])
	assert.Equal(t, []string{"Month", "Bookings", "Revenue"}, records[9])
	assert.Equal(t, []string{"Mar", "1", "400.00"}, records[10])
	assert.Equal(t, []string{"Jul", "5", "1500.25"}, records[14])
	assert.Equal(t, []string{"Aug", "2", "600.00"}, records[15])
}

func TestBuildCSV_QuotingRoundTrip(t *testing.T) {
	// Trend strings are free text as far as the serializer is concerned;
	// commas and quotes must survive a parse round-trip per RFC 4180.
	stats := sampleStats()
	stats.BookingTrend = `up, sharply ("spike")`

	data, err := service.BuildCSV(stats)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"up, sharply (""spike"")"`)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"Booking Trend", `up, sharply ("spike")`}, records[5])
}
