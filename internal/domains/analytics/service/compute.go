package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"tourly/internal/domains/analytics/model"
	bookingModel "tourly/internal/domains/booking/model"
	tourModel "tourly/internal/domains/tour/model"

	"github.com/montanaflynn/stats"
)

// locationPalette assigns chart colors to the top locations by rank.
var locationPalette = [model.TopLocations]string{
	"#0088FE",
	"#00C49F",
	"#FFBB28",
	"#FF8042",
	"#8884D8",
}

// Compute derives the dashboard view from raw row snapshots. It is a pure
// function of its inputs; "now" anchors the trailing 6-month window and the
// trend comparison.
func Compute(
	now time.Time,
	completed []bookingModel.Booking,
	allBookings []bookingModel.Booking,
	tours []tourModel.Tour,
	customerCount int,
) model.DashboardStats {
	res := model.DashboardStats{
		TotalCustomers: customerCount,
		GeneratedAt:    now,
	}

	res.TotalBookings = len(completed)

	revenues := make([]float64, len(completed))
	for i, booking := range completed {
		revenues[i] = booking.TotalPrice.InexactFloat64()
	}

	res.TotalRevenue = sum(revenues)

	var monthlyRevenue [model.MonthWindow][]float64

	for _, booking := range completed {
		offset := monthOffset(now, booking.CreatedAt)
		if offset < 0 || offset >= model.MonthWindow {
			continue
		}

		bucket := model.MonthWindow - 1 - offset
		res.MonthlyBookings[bucket]++
		monthlyRevenue[bucket] = append(monthlyRevenue[bucket], booking.TotalPrice.InexactFloat64())
	}

	for i := range monthlyRevenue {
		res.MonthlyRevenue[i] = sum(monthlyRevenue[i])
	}

	res.MonthLabels = monthLabels(now)

	res.StatusDistribution = make(map[string]int, len(bookingModel.Statuses))
	for _, status := range bookingModel.Statuses {
		res.StatusDistribution[string(status)] = 0
	}

	for _, booking := range allBookings {
		res.StatusDistribution[string(booking.Status)]++
	}

	res.CategoryDistribution = map[string]int{
		tourModel.TypeRegular: 0,
		tourModel.TypeCombo:   0,
	}

	locationCounts := make(map[string]int)

	for _, tour := range tours {
		if tour.Available {
			res.AvailableTours++
		}

		res.CategoryDistribution[tour.Type]++

		if tour.Location != "" {
			locationCounts[tour.Location]++
		}
	}

	res.TopLocations = topLocations(locationCounts)

	currentBucket := model.MonthWindow - 1
	previousBucket := model.MonthWindow - 2

	res.BookingTrend = Trend(float64(res.MonthlyBookings[currentBucket]), float64(res.MonthlyBookings[previousBucket]))
	res.RevenueTrend = Trend(res.MonthlyRevenue[currentBucket], res.MonthlyRevenue[previousBucket])

	return res
}

// Trend formats the month-over-month percentage change. The formula is
// intentionally unclamped: a small previous value against a large current one
// yields an arbitrarily large percentage.
func Trend(current, previous float64) string {
	if previous == 0 {
		if current == 0 {
			return "0%"
		}

		return "+100%"
	}

	pct := math.Round((current - previous) / previous * 100)

	return fmt.Sprintf("%+d%%", int(pct))
}

// monthOffset is the calendar-month distance from row to now. Offsets in
// [0, MonthWindow) land in the trailing window; everything else is dropped.
func monthOffset(now, row time.Time) int {
	return (now.Year()-row.Year())*12 + int(now.Month()) - int(row.Month())
}

func monthLabels(now time.Time) (labels [model.MonthWindow]string) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	for i := range labels {
		labels[i] = first.AddDate(0, i-(model.MonthWindow-1), 0).Format("Jan")
	}

	return labels
}

func topLocations(counts map[string]int) []model.TopLocation {
	ranked := make([]model.TopLocation, 0, len(counts))
	for location, count := range counts {
		ranked = append(ranked, model.TopLocation{Location: location, Count: count})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}

		return ranked[i].Location < ranked[j].Location
	})

	if len(ranked) > model.TopLocations {
		ranked = ranked[:model.TopLocations]
	}

	for i := range ranked {
		ranked[i].Color = locationPalette[i]
	}

	return ranked
}

func sum(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	total, err := stats.Sum(values)
	if err != nil {
		return 0
	}

	return total
}
