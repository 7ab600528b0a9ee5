package service_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"tourly/internal/domains/analytics/model"
	"tourly/internal/domains/analytics/service"
	bookingModel "tourly/internal/domains/booking/model"
	tourModel "tourly/internal/domains/tour/model"
)

func completedBooking(createdAt time.Time, price int64) bookingModel.Booking {
	return bookingModel.Booking{
		CreatedAt:  createdAt,
		TotalPrice: decimal.NewFromInt(price),
		Status:     bookingModel.StatusCompleted,
	}
}

func TestCompute_MonthlyBuckets(t *testing.T) {
	// Anchor mid-month so AddDate arithmetic has no end-of-month surprises.
	now := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)

	// One completed booking per calendar-month offset. Offsets 0..5 land in
	// buckets 5..0; older rows fall out of the window entirely.
	completed := []bookingModel.Booking{
		completedBooking(time.Date(2025, 8, 3, 0, 0, 0, 0, time.UTC), 100),  // offset 0 -> bucket 5
		completedBooking(time.Date(2025, 7, 28, 0, 0, 0, 0, time.UTC), 200), // offset 1 -> bucket 4
		completedBooking(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), 300),  // offset 2 -> bucket 3
		completedBooking(time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), 400), // offset 5 -> bucket 0
		completedBooking(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), 500),  // offset 6 -> dropped
		completedBooking(time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC), 600), // a year back -> dropped
	}

	res := service.Compute(now, completed, nil, nil, 0)

	assert.Equal(t, [model.MonthWindow]int{1, 0, 0, 1, 1, 1}, res.MonthlyBookings)
	assert.Equal(t, [model.MonthWindow]float64{400, 0, 0, 300, 200, 100}, res.MonthlyRevenue)

	// Dropped rows still count toward the totals.
	assert.Equal(t, 6, res.TotalBookings)
	assert.InDelta(t, 2100, res.TotalRevenue, 0.001)

	assert.Equal(t, [model.MonthWindow]string{"Mar", "Apr", "May", "Jun", "Jul", "Aug"}, res.MonthLabels)
}

func TestCompute_MonthLabelsAcrossYearBoundary(t *testing.T) {
	now := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)

	res := service.Compute(now, nil, nil, nil, 0)

	assert.Equal(t, [model.MonthWindow]string{"Sep", "Oct", "Nov", "Dec", "Jan", "Feb"}, res.MonthLabels)
}

func TestCompute_StatusDistribution(t *testing.T) {
	all := []bookingModel.Booking{
		{Status: bookingModel.StatusPending},
		{Status: bookingModel.StatusPending},
		{Status: bookingModel.StatusConfirmed},
		{Status: bookingModel.StatusCancelled},
	}

	res := service.Compute(time.Now(), nil, all, nil, 0)

	assert.Equal(t, 2, res.StatusDistribution[string(bookingModel.StatusPending)])
	assert.Equal(t, 1, res.StatusDistribution[string(bookingModel.StatusConfirmed)])
	assert.Equal(t, 1, res.StatusDistribution[string(bookingModel.StatusCancelled)])

	// Every lifecycle state appears, including zero-count ones.
	assert.Equal(t, 0, res.StatusDistribution[string(bookingModel.StatusCompleted)])
	assert.Equal(t, 0, res.StatusDistribution[string(bookingModel.StatusCancelRequested)])
	assert.Len(t, res.StatusDistribution, len(bookingModel.Statuses))
}

func TestCompute_ToursAndLocations(t *testing.T) {
	tours := []tourModel.Tour{
		{Type: tourModel.TypeRegular, Location: "El Nido", Available: true},
		{Type: tourModel.TypeRegular, Location: "El Nido", Available: false},
		{Type: tourModel.TypeCombo, Location: "Coron", Available: true},
		{Type: tourModel.TypeRegular, Location: "Baguio", Available: true},
		{Type: tourModel.TypeCombo, Location: "Cebu", Available: true},
		{Type: tourModel.TypeRegular, Location: "Davao", Available: true},
		{Type: tourModel.TypeRegular, Location: "Iloilo", Available: true},
		{Type: tourModel.TypeRegular, Location: "", Available: true},
	}

	res := service.Compute(time.Now(), nil, nil, tours, 42)

	assert.Equal(t, 42, res.TotalCustomers)
	assert.Equal(t, 7, res.AvailableTours)
	assert.Equal(t, 6, res.CategoryDistribution[tourModel.TypeRegular])
	assert.Equal(t, 2, res.CategoryDistribution[tourModel.TypeCombo])

	// Six distinct locations, capped at five; El Nido leads with two tours,
	// the rest tie and are ordered by name.
	assert.Len(t, res.TopLocations, model.TopLocations)
	assert.Equal(t, "El Nido", res.TopLocations[0].Location)
	assert.Equal(t, 2, res.TopLocations[0].Count)
	assert.Equal(t, "#0088FE", res.TopLocations[0].Color)
	assert.Equal(t, "Baguio", res.TopLocations[1].Location)
	assert.Equal(t, "Cebu", res.TopLocations[2].Location)
	assert.Equal(t, "Coron", res.TopLocations[3].Location)
	assert.Equal(t, "Davao", res.TopLocations[4].Location)
}

func TestTrend(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		want     string
	}{
		{name: "both zero", current: 0, previous: 0, want: "0%"},
		{name: "growth from nothing", current: 5, previous: 0, want: "+100%"},
		{name: "drop to nothing", current: 0, previous: 10, want: "-100%"},
		{name: "twenty percent up", current: 120, previous: 100, want: "+20%"},
		{name: "twenty percent down", current: 80, previous: 100, want: "-20%"},
		{name: "rounded", current: 101, previous: 300, want: "-66%"},
		{name: "unclamped growth", current: 500, previous: 10, want: "+4900%"},
		{name: "flat", current: 50, previous: 50, want: "+0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.Trend(tt.current, tt.previous))
		})
	}
}

func TestCompute_Trends(t *testing.T) {
	now := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)

	completed := []bookingModel.Booking{
		completedBooking(time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), 1200),
		completedBooking(time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC), 1200),
		completedBooking(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), 1000),
	}

	res := service.Compute(now, completed, nil, nil, 0)

	assert.Equal(t, "+100%", res.BookingTrend)
	assert.Equal(t, "+140%", res.RevenueTrend)
}
