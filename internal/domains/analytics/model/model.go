package model

import "time"

const (
	MonthWindow  = 6
	TopLocations = 5
)

// TopLocation is one entry of the top-5 location ranking, with a palette
// color fixed by rank position.
type TopLocation struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
	Color    string `json:"color"`
}

// DashboardStats is the derived analytics view. It is never persisted and is
// recomputed from bulk reads on every request.
type DashboardStats struct {
	TotalBookings        int                  `json:"total_bookings"`
	TotalRevenue         float64              `json:"total_revenue"`
	AvailableTours       int                  `json:"available_tours"`
	TotalCustomers       int                  `json:"total_customers"`
	MonthLabels          [MonthWindow]string  `json:"month_labels"`
	MonthlyBookings      [MonthWindow]int     `json:"monthly_bookings"`
	MonthlyRevenue       [MonthWindow]float64 `json:"monthly_revenue"`
	StatusDistribution   map[string]int       `json:"status_distribution"`
	CategoryDistribution map[string]int       `json:"category_distribution"`
	TopLocations         []TopLocation        `json:"top_locations"`
	BookingTrend         string               `json:"booking_trend"`
	RevenueTrend         string               `json:"revenue_trend"`
	GeneratedAt          time.Time            `json:"generated_at"`
}
