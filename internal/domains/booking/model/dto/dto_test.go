package dto_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"tourly/internal/domains/booking/model"
	"tourly/internal/domains/booking/model/dto"
)

func TestCreateBookingRequest_ToModel(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

	req := dto.CreateBookingRequest{
		TourID:         "tour-1",
		BookingDate:    "2025-07-15",
		NumberOfPeople: 3,
		ContactPhone:   "+6281234567890",
	}

	booking := req.ToModel("user-1", "customer@example.com", decimal.NewFromInt(1000), createdAt)

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, "user-1", booking.UserID)
	assert.Equal(t, "tour-1", booking.TourID)
	assert.Equal(t, model.StatusPending, booking.Status)
	assert.Equal(t, createdAt, booking.CreatedAt)
	assert.True(t, booking.TotalPrice.Equal(decimal.NewFromInt(3000)), "total price should be unit price times party size, got %s", booking.TotalPrice)

	// Contact email falls back to the account email when omitted.
	assert.Equal(t, "customer@example.com", booking.ContactEmail)
}

func TestCreateBookingRequest_ToModel_ExplicitContactEmail(t *testing.T) {
	req := dto.CreateBookingRequest{
		TourID:         "tour-1",
		BookingDate:    "2025-07-15",
		NumberOfPeople: 1,
		ContactEmail:   "other@example.com",
	}

	booking := req.ToModel("user-1", "customer@example.com", decimal.NewFromInt(500), time.Now())

	assert.Equal(t, "other@example.com", booking.ContactEmail)
}

func TestGetBookingsResponse_FromModels(t *testing.T) {
	models := []model.Booking{
		{ID: "booking-1", Status: model.StatusPending},
		{ID: "booking-2", Status: model.StatusConfirmed},
	}

	var res dto.GetBookingsResponse
	res.FromModels(models, 5, 2)

	assert.Len(t, res.Bookings, 2)
	assert.Equal(t, 5, res.TotalData)
	assert.Equal(t, 3, res.TotalPage)
	assert.Equal(t, "booking-1", res.Bookings[0].ID)
}
