package dto

import (
	"time"

	"tourly/internal/domains/booking/model"
	"tourly/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateBookingRequest struct {
	TourID          string `json:"tour_id"          validate:"required"`
	BookingDate     string `json:"booking_date"     validate:"required,datetime=2006-01-02"`
	NumberOfPeople  int    `json:"number_of_people" validate:"required,min=1"`
	SpecialRequests string `json:"special_requests" validate:"omitempty,max=1000"`
	ContactPhone    string `json:"contact_phone"    validate:"omitempty,max=30"`
	ContactEmail    string `json:"contact_email"    validate:"omitempty,email"`
}

// ToModel builds the booking row. The total price is fixed here, at creation
// time, from the tour's unit price; later party-size edits do not touch it.
func (c *CreateBookingRequest) ToModel(userID, email string, unitPrice decimal.Decimal, createdAt time.Time) model.Booking {
	contactEmail := c.ContactEmail
	if contactEmail == "" {
		contactEmail = email
	}

	return model.Booking{
		ID:              uuid.NewString(),
		CreatedAt:       createdAt,
		UserID:          userID,
		TourID:          c.TourID,
		BookingDate:     c.BookingDate,
		NumberOfPeople:  c.NumberOfPeople,
		TotalPrice:      unitPrice.Mul(decimal.NewFromInt(int64(c.NumberOfPeople))),
		Status:          model.StatusPending,
		SpecialRequests: c.SpecialRequests,
		ContactPhone:    c.ContactPhone,
		ContactEmail:    contactEmail,
	}
}

type UpdateBookingRequest struct {
	NumberOfPeople  *int   `json:"number_of_people" validate:"omitempty,min=1"`
	SpecialRequests string `json:"special_requests" validate:"omitempty,max=1000"`
	ContactPhone    string `json:"contact_phone"    validate:"omitempty,max=30"`
}

type BookingResponse struct {
	ID              string          `json:"id"`
	CreatedAt       time.Time       `json:"created_at"`
	UserID          string          `json:"user_id"`
	TourID          string          `json:"tour_id"`
	TourTitle       string          `json:"tour_title,omitempty"`
	DisplayName     string          `json:"display_name,omitempty"`
	BookingDate     string          `json:"booking_date"`
	NumberOfPeople  int             `json:"number_of_people"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	Status          model.Status    `json:"status"`
	SpecialRequests string          `json:"special_requests,omitempty"`
	ContactPhone    string          `json:"contact_phone,omitempty"`
	ContactEmail    string          `json:"contact_email,omitempty"`
}

func (b *BookingResponse) FromModel(model model.Booking) {
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UserID = model.UserID
	b.TourID = model.TourID
	b.BookingDate = model.BookingDate
	b.NumberOfPeople = model.NumberOfPeople
	b.TotalPrice = model.TotalPrice
	b.Status = model.Status
	b.SpecialRequests = model.SpecialRequests
	b.ContactPhone = model.ContactPhone
	b.ContactEmail = model.ContactEmail
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (g *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		g.Bookings[i].FromModel(mod)
	}
}

// ListFilter is the list-view filter: a case-insensitive free-text query
// intersected with a status filter ("All" or one specific status).
type ListFilter struct {
	Query  string
	Status string
}

// TransitionResult reports a committed status transition. Warning is set when
// the best-effort notification side effect failed after the transition.
type TransitionResult struct {
	ID      string       `json:"id"`
	Status  model.Status `json:"status"`
	Warning string       `json:"warning,omitempty"`
}
