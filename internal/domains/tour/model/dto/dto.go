package dto

import (
	"strings"
	"time"

	"tourly/internal/domains/tour/model"
	"tourly/shared"
	"tourly/shared/failure"
	"tourly/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateTourRequest struct {
	Title       string          `json:"title"        validate:"required,max=200"`
	Price       decimal.Decimal `json:"price"        validate:"required"`
	Duration    string          `json:"duration"     validate:"required,max=100"`
	Image       string          `json:"image"        validate:"required"`
	Type        string          `json:"type"         validate:"required,oneof=regular combo"`
	Location    string          `json:"location"     validate:"required,max=200"`
	SubImages   []string        `json:"sub_images"   validate:"omitempty,max=5"`
	Features    []model.Feature `json:"features"     validate:"omitempty"`
	Available   *bool           `json:"available"    validate:"omitempty"`
	MaxCapacity int             `json:"max_capacity" validate:"omitempty,min=0"`
}

// Validate applies the catalog rules the struct tags cannot express: trimmed
// non-empty text fields, strictly positive price, feature uniqueness.
func (c *CreateTourRequest) Validate() error {
	c.Title = strings.TrimSpace(c.Title)
	if c.Title == "" {
		return failure.BadRequestFromString("title must not be empty") // nolint:wrapcheck
	}

	if !c.Price.IsPositive() {
		return failure.BadRequestFromString("price must be a positive number") // nolint:wrapcheck
	}

	if strings.TrimSpace(c.Duration) == "" {
		return failure.BadRequestFromString("duration must not be empty") // nolint:wrapcheck
	}

	if strings.TrimSpace(c.Location) == "" {
		return failure.BadRequestFromString("location must not be empty") // nolint:wrapcheck
	}

	if strings.TrimSpace(c.Image) == "" {
		return failure.BadRequestFromString("image must not be empty") // nolint:wrapcheck
	}

	return model.ValidateFeatures(c.Features) // nolint:wrapcheck
}

func (c *CreateTourRequest) ToModel() model.Tour {
	available := true
	if c.Available != nil {
		available = *c.Available
	}

	return model.Tour{
		ID:          uuid.NewString(),
		Title:       c.Title,
		Price:       c.Price,
		Duration:    c.Duration,
		Image:       c.Image,
		Type:        c.Type,
		Location:    c.Location,
		SubImages:   c.SubImages,
		Features:    c.Features,
		Available:   available,
		MaxCapacity: c.MaxCapacity,
		CreatedAt:   timezone.Now(),
	}
}

type UpdateTourRequest struct {
	Title       string           `json:"title"        validate:"omitempty,max=200"`
	Price       *decimal.Decimal `json:"price"        validate:"omitempty"`
	Duration    string           `json:"duration"     validate:"omitempty,max=100"`
	Image       string           `json:"image"        validate:"omitempty"`
	Type        string           `json:"type"         validate:"omitempty,oneof=regular combo"`
	Location    string           `json:"location"     validate:"omitempty,max=200"`
	SubImages   []string         `json:"sub_images"   validate:"omitempty,max=5"`
	Features    []model.Feature  `json:"features"     validate:"omitempty"`
	Available   *bool            `json:"available"    validate:"omitempty"`
	MaxCapacity *int             `json:"max_capacity" validate:"omitempty,min=0"`
}

// Validate mirrors the create rules for any field that is present.
func (u *UpdateTourRequest) Validate() error {
	if u.Title != "" && strings.TrimSpace(u.Title) == "" {
		return failure.BadRequestFromString("title must not be empty") // nolint:wrapcheck
	}

	if u.Price != nil && !u.Price.IsPositive() {
		return failure.BadRequestFromString("price must be a positive number") // nolint:wrapcheck
	}

	if u.Features != nil {
		return model.ValidateFeatures(u.Features) // nolint:wrapcheck
	}

	return nil
}

type TourResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Duration    string          `json:"duration"`
	Image       string          `json:"image"`
	Type        string          `json:"type"`
	Location    string          `json:"location"`
	SubImages   []string        `json:"sub_images"`
	Features    []model.Feature `json:"features"`
	Available   bool            `json:"available"`
	MaxCapacity int             `json:"max_capacity"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (t *TourResponse) FromModel(model model.Tour) {
	t.ID = model.ID
	t.Title = model.Title
	t.Price = model.Price
	t.Duration = model.Duration
	t.Image = model.Image
	t.Type = model.Type
	t.Location = model.Location
	t.SubImages = model.SubImages
	t.Features = model.Features
	t.Available = model.Available
	t.MaxCapacity = model.MaxCapacity
	t.CreatedAt = model.CreatedAt
}

type GetToursResponse struct {
	Tours     []TourResponse `json:"tours"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (t *GetToursResponse) FromModels(models []model.Tour, totalData, limit int) {
	t.TotalData = totalData
	t.TotalPage = shared.CalculateTotalPage(totalData, limit)

	t.Tours = make([]TourResponse, len(models))
	for i, mod := range models {
		t.Tours[i].FromModel(mod)
	}
}
