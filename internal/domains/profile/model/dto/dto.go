package dto

import (
	"time"

	"tourly/internal/domains/profile/model"
)

type UpdateProfileRequest struct {
	FirstName string `json:"first_name" validate:"omitempty,max=100"`
	LastName  string `json:"last_name"  validate:"omitempty,max=100"`
	FullName  string `json:"full_name"  validate:"omitempty,max=200"`
	Phone     string `json:"phone"      validate:"omitempty,max=30"`
}

type ProfileResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	FullName    string    `json:"full_name"`
	DisplayName string    `json:"display_name"`
	Phone       string    `json:"phone"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

func (p *ProfileResponse) FromModel(model model.Profile) {
	p.ID = model.ID
	p.Email = model.Email
	p.FirstName = model.FirstName
	p.LastName = model.LastName
	p.FullName = model.FullName
	p.DisplayName = model.DisplayName()
	p.Phone = model.Phone
	p.Role = model.Role
	p.CreatedAt = model.CreatedAt
}
