package model

import "time"

const (
	TableName  = "profiles"
	EntityName = "profile"

	FieldID        = "id"
	FieldEmail     = "email"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldFullName  = "full_name"
	FieldPhone     = "phone"
	FieldRole      = "role"
)

const (
	DisplayNameFallback = "N/A"
)

// Profile mirrors one row of the profiles table, linked 1:1 to an
// authenticated account.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// DisplayName resolves the name shown in booking lists: the full name if set,
// else first plus last name, else "N/A".
func (p *Profile) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}

	if p.FirstName != "" || p.LastName != "" {
		name := p.FirstName
		if p.LastName != "" {
			if name != "" {
				name += " "
			}

			name += p.LastName
		}

		return name
	}

	return DisplayNameFallback
}
