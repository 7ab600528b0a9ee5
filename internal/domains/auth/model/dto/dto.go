package dto

import (
	"github.com/supabase-community/gotrue-go/types"
)

type SignUpRequest struct {
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=8,max=72"`
	FirstName string `json:"first_name" validate:"omitempty,max=100"`
	LastName  string `json:"last_name"  validate:"omitempty,max=100"`
	Phone     string `json:"phone"      validate:"omitempty,max=30"`
}

type SignInRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SessionResponse carries the tokens that seed the per-request session
// context. Sign-out is client-side token disposal; the server keeps no
// session state.
type SessionResponse struct {
	AccessToken  string      `json:"access_token"`
	TokenType    string      `json:"token_type"`
	ExpiresIn    int         `json:"expires_in"`
	RefreshToken string      `json:"refresh_token"`
	User         SessionUser `json:"user"`
}

func (s *SessionResponse) FromSession(session types.Session, role string) {
	s.AccessToken = session.AccessToken
	s.TokenType = session.TokenType
	s.ExpiresIn = session.ExpiresIn
	s.RefreshToken = session.RefreshToken
	s.User = SessionUser{
		ID:    session.User.ID.String(),
		Email: session.User.Email,
		Role:  role,
	}
}
