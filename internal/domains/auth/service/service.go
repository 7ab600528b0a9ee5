package service

import (
	"context"
	"fmt"

	"tourly/infras/otel"
	"tourly/internal/domains/auth/model/dto"
	profileModel "tourly/internal/domains/profile/model"
	profileRepository "tourly/internal/domains/profile/repository"
	"tourly/shared/constant"
	"tourly/shared/failure"
	"tourly/shared/timezone"

	"github.com/rs/zerolog/log"
	"github.com/supabase-community/gotrue-go/types"
	supa "github.com/supabase-community/supabase-go"
)

type Auth interface {
	SignUp(ctx context.Context, req dto.SignUpRequest) (dto.SessionResponse, error)
	SignIn(ctx context.Context, req dto.SignInRequest) (dto.SessionResponse, error)
	Refresh(ctx context.Context, req dto.RefreshRequest) (dto.SessionResponse, error)
}

type serviceImpl struct {
	client      *supa.Client
	profileRepo profileRepository.Profile
	otel        otel.Otel
}

func New(client *supa.Client, profileRepo profileRepository.Profile, otel otel.Otel) Auth {
	return &serviceImpl{
		client:      client,
		profileRepo: profileRepo,
		otel:        otel,
	}
}

// SignUp registers the account with the auth backend and seeds the matching
// profile row. New accounts always start with the customer role.
func (s *serviceImpl) SignUp(ctx context.Context, req dto.SignUpRequest) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SignUp")
	defer scope.End()
	defer scope.TraceIfError(err)

	signup, err := s.client.Auth.Signup(types.SignupRequest{
		Email:    req.Email,
		Password: req.Password,
		Data: map[string]interface{}{
			"role":       constant.RoleUser,
			"first_name": req.FirstName,
			"last_name":  req.LastName,
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to sign up account")

		return res, failure.Gateway(fmt.Errorf("failed to sign up account: %w", err)) // nolint:wrapcheck
	}

	profile := profileModel.Profile{
		ID:        signup.ID.String(),
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      constant.RoleUser,
		CreatedAt: timezone.Now(),
	}

	if err = s.profileRepo.Insert(ctx, profile); err != nil {
		log.Error().Err(err).Str("user_id", profile.ID).Msg("failed to create profile for new account")

		return res, fmt.Errorf("failed to create profile for new account: %w", err)
	}

	res.FromSession(signup.Session, constant.RoleUser)
	res.User.ID = signup.ID.String()
	res.User.Email = req.Email

	return res, nil
}

func (s *serviceImpl) SignIn(ctx context.Context, req dto.SignInRequest) (res dto.SessionResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SignIn")
	defer scope.End()
	defer scope.TraceIfError(err)

	token, err := s.client.Auth.SignInWithEmailPassword(req.Email, req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to sign in")

		return res, failure.Unauthorized("invalid email or password") // nolint:wrapcheck
	}

	res.FromSession(token.Session, roleFromMetadata(token.Session.User.UserMetadata))

	return res, nil
}

func (s *serviceImpl) Refresh(ctx context.Context, req dto.RefreshRequest) (res dto.SessionResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Refresh")
	defer scope.End()
	defer scope.TraceIfError(err)

	token, err := s.client.Auth.RefreshToken(req.RefreshToken)
	if err != nil {
		log.Error().Err(err).Msg("failed to refresh token")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	res.FromSession(token.Session, roleFromMetadata(token.Session.User.UserMetadata))

	return res, nil
}

func roleFromMetadata(metadata map[string]interface{}) string {
	role, _ := metadata["role"].(string)
	if role == "" {
		role = constant.RoleUser
	}

	return role
}
