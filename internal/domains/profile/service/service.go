package service

import (
	"context"
	"fmt"

	"tourly/config"
	"tourly/infras/otel"
	"tourly/internal/domains/profile/model"
	"tourly/internal/domains/profile/model/dto"
	"tourly/internal/domains/profile/repository"
	"tourly/shared"
	"tourly/shared/cache"
	"tourly/shared/constant"
	gDto "tourly/shared/dto"
	"tourly/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetProfile = "profile:get"
)

type Profile interface {
	Get(ctx context.Context, id string) (dto.ProfileResponse, error)
	Update(ctx context.Context, req dto.UpdateProfileRequest, id string) error
	CountCustomers(ctx context.Context) (int, error)
}

type serviceImpl struct {
	repo  repository.Profile
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Profile, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Profile {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ProfileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetProfile, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for profile")

		return res, nil
	}

	profile, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get profile")

		return res, fmt.Errorf("failed to get profile: %w", err)
	}

	if profile.ID == constant.Empty {
		return res, failure.NotFound("profile not found") // nolint:wrapcheck
	}

	res.FromModel(profile)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save profile to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateProfileRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	updatedFields := shared.TransformFields(req)
	if len(updatedFields) == 0 {
		return failure.BadRequestFromString("no fields to update") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if profile exists")

		return fmt.Errorf("failed to check if profile exists: %w", err)
	}

	if !exist {
		return failure.NotFound("profile not found") // nolint:wrapcheck
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update profile")

		return fmt.Errorf("failed to update profile: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetProfile, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete profile cache")
		}
	}()

	return nil
}

// CountCustomers returns the number of accounts carrying the customer role.
// Not cached: it feeds the dashboard aggregation, which is recomputed on
// every request.
func (s *serviceImpl) CountCustomers(ctx context.Context) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CountCustomers")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{}
	filter.Add(model.FieldRole, gDto.FilterOperatorEq, constant.RoleUser)

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count customers")

		return 0, fmt.Errorf("failed to count customers: %w", err)
	}

	return res, nil
}
