package service

import (
	"context"
	"fmt"

	"tourly/infras/otel"
	"tourly/internal/domains/analytics/model"
	bookingModel "tourly/internal/domains/booking/model"
	bookingRepository "tourly/internal/domains/booking/repository"
	profileService "tourly/internal/domains/profile/service"
	tourModel "tourly/internal/domains/tour/model"
	tourRepository "tourly/internal/domains/tour/repository"
	"tourly/shared/constant"
	gDto "tourly/shared/dto"
	"tourly/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Analytics interface {
	GetDashboardStats(ctx context.Context) (model.DashboardStats, error)
}

type serviceImpl struct {
	bookingRepo bookingRepository.Booking
	tourRepo    tourRepository.Tour
	profileSvc  profileService.Profile
	otel        otel.Otel
}

func New(
	bookingRepo bookingRepository.Booking,
	tourRepo tourRepository.Tour,
	profileSvc profileService.Profile,
	otel otel.Otel,
) Analytics {
	return &serviceImpl{
		bookingRepo: bookingRepo,
		tourRepo:    tourRepo,
		profileSvc:  profileSvc,
		otel:        otel,
	}
}

// GetDashboardStats runs the four source reads and derives the dashboard
// view. Any source failure aborts the whole aggregation; there is no partial
// stats mode. The result is deliberately not cached.
func (s *serviceImpl) GetDashboardStats(ctx context.Context) (res model.DashboardStats, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetDashboardStats")
	defer scope.End()
	defer scope.TraceIfError(err)

	completedFilter := gDto.FilterGroup{}
	completedFilter.Add(bookingModel.FieldStatus, gDto.FilterOperatorEq, string(bookingModel.StatusCompleted))

	completed, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{}, completedFilter,
		bookingModel.FieldID, bookingModel.FieldTotalPrice, bookingModel.FieldCreatedAt, bookingModel.FieldBookingDate)
	if err != nil {
		log.Error().Err(err).Msg("failed to get completed bookings for dashboard")

		return res, fmt.Errorf("failed to get completed bookings for dashboard: %w", err)
	}

	allBookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{}, bookingModel.FieldStatus)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for dashboard")

		return res, fmt.Errorf("failed to get bookings for dashboard: %w", err)
	}

	tours, err := s.tourRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{},
		tourModel.FieldID, tourModel.FieldAvailable, tourModel.FieldType, tourModel.FieldLocation)
	if err != nil {
		log.Error().Err(err).Msg("failed to get tours for dashboard")

		return res, fmt.Errorf("failed to get tours for dashboard: %w", err)
	}

	customerCount, err := s.profileSvc.CountCustomers(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to count customers for dashboard")

		return res, fmt.Errorf("failed to count customers for dashboard: %w", err)
	}

	return Compute(timezone.Now(), completed, allBookings, tours, customerCount), nil
}
