package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"tourly/config"
	otelMocks "tourly/infras/otel/mocks"
	"tourly/internal/domains/analytics/service"
	bookingMocks "tourly/internal/domains/booking/mocks"
	bookingModel "tourly/internal/domains/booking/model"
	profileMocks "tourly/internal/domains/profile/mocks"
	profileService "tourly/internal/domains/profile/service"
	tourMocks "tourly/internal/domains/tour/mocks"
	tourModel "tourly/internal/domains/tour/model"
	"tourly/shared/cache"
	cacheMocks "tourly/shared/cache/mocks"
	gDto "tourly/shared/dto"
	"tourly/shared/timezone"
)

func TestAnalyticsService_GetDashboardStats(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockTourRepo := tourMocks.NewMockTour(ctrl)
	mockProfileRepo := profileMocks.NewMockProfile(ctrl)

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	profileSvc := profileService.New(mockProfileRepo, &config.Config{}, mockCache, otelMocks.NewOtel())

	svc := service.New(mockBookingRepo, mockTourRepo, profileSvc, otelMocks.NewOtel())

	completed := []bookingModel.Booking{
		{ID: "booking-1", CreatedAt: timezone.Now(), TotalPrice: decimal.NewFromInt(1500), Status: bookingModel.StatusCompleted},
	}

	all := []bookingModel.Booking{
		{Status: bookingModel.StatusCompleted},
		{Status: bookingModel.StatusPending},
		{Status: bookingModel.StatusPending},
	}

	tours := []tourModel.Tour{
		{ID: "tour-1", Type: tourModel.TypeRegular, Location: "El Nido", Available: true},
		{ID: "tour-2", Type: tourModel.TypeCombo, Location: "Coron", Available: false},
	}

	// The completed read carries a status filter; the full read does not.
	mockBookingRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]bookingModel.Booking, error) {
			assert.Len(t, filter.Filters, 1)
			assert.Equal(t, bookingModel.FieldStatus, filter.Filters[0].Field)
			assert.Equal(t, string(bookingModel.StatusCompleted), filter.Filters[0].Value)

			return completed, nil
		})

	mockBookingRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gDto.FilterGroup{}, gomock.Any()).
		Return(all, nil)

	mockTourRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(tours, nil)

	mockProfileRepo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(42, nil)

	res, err := svc.GetDashboardStats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalBookings)
	assert.InDelta(t, 1500, res.TotalRevenue, 0.001)
	assert.Equal(t, 42, res.TotalCustomers)
	assert.Equal(t, 1, res.AvailableTours)
	assert.Equal(t, 2, res.StatusDistribution[string(bookingModel.StatusPending)])
	assert.Equal(t, 1, res.CategoryDistribution[tourModel.TypeRegular])
	assert.False(t, res.GeneratedAt.IsZero())
}

func TestAnalyticsService_GetDashboardStats_SourceFailureAborts(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockTourRepo := tourMocks.NewMockTour(ctrl)
	mockProfileRepo := profileMocks.NewMockProfile(ctrl)

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()

	profileSvc := profileService.New(mockProfileRepo, &config.Config{}, mockCache, otelMocks.NewOtel())

	svc := service.New(mockBookingRepo, mockTourRepo, profileSvc, otelMocks.NewOtel())

	mockBookingRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("source unavailable"))

	_, err := svc.GetDashboardStats(context.Background())

	assert.Error(t, err, "no partial stats on source failure")
}
