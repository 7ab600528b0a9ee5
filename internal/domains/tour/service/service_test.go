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
	bookingMocks "tourly/internal/domains/booking/mocks"
	bookingModel "tourly/internal/domains/booking/model"
	tourMocks "tourly/internal/domains/tour/mocks"
	"tourly/internal/domains/tour/model"
	"tourly/internal/domains/tour/model/dto"
	"tourly/internal/domains/tour/service"
	"tourly/shared/cache"
	cacheMocks "tourly/shared/cache/mocks"
	"tourly/shared/failure"
)

type serviceMocks struct {
	repo        *tourMocks.MockTour
	bookingRepo *bookingMocks.MockBooking
	archiveRepo *bookingMocks.MockArchive
}

func newService(t *testing.T) (service.Tour, serviceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mocks := serviceMocks{
		repo:        tourMocks.NewMockTour(ctrl),
		bookingRepo: bookingMocks.NewMockBooking(ctrl),
		archiveRepo: bookingMocks.NewMockArchive(ctrl),
	}

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(
		mocks.repo,
		mocks.bookingRepo,
		mocks.archiveRepo,
		&config.Config{},
		mockCache,
		otelMocks.NewOtel(),
	)

	return svc, mocks
}

func validCreateRequest() dto.CreateTourRequest {
	return dto.CreateTourRequest{
		Title:    "Island Hopping",
		Price:    decimal.NewFromInt(1000),
		Duration: "8 hours",
		Image:    "https://cdn.example.com/island.jpg",
		Type:     model.TypeRegular,
		Location: "El Nido",
	}
}

func TestTourService_Create(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(req *dto.CreateTourRequest)
		setupMock func(mocks serviceMocks)
		wantErr   bool
	}{
		{
			name:   "valid tour is inserted",
			mutate: func(req *dto.CreateTourRequest) {},
			setupMock: func(mocks serviceMocks) {
				mocks.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tour model.Tour) error {
						assert.NotEmpty(t, tour.ID)
						assert.Equal(t, "Island Hopping", tour.Title)

						return nil
					})
			},
		},
		{
			name: "whitespace title is rejected",
			mutate: func(req *dto.CreateTourRequest) {
				req.Title = "   "
			},
			setupMock: func(mocks serviceMocks) {},
			wantErr:   true,
		},
		{
			name: "zero price is rejected",
			mutate: func(req *dto.CreateTourRequest) {
				req.Price = decimal.Zero
			},
			setupMock: func(mocks serviceMocks) {},
			wantErr:   true,
		},
		{
			name: "negative price is rejected",
			mutate: func(req *dto.CreateTourRequest) {
				req.Price = decimal.NewFromInt(-5)
			},
			setupMock: func(mocks serviceMocks) {},
			wantErr:   true,
		},
		{
			name: "duplicate features are rejected",
			mutate: func(req *dto.CreateTourRequest) {
				req.Features = []model.Feature{
					{Text: "Lunch", Available: true},
					{Text: "lunch", Available: false},
				}
			},
			setupMock: func(mocks serviceMocks) {},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mocks := newService(t)
			tt.setupMock(mocks)

			req := validCreateRequest()
			tt.mutate(&req)

			err := svc.Create(context.Background(), req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, 400, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTourService_Delete(t *testing.T) {
	dependents := []bookingModel.Booking{
		{ID: "booking-1", TourID: "tour-1", Status: bookingModel.StatusPending},
		{ID: "booking-2", TourID: "tour-1", Status: bookingModel.StatusCompleted},
	}

	t.Run("bookings are archived before anything is deleted", func(t *testing.T) {
		svc, mocks := newService(t)

		gomock.InOrder(
			mocks.repo.EXPECT().
				Exist(gomock.Any(), gomock.Any()).
				Return(true, nil),

			mocks.bookingRepo.EXPECT().
				GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(dependents, nil),

			mocks.archiveRepo.EXPECT().
				InsertBulk(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, archived []bookingModel.ArchivedBooking) error {
					assert.Len(t, archived, 2)
					assert.Equal(t, "booking-1", archived[0].ID)
					assert.False(t, archived[0].ArchivedAt.IsZero())

					return nil
				}),

			mocks.bookingRepo.EXPECT().
				Delete(gomock.Any(), gomock.Any()).
				Return(nil),

			mocks.repo.EXPECT().
				Delete(gomock.Any(), gomock.Any()).
				Return(nil),
		)

		err := svc.Delete(context.Background(), "tour-1")

		assert.NoError(t, err)
	})

	t.Run("tour without bookings skips the archival phase", func(t *testing.T) {
		svc, mocks := newService(t)

		mocks.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mocks.bookingRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]bookingModel.Booking{}, nil)

		mocks.repo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.Delete(context.Background(), "tour-1")

		assert.NoError(t, err)
	})

	t.Run("missing tour is not found", func(t *testing.T) {
		svc, mocks := newService(t)

		mocks.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.Delete(context.Background(), "tour-1")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("archive failure aborts before any deletion", func(t *testing.T) {
		svc, mocks := newService(t)

		mocks.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mocks.bookingRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(dependents, nil)

		mocks.archiveRepo.EXPECT().
			InsertBulk(gomock.Any(), gomock.Any()).
			Return(errors.New("backup table unavailable"))

		// Neither the bookings nor the tour may be deleted.
		err := svc.Delete(context.Background(), "tour-1")

		assert.Error(t, err)
		assert.Equal(t, 502, failure.GetCode(err))
		assert.Contains(t, err.Error(), "archive bookings")
	})

	t.Run("booking deletion failure leaves the tour in place", func(t *testing.T) {
		svc, mocks := newService(t)

		mocks.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mocks.bookingRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(dependents, nil)

		mocks.archiveRepo.EXPECT().
			InsertBulk(gomock.Any(), gomock.Any()).
			Return(nil)

		mocks.bookingRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(errors.New("delete failed"))

		err := svc.Delete(context.Background(), "tour-1")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "delete bookings")
	})
}

func TestTourService_Update(t *testing.T) {
	t.Run("missing tour is not found", func(t *testing.T) {
		svc, mocks := newService(t)

		mocks.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		title := "New Title"
		err := svc.Update(context.Background(), dto.UpdateTourRequest{Title: title}, "tour-1")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("invalid price never reaches the store", func(t *testing.T) {
		svc, _ := newService(t)

		price := decimal.NewFromInt(-1)
		err := svc.Update(context.Background(), dto.UpdateTourRequest{Price: &price}, "tour-1")

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}
