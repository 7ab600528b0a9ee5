package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"tourly/config"
	notifyMocks "tourly/infras/notify/mocks"
	otelMocks "tourly/infras/otel/mocks"
	bookingMocks "tourly/internal/domains/booking/mocks"
	"tourly/internal/domains/booking/model"
	"tourly/internal/domains/booking/model/dto"
	"tourly/internal/domains/booking/service"
	profileMocks "tourly/internal/domains/profile/mocks"
	profileModel "tourly/internal/domains/profile/model"
	tourMocks "tourly/internal/domains/tour/mocks"
	tourModel "tourly/internal/domains/tour/model"
	"tourly/shared/cache"
	cacheMocks "tourly/shared/cache/mocks"
	"tourly/shared/constant"
	gDto "tourly/shared/dto"
	"tourly/shared/events"
	"tourly/shared/failure"
	"tourly/shared/timezone"
)

type serviceMocks struct {
	repo        *bookingMocks.MockBooking
	archiveRepo *bookingMocks.MockArchive
	tourRepo    *tourMocks.MockTour
	profileRepo *profileMocks.MockProfile
	notifier    *notifyMocks.MockNotifier
}

func newService(t *testing.T) (service.Booking, serviceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mocks := serviceMocks{
		repo:        bookingMocks.NewMockBooking(ctrl),
		archiveRepo: bookingMocks.NewMockArchive(ctrl),
		tourRepo:    tourMocks.NewMockTour(ctrl),
		profileRepo: profileMocks.NewMockProfile(ctrl),
		notifier:    notifyMocks.NewMockNotifier(ctrl),
	}

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(
		mocks.repo,
		mocks.tourRepo,
		mocks.profileRepo,
		&config.Config{},
		mockCache,
		otelMocks.NewOtel(),
		mocks.notifier,
		events.New(),
	)

	return svc, mocks
}

func userContext(userID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserEmail, userID+"@example.com")
}

func TestBookingService_Create(t *testing.T) {
	availableTour := tourModel.Tour{
		ID:        "tour-1",
		Title:     "Island Hopping",
		Price:     decimal.NewFromInt(1000),
		Available: true,
	}

	req := dto.CreateBookingRequest{
		TourID:         "tour-1",
		BookingDate:    "2025-07-15",
		NumberOfPeople: 3,
	}

	tests := []struct {
		name      string
		setupMock func(mocks serviceMocks)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation fixes the total price",
			setupMock: func(mocks serviceMocks) {
				mocks.tourRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableTour, nil)

				mocks.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, booking model.Booking) error {
						assert.Equal(t, model.StatusPending, booking.Status)
						assert.True(t, booking.TotalPrice.Equal(decimal.NewFromInt(3000)),
							"total price should be 1000 x 3, got %s", booking.TotalPrice)
						assert.Equal(t, "user-1", booking.UserID)

						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "tour not found",
			setupMock: func(mocks serviceMocks) {
				mocks.tourRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(tourModel.Tour{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "tour not available",
			setupMock: func(mocks serviceMocks) {
				unavailable := availableTour
				unavailable.Available = false

				mocks.tourRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(unavailable, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "insert failure",
			setupMock: func(mocks serviceMocks) {
				mocks.tourRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableTour, nil)

				mocks.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("insert failed"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mocks := newService(t)
			tt.setupMock(mocks)

			err := svc.Create(userContext("user-1"), req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Confirm(t *testing.T) {
	tests := []struct {
		name     string
		status   model.Status
		wantErr  bool
		wantCode int
	}{
		{name: "pending booking is confirmed", status: model.StatusPending},
		{name: "confirmed booking cannot be confirmed again", status: model.StatusConfirmed, wantErr: true, wantCode: 409},
		{name: "completed booking is immutable", status: model.StatusCompleted, wantErr: true, wantCode: 409},
		{name: "cancelled booking is immutable", status: model.StatusCancelled, wantErr: true, wantCode: 409},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mocks := newService(t)

			mocks.repo.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(model.Booking{ID: "booking-1", UserID: "user-1", Status: tt.status}, nil)

			if !tt.wantErr {
				mocks.repo.EXPECT().
					Update(gomock.Any(), map[string]any{model.FieldStatus: model.StatusConfirmed}, gomock.Any()).
					Return(nil)
			}

			res, err := svc.Confirm(userContext("admin-1"), "booking-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, model.StatusConfirmed, res.Status)
				assert.Empty(t, res.Warning)
			}
		})
	}
}

func TestBookingService_Complete(t *testing.T) {
	tests := []struct {
		name    string
		status  model.Status
		wantErr bool
	}{
		{name: "confirmed booking is completed", status: model.StatusConfirmed},
		{name: "pending booking cannot be completed", status: model.StatusPending, wantErr: true},
		{name: "cancel-requested booking cannot be completed", status: model.StatusCancelRequested, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mocks := newService(t)

			mocks.repo.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(model.Booking{ID: "booking-1", UserID: "user-1", Status: tt.status}, nil)

			if !tt.wantErr {
				mocks.repo.EXPECT().
					Update(gomock.Any(), map[string]any{model.FieldStatus: model.StatusCompleted}, gomock.Any()).
					Return(nil)
			}

			res, err := svc.Complete(userContext("admin-1"), "booking-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, 409, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, model.StatusCompleted, res.Status)
			}
		})
	}
}

func TestBookingService_Cancel(t *testing.T) {
	t.Run("owner cancels own pending booking", func(t *testing.T) {
		svc, mocks := newService(t)

		mocks.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "booking-1", UserID: "user-1", Status: model.StatusPending}, nil)

		mocks.repo.EXPECT().
			Update(gomock.Any(), map[string]any{model.FieldStatus: model.StatusCancelled}, gomock.Any()).
			Return(nil)

		mocks.notifier.EXPECT().
			CancellationNotice(gomock.Any(), "booking-1").
			Return(nil)

		res, err := svc.Cancel(userContext("user-1"), "booking-1")

		assert.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, res.Status)
		assert.Empty(t, res.Warning)
	})

	t.Run("notification failure surfaces as warning, not error", func(t *testing.T) {
		svc, mocks := newService(t)

		mocks.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "booking-1", UserID: "user-1", Status: model.StatusPending}, nil)

		mocks.repo.EXPECT().
			Update(gomock.Any(), map[string]any{model.FieldStatus: model.StatusCancelled}, gomock.Any()).
			Return(nil)

		mocks.notifier.EXPECT().
			CancellationNotice(gomock.Any(), "booking-1").
			Return(errors.New("endpoint unreachable"))

		res, err := svc.Cancel(userContext("user-1"), "booking-1")

		assert.NoError(t, err, "the transition is committed even when the notice fails")
		assert.Equal(t, model.StatusCancelled, res.Status)
		assert.Contains(t, res.Warning, "cancellation notification failed")
	})

	t.Run("cannot cancel someone else's booking", func(t *testing.T) {
		svc, mocks := newService(t)

		mocks.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "booking-1", UserID: "user-2", Status: model.StatusPending}, nil)

		_, err := svc.Cancel(userContext("user-1"), "booking-1")

		assert.Error(t, err)
		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("confirmed booking requires the cancellation workflow", func(t *testing.T) {
		svc, mocks := newService(t)

		mocks.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "booking-1", UserID: "user-1", Status: model.StatusConfirmed}, nil)

		_, err := svc.Cancel(userContext("user-1"), "booking-1")

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})
}

func TestBookingService_RequestCancellation(t *testing.T) {
	futureDate := timezone.Now().AddDate(0, 0, 7).Format(constant.DateOnlyFormat)
	today := timezone.Now().Format(constant.DateOnlyFormat)

	tests := []struct {
		name        string
		booking     model.Booking
		expectWrite bool
		wantErr     bool
		wantCode    int
	}{
		{
			name:        "pending booking with future date",
			booking:     model.Booking{ID: "booking-1", UserID: "user-1", Status: model.StatusPending, BookingDate: futureDate},
			expectWrite: true,
		},
		{
			name:        "confirmed booking with future date",
			booking:     model.Booking{ID: "booking-1", UserID: "user-1", Status: model.StatusConfirmed, BookingDate: futureDate},
			expectWrite: true,
		},
		{
			name:        "same-day booking is still cancellable",
			booking:     model.Booking{ID: "booking-1", UserID: "user-1", Status: model.StatusPending, BookingDate: today},
			expectWrite: true,
		},
		{
			name:     "past booking date is rejected",
			booking:  model.Booking{ID: "booking-1", UserID: "user-1", Status: model.StatusConfirmed, BookingDate: "2020-01-01"},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name:     "completed booking is rejected",
			booking:  model.Booking{ID: "booking-1", UserID: "user-1", Status: model.StatusCompleted, BookingDate: futureDate},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name:     "not the owner",
			booking:  model.Booking{ID: "booking-1", UserID: "user-2", Status: model.StatusPending, BookingDate: futureDate},
			wantErr:  true,
			wantCode: 403,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mocks := newService(t)

			mocks.repo.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(tt.booking, nil)

			if tt.expectWrite {
				mocks.repo.EXPECT().
					Update(gomock.Any(), map[string]any{model.FieldStatus: model.StatusCancelRequested}, gomock.Any()).
					Return(nil)
			}

			res, err := svc.RequestCancellation(userContext("user-1"), "booking-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, model.StatusCancelRequested, res.Status)
			}
		})
	}
}

func TestBookingService_ApproveCancellation(t *testing.T) {
	t.Run("cancel-requested booking is cancelled", func(t *testing.T) {
		svc, mocks := newService(t)

		mocks.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "booking-1", UserID: "user-1", Status: model.StatusCancelRequested}, nil)

		mocks.repo.EXPECT().
			Update(gomock.Any(), map[string]any{model.FieldStatus: model.StatusCancelled}, gomock.Any()).
			Return(nil)

		mocks.notifier.EXPECT().
			CancellationNotice(gomock.Any(), "booking-1").
			Return(nil)

		res, err := svc.ApproveCancellation(userContext("admin-1"), "booking-1")

		assert.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, res.Status)
	})

	t.Run("already cancelled booking is rejected, notice not re-fired", func(t *testing.T) {
		svc, mocks := newService(t)

		mocks.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "booking-1", UserID: "user-1", Status: model.StatusCancelled}, nil)

		_, err := svc.ApproveCancellation(userContext("admin-1"), "booking-1")

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("booking without a request is rejected", func(t *testing.T) {
		svc, mocks := newService(t)

		mocks.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "booking-1", UserID: "user-1", Status: model.StatusConfirmed}, nil)

		_, err := svc.ApproveCancellation(userContext("admin-1"), "booking-1")

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})
}

func TestBookingService_RejectCancellation(t *testing.T) {
	t.Run("cancel-requested booking reverts to confirmed", func(t *testing.T) {
		svc, mocks := newService(t)

		mocks.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "booking-1", UserID: "user-1", Status: model.StatusCancelRequested}, nil)

		mocks.repo.EXPECT().
			Update(gomock.Any(), map[string]any{model.FieldStatus: model.StatusConfirmed}, gomock.Any()).
			Return(nil)

		res, err := svc.RejectCancellation(userContext("admin-1"), "booking-1")

		assert.NoError(t, err)
		assert.Equal(t, model.StatusConfirmed, res.Status)
		assert.Empty(t, res.Warning)
	})

	t.Run("pending booking has nothing to reject", func(t *testing.T) {
		svc, mocks := newService(t)

		mocks.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "booking-1", UserID: "user-1", Status: model.StatusPending}, nil)

		_, err := svc.RejectCancellation(userContext("admin-1"), "booking-1")

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})
}

func TestBookingService_Update(t *testing.T) {
	people := 5

	t.Run("party size edit never touches the total price", func(t *testing.T) {
		svc, mocks := newService(t)

		mocks.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{
				ID:             "booking-1",
				UserID:         "user-1",
				Status:         model.StatusPending,
				NumberOfPeople: 3,
				TotalPrice:     decimal.NewFromInt(3000),
			}, nil)

		mocks.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, patch map[string]any, _ gDto.FilterGroup) error {
				assert.Contains(t, patch, model.FieldNumberOfPeople)
				assert.NotContains(t, patch, model.FieldTotalPrice)
				assert.NotContains(t, patch, model.FieldStatus)

				return nil
			})

		err := svc.Update(userContext("user-1"), dto.UpdateBookingRequest{NumberOfPeople: &people}, "booking-1")

		assert.NoError(t, err)
	})

	t.Run("terminal booking cannot be edited", func(t *testing.T) {
		svc, mocks := newService(t)

		mocks.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "booking-1", UserID: "user-1", Status: model.StatusCancelled}, nil)

		err := svc.Update(userContext("user-1"), dto.UpdateBookingRequest{NumberOfPeople: &people}, "booking-1")

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("empty patch is a bad request", func(t *testing.T) {
		svc, _ := newService(t)

		err := svc.Update(userContext("user-1"), dto.UpdateBookingRequest{}, "booking-1")

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestBookingService_GetAll(t *testing.T) {
	bookings := []model.Booking{
		{ID: "booking-1", UserID: "user-1", TourID: "tour-1", Status: model.StatusPending, ContactEmail: "alice@example.com"},
		{ID: "booking-2", UserID: "user-2", TourID: "tour-2", Status: model.StatusConfirmed, ContactEmail: "bob@example.com"},
		{ID: "booking-3", UserID: "user-1", TourID: "tour-2", Status: model.StatusCancelled, ContactEmail: "alice@example.com"},
	}

	tours := []tourModel.Tour{
		{ID: "tour-1", Title: "Island Hopping"},
		{ID: "tour-2", Title: "Mountain Trek"},
	}

	profiles := []profileModel.Profile{
		{ID: "user-1", FullName: "Alice Smith"},
	}

	setup := func(mocks serviceMocks) {
		mocks.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gDto.FilterGroup{}).
			Return(bookings, nil)

		mocks.tourRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(tours, nil)

		mocks.profileRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(profiles, nil)
	}

	tests := []struct {
		name    string
		filter  dto.ListFilter
		wantIDs []string
	}{
		{
			name:    "no filter returns everything",
			filter:  dto.ListFilter{},
			wantIDs: []string{"booking-1", "booking-2", "booking-3"},
		},
		{
			name:    "All status matches everything",
			filter:  dto.ListFilter{Status: "All"},
			wantIDs: []string{"booking-1", "booking-2", "booking-3"},
		},
		{
			name:    "status filter is case-insensitive",
			filter:  dto.ListFilter{Status: "Confirmed"},
			wantIDs: []string{"booking-2"},
		},
		{
			name:    "query matches tour title",
			filter:  dto.ListFilter{Query: "mountain"},
			wantIDs: []string{"booking-2", "booking-3"},
		},
		{
			name:    "query matches resolved display name",
			filter:  dto.ListFilter{Query: "alice smith"},
			wantIDs: []string{"booking-1", "booking-3"},
		},
		{
			name:    "query intersects with status",
			filter:  dto.ListFilter{Query: "alice", Status: "cancelled"},
			wantIDs: []string{"booking-3"},
		},
		{
			name:    "no match yields empty page",
			filter:  dto.ListFilter{Query: "nonexistent"},
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mocks := newService(t)
			setup(mocks)

			res, err := svc.GetAll(userContext("admin-1"), gDto.QueryParams{Page: 1, Limit: 10}, tt.filter)

			assert.NoError(t, err)
			assert.Equal(t, len(tt.wantIDs), res.TotalData)

			gotIDs := make([]string, len(res.Bookings))
			for i, booking := range res.Bookings {
				gotIDs[i] = booking.ID
			}

			assert.ElementsMatch(t, tt.wantIDs, gotIDs)
		})
	}

	t.Run("display names and tour titles are joined onto the page", func(t *testing.T) {
		svc, mocks := newService(t)
		setup(mocks)

		res, err := svc.GetAll(userContext("admin-1"), gDto.QueryParams{Page: 1, Limit: 10}, dto.ListFilter{})

		assert.NoError(t, err)

		byID := make(map[string]dto.BookingResponse, len(res.Bookings))
		for _, booking := range res.Bookings {
			byID[booking.ID] = booking
		}

		assert.Equal(t, "Island Hopping", byID["booking-1"].TourTitle)
		assert.Equal(t, "Alice Smith", byID["booking-1"].DisplayName)

		// user-2 has no profile row, so the fallback name is used.
		assert.Equal(t, profileModel.DisplayNameFallback, byID["booking-2"].DisplayName)
	})
}

func TestBookingService_GetOwn(t *testing.T) {
	t.Run("missing identity is unauthorized", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.GetOwn(context.Background(), gDto.QueryParams{Page: 1, Limit: 10})

		assert.Error(t, err)
		assert.Equal(t, 401, failure.GetCode(err))
	})

	t.Run("own bookings are server-filtered by user", func(t *testing.T) {
		svc, mocks := newService(t)

		mocks.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				assert.Len(t, filter.Filters, 1)
				assert.Equal(t, model.FieldUserID, filter.Filters[0].Field)
				assert.Equal(t, "user-1", filter.Filters[0].Value)

				return 1, nil
			})

		mocks.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Booking{{ID: "booking-1", UserID: "user-1", Status: model.StatusPending}}, nil)

		res, err := svc.GetOwn(userContext("user-1"), gDto.QueryParams{Page: 1, Limit: 10})

		assert.NoError(t, err)
		assert.Len(t, res.Bookings, 1)
		assert.Equal(t, 1, res.TotalData)
	})
}
