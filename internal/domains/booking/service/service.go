package service

import (
	"context"
	"fmt"
	"strings"

	"tourly/config"
	"tourly/infras/notify"
	"tourly/infras/otel"
	"tourly/internal/domains/booking/model"
	"tourly/internal/domains/booking/model/dto"
	"tourly/internal/domains/booking/repository"
	profileModel "tourly/internal/domains/profile/model"
	profileRepository "tourly/internal/domains/profile/repository"
	tourModel "tourly/internal/domains/tour/model"
	tourRepository "tourly/internal/domains/tour/repository"
	"tourly/shared"
	"tourly/shared/cache"
	"tourly/shared/constant"
	gDto "tourly/shared/dto"
	"tourly/shared/events"
	"tourly/shared/failure"
	"tourly/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter dto.ListFilter) (dto.GetBookingsResponse, error)
	GetOwn(ctx context.Context, params gDto.QueryParams) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error
	Confirm(ctx context.Context, id string) (dto.TransitionResult, error)
	Complete(ctx context.Context, id string) (dto.TransitionResult, error)
	Cancel(ctx context.Context, id string) (dto.TransitionResult, error)
	RequestCancellation(ctx context.Context, id string) (dto.TransitionResult, error)
	ApproveCancellation(ctx context.Context, id string) (dto.TransitionResult, error)
	RejectCancellation(ctx context.Context, id string) (dto.TransitionResult, error)
}

type serviceImpl struct {
	repo        repository.Booking
	tourRepo    tourRepository.Tour
	profileRepo profileRepository.Profile
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	notifier    notify.Notifier
	bus         events.Bus
}

func New(
	repo repository.Booking,
	tourRepo tourRepository.Tour,
	profileRepo profileRepository.Profile,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	notifier notify.Notifier,
	bus events.Bus,
) Booking {
	return &serviceImpl{
		repo:        repo,
		tourRepo:    tourRepo,
		profileRepo: profileRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		notifier:    notifier,
		bus:         bus,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	tour, err := s.tourRepo.Get(ctx, shared.FilterByID(req.TourID, tourModel.FieldID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get tour for booking")

		return fmt.Errorf("failed to get tour for booking: %w", err)
	}

	if tour.ID == constant.Empty {
		return failure.NotFound("tour not found") // nolint:wrapcheck
	}

	if !tour.Available {
		return failure.BadRequestFromString("tour is not available for booking") // nolint:wrapcheck
	}

	booking := req.ToModel(userID, email, tour.Price, timezone.Now())

	if err = s.repo.Insert(ctx, booking); err != nil {
		return err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
	}()

	return nil
}

// GetAll lists bookings for the operator surface. Free-text and status
// filtering are applied after the bulk read: the query matches contact email,
// resolved display name, and tour title, so the rows have to be joined with
// tours and profiles client-side first.
func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter dto.ListFilter) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, params, gDto.FilterGroup{
		Filters: []gDto.Filter{
			{Field: "query", Value: filter.Query},
			{Field: "status", Value: filter.Status},
		},
	})

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	sortParams := gDto.QueryParams{SortBy: params.SortBy, SortDir: params.SortDir}

	bookings, err := s.repo.GetAll(ctx, sortParams, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	tourTitles, displayNames, err := s.resolveReferences(ctx, bookings)
	if err != nil {
		return res, err
	}

	filtered := filterBookings(bookings, filter, tourTitles, displayNames)

	total := len(filtered)
	page := paginate(filtered, params.Page, params.Limit)

	res.FromModels(page, total, params.Limit)

	for i := range res.Bookings {
		res.Bookings[i].TourTitle = tourTitles[res.Bookings[i].TourID]
		res.Bookings[i].DisplayName = displayNames[res.Bookings[i].UserID]
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetOwn(ctx context.Context, params gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetOwn")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == constant.Empty {
		return res, failure.Unauthorized("missing user identity") // nolint:wrapcheck
	}

	filter := gDto.FilterGroup{}
	filter.Add(model.FieldUserID, gDto.FilterOperatorEq, userID)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count own bookings")

		return res, fmt.Errorf("failed to count own bookings: %w", err)
	}

	bookings, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get own bookings")

		return res, fmt.Errorf("failed to get own bookings: %w", err)
	}

	res.FromModels(bookings, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// Update edits party size, special requests, and contact phone on a
// non-terminal booking. The total price is never recomputed here, even when
// the party size changes; it is fixed at creation time.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	updatedFields := shared.TransformFields(req)
	if len(updatedFields) == 0 {
		return failure.BadRequestFromString("no fields to update") // nolint:wrapcheck
	}

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	if booking.Status.Terminal() {
		return failure.Conflict("booking is in a terminal state") // nolint:wrapcheck
	}

	if err := s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID)); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// Confirm moves a pending booking to confirmed. Operator action.
func (s *serviceImpl) Confirm(ctx context.Context, id string) (dto.TransitionResult, error) {
	return s.transition(ctx, id, "Confirm", model.StatusConfirmed, false, nil)
}

// Complete moves a confirmed booking to completed. Operator action; there is
// no date guard here, completion timing is operator judgment.
func (s *serviceImpl) Complete(ctx context.Context, id string) (dto.TransitionResult, error) {
	return s.transition(ctx, id, "Complete", model.StatusCompleted, false, nil)
}

// Cancel is the customer self-cancel path for a pending booking they own.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (dto.TransitionResult, error) {
	return s.transition(ctx, id, "Cancel", model.StatusCancelled, true, func(booking model.Booking) error {
		if booking.Status != model.StatusPending {
			return failure.Conflict("only pending bookings can be cancelled directly") // nolint:wrapcheck
		}

		return nil
	})
}

// RequestCancellation raises a cancellation request on the caller's own
// pending or confirmed booking, provided the booking date is not in the past.
func (s *serviceImpl) RequestCancellation(ctx context.Context, id string) (dto.TransitionResult, error) {
	return s.transition(ctx, id, "RequestCancellation", model.StatusCancelRequested, true, func(booking model.Booking) error {
		bookingDate, err := timezone.Parse(constant.DateOnlyFormat, booking.BookingDate)
		if err != nil {
			return failure.BadRequestFromString("booking has an invalid booking date") // nolint:wrapcheck
		}

		now := timezone.Now()

		if bookingDate.Year() < now.Year() ||
			(bookingDate.Year() == now.Year() && bookingDate.YearDay() < now.YearDay()) {
			return failure.BadRequestFromString("booking date is in the past") // nolint:wrapcheck
		}

		return nil
	})
}

// ApproveCancellation finalizes a cancellation request. Operator action.
// Re-approving an already cancelled booking is rejected, not silently
// re-applied.
func (s *serviceImpl) ApproveCancellation(ctx context.Context, id string) (dto.TransitionResult, error) {
	return s.transition(ctx, id, "ApproveCancellation", model.StatusCancelled, false, func(booking model.Booking) error {
		if booking.Status != model.StatusCancelRequested {
			return failure.Conflict("booking has no pending cancellation request") // nolint:wrapcheck
		}

		return nil
	})
}

// RejectCancellation denies a cancellation request. The booking reverts to
// confirmed regardless of its state before the request.
func (s *serviceImpl) RejectCancellation(ctx context.Context, id string) (dto.TransitionResult, error) {
	return s.transition(ctx, id, "RejectCancellation", model.StatusConfirmed, false, func(booking model.Booking) error {
		if booking.Status != model.StatusCancelRequested {
			return failure.Conflict("booking has no pending cancellation request") // nolint:wrapcheck
		}

		return nil
	})
}

// transition runs one state-machine step: load, guard, check the matrix,
// persist, publish the event, and fire the cancellation notice when the
// target is cancelled. The notice is best-effort and at-most-once; its
// failure surfaces as a warning on an otherwise committed transition.
func (s *serviceImpl) transition(
	ctx context.Context,
	id, op string,
	target model.Status,
	ownerOnly bool,
	guard func(booking model.Booking) error,
) (res dto.TransitionResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+"."+op)
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	if ownerOnly && booking.UserID != userID {
		return res, failure.Forbidden("booking does not belong to the caller") // nolint:wrapcheck
	}

	if guard != nil {
		if err = guard(booking); err != nil {
			return res, err
		}
	}

	if !booking.Status.CanTransitionTo(target) {
		return res, failure.Conflict(fmt.Sprintf("cannot transition booking from %s to %s", booking.Status, target)) // nolint:wrapcheck
	}

	patch := map[string]any{model.FieldStatus: target}

	if err = s.repo.Update(ctx, patch, shared.FilterByID(id, model.FieldID)); err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to update booking status")

		return res, fmt.Errorf("failed to update booking status: %w", err)
	}

	s.bus.PublishStatusChanged(events.StatusChanged{
		BookingID: id,
		From:      string(booking.Status),
		To:        string(target),
		Actor:     userID,
		At:        timezone.Now(),
	})

	s.invalidate(ctx, id)

	res = dto.TransitionResult{ID: id, Status: target}

	if target == model.StatusCancelled {
		if notifyErr := s.notifier.CancellationNotice(ctx, id); notifyErr != nil {
			log.Warn().Err(notifyErr).Str("booking_id", id).Msg("cancellation notice failed after committed transition")

			res.Warning = fmt.Sprintf("cancellation notification failed: %v", notifyErr)
		}
	}

	return res, nil
}

func (s *serviceImpl) getBooking(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) resolveReferences(ctx context.Context, bookings []model.Booking) (tourTitles, displayNames map[string]string, err error) {
	tours, err := s.tourRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{}, tourModel.FieldID, tourModel.FieldTitle)
	if err != nil {
		log.Error().Err(err).Msg("failed to get tours for booking list")

		return nil, nil, fmt.Errorf("failed to get tours for booking list: %w", err)
	}

	profiles, err := s.profileRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get profiles for booking list")

		return nil, nil, fmt.Errorf("failed to get profiles for booking list: %w", err)
	}

	tourTitles = make(map[string]string, len(tours))
	for _, tour := range tours {
		tourTitles[tour.ID] = tour.Title
	}

	displayNames = make(map[string]string, len(profiles))
	for _, profile := range profiles {
		displayNames[profile.ID] = profile.DisplayName()
	}

	for _, booking := range bookings {
		if _, ok := displayNames[booking.UserID]; !ok {
			displayNames[booking.UserID] = profileModel.DisplayNameFallback
		}
	}

	return tourTitles, displayNames, nil
}

func filterBookings(bookings []model.Booking, filter dto.ListFilter, tourTitles, displayNames map[string]string) []model.Booking {
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	status := filter.Status

	filtered := make([]model.Booking, 0, len(bookings))

	for _, booking := range bookings {
		if status != constant.Empty && status != constant.StatusFilterAll {
			if !strings.EqualFold(status, string(booking.Status)) {
				continue
			}
		}

		if query != constant.Empty {
			email := strings.ToLower(booking.ContactEmail)
			name := strings.ToLower(displayNames[booking.UserID])
			title := strings.ToLower(tourTitles[booking.TourID])

			if !strings.Contains(email, query) && !strings.Contains(name, query) && !strings.Contains(title, query) {
				continue
			}
		}

		filtered = append(filtered, booking)
	}

	return filtered
}

func paginate(bookings []model.Booking, page, limit int) []model.Booking {
	if page <= 0 || limit <= 0 {
		return bookings
	}

	start := (page - 1) * limit
	if start >= len(bookings) {
		return []model.Booking{}
	}

	end := start + limit
	if end > len(bookings) {
		end = len(bookings)
	}

	return bookings[start:end]
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
	}()
}
