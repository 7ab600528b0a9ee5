package tour

import (
	"net/http"
	"tourly/infras/otel"
	"tourly/internal/domains/tour/model"
	"tourly/internal/domains/tour/model/dto"
	"tourly/internal/domains/tour/service"
	"tourly/shared"
	"tourly/shared/constant"
	gDto "tourly/shared/dto"
	"tourly/shared/validator"
	"tourly/transport/http/middleware"
	"tourly/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

const (
	requestParamType      = "type"
	requestParamAvailable = "available"
)

type Handler struct {
	service service.Tour
	auth    middleware.Auth
	otel    otel.Otel
}

func New(service service.Tour, auth middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		auth:    auth,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/tours", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetTours)
		routerGroup.Get("/count", handler.GetTourCount)
		routerGroup.Get("/{id}", handler.GetTourByID)

		routerGroup.Group(func(adminGroup chi.Router) {
			adminGroup.Use(handler.auth.Authenticate)
			adminGroup.Use(handler.auth.RequireAdmin)

			adminGroup.Post("/", handler.CreateTour)
			adminGroup.Patch("/{id}", handler.UpdateTour)
			adminGroup.Delete("/{id}", handler.DeleteTour)
		})
	})
}

// CreateTour registers a new tour in the catalog.
// @Summary Create a tour
// @Tags Tour
// @Accept json
// @Produce json
// @Param request body dto.CreateTourRequest true "Tour details"
// @Success 201 {object} response.Message "Tour created successfully"
// @Failure 400 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/tours [post]
// @Security BearerAuth
func (handler *Handler) CreateTour(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTour")
	defer scope.End()

	var req dto.CreateTourRequest
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create tour")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusCreated, "Tour created successfully")
}

// GetTours lists catalog tours.
// @Summary List tours
// @Description List tours with optional title search, type, and availability filters.
// @Tags Tour
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param q query string false "Title search"
// @Param type query string false "Tour type (regular or combo)"
// @Param available query string false "Availability filter (true or false)"
// @Success 200 {object} response.Data[dto.GetToursResponse] "List of tours"
// @Failure 502 {object} response.Error
// @Router /v1/tours [get]
func (handler *Handler) GetTours(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTours")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	tours, err := handler.service.GetAll(ctx, queryParams, handler.buildFilter(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tours")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Tours retrieved successfully")

	response.WithJSON(w, http.StatusOK, tours)
}

// GetTourCount returns the number of tours matching the filters.
// @Summary Count tours
// @Tags Tour
// @Accept json
// @Produce json
// @Param q query string false "Title search"
// @Param type query string false "Tour type (regular or combo)"
// @Param available query string false "Availability filter (true or false)"
// @Success 200 {object} response.Data[int] "Tour count"
// @Failure 502 {object} response.Error
// @Router /v1/tours/count [get]
func (handler *Handler) GetTourCount(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTourCount")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	count, err := handler.service.Count(ctx, queryParams, handler.buildFilter(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to count tours")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, count)
}

// GetTourByID retrieves a tour by its ID.
// @Summary Get a tour by ID
// @Tags Tour
// @Accept json
// @Produce json
// @Param id path string true "Tour ID"
// @Success 200 {object} response.Data[dto.TourResponse] "Tour details"
// @Failure 404 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/tours/{id} [get]
func (handler *Handler) GetTourByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTourByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	tour, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tour by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, tour)
}

// UpdateTour edits an existing tour.
// @Summary Update a tour
// @Tags Tour
// @Accept json
// @Produce json
// @Param id path string true "Tour ID"
// @Param request body dto.UpdateTourRequest true "Fields to update"
// @Success 200 {object} response.Message "Tour updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/tours/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateTour(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTour")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.UpdateTourRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update tour")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Tour updated successfully")
}

// DeleteTour removes a tour, archiving its bookings first.
// @Summary Delete a tour
// @Description Archive every booking referencing the tour, delete them, then delete the tour.
// @Tags Tour
// @Produce json
// @Param id path string true "Tour ID"
// @Success 200 {object} response.Message "Tour deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/tours/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteTour(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTour")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("tour_id", id).Msg("failed to delete tour")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Tour deleted with bookings archived")

	response.WithMessage(w, http.StatusOK, "Tour deleted successfully")
}

func (handler *Handler) buildFilter(r *http.Request) gDto.FilterGroup {
	filter := gDto.FilterGroup{}

	if query := r.URL.Query().Get(constant.RequestParamQuery); query != "" {
		filter.Add(model.FieldTitle, gDto.FilterOperatorIlike, query)
	}

	if tourType := r.URL.Query().Get(requestParamType); tourType != "" {
		filter.Add(model.FieldType, gDto.FilterOperatorEq, tourType)
	}

	if available := r.URL.Query().Get(requestParamAvailable); available != "" {
		filter.Add(model.FieldAvailable, gDto.FilterOperatorEq, shared.ConvertStringToBool(available))
	}

	return filter
}
