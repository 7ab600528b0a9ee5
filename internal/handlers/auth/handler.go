package auth

import (
	"net/http"
	"tourly/infras/otel"
	"tourly/internal/domains/auth/model/dto"
	"tourly/internal/domains/auth/service"
	"tourly/shared/constant"
	"tourly/shared/validator"
	"tourly/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Auth
	otel    otel.Otel
}

func New(service service.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/auth", func(routerGroup chi.Router) {
		routerGroup.Post("/signup", handler.SignUp)
		routerGroup.Post("/signin", handler.SignIn)
		routerGroup.Post("/refresh", handler.Refresh)
	})
}

// SignUp registers a new customer account and its profile row.
// @Summary Sign up
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.SignUpRequest true "Account details"
// @Success 201 {object} response.Data[dto.SessionResponse] "Session for the new account"
// @Failure 400 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/auth/signup [post]
func (handler *Handler) SignUp(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SignUp")
	defer scope.End()

	var req dto.SignUpRequest
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	session, err := handler.service.SignUp(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to sign up")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Account created successfully")

	response.WithJSON(writer, http.StatusCreated, session)
}

// SignIn exchanges credentials for a session.
// @Summary Sign in
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.SignInRequest true "Credentials"
// @Success 200 {object} response.Data[dto.SessionResponse] "Session tokens"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/auth/signin [post]
func (handler *Handler) SignIn(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SignIn")
	defer scope.End()

	var req dto.SignInRequest
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	session, err := handler.service.SignIn(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to sign in")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, session)
}

// Refresh exchanges a refresh token for a fresh session.
// @Summary Refresh session
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshRequest true "Refresh token"
// @Success 200 {object} response.Data[dto.SessionResponse] "New session tokens"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/auth/refresh [post]
func (handler *Handler) Refresh(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Refresh")
	defer scope.End()

	var req dto.RefreshRequest
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	session, err := handler.service.Refresh(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to refresh session")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, session)
}
