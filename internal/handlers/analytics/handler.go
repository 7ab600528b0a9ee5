package analytics

import (
	"net/http"
	"tourly/infras/otel"
	"tourly/internal/domains/analytics/service"
	"tourly/shared/constant"
	"tourly/transport/http/middleware"
	"tourly/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Analytics
	auth    middleware.Auth
	otel    otel.Otel
}

func New(service service.Analytics, auth middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		auth:    auth,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/dashboard", func(routerGroup chi.Router) {
		routerGroup.Use(handler.auth.Authenticate)
		routerGroup.Use(handler.auth.RequireAdmin)

		routerGroup.Get("/stats", handler.GetDashboardStats)
	})
}

// GetDashboardStats computes the operator dashboard snapshot.
// @Summary Get dashboard statistics
// @Description Compute booking, revenue, and distribution statistics from live data. Never cached.
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Data[model.DashboardStats] "Dashboard statistics"
// @Failure 502 {object} response.Error
// @Router /v1/dashboard/stats [get]
// @Security BearerAuth
func (handler *Handler) GetDashboardStats(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDashboardStats")
	defer scope.End()

	stats, err := handler.service.GetDashboardStats(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to compute dashboard stats")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Dashboard stats computed successfully")

	response.WithJSON(writer, http.StatusOK, stats)
}
