package report

import (
	"net/http"
	"tourly/infras/otel"
	"tourly/internal/domains/report/service"
	"tourly/shared/constant"
	"tourly/transport/http/middleware"
	"tourly/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Report
	auth    middleware.Auth
	otel    otel.Otel
}

func New(service service.Report, auth middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		auth:    auth,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reports", func(routerGroup chi.Router) {
		routerGroup.Use(handler.auth.Authenticate)
		routerGroup.Use(handler.auth.RequireAdmin)

		routerGroup.Get("/export", handler.ExportReport)
	})
}

// ExportReport streams the dashboard statistics as a CSV download.
// @Summary Export dashboard report
// @Description Export the current dashboard statistics as a dated CSV file.
// @Tags Report
// @Produce text/csv
// @Success 200 {file} file "CSV report"
// @Failure 502 {object} response.Error
// @Router /v1/reports/export [get]
// @Security BearerAuth
func (handler *Handler) ExportReport(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExportReport")
	defer scope.End()

	filename, data, err := handler.service.Export(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export report")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Report exported as " + filename)

	response.WithCSV(writer, filename, data)
}
