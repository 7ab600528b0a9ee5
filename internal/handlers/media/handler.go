package media

import (
	"net/http"
	"tourly/infras/otel"
	"tourly/internal/domains/media/service"
	"tourly/shared/constant"
	"tourly/shared/failure"
	"tourly/transport/http/middleware"
	"tourly/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

const requestParamURL = "url"

type Handler struct {
	service service.Media
	auth    middleware.Auth
	otel    otel.Otel
}

func New(service service.Media, auth middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		auth:    auth,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/media", func(routerGroup chi.Router) {
		routerGroup.Use(handler.auth.Authenticate)
		routerGroup.Use(handler.auth.RequireAdmin)

		routerGroup.Post("/images", handler.UploadImage)
		routerGroup.Delete("/images", handler.DeleteImage)
	})
}

// UploadImage stores a tour image and returns its public URL.
// @Summary Upload an image
// @Tags Media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Success 201 {object} response.Data[string] "Public image URL"
// @Failure 400 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/media/images [post]
// @Security BearerAuth
func (handler *Handler) UploadImage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadImage")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		err := failure.BadRequestFromString("Invalid multipart form data")
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	file, header, err := request.FormFile(constant.FormFile)
	if err != nil {
		err := failure.BadRequestFromString("Missing file in form data")
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}
	defer file.Close()

	url, err := handler.service.UploadImage(ctx, file, header)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload image")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Image uploaded successfully")

	response.WithJSON(writer, http.StatusCreated, url)
}

// DeleteImage removes a previously uploaded image by its public URL.
// @Summary Delete an image
// @Tags Media
// @Produce json
// @Param url query string true "Public image URL"
// @Success 200 {object} response.Message "Image deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/media/images [delete]
// @Security BearerAuth
func (handler *Handler) DeleteImage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteImage")
	defer scope.End()

	url := request.URL.Query().Get(requestParamURL)
	if url == "" {
		err := failure.BadRequestFromString("Missing url query parameter")
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	if err := handler.service.DeleteImage(ctx, url); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete image")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Image deleted successfully")
}
