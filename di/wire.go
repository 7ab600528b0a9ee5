//go:build wireinject
// +build wireinject

package di

import (
	"tourly/config"
	"tourly/infras/jwt"
	"tourly/infras/notify"
	"tourly/infras/otel"
	"tourly/infras/redis"
	"tourly/infras/s3"
	"tourly/infras/supabase"
	"tourly/shared/cache"
	"tourly/shared/events"
	"tourly/transport/http"
	"tourly/transport/http/middleware"
	"tourly/transport/http/router"

	bookingRepository "tourly/internal/domains/booking/repository"
	bookingService "tourly/internal/domains/booking/service"
	profileRepository "tourly/internal/domains/profile/repository"
	profileService "tourly/internal/domains/profile/service"
	tourRepository "tourly/internal/domains/tour/repository"
	tourService "tourly/internal/domains/tour/service"

	analyticsService "tourly/internal/domains/analytics/service"
	authService "tourly/internal/domains/auth/service"
	mediaService "tourly/internal/domains/media/service"
	reportService "tourly/internal/domains/report/service"

	analyticsHandler "tourly/internal/handlers/analytics"
	authHandler "tourly/internal/handlers/auth"
	bookingHandler "tourly/internal/handlers/booking"
	mediaHandler "tourly/internal/handlers/media"
	profileHandler "tourly/internal/handlers/profile"
	reportHandler "tourly/internal/handlers/report"
	tourHandler "tourly/internal/handlers/tour"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	supabase.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	notify.New,
	events.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var profileDomain = wire.NewSet(
	profileRepository.New,
	profileService.New,
)

var tourDomain = wire.NewSet(
	tourRepository.New,
	tourService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingRepository.NewArchive,
	bookingService.New,
)

var analyticsDomain = wire.NewSet(
	analyticsService.New,
)

var reportDomain = wire.NewSet(
	reportService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var mediaDomain = wire.NewSet(
	mediaService.New,
)

var domains = wire.NewSet(
	profileDomain,
	tourDomain,
	bookingDomain,
	analyticsDomain,
	reportDomain,
	authDomain,
	mediaDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	profileHandler.New,
	tourHandler.New,
	bookingHandler.New,
	analyticsHandler.New,
	reportHandler.New,
	mediaHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
