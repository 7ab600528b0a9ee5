package router

import (
	"tourly/internal/handlers/analytics"
	"tourly/internal/handlers/auth"
	"tourly/internal/handlers/booking"
	"tourly/internal/handlers/media"
	"tourly/internal/handlers/profile"
	"tourly/internal/handlers/report"
	"tourly/internal/handlers/tour"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth      auth.Handler
	Profile   profile.Handler
	Tour      tour.Handler
	Booking   booking.Handler
	Analytics analytics.Handler
	Report    report.Handler
	Media     media.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Profile.Router(routerGroup)
		r.DomainHandlers.Tour.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Analytics.Router(routerGroup)
		r.DomainHandlers.Report.Router(routerGroup)
		r.DomainHandlers.Media.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
