package router

import (
	"vista/internal/handlers/analytics"
	"vista/internal/handlers/auth"
	"vista/internal/handlers/booking"
	"vista/internal/handlers/guest"
	"vista/internal/handlers/home"
	"vista/internal/handlers/messaging"
	"vista/internal/handlers/profile"
	"vista/internal/handlers/room"
	"vista/internal/handlers/session"
	"vista/internal/handlers/shiftlog"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth      auth.Handler
	Profile   profile.Handler
	Session   session.Handler
	Home      home.Handler
	Log       shiftlog.Handler
	Messaging messaging.Handler
	Room      room.Handler
	Guest     guest.Handler
	Booking   booking.Handler
	Analytics analytics.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Profile.Router(routerGroup)
		r.DomainHandlers.Session.Router(routerGroup)
		r.DomainHandlers.Home.Router(routerGroup)
		r.DomainHandlers.Log.Router(routerGroup)
		r.DomainHandlers.Messaging.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Guest.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Analytics.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
