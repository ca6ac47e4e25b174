//go:build wireinject
// +build wireinject

package di

import (
	"vista/config"
	"vista/infras/jwt"
	"vista/infras/kafka"
	"vista/infras/metrics"
	"vista/infras/otel"
	"vista/infras/postgres"
	"vista/infras/redis"
	"vista/infras/s3"
	"vista/permissions"
	"vista/shared/cache"
	"vista/transport/http"
	"vista/transport/http/middleware"
	"vista/transport/http/router"

	"github.com/google/wire"

	activityService "vista/internal/domains/activity/service"
	analyticsRepository "vista/internal/domains/analytics/repository"
	analyticsService "vista/internal/domains/analytics/service"
	authService "vista/internal/domains/auth/service"
	bookingRepository "vista/internal/domains/booking/repository"
	bookingService "vista/internal/domains/booking/service"
	guestRepository "vista/internal/domains/guest/repository"
	guestService "vista/internal/domains/guest/service"
	homeService "vista/internal/domains/home/service"
	messagingRepository "vista/internal/domains/messaging/repository"
	messagingService "vista/internal/domains/messaging/service"
	profileRepository "vista/internal/domains/profile/repository"
	profileService "vista/internal/domains/profile/service"
	roomRepository "vista/internal/domains/room/repository"
	roomService "vista/internal/domains/room/service"
	sessionRepository "vista/internal/domains/session/repository"
	sessionService "vista/internal/domains/session/service"
	logRepository "vista/internal/domains/shiftlog/repository"
	logService "vista/internal/domains/shiftlog/service"
	userRepository "vista/internal/domains/user/repository"

	analyticsHandler "vista/internal/handlers/analytics"
	authHandler "vista/internal/handlers/auth"
	bookingHandler "vista/internal/handlers/booking"
	guestHandler "vista/internal/handlers/guest"
	homeHandler "vista/internal/handlers/home"
	messagingHandler "vista/internal/handlers/messaging"
	profileHandler "vista/internal/handlers/profile"
	roomHandler "vista/internal/handlers/room"
	sessionHandler "vista/internal/handlers/session"
	logHandler "vista/internal/handlers/shiftlog"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
	metrics.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var activityDomain = wire.NewSet(
	activityService.NewPublisher,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var profileDomain = wire.NewSet(
	profileRepository.New,
	profileService.New,
)

var sessionDomain = wire.NewSet(
	sessionRepository.New,
	sessionService.New,
)

var logDomain = wire.NewSet(
	logRepository.New,
	logService.New,
)

var messagingDomain = wire.NewSet(
	messagingRepository.NewThread,
	messagingRepository.NewParticipant,
	messagingRepository.NewMessage,
	messagingService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var guestDomain = wire.NewSet(
	guestRepository.New,
	guestService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var analyticsDomain = wire.NewSet(
	analyticsRepository.NewOccupancy,
	analyticsRepository.NewRevenue,
	analyticsService.New,
)

var homeDomain = wire.NewSet(
	homeService.New,
)

var domains = wire.NewSet(
	activityDomain,
	authDomain,
	profileDomain,
	sessionDomain,
	logDomain,
	messagingDomain,
	roomDomain,
	guestDomain,
	bookingDomain,
	analyticsDomain,
	homeDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	profileHandler.New,
	sessionHandler.New,
	homeHandler.New,
	logHandler.New,
	messagingHandler.New,
	roomHandler.New,
	guestHandler.New,
	bookingHandler.New,
	analyticsHandler.New,
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

func InitializeWorker() *activityService.Consumer {
	wire.Build(
		config.Get,
		otel.New,
		redis.New,
		postgres.New,
		s3.New,
		kafka.New,
		cache.NewRedisCache,
		profileDomain,
		activityService.NewConsumer,
	)

	return &activityService.Consumer{}
}
