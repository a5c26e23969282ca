package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/coworking-booking/internal/booking"
	"github.com/iliyamo/coworking-booking/internal/config"
	"github.com/iliyamo/coworking-booking/internal/database"
	"github.com/iliyamo/coworking-booking/internal/handler"
	"github.com/iliyamo/coworking-booking/internal/middleware"
	"github.com/iliyamo/coworking-booking/internal/queue"
	"github.com/iliyamo/coworking-booking/internal/repository"
	"github.com/iliyamo/coworking-booking/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: with no client the cache and rate-limit
	// middlewares become pass-through.
	rdb := config.NewRedisClient()

	clients := repository.NewClientRepo(db)
	tokens := repository.NewTokenRepo(db)
	buildings := repository.NewBuildingRepo(db)
	places := repository.NewPlaceRepo(db)
	visits := repository.NewVisitRepo(db)
	settings := repository.NewSettingsRepo(db)

	scheduler := booking.NewScheduler(booking.NewPlaceLocker(), places, visits, nil)

	authH := handler.NewAuthHandler(cfg, clients, tokens)
	publicH := handler.NewPublicHandler(buildings, places, visits)
	visitH := handler.NewVisitHandler(scheduler, visits, places)
	adminBuildingH := handler.NewAdminBuildingHandler(buildings)
	adminPlaceH := handler.NewAdminPlaceHandler(places, buildings)
	adminVisitH := handler.NewAdminVisitHandler(scheduler, visits, buildings)
	ownerH := handler.NewOwnerHandler(clients)
	settingsH := handler.NewSettingsHandler(settings)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, publicH, settingsH)
	router.RegisterClient(e, visitH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminBuildingH, adminPlaceH, adminVisitH, cfg.JWTSecret)
	router.RegisterOwner(e, ownerH, settingsH, cfg.JWTSecret)

	// Background consumer logging confirmed reservations.  It runs a
	// reconnect loop of its own and never takes the server down.
	go func() {
		if err := queue.StartVisitConsumer(); err != nil {
			log.Printf("visit consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
