package main

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/fleetops/rosterd/internal/pkg/config"
	"github.com/fleetops/rosterd/internal/pkg/database"
	"github.com/fleetops/rosterd/internal/pkg/health"
	"github.com/fleetops/rosterd/internal/pkg/logger"
	"github.com/fleetops/rosterd/internal/pkg/middleware"
	"github.com/fleetops/rosterd/internal/pkg/nsq"
	"github.com/fleetops/rosterd/internal/pkg/server"

	fleetrepo "github.com/fleetops/rosterd/services/fleet/repository"
	rosterhandler "github.com/fleetops/rosterd/services/roster/handler"
	rostergateway "github.com/fleetops/rosterd/services/roster/gateway"
	rosterrepo "github.com/fleetops/rosterd/services/roster/repository"
	rosterusecase "github.com/fleetops/rosterd/services/roster/usecase"
	triphandler "github.com/fleetops/rosterd/services/trip/handler"
	tripgateway "github.com/fleetops/rosterd/services/trip/gateway"
	triprepo "github.com/fleetops/rosterd/services/trip/repository"
	tripusecase "github.com/fleetops/rosterd/services/trip/usecase"
)

func main() {
	cfg := config.InitConfig(".env")

	log, err := logger.Init(cfg.Logger)
	if err != nil {
		panic(err)
	}
	defer log.Close()

	// Infrastructure
	pg, err := database.NewPostgresClient(cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to postgres")
	}
	defer pg.Close()

	redis, err := database.NewRedisClient(cfg.Redis)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to redis")
	}
	defer redis.Close()

	producer, err := nsq.NewProducer(cfg.NSQ.Address)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to NSQ")
	}
	defer producer.Stop()

	// Repositories
	registry := fleetrepo.NewFleetRepository(pg.GetDB())
	rosterRepo := rosterrepo.NewRosterRepository(pg.GetDB())
	tripRepo := triprepo.NewTripRepository(pg.GetDB())
	vehicleCache := triprepo.NewVehicleCacheRepository(redis)

	// Gateways
	rosterGW := rostergateway.NewRosterGW(producer)
	tripGW := tripgateway.NewTripGW(producer)

	// Usecases
	rosterUC := rosterusecase.NewRosterUC(rosterRepo, registry, rosterGW)
	tripUC := tripusecase.NewTripUC(tripRepo, vehicleCache, rosterRepo, registry, tripGW)

	// HTTP
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.RequestID())
	e.Use(middleware.PanicRecoveryMiddleware(log))
	e.Use(logger.EchoMiddleware(log))

	rosterhandler.NewRosterHandler(rosterUC, cfg.JWT).RegisterRoutes(e)
	triphandler.NewTripHandler(tripUC, cfg.JWT).RegisterRoutes(e)

	healthSvc := health.NewService()
	healthSvc.AddChecker("postgres", func(ctx context.Context) error { return pg.GetDB().PingContext(ctx) })
	healthSvc.AddChecker("redis", redis.Ping)
	healthSvc.AddChecker("nsq", func(context.Context) error { return producer.Ping() })
	healthSvc.Register(e, cfg.App.Name)

	// Nightly generation
	if cfg.Scheduler.Enabled {
		scheduler := tripusecase.NewScheduler(tripUC, cfg.Scheduler)
		if err := scheduler.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start trip generation scheduler")
		}
		defer scheduler.Stop()
	}

	srv := server.NewGracefulServer(e, log, cfg.Server.Port,
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	if err := srv.Start(); err != nil {
		log.WithError(err).Error("Server exited with error")
	}
}
