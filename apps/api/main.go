package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	echoapi "github.com/campushq/placetrack/apps/api/echo"
	"github.com/campushq/placetrack/core"
	"github.com/campushq/placetrack/core/analytics"
	"github.com/campushq/placetrack/core/application"
	"github.com/campushq/placetrack/core/user"
	cachesvc "github.com/campushq/placetrack/services/cache"
	emailsvc "github.com/campushq/placetrack/services/email"
	logsvc "github.com/campushq/placetrack/services/logger"
	"github.com/campushq/placetrack/storage/database"
	sqlxrepos "github.com/campushq/placetrack/storage/database/sqlx"
)

const shutdownTimeout = 20 * time.Second

func main() {
	// set up logger
	var logger core.Logger
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	if core.Conf.Debug {
		logger = logsvc.NewStdLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, core.Conf)
	}

	// set up DB
	db, err := setUpDB()
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			logger.Error("closing database", err)
		}
	}()

	// set up repos
	usrRepo := sqlxrepos.NewUserRepository(db)
	appRepo := sqlxrepos.NewApplicationRepository(db)
	anRepo := sqlxrepos.NewAnalyticsRepository(db)

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}

	var statsCache *cachesvc.StatsCache
	var anCache analytics.Cache
	var invalidator application.StatsInvalidator
	if core.Conf.Redis.Addr != "" {
		statsCache = cachesvc.NewStatsCache(core.Conf)
		anCache = statsCache
		invalidator = statsCache
	}

	usrSvc := user.NewService(usrRepo, mailSvc)
	appSvc := application.NewService(appRepo, usrRepo, invalidator)
	anSvc := analytics.NewService(anRepo, usrRepo, appRepo, anCache)

	logger.Info(fmt.Sprintf("Application initializing : version %q", core.Conf.Build))
	defer logger.Info("Application stopped")

	// start API server
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	server := echoapi.NewServer(
		&echoapi.Options{
			Address:        fmt.Sprintf("%s:%d", core.Conf.Server.Host, core.Conf.Server.Port),
			Logger:         logger,
			SignalShutdown: func() { shutdown <- syscall.SIGTERM },
			UserSvc:        usrSvc,
			AppSvc:         appSvc,
			AnalyticsSvc:   anSvc,
		},
	)
	go server.Start()

	sig := <-shutdown
	logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

	// give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = server.Stop(ctx); err != nil {
		logger.Fatal(fmt.Sprintf("could not stop server gracefully: %v", err), err)
	}
}

func setUpDB() (db *sqlx.DB, err error) {
	if err = database.CreateIfNotExist(core.Conf); err != nil {
		return nil, err
	}
	if db, err = database.Open(core.Conf); err != nil {
		return nil, err
	}
	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
