package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"kegwatch/internal/config"
	apphttp "kegwatch/internal/http"
	"kegwatch/internal/repository"
	mongorepo "kegwatch/internal/repository/mongo"
	"kegwatch/internal/repository/sqlite"
	"kegwatch/internal/service"
)

type stores struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	readings repository.ReadingRepository
	close    func()
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("open stores: %v", err)
	}
	defer st.close()

	if err := st.users.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	if err := st.sessions.Init(ctx); err != nil {
		logger.Fatalf("init session repository: %v", err)
	}
	if err := st.readings.Init(ctx); err != nil {
		logger.Fatalf("init reading repository: %v", err)
	}

	passwords := service.NewPasswordManager(cfg.Auth.BcryptCost)
	userService := service.NewUserService(st.users, passwords)
	sessionService := service.NewSessionService(st.sessions, time.Duration(cfg.Auth.SessionDays)*24*time.Hour)
	readingService := service.NewReadingService(st.readings)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(userService, sessionService, readingService, logger)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func openStores(ctx context.Context, cfg config.Config, logger *logrus.Logger) (stores, error) {
	switch cfg.Database.Engine {
	case "sqlite":
		db, err := sqlite.Open(cfg.Database.Path)
		if err != nil {
			return stores{}, fmt.Errorf("open sqlite: %w", err)
		}
		logger.Infof("using sqlite database %s", cfg.Database.Path)
		return stores{
			users:    sqlite.NewUserRepository(db),
			sessions: sqlite.NewSessionRepository(db),
			readings: sqlite.NewReadingRepository(db),
			close:    func() { _ = db.Close() },
		}, nil
	case "mongo":
		client, db, err := mongorepo.Open(ctx, cfg.Database.URL, cfg.Database.Name)
		if err != nil {
			return stores{}, fmt.Errorf("open mongodb: %w", err)
		}
		logger.Infof("using mongodb database %s", cfg.Database.Name)
		return stores{
			users:    mongorepo.NewUserRepository(db),
			sessions: mongorepo.NewSessionRepository(db),
			readings: mongorepo.NewReadingRepository(db),
			close: func() {
				disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = client.Disconnect(disconnectCtx)
			},
		}, nil
	}
	return stores{}, fmt.Errorf("unknown database engine %q", cfg.Database.Engine)
}
