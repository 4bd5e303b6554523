package main

import (
	"log"
	"net/http"

	_ "jobtracker/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"jobtracker/internal/cache"
	"jobtracker/internal/config"
	"jobtracker/internal/db"
	"jobtracker/internal/handler"
	"jobtracker/internal/model"
	"jobtracker/internal/repository"
	"jobtracker/internal/router"
	"jobtracker/internal/service"
	"jobtracker/internal/session"
)

// @title Job Tracker API
// @version 1.0
// @description Personal job-application tracker with session-cookie authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.JobApplication{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	jobRepo := repository.NewJobRepository(gormDB)

	// Initialize session components
	sessionStore := session.NewRedisStore(cacheClient)
	cookieCodec := session.NewCookieCodec(cfg.SessionSecret)

	// Initialize services
	authService := service.NewAuthService(userRepo, sessionStore)
	jobService := service.NewJobService(jobRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cookieCodec, cfg.IsProduction())
	jobHandler := handler.NewJobHandler(jobService)

	// Register routes
	router.Register(e, sessionStore, cookieCodec, authHandler, jobHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
