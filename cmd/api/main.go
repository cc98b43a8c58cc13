package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"jobtrack/internal/config"
	"jobtrack/internal/database"
	"jobtrack/internal/logger"
	"jobtrack/internal/middleware"
	"jobtrack/internal/modules/admin"
	"jobtrack/internal/modules/auth"
	"jobtrack/internal/modules/customer"
	"jobtrack/internal/modules/job"
	"jobtrack/internal/modules/live"
	"jobtrack/internal/modules/report"
	jwtsvc "jobtrack/internal/pkg/jwt"
	"jobtrack/internal/repository"
)

func main() {
	_ = godotenv.Load()

	log := logger.New(nil)

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.WithError(err).Fatal("migration failed")
	}

	userRepo := repository.NewUserRepository(db)
	jobRepo := repository.NewJobRepository(db)
	customerRepo := repository.NewCustomerRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	hub := live.NewHub(jobRepo, log.Logger)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	jobService := job.NewService(jobRepo, customerRepo, hub, job.RequiredFieldsWith(cfg.JobRequiredExtra))
	jobHandler := job.NewHandler(jobService)

	adminService := admin.NewService(userRepo)
	adminHandler := admin.NewHandler(adminService)

	reportService := report.NewService(jobRepo, customerRepo, adminService)
	reportHandler := report.NewHandler(reportService)

	customerService := customer.NewService(customerRepo, jobRepo)
	customerHandler := customer.NewHandler(customerService)

	liveHandler := live.NewHandler(hub)

	r := gin.Default()
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		jobHandler.RegisterPublicRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			jobHandler.RegisterRoutes(protected)
			reportHandler.RegisterRoutes(protected)
			customerHandler.RegisterRoutes(protected)
			adminHandler.RegisterRoutes(protected)
			liveHandler.RegisterRoutes(protected)
		}
	}

	log.WithField("port", cfg.Port).Info("starting api")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
