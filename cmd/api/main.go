package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"tutorhub/internal/config"
	"tutorhub/internal/database"
	"tutorhub/internal/domain/feedback"
	"tutorhub/internal/domain/profile"
	"tutorhub/internal/domain/review"
	"tutorhub/internal/domain/schedule"
	"tutorhub/internal/logger"
	"tutorhub/internal/middleware"
	jwtsvc "tutorhub/internal/pkg/jwt"
	"tutorhub/internal/storage"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("database connect failed", zap.Error(err))
	}

	if db.Dialector.Name() == "postgres" {
		if err := database.Migrate(context.Background(), db, cfg.MigrationsDir); err != nil {
			zlog.Fatal("migrations failed", zap.Error(err))
		}
		version, err := database.MigrationVersion(context.Background(), db)
		if err != nil {
			zlog.Fatal("migration version lookup failed", zap.Error(err))
		}
		zlog.Info("migrations applied", zap.Int64("version", version))
	} else {
		// SQLite is the local dev path; the versioned migrations target Postgres.
		err := db.AutoMigrate(
			&profile.User{},
			&schedule.Slot{},
			&review.Record{},
			&review.File{},
			&feedback.Message{},
		)
		if err != nil {
			zlog.Fatal("auto-migrate failed", zap.Error(err))
		}
	}

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)
	blobs := storage.NewLocal(cfg.UploadsDir, cfg.StaticBase)

	profileRepo := profile.NewRepository(db)
	slotRepo := schedule.NewRepository(db)
	reviewRepo := review.NewRepository(db)
	feedbackRepo := feedback.NewRepository(db)

	profileService := profile.NewService(profileRepo, j)
	reviewService := review.NewService(reviewRepo, blobs, feedbackRepo, slotRepo, zlog)
	scheduleService := schedule.NewService(slotRepo, reviewService, zlog)

	hub := feedback.NewHub()
	feedbackService := feedback.NewService(feedbackRepo, reviewService, hub)

	profileHandler := profile.NewHandler(profileService)
	scheduleHandler := schedule.NewHandler(scheduleService)
	reviewHandler := review.NewHandler(reviewService)
	feedbackHandler := feedback.NewHandler(feedbackService, hub)

	r := gin.New()
	r.Use(middleware.CORS())
	r.Use(middleware.RequestLogger(zlog))

	r.Static(cfg.StaticBase, blobs.BaseDir())

	v1 := r.Group("/api/v1")
	{
		profile.RegisterPublicRoutes(v1, profileHandler)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			profile.RegisterRoutes(protected, profileHandler, middleware.AdminOnly())
			schedule.RegisterRoutes(protected, scheduleHandler, middleware.TutorOnly(), middleware.StudentOnly())
			review.RegisterRoutes(protected, reviewHandler, middleware.AdminOnly())
			feedback.RegisterRoutes(protected, feedbackHandler)
		}
	}

	zlog.Info("starting server", zap.String("addr", cfg.HTTPAddr))
	if err := r.Run(cfg.HTTPAddr); err != nil {
		zlog.Fatal("server exited", zap.Error(err))
	}
}
