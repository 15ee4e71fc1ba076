package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"safety_reports/internal/cache"
	"safety_reports/internal/config"
	"safety_reports/internal/logger"
	"safety_reports/internal/middleware"
	"safety_reports/internal/routes"
	"safety_reports/internal/services"
	"safety_reports/internal/storage"
)

func main() {
	cfg := config.Load()

	// Initialize structured logging to file
	accessLog := logger.Setup(cfg.Log)
	gin.SetMode(cfg.GinMode)

	// Connect to the database
	db, err := config.InitDB(cfg.Database)
	if err != nil {
		log.Fatal(err)
	}
	logrus.Info("Connected to PostgreSQL and migrated schema")

	images, err := storage.New(cfg.Storage)
	if err != nil {
		log.Fatal(err)
	}

	var statsCache services.StatsCache
	if cfg.Redis.Addr != "" {
		client, err := cache.NewClient(cfg.Redis)
		if err != nil {
			logrus.WithError(err).Warn("stats cache disabled")
		} else {
			defer client.Close()
			statsCache = cache.NewStatsCache(client, cfg.Redis.StatsTTL)
		}
	}

	stats := services.NewStatsService(db, statsCache)
	users := services.NewUserService(db, images, stats).WithBootstrapAdmins(cfg.AdminUsernames)
	if _, err := users.PromoteAdmins(context.Background(), cfg.AdminUsernames); err != nil {
		log.Fatal(err)
	}

	deps := routes.Deps{
		Auth:      middleware.NewAuth(cfg.JWT.Secret, cfg.JWT.TTL),
		Users:     users,
		Reports:   services.NewReportService(db, images, stats, cfg.Storage.MaxImageBytes),
		Comments:  services.NewCommentService(db),
		Stats:     stats,
		AccessLog: accessLog,
	}
	if local, ok := images.(*storage.LocalStore); ok {
		deps.MediaDir = local.Root()
		deps.MediaURL = cfg.Storage.PublicBaseURL
	}

	r := routes.SetupRouter(deps)

	// Wrap with CORS
	handler := middleware.EnableCORS(r, cfg.CORSOrigins)

	logrus.Infof("Server running at :%s", cfg.Port)
	log.Fatal(http.ListenAndServe("0.0.0.0:"+cfg.Port, handler))
}
