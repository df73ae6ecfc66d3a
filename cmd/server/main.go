package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/api"
	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/app/service"
	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/common/security"
	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/domain/repository"
	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/platform/cache"
	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/platform/config"
	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/platform/database"
	"github.com/sirupsen/logrus"
)

func main() {
	// 1. Load Configuration
	config.Load()
	logrus.Info("Configuration loaded")

	// 2. Initialize JWT
	security.InitJWT()
	logrus.Info("JWT initialized")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()

	// 4. Initialize response cache (optional)
	listCache := cache.Connect()
	defer listCache.Close()

	// 5. Initialize Repositories
	adminRepo := repository.NewPgAdminRepository(database.DB)
	vehicleRepo := repository.NewPgVehicleRepository(database.DB)
	topicRepo := repository.NewPgTopicRepository(database.DB)
	questionRepo := repository.NewPgQuestionRepository(database.DB)

	// 6. Initialize Services
	adminService := service.NewAdminService(adminRepo, config.AppConfig.ExposePasswordHashes)
	vehicleService := service.NewVehicleService(vehicleRepo, listCache)
	topicService := service.NewTopicService(topicRepo, questionRepo, listCache)
	questionService := service.NewQuestionService(questionRepo, listCache)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(adminService, vehicleService, topicService, questionService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logrus.Infof("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Could not listen on %s: %v", config.AppConfig.APIPort, err)
		}
	}()

	<-stop // Wait for interrupt signal

	logrus.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("Server shutdown failed: %v", err)
	}

	logrus.Info("Server stopped gracefully")
}
