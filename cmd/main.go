package main

import (
	"store-service/internal/handler"
	"store-service/pkg/config"
	"store-service/pkg/database"
	"store-service/pkg/jwtutil"
	"store-service/pkg/logger"
	"store-service/prometheus"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file if present; environments without one set the variables
	// directly and the config defaults cover the rest
	_ = godotenv.Load()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting store-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize JWT utility and the admin login gate
	jwtutil.Initialize(&appConfig.JWT)
	if err := handler.InitAuth(&appConfig.Admin); err != nil {
		log.Fatal("Failed to initialize admin credentials", zap.Error(err))
	}
	log.Info("Login gate initialized", zap.String("admin", appConfig.Admin.Username))

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Build routes and start serving
	e := handler.NewRouter()

	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
