package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"plantchatapi/bootstrap"
	"plantchatapi/config"
	"plantchatapi/controllers"
	_ "plantchatapi/docs"
	"plantchatapi/middlewares"
	"plantchatapi/pkg/logger"
	"plantchatapi/services/access"
	"plantchatapi/services/health"
	"plantchatapi/services/plantdb"
	"plantchatapi/utils"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           plantchatapi
// @version         1.0
// @description     Multi-plant AI chat and artifact API

// @BasePath  /api/v1

func main() {
	// 1) Load config; an incomplete plant credential group aborts startup here
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("LoadConfig error: %v", err)
	}

	// 2) Init structured logger with config
	logLevel := logger.ParseLogLevel(config.Cfg.LogLevel)
	logger.InitWithConfig(
		config.Cfg.LogFile,
		logLevel,
		config.Cfg.LogMaxSize,
		config.Cfg.LogMaxBackups,
		config.Cfg.LogMaxAge,
		config.Cfg.LogCompress,
	)
	logger.Infof("Starting Plant Chat API with log level: %s, %d plants registered",
		config.Cfg.LogLevel, config.Plants.Len())

	// 3) Connect central DB (GORM)
	if err := config.ConnectDB(); err != nil {
		log.Fatalf("ConnectDB error: %v", err)
	}
	if config.DB == nil {
		log.Fatal("Central database is nil after ConnectDB")
	}

	if err := bootstrap.MigrateCentral(config.DB); err != nil {
		log.Fatalf("Migration error: %v", err)
	}

	// 4) Build the shared routing layer: one pool per process
	pool := plantdb.NewPool(config.Plants, config.DB)
	accessSrv := access.NewAccessService(config.DB)
	healthSrv := health.NewHealthService(config.Plants)
	controllers.SetHealthService(healthSrv)

	// 5) Setup Gin
	router := gin.Default()
	router.Use(utils.LoggerMiddleware())

	v1 := router.Group("/api/v1")
	{
		// Open endpoints: no plant routing required
		controllers.RegisterHealthRoutes(v1)
		controllers.RegisterPlantRoutes(v1)

		// Plant-scoped endpoints behind the routing middleware
		scoped := v1.Group("", middlewares.PlantContext(pool, accessSrv))
		{
			controllers.RegisterChatRoutes(scoped)
			controllers.RegisterArtifactRoutes(scoped)
		}
	}

	// 6) Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 7) Setup graceful shutdown: release every plant pool before exit
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Infof("Received shutdown signal, closing connection pools...")

		if err := pool.Close(); err != nil {
			logger.Errorf("Error closing connection pools: %v", err)
		}

		logger.Infof("Application shutdown complete")
		os.Exit(0)
	}()

	// 8) Run
	port := os.Getenv("PORT")
	if port == "" {
		port = "8004"
	}
	logger.Infof("Starting server at port %s", port)
	router.Run("0.0.0.0:" + port)
}
