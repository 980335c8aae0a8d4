// main.go
package main

import (
	"log"

	"library-catalog/cmd"
	"library-catalog/internal/data/repository"
	"library-catalog/internal/wire"
	"library-catalog/pkg/database"
	"library-catalog/pkg/storage"
	"library-catalog/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Poster file storage
	posters, err := storage.NewDiskPosterStorage(config.Upload.Dir, logger)
	if err != nil {
		logger.Fatal("Failed to init poster storage", zap.Error(err))
	}

	// Wire all dependencies
	app := wire.Wiring(repos, posters, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
