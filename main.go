// @title VidyaSetu API
// @version 1.0
// @description Backend server for the VidyaSetu learning platform.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"log"

	"vidyasetu_backend/internal/app"
	"vidyasetu_backend/internal/config"
	"vidyasetu_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}
