// Command rest runs the REST query layer on its fixed port.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/whoismarios/sa-gateway-demo/internal/config"
	"github.com/whoismarios/sa-gateway-demo/internal/database"
	"github.com/whoismarios/sa-gateway-demo/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	srv := server.NewServer(cfg, db, "rest-api")

	app := fiber.New(fiber.Config{
		AppName: "SA Gateway REST API",
	})
	srv.SetupMiddleware(app)
	srv.SetupRESTRoutes(app)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down REST service...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("REST API listening on port %s...", cfg.RESTPort)
	log.Fatal(app.Listen(":" + cfg.RESTPort))
}
