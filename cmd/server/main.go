package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"skynet/internal/app"
	"skynet/internal/handlers"
	"skynet/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	log := logger.New("main")

	application, err := app.New()
	if err != nil {
		log.Er("failed to initialize application", err)
		os.Exit(1)
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Er("failed to close application", err)
		}
	}()

	server := fiber.New(fiber.Config{
		AppName: "skynet",
	})

	server.Use(recover.New())
	server.Use(cors.New())

	if err := handlers.Router(server, application); err != nil {
		log.Er("failed to register routes", err)
		os.Exit(1)
	}

	go func() {
		address := fmt.Sprintf(":%d", application.Config.Port)
		log.Info("Starting server", "address", address)
		if err := server.Listen(address); err != nil {
			log.Er("server stopped", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	if err := server.Shutdown(); err != nil {
		log.Er("failed to shut down server", err)
	}
}
