package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/cristophermlima/pierce-connect/internal/pkg/cache"
	"github.com/cristophermlima/pierce-connect/internal/pkg/database"
	"github.com/cristophermlima/pierce-connect/internal/pkg/env"
	"github.com/cristophermlima/pierce-connect/internal/pkg/metrics/counter"
	"github.com/cristophermlima/pierce-connect/internal/pkg/router"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	// flush pending view counters periodically
	counter.StartFlusher(context.Background(), time.Minute, func(err error) {
		log.Printf("view counter flush failed: %v", err)
	})

	app := fiber.New(fiber.Config{
		AppName: "PierceConnect",
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			env.GetEnv("METRICS_USER", "admin"): env.GetEnv("METRICS_PASSWORD", "admin"),
		},
	}), monitor.New())

	// ROUTER
	router.InstallRouter(app)

	return app
}
