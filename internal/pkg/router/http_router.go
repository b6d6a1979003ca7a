package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cristophermlima/pierce-connect/app/repository"
	"github.com/cristophermlima/pierce-connect/internal/pkg/auth"
	"github.com/cristophermlima/pierce-connect/internal/pkg/billing"
	"github.com/cristophermlima/pierce-connect/internal/pkg/database"
)

type HttpRouter struct {
}

var billingService *billing.Service

func getBillingService() *billing.Service {
	return billingService
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init bearer token store
	auth.SetupTokenStore()

	// init repositories
	repository.InitializeFactory(database.GetDB())

	// init billing pipeline against Stripe
	billingService = billing.NewServiceFromEnv(database.GetDB())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
