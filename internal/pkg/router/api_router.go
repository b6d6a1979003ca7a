package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/cristophermlima/pierce-connect/app/controllers"
	"github.com/cristophermlima/pierce-connect/internal/pkg/entitlements"
	"github.com/cristophermlima/pierce-connect/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	v1 := api.Group("/v1", cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// auth
	authGroup := v1.Group("/auth")
	authGroup.Post("/register", controllers.HandleRegister)
	authGroup.Post("/login", controllers.HandleLogin)
	authGroup.Post("/logout", middleware.BearerAuthMiddleware(), controllers.HandleLogout)
	authGroup.Get("/me", middleware.BearerAuthMiddleware(), controllers.HandleGetMe)

	// events: public reads, subscription-gated writes
	events := v1.Group("/events")
	events.Get("/", controllers.HandleListEvents)
	events.Get("/:uuid", controllers.HandleGetEvent)
	events.Post("/",
		middleware.BearerAuthMiddleware(),
		middleware.RequireTier(getBillingService, entitlements.TierPro),
		controllers.HandleCreateEvent)

	// suppliers: public reads, business-tier writes
	suppliers := v1.Group("/suppliers")
	suppliers.Get("/", controllers.HandleListSuppliers)
	suppliers.Get("/:uuid", controllers.HandleGetSupplier)
	suppliers.Post("/",
		middleware.BearerAuthMiddleware(),
		middleware.RequireTier(getBillingService, entitlements.TierBusiness),
		controllers.HandleCreateSupplier)

	// piercers: public reads, subscription-gated writes; reviews need login only
	piercers := v1.Group("/piercers")
	piercers.Get("/", controllers.HandleListPiercers)
	piercers.Get("/:uuid", controllers.HandleGetPiercer)
	piercers.Post("/",
		middleware.BearerAuthMiddleware(),
		middleware.RequireTier(getBillingService, entitlements.TierPro),
		controllers.HandleCreatePiercer)
	piercers.Get("/:uuid/reviews", controllers.HandleListReviews)
	piercers.Post("/:uuid/reviews", middleware.BearerAuthMiddleware(), controllers.HandleCreateReview)

	// billing: everything requires a logged-in user
	billingController := controllers.NewBillingController(getBillingService())
	billingGroup := v1.Group("/billing", middleware.BearerAuthMiddleware())
	billingGroup.Post("/check-subscription", billingController.HandleCheckSubscription)
	billingGroup.Post("/create-subscription-checkout", billingController.HandleCreateSubscriptionCheckout)
	billingGroup.Post("/customer-portal", billingController.HandleCustomerPortal)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
