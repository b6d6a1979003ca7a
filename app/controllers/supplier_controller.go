package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/cristophermlima/pierce-connect/app/models"
	"github.com/cristophermlima/pierce-connect/app/repository"
	"github.com/cristophermlima/pierce-connect/internal/pkg/cache"
	"github.com/cristophermlima/pierce-connect/internal/pkg/usercontext"
)

const supplierListCacheTTL = 60 * time.Second

// HandleListSuppliers returns the supplier directory, optionally filtered by
// category. Unfiltered pages are served from the Redis cache.
func HandleListSuppliers(c *fiber.Ctx) error {
	offset, limit := parsePagination(c)
	category := strings.TrimSpace(c.Query("category"))

	repo := repository.GetGlobalFactory().GetSupplierRepository()

	if category != "" {
		suppliers, err := repo.ListByCategory(category, offset, limit)
		if err != nil {
			log.Printf("supplier list failed: %v", err)
			return jsonError(c, fiber.StatusInternalServerError, "could not load suppliers")
		}
		return c.JSON(fiber.Map{"suppliers": suppliers})
	}

	cacheKey := fmt.Sprintf("suppliers:all:%d:%d", offset, limit)
	if cached, err := cache.Get(cacheKey); err == nil && cached != "" {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(cached)
	}

	suppliers, err := repo.List(offset, limit)
	if err != nil {
		log.Printf("supplier list failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "could not load suppliers")
	}

	payload, err := json.Marshal(fiber.Map{"suppliers": suppliers})
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not load suppliers")
	}
	if err := cache.Set(cacheKey, string(payload), supplierListCacheTTL); err != nil {
		log.Printf("supplier list cache write failed: %v", err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(payload)
}

// HandleGetSupplier returns a single supplier by its public UUID.
func HandleGetSupplier(c *fiber.Ctx) error {
	supplier, err := repository.GetGlobalFactory().GetSupplierRepository().GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "supplier not found")
		}
		log.Printf("supplier lookup failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "could not load supplier")
	}
	return c.JSON(fiber.Map{"supplier": supplier})
}

// HandleCreateSupplier creates a supplier entry for the authenticated user.
// The route is gated on a business-tier subscription.
func HandleCreateSupplier(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)

	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Category    string `json:"category"`
		WebsiteURL  string `json:"website_url"`
		Email       string `json:"email"`
		Phone       string `json:"phone"`
		City        string `json:"city"`
		State       string `json:"state"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	supplier := &models.Supplier{
		UserID:      uc.UserID,
		Name:        body.Name,
		Description: body.Description,
		Category:    body.Category,
		WebsiteURL:  body.WebsiteURL,
		Email:       body.Email,
		Phone:       body.Phone,
		City:        body.City,
		State:       body.State,
	}
	if err := supplier.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "invalid supplier data")
	}

	if err := repository.GetGlobalFactory().GetSupplierRepository().Create(supplier); err != nil {
		log.Printf("supplier create failed for user %d: %v", uc.UserID, err)
		return jsonError(c, fiber.StatusInternalServerError, "could not create supplier")
	}

	invalidateListCache("suppliers:all")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"supplier": supplier})
}
