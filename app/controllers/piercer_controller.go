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
	"github.com/cristophermlima/pierce-connect/internal/pkg/metrics/counter"
	"github.com/cristophermlima/pierce-connect/internal/pkg/usercontext"
)

const piercerListCacheTTL = 60 * time.Second

// HandleListPiercers returns the piercer catalog, optionally filtered by
// city. Unfiltered pages are served from the Redis cache.
func HandleListPiercers(c *fiber.Ctx) error {
	offset, limit := parsePagination(c)
	city := strings.TrimSpace(c.Query("city"))

	repo := repository.GetGlobalFactory().GetPiercerRepository()

	if city != "" {
		piercers, err := repo.ListByCity(city, offset, limit)
		if err != nil {
			log.Printf("piercer list failed: %v", err)
			return jsonError(c, fiber.StatusInternalServerError, "could not load piercers")
		}
		return c.JSON(fiber.Map{"piercers": piercers})
	}

	cacheKey := fmt.Sprintf("piercers:all:%d:%d", offset, limit)
	if cached, err := cache.Get(cacheKey); err == nil && cached != "" {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(cached)
	}

	piercers, err := repo.List(offset, limit)
	if err != nil {
		log.Printf("piercer list failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "could not load piercers")
	}

	payload, err := json.Marshal(fiber.Map{"piercers": piercers})
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not load piercers")
	}
	if err := cache.Set(cacheKey, string(payload), piercerListCacheTTL); err != nil {
		log.Printf("piercer list cache write failed: %v", err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(payload)
}

// HandleGetPiercer returns a single piercer with their review summary.
func HandleGetPiercer(c *fiber.Ctx) error {
	factory := repository.GetGlobalFactory()

	piercer, err := factory.GetPiercerRepository().GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "piercer not found")
		}
		log.Printf("piercer lookup failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "could not load piercer")
	}

	if err := counter.AddPiercerView(piercer.ID); err != nil {
		log.Printf("piercer view count failed for %d: %v", piercer.ID, err)
	}

	avg, count, err := factory.GetReviewRepository().AverageRating(piercer.ID)
	if err != nil {
		log.Printf("review summary failed for piercer %d: %v", piercer.ID, err)
		return jsonError(c, fiber.StatusInternalServerError, "could not load piercer")
	}

	return c.JSON(fiber.Map{
		"piercer":        piercer,
		"average_rating": avg,
		"review_count":   count,
	})
}

// HandleCreatePiercer creates a piercer profile for the authenticated user.
// The route is gated on an active subscription.
func HandleCreatePiercer(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)

	var body struct {
		Name            string `json:"name"`
		StudioName      string `json:"studio_name"`
		Bio             string `json:"bio"`
		City            string `json:"city"`
		State           string `json:"state"`
		InstagramURL    string `json:"instagram_url"`
		YearsExperience int    `json:"years_experience"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	piercer := &models.Piercer{
		UserID:          uc.UserID,
		Name:            body.Name,
		StudioName:      body.StudioName,
		Bio:             body.Bio,
		City:            body.City,
		State:           body.State,
		InstagramURL:    body.InstagramURL,
		YearsExperience: body.YearsExperience,
	}
	if err := piercer.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "invalid piercer data")
	}

	if err := repository.GetGlobalFactory().GetPiercerRepository().Create(piercer); err != nil {
		log.Printf("piercer create failed for user %d: %v", uc.UserID, err)
		return jsonError(c, fiber.StatusInternalServerError, "could not create piercer")
	}

	invalidateListCache("piercers:all")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"piercer": piercer})
}
