package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/cristophermlima/pierce-connect/app/models"
	"github.com/cristophermlima/pierce-connect/app/repository"
	"github.com/cristophermlima/pierce-connect/internal/pkg/cache"
	"github.com/cristophermlima/pierce-connect/internal/pkg/metrics/counter"
	"github.com/cristophermlima/pierce-connect/internal/pkg/usercontext"
)

const eventListCacheTTL = 60 * time.Second

// HandleListEvents returns upcoming events, soonest first. The first page is
// served from the Redis cache when possible.
func HandleListEvents(c *fiber.Ctx) error {
	offset, limit := parsePagination(c)

	cacheKey := fmt.Sprintf("events:upcoming:%d:%d", offset, limit)
	if cached, err := cache.Get(cacheKey); err == nil && cached != "" {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(cached)
	}

	events, err := repository.GetGlobalFactory().GetEventRepository().ListUpcoming(offset, limit)
	if err != nil {
		log.Printf("event list failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "could not load events")
	}

	payload, err := json.Marshal(fiber.Map{"events": events})
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not load events")
	}
	if err := cache.Set(cacheKey, string(payload), eventListCacheTTL); err != nil {
		log.Printf("event list cache write failed: %v", err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(payload)
}

// HandleGetEvent returns a single event by its public UUID.
func HandleGetEvent(c *fiber.Ctx) error {
	event, err := repository.GetGlobalFactory().GetEventRepository().GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "event not found")
		}
		log.Printf("event lookup failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "could not load event")
	}

	if err := counter.AddEventView(event.ID); err != nil {
		log.Printf("event view count failed for %d: %v", event.ID, err)
	}

	return c.JSON(fiber.Map{"event": event})
}

// HandleCreateEvent creates an event listing for the authenticated organizer.
// The route is gated on an active subscription.
func HandleCreateEvent(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)

	var body struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		Location    string     `json:"location"`
		City        string     `json:"city"`
		State       string     `json:"state"`
		WebsiteURL  string     `json:"website_url"`
		StartsAt    time.Time  `json:"starts_at"`
		EndsAt      *time.Time `json:"ends_at"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if body.StartsAt.IsZero() {
		return jsonError(c, fiber.StatusUnprocessableEntity, "starts_at is required")
	}

	event := &models.Event{
		UserID:      uc.UserID,
		Title:       body.Title,
		Description: body.Description,
		Location:    body.Location,
		City:        body.City,
		State:       body.State,
		WebsiteURL:  body.WebsiteURL,
		StartsAt:    body.StartsAt,
		EndsAt:      body.EndsAt,
	}
	if err := event.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "invalid event data")
	}

	if err := repository.GetGlobalFactory().GetEventRepository().Create(event); err != nil {
		log.Printf("event create failed for user %d: %v", uc.UserID, err)
		return jsonError(c, fiber.StatusInternalServerError, "could not create event")
	}

	invalidateListCache("events:upcoming")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"event": event})
}

// invalidateListCache drops the cached first pages for a listing prefix.
// Only the default page sizes are cached, so clearing them is enough.
func invalidateListCache(prefix string) {
	for _, limit := range []int{defaultPageSize} {
		key := fmt.Sprintf("%s:%d:%d", prefix, 0, limit)
		if err := cache.Delete(key); err != nil {
			log.Printf("cache invalidation failed for %s: %v", key, err)
		}
	}
}
