package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/cristophermlima/pierce-connect/app/models"
	"github.com/cristophermlima/pierce-connect/app/repository"
	"github.com/cristophermlima/pierce-connect/internal/pkg/usercontext"
)

// HandleListReviews returns the reviews for a piercer, newest first.
func HandleListReviews(c *fiber.Ctx) error {
	offset, limit := parsePagination(c)
	factory := repository.GetGlobalFactory()

	piercer, err := factory.GetPiercerRepository().GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "piercer not found")
		}
		log.Printf("piercer lookup failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "could not load reviews")
	}

	reviews, err := factory.GetReviewRepository().ListByPiercer(piercer.ID, offset, limit)
	if err != nil {
		log.Printf("review list failed for piercer %d: %v", piercer.ID, err)
		return jsonError(c, fiber.StatusInternalServerError, "could not load reviews")
	}

	return c.JSON(fiber.Map{"reviews": reviews})
}

// HandleCreateReview creates a review of a piercer by the authenticated user.
// Any logged-in user may review; one review per user per piercer.
func HandleCreateReview(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)

	var body struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	factory := repository.GetGlobalFactory()

	piercer, err := factory.GetPiercerRepository().GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "piercer not found")
		}
		log.Printf("piercer lookup failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "could not create review")
	}

	if piercer.UserID == uc.UserID {
		return jsonError(c, fiber.StatusForbidden, "you cannot review your own profile")
	}

	reviewRepo := factory.GetReviewRepository()
	if existing, err := reviewRepo.GetByUserAndPiercer(uc.UserID, piercer.ID); err == nil && existing != nil {
		return jsonError(c, fiber.StatusConflict, "you already reviewed this piercer")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("review lookup failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "could not create review")
	}

	review := &models.Review{
		UserID:    uc.UserID,
		PiercerID: piercer.ID,
		Rating:    body.Rating,
		Comment:   body.Comment,
	}
	if err := review.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "rating must be between 1 and 5")
	}

	if err := reviewRepo.Create(review); err != nil {
		log.Printf("review create failed for user %d: %v", uc.UserID, err)
		return jsonError(c, fiber.StatusInternalServerError, "could not create review")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"review": review})
}
