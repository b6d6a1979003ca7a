package controllers

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/cristophermlima/pierce-connect/app/models"
	"github.com/cristophermlima/pierce-connect/app/repository"
	"github.com/cristophermlima/pierce-connect/internal/pkg/auth"
	"github.com/cristophermlima/pierce-connect/internal/pkg/database"
	"github.com/cristophermlima/pierce-connect/internal/pkg/usercontext"
)

// HandleRegister creates a new account and a default profile.
func HandleRegister(c *fiber.Ctx) error {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	body.Email = strings.ToLower(strings.TrimSpace(body.Email))

	user, err := models.CreateUser(strings.TrimSpace(body.Name), body.Email, body.Password)
	if err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "invalid name, email or password")
	}

	userRepo := repository.GetGlobalFactory().GetUserRepository()
	if existing, err := userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return jsonError(c, fiber.StatusConflict, "email already registered")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("register: email lookup failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "could not create account")
	}

	if err := userRepo.Create(user); err != nil {
		log.Printf("register: create failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "could not create account")
	}
	if _, err := models.GetOrCreateProfile(database.GetDB(), user.ID); err != nil {
		log.Printf("register: profile bootstrap failed for user %d: %v", user.ID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user})
}

// HandleLogin verifies credentials and issues a bearer token.
func HandleLogin(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	userRepo := repository.GetGlobalFactory().GetUserRepository()
	user, err := userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(body.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusUnauthorized, "invalid credentials")
		}
		log.Printf("login: email lookup failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "could not log in")
	}

	if !models.CheckPasswordHash(body.Password, user.Password) {
		return jsonError(c, fiber.StatusUnauthorized, "invalid credentials")
	}
	if user.Status != models.STATUS_ACTIVE {
		return jsonError(c, fiber.StatusForbidden, "account is not active")
	}

	token, err := auth.GetTokenStore().Issue(auth.Identity{
		UserID:  user.ID,
		Email:   user.Email,
		Name:    user.Name,
		IsAdmin: user.Role == models.ROLE_ADMIN,
	})
	if err != nil {
		log.Printf("login: token issue failed for user %d: %v", user.ID, err)
		return jsonError(c, fiber.StatusInternalServerError, "could not log in")
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := userRepo.Update(user); err != nil {
		log.Printf("login: last login update failed for user %d: %v", user.ID, err)
	}

	return c.JSON(fiber.Map{"token": token, "user": user})
}

// HandleLogout revokes the caller's bearer token.
func HandleLogout(c *fiber.Ctx) error {
	header := strings.TrimSpace(c.Get("Authorization"))
	token := ""
	if strings.HasPrefix(strings.ToLower(header), "bearer ") {
		token = strings.TrimSpace(header[7:])
	}
	if err := auth.GetTokenStore().Revoke(token); err != nil {
		log.Printf("logout: revoke failed: %v", err)
	}
	return c.JSON(fiber.Map{"message": "logged out"})
}

// HandleGetMe returns the authenticated user and their profile.
func HandleGetMe(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)

	user, err := repository.GetGlobalFactory().GetUserRepository().GetByID(uc.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "user not found")
		}
		log.Printf("me: user lookup failed for %d: %v", uc.UserID, err)
		return jsonError(c, fiber.StatusInternalServerError, "could not load account")
	}

	profile, err := models.GetOrCreateProfile(database.GetDB(), user.ID)
	if err != nil {
		log.Printf("me: profile lookup failed for %d: %v", user.ID, err)
		return jsonError(c, fiber.StatusInternalServerError, "could not load profile")
	}

	return c.JSON(fiber.Map{"user": user, "profile": profile})
}
