package controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// requestOrigin returns the caller's origin for building redirect URLs.
// Falls back to the server's own base URL for non-browser clients.
func requestOrigin(c *fiber.Ctx) string {
	origin := strings.TrimSpace(c.Get("Origin"))
	if origin != "" {
		return origin
	}
	return c.BaseURL()
}

// parsePagination reads page/page_size query params into offset and limit.
func parsePagination(c *fiber.Ctx) (offset, limit int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.Atoi(c.Query("page_size", strconv.Itoa(defaultPageSize)))
	if err != nil || limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return (page - 1) * limit, limit
}

func jsonError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}
