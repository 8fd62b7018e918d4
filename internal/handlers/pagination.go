package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/CoachIntake/internal/models"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 50
)

func pageParams(c *fiber.Ctx) (page, limit int) {
	page = parsePositiveInt(c.Query("page"), 1)
	limit = parsePositiveInt(c.Query("limit"), defaultPageLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func parsePositiveInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func buildPaginationMeta(page, limit, total int) models.PaginationMeta {
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return models.PaginationMeta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
