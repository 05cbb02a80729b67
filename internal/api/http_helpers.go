package api

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/cyclia/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func parseDayParam(raw string) (string, error) {
	day, err := services.ParseDay(raw)
	if err != nil {
		return "", err
	}
	return services.FormatDay(day), nil
}

func parseMonthParams(yearRaw, monthRaw string) (int, time.Month, error) {
	year, err := strconv.Atoi(yearRaw)
	if err != nil {
		return 0, 0, err
	}
	monthNumber, err := strconv.Atoi(monthRaw)
	if err != nil {
		return 0, 0, err
	}
	if monthNumber < 1 || monthNumber > 12 {
		return 0, 0, strconv.ErrRange
	}
	return year, time.Month(monthNumber), nil
}
