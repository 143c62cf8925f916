package handlers

import (
	"errors"
	"log"

	"cinerent/internal/repositories"
	"cinerent/internal/services"

	"github.com/gofiber/fiber/v2"
)

// respondError translates a service error to the HTTP error taxonomy. The
// underlying error is logged, never echoed to the client.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, repositories.ErrNotFound):
		status, message = fiber.StatusNotFound, "Not found"
	case errors.Is(err, services.ErrMovieUnavailable):
		status, message = fiber.StatusBadRequest, "Movie is not available"
	case errors.Is(err, services.ErrInvalidDateRange):
		status, message = fiber.StatusBadRequest, "End date must not precede start date"
	case errors.Is(err, services.ErrInvalidStatus):
		status, message = fiber.StatusBadRequest, "Invalid status value"
	case errors.Is(err, services.ErrPosterTooLarge):
		status, message = fiber.StatusRequestEntityTooLarge, "Poster payload too large"
	case errors.Is(err, services.ErrConflict):
		status, message = fiber.StatusConflict, "Already exists"
	case errors.Is(err, services.ErrInvalidCredentials):
		status, message = fiber.StatusUnauthorized, "Invalid credentials"
	}

	log.Printf("Request failed (%d): %v", status, err)
	return c.Status(status).JSON(fiber.Map{
		"status":  "error",
		"message": message,
	})
}
