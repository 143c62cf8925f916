package repositories

import "cinerent/internal/models"

// RentalRepository defines the interface for rental data access.
//
// List methods join the referenced movie and owner. A rental whose movie has
// since been deleted is still returned, with a nil Movie.
type RentalRepository interface {
	Create(rental *models.Rental) error
	GetByID(id string) (*models.Rental, error)
	// GetByUser returns all rentals owned by the given user, newest first.
	GetByUser(userID string) ([]models.Rental, error)
	// GetAll returns every rental system-wide, newest first.
	GetAll() ([]models.Rental, error)
	UpdateStatus(id string, status string) (*models.Rental, error)
}
