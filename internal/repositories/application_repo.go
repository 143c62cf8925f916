package repositories

import "cinerent/internal/models"

// ApplicationRepository defines the interface for movie application data access.
type ApplicationRepository interface {
	Create(app *models.MovieApplication) error
	GetByID(id string) (*models.MovieApplication, error)
	// GetAll returns every application with its submitter joined, newest first.
	GetAll() ([]models.MovieApplication, error)
	UpdateStatus(id string, status string) (*models.MovieApplication, error)
}
