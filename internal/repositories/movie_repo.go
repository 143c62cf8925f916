package repositories

import "cinerent/internal/models"

// MovieRepository defines the interface for movie catalog data access.
type MovieRepository interface {
	// List returns a page of movies, newest first, optionally filtered by genre.
	List(offset, limit int, genre string) ([]models.Movie, error)
	// Count returns the number of movies matching the genre filter.
	Count(genre string) (int64, error)
	// Search returns up to limit movies whose title contains the query
	// (case-insensitive), optionally filtered by genre, newest first.
	Search(query, genre string, limit int) ([]models.Movie, error)
	GetByID(id string) (*models.Movie, error)
	Create(movie *models.Movie) error
	Update(movie *models.Movie) error
	Delete(id string) error
}
