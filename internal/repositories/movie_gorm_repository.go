package repositories

import (
	"errors"
	"fmt"

	"cinerent/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMMovieRepository is a GORM implementation of MovieRepository.
type GORMMovieRepository struct {
	db *gorm.DB
}

// NewGORMMovieRepository creates a new instance of GORMMovieRepository.
func NewGORMMovieRepository(db *gorm.DB) *GORMMovieRepository {
	return &GORMMovieRepository{db: db}
}

// genreFilter narrows a query to movies carrying the given genre tag. Genres are
// stored as a JSON array in a text column, so a quoted substring match suffices
// on both postgres and sqlite.
func genreFilter(db *gorm.DB, genre string) *gorm.DB {
	if genre == "" {
		return db
	}
	return db.Where("genre LIKE ?", "%\""+genre+"\"%")
}

// List retrieves a page of movies, newest first.
func (r *GORMMovieRepository) List(offset, limit int, genre string) ([]models.Movie, error) {
	var movies []models.Movie
	q := genreFilter(r.db, genre).Order("created_at DESC").Offset(offset).Limit(limit)
	if err := q.Find(&movies).Error; err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	return movies, nil
}

// Count returns the number of movies matching the genre filter.
func (r *GORMMovieRepository) Count(genre string) (int64, error) {
	var total int64
	if err := genreFilter(r.db.Model(&models.Movie{}), genre).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}
	return total, nil
}

// Search finds movies whose title contains the query, case-insensitive.
func (r *GORMMovieRepository) Search(query, genre string, limit int) ([]models.Movie, error) {
	var movies []models.Movie
	q := genreFilter(r.db, genre)
	if query != "" {
		q = q.Where("LOWER(title) LIKE LOWER(?)", "%"+query+"%")
	}
	if err := q.Order("created_at DESC").Limit(limit).Find(&movies).Error; err != nil {
		return nil, fmt.Errorf("failed to search movies: %w", err)
	}
	return movies, nil
}

// GetByID retrieves a single movie by its ID.
func (r *GORMMovieRepository) GetByID(id string) (*models.Movie, error) {
	var movie models.Movie
	if err := r.db.First(&movie, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("movie with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get movie by ID %s: %w", id, err)
	}
	return &movie, nil
}

// Create creates a new movie in the database.
func (r *GORMMovieRepository) Create(movie *models.Movie) error {
	if movie.ID == "" {
		movie.ID = uuid.New().String()
	}
	if err := r.db.Create(movie).Error; err != nil {
		return fmt.Errorf("failed to create movie: %w", err)
	}
	return nil
}

// Update updates an existing movie in the database.
func (r *GORMMovieRepository) Update(movie *models.Movie) error {
	res := r.db.Save(movie)
	if res.Error != nil {
		return fmt.Errorf("failed to update movie: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("movie with ID %s: %w", movie.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a movie by its ID from the database.
func (r *GORMMovieRepository) Delete(id string) error {
	res := r.db.Delete(&models.Movie{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete movie: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("movie with ID %s: %w", id, ErrNotFound)
	}
	return nil
}
