package services

import (
	"fmt"

	"cinerent/internal/models"
	"cinerent/internal/repositories"
)

// searchResultLimit caps staff title searches.
const searchResultLimit = 20

// MoviePage is one page of the catalog with its pagination envelope.
type MoviePage struct {
	Movies     []models.Movie `json:"movies"`
	Pagination Pagination     `json:"pagination"`
}

// Pagination describes the page a listing belongs to.
type Pagination struct {
	Current    int   `json:"current"`
	Total      int   `json:"total"`
	TotalItems int64 `json:"total_items"`
}

// MovieService handles business logic related to the movie catalog.
type MovieService struct {
	repo repositories.MovieRepository
}

// NewMovieService creates a new MovieService.
func NewMovieService(repo repositories.MovieRepository) *MovieService {
	return &MovieService{repo: repo}
}

// ListMovies retrieves one page of the catalog, newest first, optionally
// filtered by genre.
func (s *MovieService) ListMovies(page, limit int, genre string) (*MoviePage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	movies, err := s.repo.List((page-1)*limit, limit, genre)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(genre)
	if err != nil {
		return nil, err
	}

	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return &MoviePage{
		Movies: movies,
		Pagination: Pagination{
			Current:    page,
			Total:      pages,
			TotalItems: total,
		},
	}, nil
}

// SearchMovies finds movies by title substring and/or genre.
func (s *MovieService) SearchMovies(query, genre string) ([]models.Movie, error) {
	return s.repo.Search(query, genre, searchResultLimit)
}

// GetMovieByID retrieves a single movie by its ID.
func (s *MovieService) GetMovieByID(id string) (*models.Movie, error) {
	return s.repo.GetByID(id)
}

// CreateMovie creates a new movie; a blank status defaults to available.
func (s *MovieService) CreateMovie(movie *models.Movie) error {
	if movie.Status == "" {
		movie.Status = models.MovieAvailable
	}
	return s.repo.Create(movie)
}

// UpdateMovie updates an existing movie.
func (s *MovieService) UpdateMovie(movie *models.Movie) error {
	return s.repo.Update(movie)
}

// DeleteMovie deletes a movie by its ID.
func (s *MovieService) DeleteMovie(id string) error {
	return s.repo.Delete(id)
}

// SetAvailability toggles a movie between available and unavailable.
func (s *MovieService) SetAvailability(id, status string) (*models.Movie, error) {
	if status != models.MovieAvailable && status != models.MovieUnavailable {
		return nil, fmt.Errorf("movie status %q: %w", status, ErrInvalidStatus)
	}
	movie, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	movie.Status = status
	if err := s.repo.Update(movie); err != nil {
		return nil, err
	}
	return movie, nil
}
