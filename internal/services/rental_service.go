package services

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"time"

	"cinerent/internal/models"
	"cinerent/internal/repositories"
)

// EventPublisher publishes domain events to the message broker. A nil publisher
// disables event publication.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// RentalService handles the rental workflow: creation with date-range pricing,
// owner-scoped and staff-scoped listing, and staff status updates.
type RentalService struct {
	rentalRepo repositories.RentalRepository
	movieRepo  repositories.MovieRepository
	userRepo   repositories.UserRepository
	notifier   Notifier
	events     EventPublisher
}

// NewRentalService creates a new RentalService. notifier and events may be nil.
func NewRentalService(rentalRepo repositories.RentalRepository, movieRepo repositories.MovieRepository, userRepo repositories.UserRepository, notifier Notifier, events EventPublisher) *RentalService {
	return &RentalService{
		rentalRepo: rentalRepo,
		movieRepo:  movieRepo,
		userRepo:   userRepo,
		notifier:   notifier,
		events:     events,
	}
}

// RentalDays returns the billable day span for a date range: the whole-day
// difference rounded up, never less than one day.
func RentalDays(start, end time.Time) int {
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// CreateRental creates a rental for the caller against an available movie.
// The total price is the day span times the movie's current price, snapshotted
// on the rental. The confirmation email and the rental.created event are
// best-effort: their failure is logged but does not undo the created record.
func (s *RentalService) CreateRental(userID, movieID string, start, end time.Time) (*models.Rental, error) {
	movie, err := s.movieRepo.GetByID(movieID)
	if err != nil {
		return nil, err
	}
	if movie.Status == models.MovieUnavailable {
		return nil, fmt.Errorf("movie %q: %w", movie.Title, ErrMovieUnavailable)
	}
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	days := RentalDays(start, end)
	rental := &models.Rental{
		UserID:     userID,
		MovieID:    movieID,
		StartDate:  start,
		EndDate:    end,
		TotalPrice: float64(days) * movie.Price,
		Status:     models.RentalNew,
	}
	if err := s.rentalRepo.Create(rental); err != nil {
		return nil, err
	}
	rental.Movie = movie

	s.notifyRentalCreated(rental, movie)
	s.publishEvent("rental.created", map[string]interface{}{
		"rental_id":   rental.ID,
		"user_id":     rental.UserID,
		"movie_id":    rental.MovieID,
		"total_price": rental.TotalPrice,
		"status":      rental.Status,
	})

	return rental, nil
}

// GetUserRentals returns all rentals owned by the given user, newest first.
func (s *RentalService) GetUserRentals(userID string) ([]models.Rental, error) {
	return s.rentalRepo.GetByUser(userID)
}

// GetAllRentals returns every rental system-wide, newest first.
func (s *RentalService) GetAllRentals() ([]models.Rental, error) {
	return s.rentalRepo.GetAll()
}

// UpdateRentalStatus moves a rental to the requested status. Any status may
// move to any other; repeating a move is not an error.
func (s *RentalService) UpdateRentalStatus(id, status string) (*models.Rental, error) {
	if !models.RentalStatuses[status] {
		return nil, fmt.Errorf("rental status %q: %w", status, ErrInvalidStatus)
	}
	return s.rentalRepo.UpdateStatus(id, status)
}

func (s *RentalService) notifyRentalCreated(rental *models.Rental, movie *models.Movie) {
	if s.notifier == nil {
		return
	}
	user, err := s.userRepo.GetByID(rental.UserID)
	if err != nil {
		log.Printf("Warning: cannot resolve renter %s for confirmation email: %v", rental.UserID, err)
		return
	}
	err = s.notifier.Send(NotifyRentalConfirmation, NotificationData{
		Recipient:  user.Email,
		Username:   user.Username,
		MovieTitle: movie.Title,
		StartDate:  rental.StartDate.Format("2006-01-02"),
		EndDate:    rental.EndDate.Format("2006-01-02"),
		TotalPrice: rental.TotalPrice,
	})
	if err != nil {
		log.Printf("Warning: failed to send rental confirmation for rental %s: %v", rental.ID, err)
	}
}

func (s *RentalService) publishEvent(routingKey string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.events.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
