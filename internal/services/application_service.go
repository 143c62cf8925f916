package services

import (
	"encoding/json"
	"fmt"
	"log"

	"cinerent/internal/models"
	"cinerent/internal/repositories"
)

// MaxPosterBytes is the ceiling on an application's embedded poster payload.
const MaxPosterBytes = 5 << 20

// ApplicationService handles the movie application review workflow.
type ApplicationService struct {
	appRepo   repositories.ApplicationRepository
	movieRepo repositories.MovieRepository
	userRepo  repositories.UserRepository
	notifier  Notifier
	events    EventPublisher
}

// NewApplicationService creates a new ApplicationService. notifier and events
// may be nil.
func NewApplicationService(appRepo repositories.ApplicationRepository, movieRepo repositories.MovieRepository, userRepo repositories.UserRepository, notifier Notifier, events EventPublisher) *ApplicationService {
	return &ApplicationService{
		appRepo:   appRepo,
		movieRepo: movieRepo,
		userRepo:  userRepo,
		notifier:  notifier,
		events:    events,
	}
}

// SubmitApplication creates a pending application owned by the caller. An
// oversized poster payload is rejected before anything is written. The
// operator notification and the application.submitted event are best-effort.
func (s *ApplicationService) SubmitApplication(app *models.MovieApplication) (*models.MovieApplication, error) {
	if len(app.Poster) > MaxPosterBytes {
		return nil, fmt.Errorf("poster is %d bytes, limit is %d: %w", len(app.Poster), MaxPosterBytes, ErrPosterTooLarge)
	}

	app.Status = models.ApplicationPending
	if err := s.appRepo.Create(app); err != nil {
		return nil, err
	}

	s.notifySubmitted(app)
	s.publishEvent("application.submitted", map[string]interface{}{
		"application_id": app.ID,
		"user_id":        app.UserID,
		"title":          app.Title,
	})

	return app, nil
}

// GetAllApplications returns every application, newest first.
func (s *ApplicationService) GetAllApplications() ([]models.MovieApplication, error) {
	return s.appRepo.GetAll()
}

// UpdateApplicationStatus approves or rejects an application. Approval then
// promotes the application's fields into a new catalog movie; the promotion is
// a second independent write, so its failure is surfaced to the caller but the
// recorded approval stands.
func (s *ApplicationService) UpdateApplicationStatus(id, status string) (*models.MovieApplication, error) {
	if status != models.ApplicationApproved && status != models.ApplicationRejected {
		return nil, fmt.Errorf("application status %q: %w", status, ErrInvalidStatus)
	}

	app, err := s.appRepo.UpdateStatus(id, status)
	if err != nil {
		return nil, err
	}

	if status == models.ApplicationApproved {
		movie := &models.Movie{
			Title:       app.Title,
			Description: app.ActorsOrDirectors,
			Genre:       app.Genre,
			PosterURL:   app.Poster,
			Price:       app.Price,
			Status:      models.MovieAvailable,
		}
		if err := s.movieRepo.Create(movie); err != nil {
			return app, fmt.Errorf("application %s approved but catalog promotion failed: %w", id, err)
		}
	}

	return app, nil
}

func (s *ApplicationService) notifySubmitted(app *models.MovieApplication) {
	if s.notifier == nil {
		return
	}
	username := app.UserID
	if user, err := s.userRepo.GetByID(app.UserID); err == nil {
		username = user.Username
	}
	err := s.notifier.Send(NotifyNewApplication, NotificationData{
		Username:   username,
		MovieTitle: app.Title,
	})
	if err != nil {
		log.Printf("Warning: failed to notify operator of application %s: %v", app.ID, err)
	}
}

func (s *ApplicationService) publishEvent(routingKey string, payload map[string]interface{}) {
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
