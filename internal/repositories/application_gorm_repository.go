package repositories

import (
	"errors"
	"fmt"

	"cinerent/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMApplicationRepository is a GORM implementation of ApplicationRepository.
type GORMApplicationRepository struct {
	db *gorm.DB
}

// NewGORMApplicationRepository creates a new instance of GORMApplicationRepository.
func NewGORMApplicationRepository(db *gorm.DB) *GORMApplicationRepository {
	return &GORMApplicationRepository{db: db}
}

// Create adds a new movie application.
func (r *GORMApplicationRepository) Create(app *models.MovieApplication) error {
	if app.ID == "" {
		app.ID = uuid.New().String()
	}
	if err := r.db.Create(app).Error; err != nil {
		return fmt.Errorf("failed to create movie application: %w", err)
	}
	return nil
}

// GetByID returns an application with its submitter joined.
func (r *GORMApplicationRepository) GetByID(id string) (*models.MovieApplication, error) {
	var app models.MovieApplication
	if err := r.db.Preload("User").First(&app, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("application with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get application by ID %s: %w", id, err)
	}
	return &app, nil
}

// GetAll returns every application, newest first.
func (r *GORMApplicationRepository) GetAll() ([]models.MovieApplication, error) {
	var apps []models.MovieApplication
	err := r.db.Preload("User").Order("created_at DESC").Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all applications: %w", err)
	}
	return apps, nil
}

// UpdateStatus sets the status of an application and returns the updated record.
func (r *GORMApplicationRepository) UpdateStatus(id string, status string) (*models.MovieApplication, error) {
	res := r.db.Model(&models.MovieApplication{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update application status for %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.Model(&models.MovieApplication{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to update application status for %s: %w", id, err)
		}
		if count == 0 {
			return nil, fmt.Errorf("application with ID %s: %w", id, ErrNotFound)
		}
	}
	return r.GetByID(id)
}
