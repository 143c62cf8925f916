package repositories

import (
	"errors"
	"fmt"

	"cinerent/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMRentalRepository is a GORM implementation of RentalRepository.
type GORMRentalRepository struct {
	db *gorm.DB
}

// NewGORMRentalRepository creates a new instance of GORMRentalRepository.
func NewGORMRentalRepository(db *gorm.DB) *GORMRentalRepository {
	return &GORMRentalRepository{db: db}
}

// Create adds a new rental.
func (r *GORMRentalRepository) Create(rental *models.Rental) error {
	if rental.ID == "" {
		rental.ID = uuid.New().String()
	}
	if err := r.db.Create(rental).Error; err != nil {
		return fmt.Errorf("failed to create rental: %w", err)
	}
	return nil
}

// GetByID returns a rental with its movie and owner joined.
func (r *GORMRentalRepository) GetByID(id string) (*models.Rental, error) {
	var rental models.Rental
	err := r.db.Preload("Movie").Preload("User").First(&rental, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("rental with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get rental by ID %s: %w", id, err)
	}
	return &rental, nil
}

// GetByUser returns all rentals owned by the given user, newest first.
func (r *GORMRentalRepository) GetByUser(userID string) ([]models.Rental, error) {
	var rentals []models.Rental
	err := r.db.Preload("Movie").Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rentals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get rentals for user %s: %w", userID, err)
	}
	return rentals, nil
}

// GetAll returns every rental system-wide, newest first.
func (r *GORMRentalRepository) GetAll() ([]models.Rental, error) {
	var rentals []models.Rental
	err := r.db.Preload("Movie").Preload("User").
		Order("created_at DESC").
		Find(&rentals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all rentals: %w", err)
	}
	return rentals, nil
}

// UpdateStatus sets the status of a rental and returns the updated record.
// Applying the status the rental already holds is not an error.
func (r *GORMRentalRepository) UpdateStatus(id string, status string) (*models.Rental, error) {
	res := r.db.Model(&models.Rental{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update rental status for rental %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		// Distinguish a missing rental from a no-op same-status update.
		var count int64
		if err := r.db.Model(&models.Rental{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to update rental status for rental %s: %w", id, err)
		}
		if count == 0 {
			return nil, fmt.Errorf("rental with ID %s: %w", id, ErrNotFound)
		}
	}
	return r.GetByID(id)
}
