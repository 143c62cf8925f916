package models

import "gorm.io/gorm"

// Availability statuses for a movie.
const (
	MovieAvailable   = "available"
	MovieUnavailable = "unavailable"
)

// Movie represents a rentable title in the catalog.
type Movie struct {
	ID          string   `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title       string   `json:"title" validate:"required,min=1,max=200"`
	Description string   `json:"description" validate:"omitempty,max=2000"`
	Genre       []string `json:"genre" gorm:"serializer:json;type:text"`
	PosterURL   string   `json:"poster_url"`
	Price       float64  `json:"price" validate:"required,gt=0"` // rental price per day
	Status      string   `json:"status" gorm:"type:varchar(20);default:available" validate:"omitempty,oneof=available unavailable"`
	gorm.Model  `json:"-"`
}
