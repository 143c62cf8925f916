package models

import "time"

// Rental statuses. A rental starts as "new" and is moved between statuses by
// staff; no transition is terminal.
const (
	RentalNew      = "new"
	RentalPending  = "pending"
	RentalAccepted = "accepted"
	RentalRejected = "rejected"
)

// RentalStatuses is the set of statuses a rental may hold.
var RentalStatuses = map[string]bool{
	RentalNew:      true,
	RentalPending:  true,
	RentalAccepted: true,
	RentalRejected: true,
}

// Rental represents a user's rental of a movie over a date range. TotalPrice is
// snapshotted at creation time and never recomputed from the movie afterwards.
type Rental struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID     string    `json:"user_id" gorm:"type:varchar(36);index" validate:"required"`
	MovieID    string    `json:"movie_id" gorm:"type:varchar(36);index" validate:"required"`
	StartDate  time.Time `json:"start_date" validate:"required"`
	EndDate    time.Time `json:"end_date" validate:"required"`
	TotalPrice float64   `json:"total_price"`
	Status     string    `json:"status" gorm:"type:varchar(20);default:new"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Movie *Movie `json:"movie,omitempty" gorm:"foreignKey:MovieID"`
	User  *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
