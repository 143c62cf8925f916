package models

import "time"

// Application statuses.
const (
	ApplicationPending  = "pending"
	ApplicationApproved = "approved"
	ApplicationRejected = "rejected"
)

// MovieApplication represents a user's proposal to add a movie to the catalog.
// Staff review applications; an approved application is promoted into a Movie.
type MovieApplication struct {
	ID                string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID            string    `json:"user_id" gorm:"type:varchar(36);index" validate:"required"`
	Title             string    `json:"title" validate:"required,min=1,max=200"`
	ActorsOrDirectors string    `json:"actors_or_directors" validate:"required,max=500"`
	Poster            string    `json:"poster"` // data URL or plain URL submitted by the user
	Price             float64   `json:"price" validate:"required,gt=0"`
	Genre             []string  `json:"genre" gorm:"serializer:json;type:text"`
	Status            string    `json:"status" gorm:"type:varchar(20);default:pending"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
