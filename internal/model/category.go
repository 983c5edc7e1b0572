package model

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies products. Categories are never deleted; products keep
// pointing at them for as long as the catalog exists.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Category) TableName() string { return "categories" }
