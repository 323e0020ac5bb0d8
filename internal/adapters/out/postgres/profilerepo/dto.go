// Package profilerepo holds the database mapping for user profiles. Profiles
// are owned by the identity system; this service only reads them for role
// resolution and the technician roster, so no repository writes exist.
package profilerepo

import (
	"github.com/google/uuid"
)

// ProfileDTO represents the database structure of a user profile row.
type ProfileDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	DisplayName string    `gorm:"type:text;column:display_name"`
	Role        string    `gorm:"type:text;index"`
}

// TableName specifies the database table name for profile entities.
// Overrides GORM's default naming convention to use "profiles".
func (ProfileDTO) TableName() string {
	return "profiles"
}
