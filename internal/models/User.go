package models

import "time"

// User is the authenticated identity. Every User is created together with
// exactly one UserProfile (see services.UserService.Register).
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Username string `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email    string `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`

	Profile *UserProfile `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"profile,omitempty"`
}
