package models

import (
	"fmt"
	"time"
)

// Role values stored on UserProfile.
const (
	RoleRegular      = "regular"
	RoleInvestigator = "investigator"
	RoleAdmin        = "admin"
)

var roleLabels = map[string]string{
	RoleRegular:      "Regular User",
	RoleInvestigator: "Investigator",
	RoleAdmin:        "Administrator",
}

// UserProfile carries the role of a User.
type UserProfile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	User   *User  `gorm:"foreignKey:UserID" json:"-"`
	Role   string `gorm:"size:20;not null;default:'regular'" json:"role"`
}

// ValidRole reports whether role is one of the three known roles.
func ValidRole(role string) bool {
	_, ok := roleLabels[role]
	return ok
}

func (p *UserProfile) IsInvestigator() bool {
	return p.Role == RoleInvestigator || p.Role == RoleAdmin
}

func (p *UserProfile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// RoleLabel is the display name of the role; unknown roles are shown as-is.
func (p *UserProfile) RoleLabel() string {
	if label, ok := roleLabels[p.Role]; ok {
		return label
	}
	return p.Role
}

func (p *UserProfile) String() string {
	email := ""
	if p.User != nil {
		email = p.User.Email
	}
	return fmt.Sprintf("%s - %s", email, p.RoleLabel())
}
