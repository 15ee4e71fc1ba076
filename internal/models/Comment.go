package models

import (
	"fmt"
	"time"
)

// Comment is one entry in a report's discussion thread.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ReportID uint          `gorm:"not null;index" json:"report_id"`
	Report   *SafetyReport `gorm:"foreignKey:ReportID" json:"-"`
	AuthorID uint          `gorm:"not null;index" json:"author_id"`
	Author   *User         `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author,omitempty"`

	Content string `gorm:"type:text;not null" json:"content"`
}

func (c *Comment) String() string {
	email, place := "", ""
	if c.Author != nil {
		email = c.Author.Email
	}
	if c.Report != nil {
		place = c.Report.Place
	}
	return fmt.Sprintf("Comment by %s on %s", email, place)
}
