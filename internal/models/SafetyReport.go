package models

import (
	"fmt"
	"time"

	"safety_reports/internal/status"
)

// DateLayout and TimeLayout are the wire formats of a report's date and time.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// SafetyReport is an incident report tied to a place, date and time.
type SafetyReport struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	AuthorID uint  `gorm:"not null;index" json:"author_id"`
	Author   *User `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author,omitempty"`

	Place       string    `gorm:"size:200;not null" json:"place"`
	Date        time.Time `gorm:"column:incident_date;type:date;not null" json:"date"`
	Time        string    `gorm:"column:incident_time;size:8;not null" json:"time"` // HH:MM:SS
	Description string    `gorm:"type:text;not null" json:"description"`

	InvestigationStatus string `gorm:"size:20;not null;default:'waiting';index" json:"investigation_status"`

	// Blob reference only; the image itself lives in the storage collaborator.
	ImageKey string `gorm:"size:255" json:"-"`
	ImageURL string `gorm:"size:1024" json:"image_url,omitempty"`

	// WKB-encoded point, see internal/geo.
	Location []byte `gorm:"type:bytea" json:"-"`

	Comments []Comment `gorm:"foreignKey:ReportID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"comments,omitempty"`
}

// StatusPresentation returns the label, color and icon of the current status.
func (r *SafetyReport) StatusPresentation() status.Presentation {
	return status.Describe(r.InvestigationStatus)
}

func (r *SafetyReport) String() string {
	return fmt.Sprintf("Safety Report - %s on %s", r.Place, r.Date.Format(DateLayout))
}
