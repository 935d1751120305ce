package models

import (
	"time"

	"gorm.io/gorm"
)

// Stored lecture statuses. A lecture only moves forward through these via
// explicit start/end actions; display logic derives an "ongoing" view from
// the clock without ever writing it back.
const (
	StatusScheduled = "scheduled"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
)

type Lecture struct {
	gorm.Model
	CourseID        uint      `gorm:"index;not null"`
	Course          Course    `gorm:"foreignKey:CourseID"`
	LecturerID      uint      `gorm:"index;not null"`
	Title           string    `gorm:"not null"`
	Description     string
	Date            time.Time `gorm:"type:date;index;not null"` // calendar date of the session
	StartTime       string    `gorm:"size:5;not null"`          // local clock, "09:00"
	EndTime         string    `gorm:"size:5;not null"`
	DurationMinutes int       // display only, never used for status logic
	Status          string    `gorm:"index;not null;default:scheduled"`
	MeetingLink     string    // opaque external URL, opened client-side
	RecordingURL    string
	JoinCode        string    `gorm:"size:36;index"`
}
