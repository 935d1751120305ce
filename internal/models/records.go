package models

import (
	"time"

	"gorm.io/gorm"
)

type Assignment struct {
	gorm.Model
	CourseID    uint      `gorm:"index;not null"`
	Course      Course    `gorm:"foreignKey:CourseID"`
	LecturerID  uint      `gorm:"index"`
	Title       string    `gorm:"not null"`
	Description string
	DueDate     time.Time `gorm:"index"`
	MaxScore    int
}

type Exam struct {
	gorm.Model
	CourseID   uint      `gorm:"index;not null"`
	Course     Course    `gorm:"foreignKey:CourseID"`
	Title      string    `gorm:"not null"`
	Date       time.Time `gorm:"index"`
	StartTime  string    `gorm:"size:5"`
	EndTime    string    `gorm:"size:5"`
	Venue      string
	MaxScore   int
}

type FinancialRecord struct {
	gorm.Model
	StudentID      uint    `gorm:"index;not null"`
	Student        Student `gorm:"foreignKey:StudentID"`
	DepartmentCode string  `gorm:"index"`
	Description    string  `gorm:"not null"`
	Amount         int64   `gorm:"not null"` // minor currency units
	Status         string  `gorm:"default:pending"` // pending | paid | waived
	ReceiptNo      string  `gorm:"size:36;uniqueIndex"`
	PaidAt         *time.Time
}

type AttendanceRecord struct {
	gorm.Model
	CourseID  uint      `gorm:"index;not null"`
	Course    Course    `gorm:"foreignKey:CourseID"`
	StudentID uint      `gorm:"index;not null"`
	Student   Student   `gorm:"foreignKey:StudentID"`
	LectureID *uint     `gorm:"index"` // optional link to the session
	Date      time.Time `gorm:"type:date;index;not null"`
	Present   bool      `gorm:"default:false"`
}
