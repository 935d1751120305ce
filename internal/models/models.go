package models

import (
	"gorm.io/gorm"
)

// User roles.
const (
	RoleAdmin    = "admin"
	RoleLecturer = "lecturer"
)

type User struct {
	gorm.Model
	Name         string `gorm:"not null"`
	Surname      string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null;default:lecturer"` // admin | lecturer
	Phone        string
	AvatarURL    string
	MeetingRoom  string // lecturer's personal meeting-room URL, optional
}

type Department struct {
	gorm.Model
	Code string `gorm:"uniqueIndex;not null"` // short code, e.g. "CS"
	Name string `gorm:"not null"`
}

// DepartmentAssignment links a lecturer to a department. Only active
// assignments contribute to the lecturer's access scope.
type DepartmentAssignment struct {
	gorm.Model
	LecturerID     uint   `gorm:"index;not null"`
	Lecturer       User   `gorm:"foreignKey:LecturerID"`
	DepartmentCode string `gorm:"index;not null"`
	DepartmentName string
	Active         bool `gorm:"default:true"`
}
