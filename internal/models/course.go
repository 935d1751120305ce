package models

import (
	"gorm.io/gorm"
)

type Course struct {
	gorm.Model
	Code           string `gorm:"uniqueIndex;not null"` // e.g. "CS101"
	Title          string `gorm:"not null"`
	DepartmentCode string `gorm:"index;not null"`
	LecturerID     uint   `gorm:"index"`
	Lecturer       User   `gorm:"foreignKey:LecturerID"`
	Credits        int
	Semester       string
}

type Student struct {
	gorm.Model
	MatricNo       string `gorm:"uniqueIndex;not null"`
	Name           string `gorm:"not null"`
	Surname        string `gorm:"not null"`
	Email          string `gorm:"index"`
	DepartmentCode string `gorm:"index;not null"`
	Level          string // e.g. "200"
	Phone          string
}
