package gormdb

import (
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

type (
	userRow struct {
		ID        int    `gorm:"primaryKey"`
		Name      string `gorm:"size:150"`
		Username  string `gorm:"size:150;not null;uniqueIndex"`
		Email     string `gorm:"size:254;not null;uniqueIndex"`
		Role      string `gorm:"size:20;not null;index"`
		IsActive  bool   `gorm:"not null"`
		CreatedAt time.Time
		UpdatedAt time.Time
	}

	categoryRow struct {
		ID          int         `gorm:"primaryKey"`
		Name        string      `gorm:"size:100;not null"`
		Slug        string      `gorm:"size:120;not null;index"`
		Description null.String `gorm:"type:text"`
		IsActive    bool        `gorm:"not null"`
		CreatedAt   time.Time
		UpdatedAt   time.Time
	}

	courseRow struct {
		ID           int         `gorm:"primaryKey"`
		Title        string      `gorm:"size:200;not null"`
		Description  null.String `gorm:"type:text"`
		Price        float64     `gorm:"not null"`
		Duration     int         `gorm:"not null"`
		CategoryID   int         `gorm:"not null;index"`
		InstructorID int         `gorm:"not null;index"`
		IsActive     bool        `gorm:"not null"`
		CreatedAt    time.Time
		UpdatedAt    time.Time
	}

	lessonRow struct {
		ID        int         `gorm:"primaryKey"`
		CourseID  int         `gorm:"not null;index"`
		Title     string      `gorm:"size:200;not null"`
		Content   null.String `gorm:"type:text"`
		Position  int         `gorm:"not null"`
		CreatedAt time.Time
		UpdatedAt time.Time
	}

	materialRow struct {
		ID          int         `gorm:"primaryKey"`
		CourseID    int         `gorm:"not null;index"`
		Title       string      `gorm:"size:200;not null"`
		Description null.String `gorm:"type:text"`
		FileURL     string      `gorm:"column:file_url;size:500;not null"`
		CreatedAt   time.Time
		UpdatedAt   time.Time
	}

	enrollmentRow struct {
		ID         int       `gorm:"primaryKey"`
		StudentID  int       `gorm:"not null;uniqueIndex:idx_enrollment_student_course"`
		CourseID   int       `gorm:"not null;uniqueIndex:idx_enrollment_student_course;index"`
		IsActive   bool      `gorm:"not null"`
		EnrolledAt time.Time `gorm:"not null"`
	}

	questionRow struct {
		ID        int    `gorm:"primaryKey"`
		LessonID  int    `gorm:"not null;index"`
		UserID    int    `gorm:"not null;index"`
		Text      string `gorm:"type:text;not null"`
		CreatedAt time.Time
	}
)

func (userRow) TableName() string       { return "users" }
func (categoryRow) TableName() string   { return "categories" }
func (courseRow) TableName() string     { return "courses" }
func (lessonRow) TableName() string     { return "lessons" }
func (materialRow) TableName() string   { return "materials" }
func (enrollmentRow) TableName() string { return "enrollments" }
func (questionRow) TableName() string   { return "questions" }

// categoryNameIndex backs the case-insensitive category name uniqueness.
const categoryNameIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_lower ON categories (LOWER(name))`

// Migrate creates or updates the tables and indexes.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&userRow{},
		&categoryRow{},
		&courseRow{},
		&lessonRow{},
		&materialRow{},
		&enrollmentRow{},
		&questionRow{},
	)
	if err != nil {
		return errors.Wrap(err, "migrating database")
	}
	if err := db.Exec(categoryNameIndex).Error; err != nil {
		return errors.Wrap(err, "creating category name index")
	}
	return nil
}
