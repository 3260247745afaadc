package course

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Course is exposed through a curated field set plus the derived InstructorUsername.
type Course struct {
	ID                 int         `json:"id"`
	Title              string      `json:"title"`
	Description        null.String `json:"description"`
	Price              float64     `json:"price"`
	Duration           int         `json:"duration"` // hours
	CategoryID         int         `json:"category_id"`
	InstructorID       int         `json:"instructor_id"`
	InstructorUsername string      `json:"instructor_username"`
	IsActive           bool        `json:"is_active"`
	CreatedAt          time.Time   `json:"-"` // UTC
	UpdatedAt          time.Time   `json:"-"` // UTC
}

type NewCourse struct {
	Title        string      `json:"title" validate:"required,max=200"`
	Description  null.String `json:"description"`
	Price        float64     `json:"price" validate:"gte=0"`
	Duration     int         `json:"duration" validate:"gte=0"`
	CategoryID   int         `json:"category_id" validate:"required"`
	InstructorID int         `json:"instructor_id" validate:"required"` // teachers default to themselves
	IsActive     *bool       `json:"is_active"`
}

// UpdateCourse is a partial update: nil fields are left untouched.
type UpdateCourse struct {
	ID           int         `json:"-"`
	Title        *string     `json:"title" validate:"omitempty,max=200"`
	Description  null.String `json:"description"` // "" clears it
	Price        *float64    `json:"price" validate:"omitempty,gte=0"`
	Duration     *int        `json:"duration" validate:"omitempty,gte=0"`
	CategoryID   *int        `json:"category_id"`
	InstructorID *int        `json:"instructor_id"`
	IsActive     *bool       `json:"is_active"`
}

type QueryFilter struct {
	InstructorID int
}
