package category

import (
	"time"

	"github.com/volatiletech/null/v8"
)

type Category struct {
	ID           int         `json:"id"`
	Name         string      `json:"name"`
	Slug         string      `json:"slug"`
	Description  null.String `json:"description"`
	IsActive     bool        `json:"is_active"`
	CreatedAt    time.Time   `json:"created_at"` // UTC
	UpdatedAt    time.Time   `json:"updated_at"` // UTC
	CoursesCount int         `json:"courses_count"`
}

type NewCategory struct {
	Name        string      `json:"name" validate:"required,max=100"`
	Description null.String `json:"description"`
	IsActive    *bool       `json:"is_active"`
}

// UpdateCategory is a partial update: nil fields are left untouched.
type UpdateCategory struct {
	ID          *int        `json:"id"`
	Name        *string     `json:"name" validate:"omitempty,max=100"`
	Description null.String `json:"description"` // "" clears it
	IsActive    *bool       `json:"is_active"`
}

type DeleteCategory struct {
	ID *int `json:"id"`
}
