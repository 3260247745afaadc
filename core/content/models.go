package content

import (
	"time"

	"github.com/volatiletech/null/v8"
)

type Lesson struct {
	ID        int         `json:"id"`
	CourseID  int         `json:"course_id"`
	Title     string      `json:"title"`
	Content   null.String `json:"content"`
	Position  int         `json:"position"`
	CreatedAt time.Time   `json:"created_at"` // UTC
	UpdatedAt time.Time   `json:"updated_at"` // UTC
}

type NewLesson struct {
	CourseID int         `json:"course_id" validate:"required"`
	Title    string      `json:"title" validate:"required,max=200"`
	Content  null.String `json:"content"`
	Position int         `json:"position" validate:"gte=0"`
}

type Material struct {
	ID          int         `json:"id"`
	CourseID    int         `json:"course_id"`
	Title       string      `json:"title"`
	Description null.String `json:"description"`
	FileURL     string      `json:"file_url"`
	CreatedAt   time.Time   `json:"created_at"` // UTC
	UpdatedAt   time.Time   `json:"updated_at"` // UTC
}

type NewMaterial struct {
	CourseID    int         `json:"course_id" validate:"required"`
	Title       string      `json:"title" validate:"required,max=200"`
	Description null.String `json:"description"`
	FileURL     string      `json:"file_url" validate:"required,url"`
}

// QueryFilter restricts lessons or materials to one course when CourseID is set.
type QueryFilter struct {
	CourseID int
}
