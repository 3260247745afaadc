package qa

import "time"

// Question is a message posted on a lesson's question/answer thread.
type Question struct {
	ID        int       `json:"id"`
	LessonID  int       `json:"lesson_id"`
	UserID    int       `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

type NewQuestion struct {
	LessonID int    `json:"lesson_id" validate:"required"`
	Text     string `json:"text" validate:"required,max=5000"`
}

type QueryFilter struct {
	LessonID int
}
