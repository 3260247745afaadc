package enrollment

import "time"

type Enrollment struct {
	ID         int       `json:"id"`
	StudentID  int       `json:"student_id"`
	CourseID   int       `json:"course_id"`
	IsActive   bool      `json:"is_active"`
	EnrolledAt time.Time `json:"enrolled_at"` // UTC
}

// NewEnrollment always enrolls the acting student.
type NewEnrollment struct {
	CourseID int   `json:"course_id" validate:"required"`
	IsActive *bool `json:"is_active"`
}

// QueryFilter applies an AND operation on its non-zero fields.
type QueryFilter struct {
	StudentID    int
	CourseID     int
	InstructorID int // enrollments in courses taught by this teacher
}
