// Package policy holds the authorization decisions of the application.
//
// Every function is pure: it looks only at the acting user and the ownership
// ids it is given, and returns nil or a *core.PermissionError carrying the
// message shown to the client.
package policy

import "github.com/trezcool/lms/core"

// Denial messages
const (
	MsgCreateCategory = "Only admin can create categories."
	MsgUpdateCategory = "Only admin can update categories."
	MsgDeleteCategory = "Only admin can delete categories."

	MsgViewCourse   = "Permission denied"
	MsgCreateCourse = "Only admins or teachers can create courses."
	MsgUpdateCourse = "Only the course owner (teacher) or admin can update this course."
	MsgDeleteCourse = "Only the course owner (teacher) or admin can delete this course."

	MsgCreateLesson    = "Only teachers can create lessons."
	MsgOwnLessonCourse = "You can only add lessons to your own courses."

	MsgCreateMaterial    = "Only teachers can upload materials."
	MsgOwnMaterialCourse = "You can only add materials to your own courses."

	MsgCreateEnrollment = "Only students can enroll."
	MsgPostQuestion     = "You must be enrolled to ask questions."

	MsgAdminOnly    = "Admin only"
	MsgUnknownRole  = "Unauthorized role"
	MsgInactiveUser = "User account is disabled."
)

func deny(msg string) error { return core.NewPermissionError(msg) }

func allow(ok bool, msg string) error {
	if ok {
		return nil
	}
	return deny(msg)
}

// Categories

func CreateCategory(a core.Actor) error { return allow(a.IsAdmin(), MsgCreateCategory) }
func UpdateCategory(a core.Actor) error { return allow(a.IsAdmin(), MsgUpdateCategory) }
func DeleteCategory(a core.Actor) error { return allow(a.IsAdmin(), MsgDeleteCategory) }

// Courses

// CourseScope restricts which courses an actor can list.
// The zero value means every course.
type CourseScope struct {
	InstructorID int
}

// All reports whether the scope is unrestricted.
func (s CourseScope) All() bool { return s.InstructorID == 0 }

// CourseListScope returns the courses visible to a.
// Students see every course.
func CourseListScope(a core.Actor) (CourseScope, error) {
	switch a.Role {
	case core.RoleAdmin, core.RoleStudent:
		return CourseScope{}, nil
	case core.RoleTeacher:
		return CourseScope{InstructorID: a.ID}, nil
	default:
		return CourseScope{}, deny(MsgUnknownRole)
	}
}

func ViewCourse(a core.Actor, instructorID int) error {
	return allow(a.IsAdmin() || a.Is(instructorID), MsgViewCourse)
}

func CreateCourse(a core.Actor) error {
	return allow(a.IsAdmin() || a.IsTeacher(), MsgCreateCourse)
}

func UpdateCourse(a core.Actor, instructorID int) error {
	return allow(a.IsAdmin() || (a.IsTeacher() && a.Is(instructorID)), MsgUpdateCourse)
}

func DeleteCourse(a core.Actor, instructorID int) error {
	return allow(a.IsAdmin() || (a.IsTeacher() && a.Is(instructorID)), MsgDeleteCourse)
}

// Lessons & Materials

func CreateLesson(a core.Actor) error { return allow(a.IsTeacher(), MsgCreateLesson) }

// OwnLessonCourse checks that a teacher adds a lesson to a course they instruct.
func OwnLessonCourse(a core.Actor, instructorID int) error {
	return allow(a.Is(instructorID), MsgOwnLessonCourse)
}

func CreateMaterial(a core.Actor) error { return allow(a.IsTeacher(), MsgCreateMaterial) }

func OwnMaterialCourse(a core.Actor, instructorID int) error {
	return allow(a.Is(instructorID), MsgOwnMaterialCourse)
}

// Enrollments

// EnrollmentScope restricts which enrollments an actor can list.
// At most one field is set; the zero value means every enrollment.
type EnrollmentScope struct {
	InstructorID int // enrollments in courses taught by this teacher
	StudentID    int // enrollments of this student
}

func (s EnrollmentScope) All() bool { return s.InstructorID == 0 && s.StudentID == 0 }

func EnrollmentListScope(a core.Actor) (EnrollmentScope, error) {
	switch a.Role {
	case core.RoleAdmin:
		return EnrollmentScope{}, nil
	case core.RoleTeacher:
		return EnrollmentScope{InstructorID: a.ID}, nil
	case core.RoleStudent:
		return EnrollmentScope{StudentID: a.ID}, nil
	default:
		return EnrollmentScope{}, deny(MsgUnknownRole)
	}
}

func CreateEnrollment(a core.Actor) error { return allow(a.IsStudent(), MsgCreateEnrollment) }

// Questions

// PostQuestion lets non-students always post; students must hold an active
// enrollment in the lesson's course.
func PostQuestion(a core.Actor, activelyEnrolled bool) error {
	return allow(!a.IsStudent() || activelyEnrolled, MsgPostQuestion)
}

// Admin

func AdminOnly(a core.Actor) error { return allow(a.IsAdmin(), MsgAdminOnly) }

// Active rejects actors whose role is not one of core.AllRoles.
func Active(a core.Actor) error { return allow(a.Role.IsValid(), MsgUnknownRole) }
