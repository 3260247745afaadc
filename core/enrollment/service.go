package enrollment

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/course"
	"github.com/trezcool/lms/core/policy"
	"github.com/trezcool/lms/core/user"
)

var (
	// errors
	ErrAlreadyEnrolled = core.NewValidationError(errors.New("Already enrolled."))
)

type (
	Repository interface {
		// CreateEnrollment returns ErrAlreadyEnrolled if the student is already enrolled in the course.
		CreateEnrollment(ctx context.Context, e Enrollment) (Enrollment, error)
		QueryEnrollments(ctx context.Context, filter QueryFilter) ([]Enrollment, error)
		IsActivelyEnrolled(ctx context.Context, studentID, courseID int) (bool, error)
	}

	Service struct {
		repo     Repository
		courses  course.Repository
		users    user.Repository
		mailer   core.EmailService
		logger   core.Logger
		validate *validator.Validate
	}
)

func NewService(
	repo Repository,
	courses course.Repository,
	users user.Repository,
	mailer core.EmailService,
	logger core.Logger,
	validate *validator.Validate,
) *Service {
	return &Service{
		repo:     repo,
		courses:  courses,
		users:    users,
		mailer:   mailer,
		logger:   logger,
		validate: validate,
	}
}

// Query lists the enrollments visible to the actor.
func (svc *Service) Query(ctx context.Context, actor core.Actor) ([]Enrollment, error) {
	scope, err := policy.EnrollmentListScope(actor)
	if err != nil {
		return nil, err
	}
	enrollments, err := svc.repo.QueryEnrollments(ctx, QueryFilter{
		StudentID:    scope.StudentID,
		InstructorID: scope.InstructorID,
	})
	if err != nil {
		return nil, errors.Wrap(err, "querying enrollments")
	}
	return enrollments, nil
}

// Create enrolls the acting student in a course and notifies its instructor.
func (svc *Service) Create(ctx context.Context, actor core.Actor, ne NewEnrollment) (Enrollment, error) {
	if err := policy.CreateEnrollment(actor); err != nil {
		return Enrollment{}, err
	}
	if err := svc.validate.Struct(ne); err != nil {
		return Enrollment{}, err
	}
	c, err := svc.courses.GetCourseByID(ctx, ne.CourseID)
	if err != nil {
		return Enrollment{}, err
	}

	e := Enrollment{
		StudentID:  actor.ID,
		CourseID:   c.ID,
		IsActive:   true,
		EnrolledAt: time.Now().UTC(),
	}
	if ne.IsActive != nil {
		e.IsActive = *ne.IsActive
	}
	if e, err = svc.repo.CreateEnrollment(ctx, e); err != nil {
		return Enrollment{}, err
	}

	svc.notifyInstructor(ctx, actor, c)
	return e, nil
}

// IsActivelyEnrolled reports whether the student holds an active enrollment in the course.
func (svc *Service) IsActivelyEnrolled(ctx context.Context, studentID, courseID int) (bool, error) {
	return svc.repo.IsActivelyEnrolled(ctx, studentID, courseID)
}

func (svc *Service) notifyInstructor(ctx context.Context, student core.Actor, c course.Course) {
	instructor, err := svc.users.GetUserByID(ctx, c.InstructorID)
	if err != nil {
		svc.logger.Error(fmt.Sprintf("enrollment notification: %v", err), err, student)
		return
	}
	svc.mailer.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: instructor.Name, Address: instructor.Email}},
		Subject:      "New enrollment in " + c.Title,
		TemplateName: "enrollment_created",
		TemplateData: map[string]interface{}{
			"StudentUsername": student.Username,
			"CourseTitle":     c.Title,
		},
	})
}
