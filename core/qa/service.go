package qa

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/content"
	"github.com/trezcool/lms/core/course"
	"github.com/trezcool/lms/core/enrollment"
	"github.com/trezcool/lms/core/policy"
	"github.com/trezcool/lms/core/user"
)

type (
	Repository interface {
		CreateQuestion(ctx context.Context, q Question) (Question, error)
		QueryQuestions(ctx context.Context, filter QueryFilter) ([]Question, error)
	}

	Service struct {
		repo        Repository
		lessons     content.Repository
		courses     course.Repository
		enrollments enrollment.Repository
		users       user.Repository
		mailer      core.EmailService
		logger      core.Logger
		validate    *validator.Validate
	}
)

func NewService(
	repo Repository,
	lessons content.Repository,
	courses course.Repository,
	enrollments enrollment.Repository,
	users user.Repository,
	mailer core.EmailService,
	logger core.Logger,
	validate *validator.Validate,
) *Service {
	return &Service{
		repo:        repo,
		lessons:     lessons,
		courses:     courses,
		enrollments: enrollments,
		users:       users,
		mailer:      mailer,
		logger:      logger,
		validate:    validate,
	}
}

func (svc *Service) Query(ctx context.Context, _ core.Actor, filter QueryFilter) ([]Question, error) {
	questions, err := svc.repo.QueryQuestions(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "querying questions")
	}
	return questions, nil
}

// Create posts a question on a lesson.
// Students must be actively enrolled in the lesson's course.
func (svc *Service) Create(ctx context.Context, actor core.Actor, nq NewQuestion) (Question, error) {
	nq.Text = core.CleanString(nq.Text)
	if err := svc.validate.Struct(nq); err != nil {
		return Question{}, err
	}
	lesson, err := svc.lessons.GetLessonByID(ctx, nq.LessonID)
	if err != nil {
		return Question{}, err
	}
	c, err := svc.courses.GetCourseByID(ctx, lesson.CourseID)
	if err != nil {
		return Question{}, errors.Wrapf(err, "getting course of lesson %d", lesson.ID)
	}

	var enrolled bool
	if actor.IsStudent() {
		if enrolled, err = svc.enrollments.IsActivelyEnrolled(ctx, actor.ID, c.ID); err != nil {
			return Question{}, errors.Wrap(err, "checking enrollment")
		}
	}
	if err := policy.PostQuestion(actor, enrolled); err != nil {
		return Question{}, err
	}

	q, err := svc.repo.CreateQuestion(ctx, Question{
		LessonID:  lesson.ID,
		UserID:    actor.ID,
		Text:      nq.Text,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return Question{}, err
	}

	if !actor.Is(c.InstructorID) {
		svc.notifyInstructor(ctx, actor, lesson, c, q)
	}
	return q, nil
}

func (svc *Service) notifyInstructor(ctx context.Context, author core.Actor, lesson content.Lesson, c course.Course, q Question) {
	instructor, err := svc.users.GetUserByID(ctx, c.InstructorID)
	if err != nil {
		svc.logger.Error(fmt.Sprintf("question notification: %v", err), err, author)
		return
	}
	svc.mailer.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: instructor.Name, Address: instructor.Email}},
		Subject:      "New question on " + lesson.Title,
		TemplateName: "question_posted",
		TemplateData: map[string]interface{}{
			"AuthorUsername": author.Username,
			"LessonTitle":    lesson.Title,
			"CourseTitle":    c.Title,
			"Text":           q.Text,
		},
	})
}
