package content

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/course"
	"github.com/trezcool/lms/core/policy"
)

var (
	// errors
	ErrLessonNotFound = core.NewNotFoundError("Lesson not found.")
)

type (
	Repository interface {
		CreateLesson(ctx context.Context, l Lesson) (Lesson, error)
		// QueryLessons orders lessons by Position then ID.
		QueryLessons(ctx context.Context, filter QueryFilter) ([]Lesson, error)
		GetLessonByID(ctx context.Context, id int) (Lesson, error)
		CreateMaterial(ctx context.Context, m Material) (Material, error)
		QueryMaterials(ctx context.Context, filter QueryFilter) ([]Material, error)
	}

	Service struct {
		repo     Repository
		courses  course.Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, courses course.Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, courses: courses, validate: validate}
}

func (svc *Service) QueryLessons(ctx context.Context, _ core.Actor, filter QueryFilter) ([]Lesson, error) {
	lessons, err := svc.repo.QueryLessons(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "querying lessons")
	}
	return lessons, nil
}

// CreateLesson adds a lesson to a course instructed by the acting teacher.
func (svc *Service) CreateLesson(ctx context.Context, actor core.Actor, nl NewLesson) (Lesson, error) {
	if err := policy.CreateLesson(actor); err != nil {
		return Lesson{}, err
	}

	nl.Title = core.CleanString(nl.Title)
	if err := svc.validate.Struct(nl); err != nil {
		return Lesson{}, err
	}
	c, err := svc.courses.GetCourseByID(ctx, nl.CourseID)
	if err != nil {
		return Lesson{}, err
	}
	if err := policy.OwnLessonCourse(actor, c.InstructorID); err != nil {
		return Lesson{}, err
	}

	now := time.Now().UTC()
	return svc.repo.CreateLesson(ctx, Lesson{
		CourseID:  c.ID,
		Title:     nl.Title,
		Content:   nl.Content,
		Position:  nl.Position,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (svc *Service) QueryMaterials(ctx context.Context, _ core.Actor, filter QueryFilter) ([]Material, error) {
	materials, err := svc.repo.QueryMaterials(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "querying materials")
	}
	return materials, nil
}

// CreateMaterial adds a material to a course instructed by the acting teacher.
func (svc *Service) CreateMaterial(ctx context.Context, actor core.Actor, nm NewMaterial) (Material, error) {
	if err := policy.CreateMaterial(actor); err != nil {
		return Material{}, err
	}

	nm.Title = core.CleanString(nm.Title)
	nm.Description = core.CleanNullString(nm.Description)
	nm.FileURL = core.CleanString(nm.FileURL)
	if err := svc.validate.Struct(nm); err != nil {
		return Material{}, err
	}
	c, err := svc.courses.GetCourseByID(ctx, nm.CourseID)
	if err != nil {
		return Material{}, err
	}
	if err := policy.OwnMaterialCourse(actor, c.InstructorID); err != nil {
		return Material{}, err
	}

	now := time.Now().UTC()
	return svc.repo.CreateMaterial(ctx, Material{
		CourseID:    c.ID,
		Title:       nm.Title,
		Description: nm.Description,
		FileURL:     nm.FileURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

// GetLesson returns a lesson without any visibility restriction.
func (svc *Service) GetLesson(ctx context.Context, id int) (Lesson, error) {
	return svc.repo.GetLessonByID(ctx, id)
}
