package course

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/category"
	"github.com/trezcool/lms/core/policy"
	"github.com/trezcool/lms/core/user"
)

var (
	// errors
	ErrNotFound           = core.NewNotFoundError("Course not found")
	ErrInstructorNotFound = core.NewNotFoundError("Instructor not found.")
	ErrNotATeacher        = errors.New("the instructor must be a teacher")

	errBlankTitle = errors.New("this field cannot be blank")
)

type (
	Repository interface {
		// CreateCourse stores the course and returns it with InstructorUsername set.
		CreateCourse(ctx context.Context, c Course) (Course, error)
		QueryCourses(ctx context.Context, filter QueryFilter) ([]Course, error)
		GetCourseByID(ctx context.Context, id int) (Course, error)
		UpdateCourse(ctx context.Context, c Course) (Course, error)
		// DeleteCourse removes the course along with its lessons, materials, enrollments and questions.
		DeleteCourse(ctx context.Context, id int) error
	}

	Service struct {
		repo       Repository
		categories category.Repository
		users      user.Repository
		validate   *validator.Validate
	}
)

func NewService(repo Repository, categories category.Repository, users user.Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, categories: categories, users: users, validate: validate}
}

// Query lists the courses visible to the actor: teachers only see the courses they instruct.
func (svc *Service) Query(ctx context.Context, actor core.Actor) ([]Course, error) {
	scope, err := policy.CourseListScope(actor)
	if err != nil {
		return nil, err
	}
	courses, err := svc.repo.QueryCourses(ctx, QueryFilter{InstructorID: scope.InstructorID})
	if err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	return courses, nil
}

func (svc *Service) Get(ctx context.Context, actor core.Actor, id int) (Course, error) {
	c, err := svc.repo.GetCourseByID(ctx, id)
	if err != nil {
		return Course{}, err
	}
	if err := policy.ViewCourse(actor, c.InstructorID); err != nil {
		return Course{}, err
	}
	return c, nil
}

func (svc *Service) Create(ctx context.Context, actor core.Actor, nc NewCourse) (Course, error) {
	if err := policy.CreateCourse(actor); err != nil {
		return Course{}, err
	}
	if actor.IsTeacher() && nc.InstructorID == 0 {
		nc.InstructorID = actor.ID
	}

	nc.Title = core.CleanString(nc.Title)
	nc.Description = core.CleanNullString(nc.Description)
	if err := svc.validate.Struct(nc); err != nil {
		return Course{}, err
	}
	if err := svc.checkCategory(ctx, nc.CategoryID); err != nil {
		return Course{}, err
	}
	if err := svc.checkInstructor(ctx, nc.InstructorID); err != nil {
		return Course{}, err
	}

	now := time.Now().UTC()
	c := Course{
		Title:        nc.Title,
		Description:  nc.Description,
		Price:        nc.Price,
		Duration:     nc.Duration,
		CategoryID:   nc.CategoryID,
		InstructorID: nc.InstructorID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if nc.IsActive != nil {
		c.IsActive = *nc.IsActive
	}
	return svc.repo.CreateCourse(ctx, c)
}

// Update applies a partial update. Teachers keep ownership of the course they update.
func (svc *Service) Update(ctx context.Context, actor core.Actor, uc UpdateCourse) (Course, error) {
	c, err := svc.repo.GetCourseByID(ctx, uc.ID)
	if err != nil {
		return Course{}, err
	}
	if err := policy.UpdateCourse(actor, c.InstructorID); err != nil {
		return Course{}, err
	}

	if uc.Title != nil {
		title := core.CleanString(*uc.Title)
		if title == "" {
			return Course{}, core.NewValidationError(nil, core.FieldError{Field: "title", Error: errBlankTitle.Error()})
		}
		uc.Title = &title
	}
	if err := svc.validate.Struct(uc); err != nil {
		return Course{}, err
	}

	if uc.Title != nil {
		c.Title = *uc.Title
	}
	if uc.Description.Valid {
		c.Description = core.CleanNullString(uc.Description)
	}
	if uc.Price != nil {
		c.Price = *uc.Price
	}
	if uc.Duration != nil {
		c.Duration = *uc.Duration
	}
	if uc.CategoryID != nil && *uc.CategoryID != c.CategoryID {
		if err := svc.checkCategory(ctx, *uc.CategoryID); err != nil {
			return Course{}, err
		}
		c.CategoryID = *uc.CategoryID
	}
	if actor.IsTeacher() {
		c.InstructorID = actor.ID
	} else if uc.InstructorID != nil && *uc.InstructorID != c.InstructorID {
		if err := svc.checkInstructor(ctx, *uc.InstructorID); err != nil {
			return Course{}, err
		}
		c.InstructorID = *uc.InstructorID
	}
	if uc.IsActive != nil {
		c.IsActive = *uc.IsActive
	}
	c.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateCourse(ctx, c)
}

func (svc *Service) Delete(ctx context.Context, actor core.Actor, id int) error {
	c, err := svc.repo.GetCourseByID(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.DeleteCourse(actor, c.InstructorID); err != nil {
		return err
	}
	return svc.repo.DeleteCourse(ctx, id)
}

func (svc *Service) checkCategory(ctx context.Context, id int) error {
	_, err := svc.categories.GetCategoryByID(ctx, id)
	return err
}

func (svc *Service) checkInstructor(ctx context.Context, id int) error {
	usr, err := svc.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return ErrInstructorNotFound
		}
		return err
	}
	if !usr.IsTeacher() {
		return core.NewValidationError(ErrNotATeacher, core.FieldError{Field: "instructor_id", Error: ErrNotATeacher.Error()})
	}
	return nil
}
