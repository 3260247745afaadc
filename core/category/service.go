package category

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
	"github.com/pkg/errors"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/policy"
)

var (
	// errors
	ErrNotFound   = core.NewNotFoundError("Category not found.")
	ErrIDRequired = core.NewValidationError(errors.New("Category id is required."))
	ErrNameExists = errors.New("a category with this name already exists")

	errBlankName = errors.New("this field cannot be blank")
)

type (
	Repository interface {
		// CheckNameUniqueness compares names case-insensitively.
		CheckNameUniqueness(ctx context.Context, name string, excludedIDs ...int) error
		CreateCategory(ctx context.Context, cat Category) (Category, error)
		// QueryCategories returns every category with its CoursesCount.
		QueryCategories(ctx context.Context) ([]Category, error)
		GetCategoryByID(ctx context.Context, id int) (Category, error)
		UpdateCategory(ctx context.Context, cat Category) (Category, error)
		// DeleteCategory removes the category along with its courses.
		DeleteCategory(ctx context.Context, id int) error
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

// nameError reports ErrNameExists as a validation error on the name field.
func nameError(err error) error {
	if err == ErrNameExists {
		return core.NewValidationError(err, core.FieldError{Field: "name", Error: err.Error()})
	}
	return err
}

// checkUniqueness runs ahead of the write; the repository still
// rejects a concurrent duplicate with ErrNameExists.
func (svc *Service) checkUniqueness(ctx context.Context, name string, excludedIDs ...int) error {
	return nameError(svc.repo.CheckNameUniqueness(ctx, name, excludedIDs...))
}

func requireID(id *int) (int, error) {
	if id == nil || *id == 0 {
		return 0, ErrIDRequired
	}
	return *id, nil
}

// Query lists every category. Any authenticated actor may list them.
func (svc *Service) Query(ctx context.Context, _ core.Actor) ([]Category, error) {
	cats, err := svc.repo.QueryCategories(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying categories")
	}
	return cats, nil
}

func (svc *Service) Create(ctx context.Context, actor core.Actor, nc NewCategory) (Category, error) {
	if err := policy.CreateCategory(actor); err != nil {
		return Category{}, err
	}

	nc.Name = core.CleanString(nc.Name)
	nc.Description = core.CleanNullString(nc.Description)
	if err := svc.validate.Struct(nc); err != nil {
		return Category{}, err
	}
	if err := svc.checkUniqueness(ctx, nc.Name); err != nil {
		return Category{}, err
	}

	now := time.Now().UTC()
	cat := Category{
		Name:        nc.Name,
		Slug:        slug.Make(nc.Name),
		Description: nc.Description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if nc.IsActive != nil {
		cat.IsActive = *nc.IsActive
	}
	cat, err := svc.repo.CreateCategory(ctx, cat)
	if err != nil {
		return Category{}, nameError(err)
	}
	return cat, nil
}

// Update applies a partial update to the category identified by uc.ID.
func (svc *Service) Update(ctx context.Context, actor core.Actor, uc UpdateCategory) (Category, error) {
	if err := policy.UpdateCategory(actor); err != nil {
		return Category{}, err
	}
	id, err := requireID(uc.ID)
	if err != nil {
		return Category{}, err
	}
	cat, err := svc.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return Category{}, err
	}

	if uc.Name != nil {
		name := core.CleanString(*uc.Name)
		if name == "" {
			return Category{}, core.NewValidationError(nil, core.FieldError{Field: "name", Error: errBlankName.Error()})
		}
		uc.Name = &name
	}
	if err := svc.validate.Struct(uc); err != nil {
		return Category{}, err
	}

	if uc.Name != nil && *uc.Name != cat.Name {
		if err := svc.checkUniqueness(ctx, *uc.Name, cat.ID); err != nil {
			return Category{}, err
		}
		cat.Name = *uc.Name
		cat.Slug = slug.Make(cat.Name)
	}
	if uc.Description.Valid {
		cat.Description = core.CleanNullString(uc.Description)
	}
	if uc.IsActive != nil {
		cat.IsActive = *uc.IsActive
	}
	cat.UpdatedAt = time.Now().UTC()
	cat, err = svc.repo.UpdateCategory(ctx, cat)
	if err != nil {
		return Category{}, nameError(err)
	}
	return cat, nil
}

func (svc *Service) Delete(ctx context.Context, actor core.Actor, dc DeleteCategory) error {
	if err := policy.DeleteCategory(actor); err != nil {
		return err
	}
	id, err := requireID(dc.ID)
	if err != nil {
		return err
	}
	if _, err := svc.repo.GetCategoryByID(ctx, id); err != nil {
		return err
	}
	return svc.repo.DeleteCategory(ctx, id)
}
