package gormdb

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/trezcool/lms/core/category"
)

// categoryView is what withCoursesCount scans into. Row must stay a named
// embedded field: gorm ignores unexported anonymous structs.
type categoryView struct {
	Row          categoryRow `gorm:"embedded"`
	CoursesCount int
}

type categoryRepository struct {
	db *gorm.DB
}

var _ category.Repository = (*categoryRepository)(nil) // interface compliance check

func NewCategoryRepository(db *gorm.DB) category.Repository {
	return &categoryRepository{db: db}
}

func (repo categoryRepository) toRow(cat category.Category) categoryRow {
	return categoryRow{
		ID:          cat.ID,
		Name:        cat.Name,
		Slug:        cat.Slug,
		Description: cat.Description,
		IsActive:    cat.IsActive,
		CreatedAt:   cat.CreatedAt.UTC(),
		UpdatedAt:   cat.UpdatedAt.UTC(),
	}
}

func (repo categoryRepository) fromView(v categoryView) category.Category {
	return category.Category{
		ID:           v.Row.ID,
		Name:         v.Row.Name,
		Slug:         v.Row.Slug,
		Description:  v.Row.Description,
		IsActive:     v.Row.IsActive,
		CreatedAt:    v.Row.CreatedAt.UTC(),
		UpdatedAt:    v.Row.UpdatedAt.UTC(),
		CoursesCount: v.CoursesCount,
	}
}

// withCoursesCount selects categories along with the number of courses referencing them.
func (repo categoryRepository) withCoursesCount(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Model(&categoryRow{}).
		Select("categories.*, COUNT(courses.id) AS courses_count").
		Joins("LEFT JOIN courses ON courses.category_id = categories.id").
		Group("categories.id")
}

func (repo categoryRepository) CheckNameUniqueness(ctx context.Context, name string, excludedIDs ...int) error {
	q := repo.db.WithContext(ctx).Model(&categoryRow{}).Where("LOWER(name) = ?", strings.ToLower(name))
	if len(excludedIDs) > 0 {
		q = q.Where("id NOT IN ?", excludedIDs)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return errors.Wrap(err, "checking category name uniqueness")
	}
	if count > 0 {
		return category.ErrNameExists
	}
	return nil
}

func (repo categoryRepository) CreateCategory(ctx context.Context, cat category.Category) (category.Category, error) {
	row := repo.toRow(cat)
	row.ID = 0
	if err := repo.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return category.Category{}, category.ErrNameExists
		}
		return category.Category{}, errors.Wrap(err, "creating category")
	}
	return repo.fromView(categoryView{Row: row}), nil
}

func (repo categoryRepository) QueryCategories(ctx context.Context) ([]category.Category, error) {
	var views []categoryView
	if err := repo.withCoursesCount(ctx).Order("categories.id").Scan(&views).Error; err != nil {
		return nil, errors.Wrap(err, "querying categories")
	}
	cats := make([]category.Category, 0, len(views))
	for _, v := range views {
		cats = append(cats, repo.fromView(v))
	}
	return cats, nil
}

func (repo categoryRepository) GetCategoryByID(ctx context.Context, id int) (category.Category, error) {
	var views []categoryView
	if err := repo.withCoursesCount(ctx).Where("categories.id = ?", id).Scan(&views).Error; err != nil {
		return category.Category{}, errors.Wrap(err, "getting category")
	}
	if len(views) == 0 {
		return category.Category{}, category.ErrNotFound
	}
	return repo.fromView(views[0]), nil
}

func (repo categoryRepository) UpdateCategory(ctx context.Context, cat category.Category) (category.Category, error) {
	row := repo.toRow(cat)
	res := repo.db.WithContext(ctx).Model(&row).Select("*").Omit("created_at").Updates(&row)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return category.Category{}, category.ErrNameExists
		}
		return category.Category{}, errors.Wrap(res.Error, "updating category")
	}
	if res.RowsAffected == 0 {
		return category.Category{}, category.ErrNotFound
	}
	return repo.GetCategoryByID(ctx, cat.ID)
}

func (repo categoryRepository) DeleteCategory(ctx context.Context, id int) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var courseIDs []int
		if err := tx.Model(&courseRow{}).Where("category_id = ?", id).Pluck("id", &courseIDs).Error; err != nil {
			return errors.Wrap(err, "listing category courses")
		}
		if err := deleteCourses(tx, courseIDs...); err != nil {
			return err
		}
		res := tx.Delete(&categoryRow{}, id)
		if res.Error != nil {
			return errors.Wrap(res.Error, "deleting category")
		}
		if res.RowsAffected == 0 {
			return category.ErrNotFound
		}
		return nil
	})
}
