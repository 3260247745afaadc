package gormdb

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/trezcool/lms/core/course"
)

type courseView struct {
	Row                courseRow `gorm:"embedded"`
	InstructorUsername string
}

type courseRepository struct {
	db *gorm.DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *gorm.DB) course.Repository {
	return &courseRepository{db: db}
}

func (repo courseRepository) toRow(c course.Course) courseRow {
	return courseRow{
		ID:           c.ID,
		Title:        c.Title,
		Description:  c.Description,
		Price:        c.Price,
		Duration:     c.Duration,
		CategoryID:   c.CategoryID,
		InstructorID: c.InstructorID,
		IsActive:     c.IsActive,
		CreatedAt:    c.CreatedAt.UTC(),
		UpdatedAt:    c.UpdatedAt.UTC(),
	}
}

func (repo courseRepository) fromView(v courseView) course.Course {
	return course.Course{
		ID:                 v.Row.ID,
		Title:              v.Row.Title,
		Description:        v.Row.Description,
		Price:              v.Row.Price,
		Duration:           v.Row.Duration,
		CategoryID:         v.Row.CategoryID,
		InstructorID:       v.Row.InstructorID,
		InstructorUsername: v.InstructorUsername,
		IsActive:           v.Row.IsActive,
		CreatedAt:          v.Row.CreatedAt.UTC(),
		UpdatedAt:          v.Row.UpdatedAt.UTC(),
	}
}

// withInstructor selects courses along with their instructor's username.
func (repo courseRepository) withInstructor(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Model(&courseRow{}).
		Select("courses.*, users.username AS instructor_username").
		Joins("LEFT JOIN users ON users.id = courses.instructor_id")
}

func (repo courseRepository) CreateCourse(ctx context.Context, c course.Course) (course.Course, error) {
	row := repo.toRow(c)
	row.ID = 0
	if err := repo.db.WithContext(ctx).Create(&row).Error; err != nil {
		return course.Course{}, errors.Wrap(err, "creating course")
	}
	return repo.GetCourseByID(ctx, row.ID)
}

func (repo courseRepository) QueryCourses(ctx context.Context, filter course.QueryFilter) ([]course.Course, error) {
	q := repo.withInstructor(ctx).Order("courses.id")
	if filter.InstructorID != 0 {
		q = q.Where("courses.instructor_id = ?", filter.InstructorID)
	}

	var views []courseView
	if err := q.Scan(&views).Error; err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	courses := make([]course.Course, 0, len(views))
	for _, v := range views {
		courses = append(courses, repo.fromView(v))
	}
	return courses, nil
}

func (repo courseRepository) GetCourseByID(ctx context.Context, id int) (course.Course, error) {
	var views []courseView
	if err := repo.withInstructor(ctx).Where("courses.id = ?", id).Scan(&views).Error; err != nil {
		return course.Course{}, errors.Wrap(err, "getting course")
	}
	if len(views) == 0 {
		return course.Course{}, course.ErrNotFound
	}
	return repo.fromView(views[0]), nil
}

func (repo courseRepository) UpdateCourse(ctx context.Context, c course.Course) (course.Course, error) {
	row := repo.toRow(c)
	res := repo.db.WithContext(ctx).Model(&row).Select("*").Omit("created_at").Updates(&row)
	if res.Error != nil {
		return course.Course{}, errors.Wrap(res.Error, "updating course")
	}
	if res.RowsAffected == 0 {
		return course.Course{}, course.ErrNotFound
	}
	return repo.GetCourseByID(ctx, c.ID)
}

func (repo courseRepository) DeleteCourse(ctx context.Context, id int) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&courseRow{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return errors.Wrap(err, "getting course")
		}
		if count == 0 {
			return course.ErrNotFound
		}
		return deleteCourses(tx, id)
	})
}

// deleteCourses removes the courses and everything that hangs off them.
func deleteCourses(tx *gorm.DB, ids ...int) error {
	if len(ids) == 0 {
		return nil
	}

	lessonIDs := tx.Model(&lessonRow{}).Select("id").Where("course_id IN ?", ids)
	if err := tx.Where("lesson_id IN (?)", lessonIDs).Delete(&questionRow{}).Error; err != nil {
		return errors.Wrap(err, "deleting questions")
	}
	for _, model := range []interface{}{&lessonRow{}, &materialRow{}, &enrollmentRow{}} {
		if err := tx.Where("course_id IN ?", ids).Delete(model).Error; err != nil {
			return errors.Wrap(err, "deleting course dependents")
		}
	}
	if err := tx.Delete(&courseRow{}, ids).Error; err != nil {
		return errors.Wrap(err, "deleting courses")
	}
	return nil
}
