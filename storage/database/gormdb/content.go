package gormdb

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/trezcool/lms/core/content"
)

type contentRepository struct {
	db *gorm.DB
}

var _ content.Repository = (*contentRepository)(nil) // interface compliance check

func NewContentRepository(db *gorm.DB) content.Repository {
	return &contentRepository{db: db}
}

func lessonFromRow(row lessonRow) content.Lesson {
	return content.Lesson{
		ID:        row.ID,
		CourseID:  row.CourseID,
		Title:     row.Title,
		Content:   row.Content,
		Position:  row.Position,
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
	}
}

func materialFromRow(row materialRow) content.Material {
	return content.Material{
		ID:          row.ID,
		CourseID:    row.CourseID,
		Title:       row.Title,
		Description: row.Description,
		FileURL:     row.FileURL,
		CreatedAt:   row.CreatedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
	}
}

func (repo contentRepository) filter(ctx context.Context, filter content.QueryFilter) *gorm.DB {
	q := repo.db.WithContext(ctx)
	if filter.CourseID != 0 {
		q = q.Where("course_id = ?", filter.CourseID)
	}
	return q
}

func (repo contentRepository) CreateLesson(ctx context.Context, l content.Lesson) (content.Lesson, error) {
	row := lessonRow{
		CourseID:  l.CourseID,
		Title:     l.Title,
		Content:   l.Content,
		Position:  l.Position,
		CreatedAt: l.CreatedAt.UTC(),
		UpdatedAt: l.UpdatedAt.UTC(),
	}
	if err := repo.db.WithContext(ctx).Create(&row).Error; err != nil {
		return content.Lesson{}, errors.Wrap(err, "creating lesson")
	}
	return lessonFromRow(row), nil
}

func (repo contentRepository) QueryLessons(ctx context.Context, filter content.QueryFilter) ([]content.Lesson, error) {
	var rows []lessonRow
	if err := repo.filter(ctx, filter).Order("position, id").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "querying lessons")
	}
	lessons := make([]content.Lesson, 0, len(rows))
	for _, row := range rows {
		lessons = append(lessons, lessonFromRow(row))
	}
	return lessons, nil
}

func (repo contentRepository) GetLessonByID(ctx context.Context, id int) (content.Lesson, error) {
	var row lessonRow
	if err := repo.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return content.Lesson{}, content.ErrLessonNotFound
		}
		return content.Lesson{}, errors.Wrap(err, "getting lesson")
	}
	return lessonFromRow(row), nil
}

func (repo contentRepository) CreateMaterial(ctx context.Context, m content.Material) (content.Material, error) {
	row := materialRow{
		CourseID:    m.CourseID,
		Title:       m.Title,
		Description: m.Description,
		FileURL:     m.FileURL,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
	if err := repo.db.WithContext(ctx).Create(&row).Error; err != nil {
		return content.Material{}, errors.Wrap(err, "creating material")
	}
	return materialFromRow(row), nil
}

func (repo contentRepository) QueryMaterials(ctx context.Context, filter content.QueryFilter) ([]content.Material, error) {
	var rows []materialRow
	if err := repo.filter(ctx, filter).Order("id").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "querying materials")
	}
	materials := make([]content.Material, 0, len(rows))
	for _, row := range rows {
		materials = append(materials, materialFromRow(row))
	}
	return materials, nil
}
