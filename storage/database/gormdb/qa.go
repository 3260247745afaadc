package gormdb

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/trezcool/lms/core/qa"
)

type questionRepository struct {
	db *gorm.DB
}

var _ qa.Repository = (*questionRepository)(nil) // interface compliance check

func NewQuestionRepository(db *gorm.DB) qa.Repository {
	return &questionRepository{db: db}
}

func questionFromRow(row questionRow) qa.Question {
	return qa.Question{
		ID:        row.ID,
		LessonID:  row.LessonID,
		UserID:    row.UserID,
		Text:      row.Text,
		CreatedAt: row.CreatedAt.UTC(),
	}
}

func (repo questionRepository) CreateQuestion(ctx context.Context, q qa.Question) (qa.Question, error) {
	row := questionRow{
		LessonID:  q.LessonID,
		UserID:    q.UserID,
		Text:      q.Text,
		CreatedAt: q.CreatedAt.UTC(),
	}
	if err := repo.db.WithContext(ctx).Create(&row).Error; err != nil {
		return qa.Question{}, errors.Wrap(err, "creating question")
	}
	return questionFromRow(row), nil
}

func (repo questionRepository) QueryQuestions(ctx context.Context, filter qa.QueryFilter) ([]qa.Question, error) {
	q := repo.db.WithContext(ctx).Order("id")
	if filter.LessonID != 0 {
		q = q.Where("lesson_id = ?", filter.LessonID)
	}

	var rows []questionRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "querying questions")
	}
	questions := make([]qa.Question, 0, len(rows))
	for _, row := range rows {
		questions = append(questions, questionFromRow(row))
	}
	return questions, nil
}
