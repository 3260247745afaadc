package dummydb

import (
	"context"

	"github.com/trezcool/lms/core/qa"
)

type questionRepository struct {
	db *DB
}

var _ qa.Repository = (*questionRepository)(nil) // interface compliance check

func NewQuestionRepository(db *DB) qa.Repository {
	return &questionRepository{db: db}
}

func (repo *questionRepository) CreateQuestion(_ context.Context, q qa.Question) (qa.Question, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	q.ID = repo.db.nextPK("questions")
	repo.db.questions[q.ID] = q
	return q, nil
}

func (repo *questionRepository) QueryQuestions(_ context.Context, filter qa.QueryFilter) ([]qa.Question, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	questions := make([]qa.Question, 0)
	for _, id := range sortedKeys(repo.db.questions) {
		q := repo.db.questions[id]
		if filter.LessonID != 0 && q.LessonID != filter.LessonID {
			continue
		}
		questions = append(questions, q)
	}
	return questions, nil
}
