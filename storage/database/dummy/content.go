package dummydb

import (
	"context"
	"sort"

	"github.com/trezcool/lms/core/content"
)

type contentRepository struct {
	db *DB
}

var _ content.Repository = (*contentRepository)(nil) // interface compliance check

func NewContentRepository(db *DB) content.Repository {
	return &contentRepository{db: db}
}

func (repo *contentRepository) CreateLesson(_ context.Context, l content.Lesson) (content.Lesson, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	l.ID = repo.db.nextPK("lessons")
	repo.db.lessons[l.ID] = l
	return l, nil
}

func (repo *contentRepository) QueryLessons(_ context.Context, filter content.QueryFilter) ([]content.Lesson, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	lessons := make([]content.Lesson, 0)
	for _, id := range sortedKeys(repo.db.lessons) {
		l := repo.db.lessons[id]
		if filter.CourseID != 0 && l.CourseID != filter.CourseID {
			continue
		}
		lessons = append(lessons, l)
	}
	sort.SliceStable(lessons, func(i, j int) bool { return lessons[i].Position < lessons[j].Position })
	return lessons, nil
}

func (repo *contentRepository) GetLessonByID(_ context.Context, id int) (content.Lesson, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if l, ok := repo.db.lessons[id]; ok {
		return l, nil
	}
	return content.Lesson{}, content.ErrLessonNotFound
}

func (repo *contentRepository) CreateMaterial(_ context.Context, m content.Material) (content.Material, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	m.ID = repo.db.nextPK("materials")
	repo.db.materials[m.ID] = m
	return m, nil
}

func (repo *contentRepository) QueryMaterials(_ context.Context, filter content.QueryFilter) ([]content.Material, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	materials := make([]content.Material, 0)
	for _, id := range sortedKeys(repo.db.materials) {
		m := repo.db.materials[id]
		if filter.CourseID != 0 && m.CourseID != filter.CourseID {
			continue
		}
		materials = append(materials, m)
	}
	return materials, nil
}
