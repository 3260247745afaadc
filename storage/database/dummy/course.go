package dummydb

import (
	"context"

	"github.com/trezcool/lms/core/course"
)

type courseRepository struct {
	db *DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db}
}

// withInstructor must be called with the read lock held.
func (repo *courseRepository) withInstructor(c course.Course) course.Course {
	c.InstructorUsername = ""
	if usr, ok := repo.db.users[c.InstructorID]; ok {
		c.InstructorUsername = usr.Username
	}
	return c
}

func (repo *courseRepository) CreateCourse(_ context.Context, c course.Course) (course.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	c.ID = repo.db.nextPK("courses")
	repo.db.courses[c.ID] = c
	return repo.withInstructor(c), nil
}

func (repo *courseRepository) QueryCourses(_ context.Context, filter course.QueryFilter) ([]course.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	courses := make([]course.Course, 0)
	for _, id := range sortedKeys(repo.db.courses) {
		c := repo.db.courses[id]
		if filter.InstructorID != 0 && c.InstructorID != filter.InstructorID {
			continue
		}
		courses = append(courses, repo.withInstructor(c))
	}
	return courses, nil
}

func (repo *courseRepository) GetCourseByID(_ context.Context, id int) (course.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if c, ok := repo.db.courses[id]; ok {
		return repo.withInstructor(c), nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) UpdateCourse(_ context.Context, c course.Course) (course.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	old, ok := repo.db.courses[c.ID]
	if !ok {
		return course.Course{}, course.ErrNotFound
	}
	c.CreatedAt = old.CreatedAt
	repo.db.courses[c.ID] = c
	return repo.withInstructor(c), nil
}

func (repo *courseRepository) DeleteCourse(_ context.Context, id int) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.courses[id]; !ok {
		return course.ErrNotFound
	}
	repo.db.deleteCourses(id)
	return nil
}
