package dummydb

import (
	"context"

	"github.com/trezcool/lms/core/enrollment"
)

type enrollmentRepository struct {
	db *DB
}

var _ enrollment.Repository = (*enrollmentRepository)(nil) // interface compliance check

func NewEnrollmentRepository(db *DB) enrollment.Repository {
	return &enrollmentRepository{db: db}
}

// CreateEnrollment checks and inserts under the same write lock.
func (repo *enrollmentRepository) CreateEnrollment(_ context.Context, e enrollment.Enrollment) (enrollment.Enrollment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, existing := range repo.db.enrollments {
		if existing.StudentID == e.StudentID && existing.CourseID == e.CourseID {
			return enrollment.Enrollment{}, enrollment.ErrAlreadyEnrolled
		}
	}
	e.ID = repo.db.nextPK("enrollments")
	repo.db.enrollments[e.ID] = e
	return e, nil
}

func (repo *enrollmentRepository) QueryEnrollments(_ context.Context, filter enrollment.QueryFilter) ([]enrollment.Enrollment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	enrollments := make([]enrollment.Enrollment, 0)
	for _, id := range sortedKeys(repo.db.enrollments) {
		e := repo.db.enrollments[id]
		if filter.StudentID != 0 && e.StudentID != filter.StudentID {
			continue
		}
		if filter.CourseID != 0 && e.CourseID != filter.CourseID {
			continue
		}
		if filter.InstructorID != 0 && repo.db.courses[e.CourseID].InstructorID != filter.InstructorID {
			continue
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, nil
}

func (repo *enrollmentRepository) IsActivelyEnrolled(_ context.Context, studentID, courseID int) (bool, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, e := range repo.db.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID && e.IsActive {
			return true, nil
		}
	}
	return false, nil
}
