package gormdb

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/trezcool/lms/core/enrollment"
)

type enrollmentRepository struct {
	db *gorm.DB
}

var _ enrollment.Repository = (*enrollmentRepository)(nil) // interface compliance check

func NewEnrollmentRepository(db *gorm.DB) enrollment.Repository {
	return &enrollmentRepository{db: db}
}

func enrollmentFromRow(row enrollmentRow) enrollment.Enrollment {
	return enrollment.Enrollment{
		ID:         row.ID,
		StudentID:  row.StudentID,
		CourseID:   row.CourseID,
		IsActive:   row.IsActive,
		EnrolledAt: row.EnrolledAt.UTC(),
	}
}

// CreateEnrollment relies on the (student_id, course_id) unique index;
// the existence check only spares a failed insert in the common case.
func (repo enrollmentRepository) CreateEnrollment(ctx context.Context, e enrollment.Enrollment) (enrollment.Enrollment, error) {
	row := enrollmentRow{
		StudentID:  e.StudentID,
		CourseID:   e.CourseID,
		IsActive:   e.IsActive,
		EnrolledAt: e.EnrolledAt.UTC(),
	}

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&enrollmentRow{}).
			Where("student_id = ? AND course_id = ?", row.StudentID, row.CourseID).
			Count(&count).Error
		if err != nil {
			return errors.Wrap(err, "checking enrollment")
		}
		if count > 0 {
			return enrollment.ErrAlreadyEnrolled
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return enrollment.Enrollment{}, enrollment.ErrAlreadyEnrolled
		}
		if err == enrollment.ErrAlreadyEnrolled {
			return enrollment.Enrollment{}, err
		}
		return enrollment.Enrollment{}, errors.Wrap(err, "creating enrollment")
	}
	return enrollmentFromRow(row), nil
}

func (repo enrollmentRepository) QueryEnrollments(ctx context.Context, filter enrollment.QueryFilter) ([]enrollment.Enrollment, error) {
	q := repo.db.WithContext(ctx).Model(&enrollmentRow{}).Select("enrollments.*").Order("enrollments.id")
	if filter.StudentID != 0 {
		q = q.Where("enrollments.student_id = ?", filter.StudentID)
	}
	if filter.CourseID != 0 {
		q = q.Where("enrollments.course_id = ?", filter.CourseID)
	}
	if filter.InstructorID != 0 {
		q = q.Joins("JOIN courses ON courses.id = enrollments.course_id").
			Where("courses.instructor_id = ?", filter.InstructorID)
	}

	var rows []enrollmentRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "querying enrollments")
	}
	enrollments := make([]enrollment.Enrollment, 0, len(rows))
	for _, row := range rows {
		enrollments = append(enrollments, enrollmentFromRow(row))
	}
	return enrollments, nil
}

func (repo enrollmentRepository) IsActivelyEnrolled(ctx context.Context, studentID, courseID int) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&enrollmentRow{}).
		Where("student_id = ? AND course_id = ? AND is_active = ?", studentID, courseID, true).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "checking enrollment")
	}
	return count > 0, nil
}
