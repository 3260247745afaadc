package stats

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/policy"
)

type Stats struct {
	TotalUsers       int `json:"total_users" db:"total_users"`
	TotalAdmins      int `json:"total_admins" db:"total_admins"`
	TotalTeachers    int `json:"total_teachers" db:"total_teachers"`
	TotalStudents    int `json:"total_students" db:"total_students"`
	TotalCourses     int `json:"total_courses" db:"total_courses"`
	TotalEnrollments int `json:"total_enrollments" db:"total_enrollments"`
}

type (
	Repository interface {
		// GetStats computes every count in a single pass.
		GetStats(ctx context.Context) (Stats, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the platform-wide counts. Admin only.
func (svc *Service) Get(ctx context.Context, actor core.Actor) (Stats, error) {
	if err := policy.AdminOnly(actor); err != nil {
		return Stats{}, err
	}
	st, err := svc.repo.GetStats(ctx)
	if err != nil {
		return Stats{}, errors.Wrap(err, "computing stats")
	}
	return st, nil
}
