package dummydb

import (
	"context"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/stats"
)

type statsRepository struct {
	db *DB
}

var _ stats.Repository = (*statsRepository)(nil) // interface compliance check

func NewStatsRepository(db *DB) stats.Repository {
	return &statsRepository{db: db}
}

func (repo *statsRepository) GetStats(_ context.Context) (stats.Stats, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	st := stats.Stats{
		TotalUsers:       len(repo.db.users),
		TotalCourses:     len(repo.db.courses),
		TotalEnrollments: len(repo.db.enrollments),
	}
	for _, usr := range repo.db.users {
		switch core.Role(usr.Role) {
		case core.RoleAdmin:
			st.TotalAdmins++
		case core.RoleTeacher:
			st.TotalTeachers++
		case core.RoleStudent:
			st.TotalStudents++
		}
	}
	return st, nil
}
