package gormdb

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/stats"
)

const statsQuery = `
SELECT
	(SELECT COUNT(*) FROM users) AS total_users,
	(SELECT COUNT(*) FROM users WHERE role = ?) AS total_admins,
	(SELECT COUNT(*) FROM users WHERE role = ?) AS total_teachers,
	(SELECT COUNT(*) FROM users WHERE role = ?) AS total_students,
	(SELECT COUNT(*) FROM courses) AS total_courses,
	(SELECT COUNT(*) FROM enrollments) AS total_enrollments`

type statsRepository struct {
	db *sqlx.DB
}

var _ stats.Repository = (*statsRepository)(nil) // interface compliance check

// NewStatsRepository shares the gorm connection pool with sqlx.
func NewStatsRepository(db *gorm.DB) (stats.Repository, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "getting sql.DB")
	}
	return &statsRepository{db: sqlx.NewDb(sqlDB, db.Dialector.Name())}, nil
}

func (repo statsRepository) GetStats(ctx context.Context) (stats.Stats, error) {
	var st stats.Stats
	query := repo.db.Rebind(statsQuery)
	err := repo.db.GetContext(ctx, &st, query, core.RoleAdmin.String(), core.RoleTeacher.String(), core.RoleStudent.String())
	if err != nil {
		return stats.Stats{}, errors.Wrap(err, "computing stats")
	}
	return st, nil
}
