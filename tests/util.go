package testutil

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/gosimple/slug"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/category"
	"github.com/trezcool/lms/core/content"
	"github.com/trezcool/lms/core/course"
	"github.com/trezcool/lms/core/enrollment"
	"github.com/trezcool/lms/core/user"
	"github.com/trezcool/lms/services/logger"
)

// NewConfig returns the configuration used by tests: in-memory storage, no request logs.
func NewConfig() *core.Config {
	conf := core.NewConfig()
	conf.TestMode = true
	conf.Database.Engine = "dummy"
	conf.Server.DisableReqLogs = true
	return conf
}

// NewLogger returns a logger that never reports to rollbar.
func NewLogger(conf *core.Config) core.Logger {
	l := logsvc.NewRollbarLogger(log.New(os.Stderr, "TEST : ", log.LstdFlags|log.Lshortfile), conf)
	l.Enable(false)
	return l
}

func CreateUser(t *testing.T, repo user.Repository, name, uname string, role core.Role, isActive bool) user.User {
	now := time.Now().UTC()
	usr, err := repo.CreateUser(context.Background(), user.User{
		Name:      name,
		Username:  uname,
		Email:     uname + "@test.cd",
		Role:      string(role),
		IsActive:  isActive,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateCategory(t *testing.T, repo category.Repository, name string) category.Category {
	now := time.Now().UTC()
	cat, err := repo.CreateCategory(context.Background(), category.Category{
		Name:      name,
		Slug:      slug.Make(name),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateCategory() failed: %v", err)
	}
	return cat
}

func CreateCourse(t *testing.T, repo course.Repository, title string, categoryID, instructorID int) course.Course {
	now := time.Now().UTC()
	c, err := repo.CreateCourse(context.Background(), course.Course{
		Title:        title,
		Price:        10,
		Duration:     5,
		CategoryID:   categoryID,
		InstructorID: instructorID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return c
}

func CreateLesson(t *testing.T, repo content.Repository, title string, courseID, position int) content.Lesson {
	now := time.Now().UTC()
	l, err := repo.CreateLesson(context.Background(), content.Lesson{
		CourseID:  courseID,
		Title:     title,
		Position:  position,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateLesson() failed: %v", err)
	}
	return l
}

func CreateEnrollment(t *testing.T, repo enrollment.Repository, studentID, courseID int, isActive bool) enrollment.Enrollment {
	e, err := repo.CreateEnrollment(context.Background(), enrollment.Enrollment{
		StudentID:  studentID,
		CourseID:   courseID,
		IsActive:   isActive,
		EnrolledAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateEnrollment() failed: %v", err)
	}
	return e
}
