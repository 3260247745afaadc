package dummydb

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/category"
	"github.com/trezcool/lms/core/content"
	"github.com/trezcool/lms/core/course"
	"github.com/trezcool/lms/core/enrollment"
	"github.com/trezcool/lms/core/qa"
	"github.com/trezcool/lms/core/user"
)

func TestEnrollmentUniquenessUnderConcurrency(t *testing.T) {
	db, _ := Open()
	repo := NewEnrollmentRepository(db)
	ctx := context.Background()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		dupes     int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.CreateEnrollment(ctx, enrollment.Enrollment{StudentID: 1, CourseID: 1, IsActive: true})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else if err == enrollment.ErrAlreadyEnrolled {
				dupes++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, 19, dupes)
}

func TestCategoryNameUniquenessUnderConcurrency(t *testing.T) {
	db, _ := Open()
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	names := []string{"Math", "MATH", "math", "mAtH"}
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		dupes     int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			_, err := repo.CreateCategory(ctx, category.Category{Name: name})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else if err == category.ErrNameExists {
				dupes++
			}
		}(names[i%len(names)])
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, 19, dupes)

	physics, err := repo.CreateCategory(ctx, category.Category{Name: "Physics"})
	require.NoError(t, err)
	physics.Name = "MATH"
	_, err = repo.UpdateCategory(ctx, physics)
	assert.Equal(t, category.ErrNameExists, err)

	// renaming a category to a different casing of its own name is allowed
	physics.Name = "PHYSICS"
	renamed, err := repo.UpdateCategory(ctx, physics)
	require.NoError(t, err)
	assert.Equal(t, "PHYSICS", renamed.Name)
}

func TestCascadingDeletes(t *testing.T) {
	db, _ := Open()
	ctx := context.Background()
	users := NewUserRepository(db)
	categories := NewCategoryRepository(db)
	courses := NewCourseRepository(db)
	contents := NewContentRepository(db)
	enrollments := NewEnrollmentRepository(db)
	questions := NewQuestionRepository(db)
	st := NewStatsRepository(db)

	teacher, err := users.CreateUser(ctx, user.User{Username: "teacher", Role: string(core.RoleTeacher), IsActive: true})
	require.NoError(t, err)
	student, err := users.CreateUser(ctx, user.User{Username: "student", Role: string(core.RoleStudent), IsActive: true})
	require.NoError(t, err)
	cat, err := categories.CreateCategory(ctx, category.Category{Name: "Math"})
	require.NoError(t, err)
	c, err := courses.CreateCourse(ctx, course.Course{Title: "Algebra", CategoryID: cat.ID, InstructorID: teacher.ID})
	require.NoError(t, err)
	assert.Equal(t, "teacher", c.InstructorUsername)

	l, err := contents.CreateLesson(ctx, content.Lesson{CourseID: c.ID, Title: "Vectors"})
	require.NoError(t, err)
	_, err = contents.CreateMaterial(ctx, content.Material{CourseID: c.ID, Title: "Slides"})
	require.NoError(t, err)
	_, err = enrollments.CreateEnrollment(ctx, enrollment.Enrollment{StudentID: student.ID, CourseID: c.ID, IsActive: true})
	require.NoError(t, err)
	_, err = questions.CreateQuestion(ctx, qa.Question{LessonID: l.ID, UserID: student.ID, Text: "Why?"})
	require.NoError(t, err)

	got, err := categories.GetCategoryByID(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.CoursesCount)

	s, err := st.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, s.TotalUsers)
	assert.Equal(t, 1, s.TotalTeachers)
	assert.Equal(t, 1, s.TotalStudents)
	assert.Equal(t, 1, s.TotalEnrollments)

	require.NoError(t, categories.DeleteCategory(ctx, cat.ID))
	_, err = courses.GetCourseByID(ctx, c.ID)
	assert.Equal(t, course.ErrNotFound, err)

	lessons, _ := contents.QueryLessons(ctx, content.QueryFilter{})
	materials, _ := contents.QueryMaterials(ctx, content.QueryFilter{})
	enrolled, _ := enrollments.QueryEnrollments(ctx, enrollment.QueryFilter{})
	posted, _ := questions.QueryQuestions(ctx, qa.QueryFilter{})
	assert.Empty(t, lessons)
	assert.Empty(t, materials)
	assert.Empty(t, enrolled)
	assert.Empty(t, posted)
}
