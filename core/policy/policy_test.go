package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/lms/core"
)

var (
	admin    = core.Actor{ID: 1, Username: "admin", Role: core.RoleAdmin}
	teacher  = core.Actor{ID: 2, Username: "teacher", Role: core.RoleTeacher}
	teacher2 = core.Actor{ID: 3, Username: "teacher2", Role: core.RoleTeacher}
	student  = core.Actor{ID: 4, Username: "student", Role: core.RoleStudent}
	nobody   = core.Actor{ID: 5, Username: "nobody", Role: core.Role("guest")}
)

func assertDenied(t *testing.T, err error, msg string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, core.IsPermissionError(err))
		assert.Equal(t, msg, err.Error())
	}
}

func TestCategoryPolicies(t *testing.T) {
	assert.NoError(t, CreateCategory(admin))
	assert.NoError(t, UpdateCategory(admin))
	assert.NoError(t, DeleteCategory(admin))

	for _, a := range []core.Actor{teacher, student, nobody} {
		assertDenied(t, CreateCategory(a), MsgCreateCategory)
		assertDenied(t, UpdateCategory(a), MsgUpdateCategory)
		assertDenied(t, DeleteCategory(a), MsgDeleteCategory)
	}
}

func TestCourseListScope(t *testing.T) {
	tests := []struct {
		actor   core.Actor
		want    CourseScope
		wantAll bool
		wantErr bool
	}{
		{actor: admin, want: CourseScope{}, wantAll: true},
		{actor: teacher, want: CourseScope{InstructorID: teacher.ID}},
		{actor: student, want: CourseScope{}, wantAll: true},
		{actor: nobody, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.actor.Username, func(t *testing.T) {
			got, err := CourseListScope(tc.actor)
			if tc.wantErr {
				assertDenied(t, err, MsgUnknownRole)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantAll, got.All())
		})
	}
}

func TestCoursePolicies(t *testing.T) {
	owner := teacher.ID

	assert.NoError(t, ViewCourse(admin, owner))
	assert.NoError(t, ViewCourse(teacher, owner))
	assertDenied(t, ViewCourse(teacher2, owner), MsgViewCourse)
	assertDenied(t, ViewCourse(student, owner), MsgViewCourse)

	assert.NoError(t, CreateCourse(admin))
	assert.NoError(t, CreateCourse(teacher))
	assertDenied(t, CreateCourse(student), MsgCreateCourse)

	assert.NoError(t, UpdateCourse(admin, owner))
	assert.NoError(t, UpdateCourse(teacher, owner))
	assertDenied(t, UpdateCourse(teacher2, owner), MsgUpdateCourse)
	assertDenied(t, UpdateCourse(student, owner), MsgUpdateCourse)

	assert.NoError(t, DeleteCourse(admin, owner))
	assert.NoError(t, DeleteCourse(teacher, owner))
	assertDenied(t, DeleteCourse(teacher2, owner), MsgDeleteCourse)

	// a student who somehow owns a course still cannot mutate it
	assertDenied(t, UpdateCourse(student, student.ID), MsgUpdateCourse)
}

func TestContentPolicies(t *testing.T) {
	assert.NoError(t, CreateLesson(teacher))
	assertDenied(t, CreateLesson(admin), MsgCreateLesson)
	assertDenied(t, CreateLesson(student), MsgCreateLesson)
	assert.NoError(t, OwnLessonCourse(teacher, teacher.ID))
	assertDenied(t, OwnLessonCourse(teacher2, teacher.ID), MsgOwnLessonCourse)

	assert.NoError(t, CreateMaterial(teacher))
	assertDenied(t, CreateMaterial(admin), MsgCreateMaterial)
	assert.NoError(t, OwnMaterialCourse(teacher, teacher.ID))
	assertDenied(t, OwnMaterialCourse(teacher2, teacher.ID), MsgOwnMaterialCourse)
}

func TestEnrollmentPolicies(t *testing.T) {
	scope, err := EnrollmentListScope(admin)
	assert.NoError(t, err)
	assert.True(t, scope.All())

	scope, err = EnrollmentListScope(teacher)
	assert.NoError(t, err)
	assert.Equal(t, EnrollmentScope{InstructorID: teacher.ID}, scope)

	scope, err = EnrollmentListScope(student)
	assert.NoError(t, err)
	assert.Equal(t, EnrollmentScope{StudentID: student.ID}, scope)

	_, err = EnrollmentListScope(nobody)
	assertDenied(t, err, MsgUnknownRole)

	assert.NoError(t, CreateEnrollment(student))
	assertDenied(t, CreateEnrollment(teacher), MsgCreateEnrollment)
	assertDenied(t, CreateEnrollment(admin), MsgCreateEnrollment)
}

func TestPostQuestion(t *testing.T) {
	assert.NoError(t, PostQuestion(admin, false))
	assert.NoError(t, PostQuestion(teacher, false))
	assert.NoError(t, PostQuestion(student, true))
	assertDenied(t, PostQuestion(student, false), MsgPostQuestion)
}

func TestAdminOnly(t *testing.T) {
	assert.NoError(t, AdminOnly(admin))
	assertDenied(t, AdminOnly(teacher), MsgAdminOnly)
	assertDenied(t, AdminOnly(student), MsgAdminOnly)
	assert.NoError(t, Active(student))
	assertDenied(t, Active(nobody), MsgUnknownRole)
}
