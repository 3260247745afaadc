package echoapi

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/category"
	"github.com/trezcool/lms/core/policy"
	"github.com/trezcool/lms/tests"
)

func Test_categoryApi_query(t *testing.T) {
	resetDB()

	admin := testutil.CreateUser(t, usrRepo, "Admin", "admin", core.RoleAdmin, true)
	teacher := testutil.CreateUser(t, usrRepo, "Teacher", "teacher", core.RoleTeacher, true)
	student := testutil.CreateUser(t, usrRepo, "Hero", "hero", core.RoleStudent, true)
	prog := testutil.CreateCategory(t, categoryRepo, "Programming")
	music := testutil.CreateCategory(t, categoryRepo, "Music")
	testutil.CreateCourse(t, courseRepo, "Go 101", prog.ID, teacher.ID)
	testutil.CreateCourse(t, courseRepo, "Go 201", prog.ID, teacher.ID)
	prog.CoursesCount = 2

	tests := []httpTest{
		{name: "admin", path: "/api/categories", token: getToken(t, admin), wantData: marchallList(t, prog, music)},
		{name: "teacher", path: "/api/categories", token: getToken(t, teacher), wantData: marchallList(t, prog, music)},
		{name: "student", path: "/api/categories", token: getToken(t, student), wantData: marchallList(t, prog, music)},
	}
	runHTTPTests(t, tests)
}

func Test_categoryApi_create(t *testing.T) {
	resetDB()

	admin := testutil.CreateUser(t, usrRepo, "Admin", "admin", core.RoleAdmin, true)
	teacher := testutil.CreateUser(t, usrRepo, "Teacher", "teacher", core.RoleTeacher, true)
	testutil.CreateCategory(t, categoryRepo, "Music")
	adminToken := getToken(t, admin)

	tests := []httpTest{
		{
			name: "teacher denied", body: []byte(`{"name": "Art"}`), token: getToken(t, teacher),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, msg(policy.MsgCreateCategory)),
		},
		{
			name: "role checked before payload", body: []byte(`{}`), token: getToken(t, teacher),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, msg(policy.MsgCreateCategory)),
		},
		{
			name: "name required", body: []byte(`{"name": "   "}`), token: adminToken,
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"name": "this field is required"}),
		},
		{
			name: "name unique (case insensitive)", body: []byte(`{"name": "mUsIc"}`), token: adminToken,
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"name": category.ErrNameExists.Error()}),
		},
	}
	for i := range tests {
		tests[i].method = http.MethodPost
		tests[i].path = "/api/categories"
	}
	runHTTPTests(t, tests)

	t.Run("created", func(t *testing.T) {
		var cat category.Category
		code := doRequest(t, http.MethodPost, "/api/categories", adminToken,
			[]byte(`{"name": " Web Development ", "description": "All things web"}`), &cat)

		require.Equal(t, http.StatusCreated, code)
		assert.NotZero(t, cat.ID)
		assert.Equal(t, "Web Development", cat.Name)
		assert.Equal(t, "web-development", cat.Slug)
		assert.Equal(t, "All things web", cat.Description.String)
		assert.True(t, cat.IsActive)
		assert.Zero(t, cat.CoursesCount)
	})
}

func Test_categoryApi_update(t *testing.T) {
	resetDB()

	admin := testutil.CreateUser(t, usrRepo, "Admin", "admin", core.RoleAdmin, true)
	student := testutil.CreateUser(t, usrRepo, "Hero", "hero", core.RoleStudent, true)
	music := testutil.CreateCategory(t, categoryRepo, "Music")
	art := testutil.CreateCategory(t, categoryRepo, "Art")
	adminToken := getToken(t, admin)

	tests := []httpTest{
		{
			name: "student denied", body: marchallObj(t, map[string]interface{}{"id": music.ID, "name": "Songs"}),
			token: getToken(t, student), wantCode: http.StatusForbidden, wantData: marchallObj(t, msg(policy.MsgUpdateCategory)),
		},
		{
			name: "id required", body: []byte(`{"name": "Songs"}`), token: adminToken,
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, msg(category.ErrIDRequired.Error())),
		},
		{
			name: "not found", body: []byte(`{"id": 999999, "name": "Songs"}`), token: adminToken,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, msg(category.ErrNotFound.Error())),
		},
		{
			name: "blank name", body: []byte(fmt.Sprintf(`{"id": %d, "name": "  "}`, music.ID)), token: adminToken,
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"name": "this field cannot be blank"}),
		},
		{
			name: "name taken", body: []byte(fmt.Sprintf(`{"id": %d, "name": "ART"}`, music.ID)), token: adminToken,
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"name": category.ErrNameExists.Error()}),
		},
	}
	for i := range tests {
		tests[i].method = http.MethodPut
		tests[i].path = "/api/categories"
	}
	runHTTPTests(t, tests)

	t.Run("partial update", func(t *testing.T) {
		var cat category.Category
		code := doRequest(t, http.MethodPut, "/api/categories", adminToken,
			[]byte(fmt.Sprintf(`{"id": %d, "name": "Classical Music", "is_active": false}`, music.ID)), &cat)

		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, music.ID, cat.ID)
		assert.Equal(t, "Classical Music", cat.Name)
		assert.Equal(t, "classical-music", cat.Slug)
		assert.False(t, cat.IsActive)
	})

	t.Run("same name keeps working", func(t *testing.T) {
		code := doRequest(t, http.MethodPut, "/api/categories", adminToken,
			[]byte(fmt.Sprintf(`{"id": %d, "name": "Art"}`, art.ID)), nil)
		assert.Equal(t, http.StatusOK, code)
	})
}

func Test_categoryApi_destroy(t *testing.T) {
	resetDB()

	admin := testutil.CreateUser(t, usrRepo, "Admin", "admin", core.RoleAdmin, true)
	teacher := testutil.CreateUser(t, usrRepo, "Teacher", "teacher", core.RoleTeacher, true)
	music := testutil.CreateCategory(t, categoryRepo, "Music")
	c := testutil.CreateCourse(t, courseRepo, "Guitar", music.ID, teacher.ID)
	testutil.CreateLesson(t, contentRepo, "Chords", c.ID, 1)
	adminToken := getToken(t, admin)

	tests := []httpTest{
		{
			name: "teacher denied", body: marchallObj(t, map[string]int{"id": music.ID}), token: getToken(t, teacher),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, msg(policy.MsgDeleteCategory)),
		},
		{
			name: "id required", token: adminToken,
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, msg(category.ErrIDRequired.Error())),
		},
		{
			name: "not found", body: []byte(`{"id": 999999}`), token: adminToken,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, msg(category.ErrNotFound.Error())),
		},
		{name: "deleted", body: marchallObj(t, map[string]int{"id": music.ID}), token: adminToken, wantCode: http.StatusNoContent},
		{
			name: "already deleted", body: marchallObj(t, map[string]int{"id": music.ID}), token: adminToken,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, msg(category.ErrNotFound.Error())),
		},
	}
	for i := range tests {
		tests[i].method = http.MethodDelete
		tests[i].path = "/api/categories"
	}
	runHTTPTests(t, tests)

	t.Run("courses and lessons removed", func(t *testing.T) {
		var courses []interface{}
		code := doRequest(t, http.MethodGet, "/api/courses", adminToken, nil, &courses)
		require.Equal(t, http.StatusOK, code)
		assert.Empty(t, courses)

		var lessons []interface{}
		code = doRequest(t, http.MethodGet, "/api/lessons", adminToken, nil, &lessons)
		require.Equal(t, http.StatusOK, code)
		assert.Empty(t, lessons)
	})
}
