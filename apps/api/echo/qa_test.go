package echoapi

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/content"
	"github.com/trezcool/lms/core/policy"
	"github.com/trezcool/lms/core/qa"
	"github.com/trezcool/lms/tests"
)

func Test_questionApi(t *testing.T) {
	resetDB()

	admin := testutil.CreateUser(t, usrRepo, "Admin", "admin", core.RoleAdmin, true)
	alice := testutil.CreateUser(t, usrRepo, "Alice", "alice", core.RoleTeacher, true)
	bob := testutil.CreateUser(t, usrRepo, "Bob", "bob", core.RoleTeacher, true)
	hero := testutil.CreateUser(t, usrRepo, "Hero", "hero", core.RoleStudent, true)
	lapsed := testutil.CreateUser(t, usrRepo, "Lapsed", "lapsed", core.RoleStudent, true)
	prog := testutil.CreateCategory(t, categoryRepo, "Programming")
	goCourse := testutil.CreateCourse(t, courseRepo, "Go 101", prog.ID, alice.ID)
	lesson := testutil.CreateLesson(t, contentRepo, "Hello", goCourse.ID, 1)
	testutil.CreateEnrollment(t, enrollmentRepo, lapsed.ID, goCourse.ID, false)
	heroToken := getToken(t, hero)
	body := marchallObj(t, map[string]interface{}{"lesson_id": lesson.ID, "text": "Why is the sky blue?"})

	tests := []httpTest{
		{
			name: "validation", method: http.MethodPost, path: "/api/questions", body: []byte(`{"text": "  "}`), token: heroToken,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"lesson_id": "this field is required", "text": "this field is required"}),
		},
		{
			name: "unknown lesson", method: http.MethodPost, path: "/api/questions", body: []byte(`{"lesson_id": 999999, "text": "?"}`),
			token: heroToken, wantCode: http.StatusNotFound, wantData: marchallObj(t, msg(content.ErrLessonNotFound.Error())),
		},
		{
			name: "not enrolled", method: http.MethodPost, path: "/api/questions", body: body, token: heroToken,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, msg(policy.MsgPostQuestion)),
		},
		{
			name: "inactive enrollment", method: http.MethodPost, path: "/api/questions", body: body, token: getToken(t, lapsed),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, msg(policy.MsgPostQuestion)),
		},
		{
			name: "invalid lesson_id", path: "/api/questions?lesson_id=-3", token: heroToken, wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"lesson_id": errInvalidID.Error()}),
		},
	}
	runHTTPTests(t, tests)

	var asked qa.Question
	t.Run("enrolled student asks", func(t *testing.T) {
		mailer.Reset()
		testutil.CreateEnrollment(t, enrollmentRepo, hero.ID, goCourse.ID, true)

		code := doRequest(t, http.MethodPost, "/api/questions", heroToken, body, &asked)
		require.Equal(t, http.StatusCreated, code)
		assert.NotZero(t, asked.ID)
		assert.Equal(t, lesson.ID, asked.LessonID)
		assert.Equal(t, hero.ID, asked.UserID)
		assert.Equal(t, "Why is the sky blue?", asked.Text)

		sent := mailer.SentMessages()
		require.Len(t, sent, 1)
		assert.Equal(t, alice.Email, sent[0].To[0].Address)
		assert.Contains(t, sent[0].TextContent, "Why is the sky blue?")
	})

	t.Run("instructor answers without notifying self", func(t *testing.T) {
		mailer.Reset()
		code := doRequest(t, http.MethodPost, "/api/questions", getToken(t, alice),
			marchallObj(t, map[string]interface{}{"lesson_id": lesson.ID, "text": "Rayleigh scattering."}), nil)

		require.Equal(t, http.StatusCreated, code)
		assert.Empty(t, mailer.SentMessages())
	})

	t.Run("non-students always post", func(t *testing.T) {
		code := doRequest(t, http.MethodPost, "/api/questions", getToken(t, bob), body, nil)
		assert.Equal(t, http.StatusCreated, code)
		code = doRequest(t, http.MethodPost, "/api/questions", getToken(t, admin), body, nil)
		assert.Equal(t, http.StatusCreated, code)
	})

	t.Run("listed by lesson", func(t *testing.T) {
		var questions []qa.Question
		code := doRequest(t, http.MethodGet, fmt.Sprintf("/api/questions?lesson_id=%d", lesson.ID), heroToken, nil, &questions)

		require.Equal(t, http.StatusOK, code)
		require.Len(t, questions, 4)
		assert.Equal(t, asked.ID, questions[0].ID)

		code = doRequest(t, http.MethodGet, "/api/questions?lesson_id=999999", heroToken, nil, &questions)
		require.Equal(t, http.StatusOK, code)
		assert.Empty(t, questions)
	})
}
