package echoapi

import (
	"net/http"
	"testing"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/policy"
	"github.com/trezcool/lms/core/stats"
	"github.com/trezcool/lms/core/user"
	"github.com/trezcool/lms/tests"
)

func Test_adminApi(t *testing.T) {
	resetDB()

	admin := testutil.CreateUser(t, usrRepo, "Admin", "admin", core.RoleAdmin, true)
	alice := testutil.CreateUser(t, usrRepo, "Alice", "alice", core.RoleTeacher, true)
	bob := testutil.CreateUser(t, usrRepo, "Bob", "bob", core.RoleTeacher, true)
	hero := testutil.CreateUser(t, usrRepo, "Hero", "hero", core.RoleStudent, true)
	zero := testutil.CreateUser(t, usrRepo, "Zero", "zero", core.RoleStudent, true)
	prog := testutil.CreateCategory(t, categoryRepo, "Programming")
	goCourse := testutil.CreateCourse(t, courseRepo, "Go 101", prog.ID, alice.ID)
	testutil.CreateCourse(t, courseRepo, "Rust 101", prog.ID, bob.ID)
	testutil.CreateEnrollment(t, enrollmentRepo, hero.ID, goCourse.ID, true)
	testutil.CreateEnrollment(t, enrollmentRepo, zero.ID, goCourse.ID, true)
	adminToken := getToken(t, admin)
	denied := marchallObj(t, msg(policy.MsgAdminOnly))

	tests := []httpTest{
		{name: "instructors: teacher denied", path: "/api/instructors", token: getToken(t, alice), wantCode: http.StatusForbidden, wantData: denied},
		{name: "instructors: student denied", path: "/api/instructors", token: getToken(t, hero), wantCode: http.StatusForbidden, wantData: denied},
		{
			name: "instructors", path: "/api/instructors", token: adminToken,
			wantData: marchallList(t,
				user.Instructor{ID: alice.ID, Username: alice.Username, Email: alice.Email},
				user.Instructor{ID: bob.ID, Username: bob.Username, Email: bob.Email},
			),
		},
		{name: "stats: teacher denied", path: "/api/admin/stats", token: getToken(t, bob), wantCode: http.StatusForbidden, wantData: denied},
		{
			name: "stats", path: "/api/admin/stats", token: adminToken,
			wantData: marchallObj(t, stats.Stats{
				TotalUsers:       5,
				TotalAdmins:      1,
				TotalTeachers:    2,
				TotalStudents:    2,
				TotalCourses:     2,
				TotalEnrollments: 2,
			}),
		},
	}
	runHTTPTests(t, tests)
}
