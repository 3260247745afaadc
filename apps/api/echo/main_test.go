package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/category"
	"github.com/trezcool/lms/core/content"
	"github.com/trezcool/lms/core/course"
	"github.com/trezcool/lms/core/enrollment"
	"github.com/trezcool/lms/core/qa"
	"github.com/trezcool/lms/core/stats"
	"github.com/trezcool/lms/core/user"
	"github.com/trezcool/lms/services/email"
	"github.com/trezcool/lms/storage/database/dummy"
	"github.com/trezcool/lms/tests"
)

var (
	conf       *core.Config
	testLogger core.Logger
	db         *dummydb.DB
	app        *Server
	mailer     *emailsvc.ConsoleServiceMock

	usrRepo        user.Repository
	categoryRepo   category.Repository
	courseRepo     course.Repository
	contentRepo    content.Repository
	enrollmentRepo enrollment.Repository

	errMissingToken = detail{Detail: "missing or malformed jwt"}
)

type testRepos struct {
	users       user.Repository
	categories  category.Repository
	courses     course.Repository
	contents    content.Repository
	enrollments enrollment.Repository
	questions   qa.Repository
	stats       stats.Repository
}

// newTestServer wires the services over the given repositories, the same way for every storage engine.
func newTestServer(logger core.Logger, mailer core.EmailService, r testRepos) *Server {
	translator := core.NewTranslator()
	validate := core.NewValidate(translator)
	user.InitValidators(validate, translator)

	return NewServer(conf, nil, &Deps{
		Logger:        logger,
		Translator:    translator,
		UserSvc:       user.NewService(r.users, validate),
		CategorySvc:   category.NewService(r.categories, validate),
		CourseSvc:     course.NewService(r.courses, r.categories, r.users, validate),
		ContentSvc:    content.NewService(r.contents, r.courses, validate),
		EnrollmentSvc: enrollment.NewService(r.enrollments, r.courses, r.users, mailer, logger, validate),
		QASvc:         qa.NewService(r.questions, r.contents, r.courses, r.enrollments, r.users, mailer, logger, validate),
		StatsSvc:      stats.NewService(r.stats),
	})
}

func TestMain(m *testing.M) {
	conf = testutil.NewConfig()
	testLogger = testutil.NewLogger(conf)
	core.ParseEmailTemplates(testLogger)

	// set up DB & repos
	db, _ = dummydb.Open()
	usrRepo = dummydb.NewUserRepository(db)
	categoryRepo = dummydb.NewCategoryRepository(db)
	courseRepo = dummydb.NewCourseRepository(db)
	contentRepo = dummydb.NewContentRepository(db)
	enrollmentRepo = dummydb.NewEnrollmentRepository(db)

	// set up server
	mailer = emailsvc.NewConsoleServiceMock(conf, testLogger)
	app = newTestServer(testLogger, mailer, testRepos{
		users:       usrRepo,
		categories:  categoryRepo,
		courses:     courseRepo,
		contents:    contentRepo,
		enrollments: enrollmentRepo,
		questions:   dummydb.NewQuestionRepository(db),
		stats:       dummydb.NewStatsRepository(db),
	})

	os.Exit(m.Run())
}

func resetDB() {
	db.Reset()
	mailer.Reset()
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func getToken(t *testing.T, usr user.User) string {
	token, err := GenerateToken(conf, GetUserClaims(conf, usr))
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	if objs == nil {
		objs = []interface{}{}
	}
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		if rec.Body.Len() > 0 {
			t.Errorf("failed! data = %v; want no data", rec.Body.String())
		}
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHTTPTests(t *testing.T, tests []httpTest) {
	for _, tt := range tests {
		if tt.method == "" {
			tt.method = http.MethodGet
		}
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

// doRequest performs a single request and decodes the JSON response into out, when given.
func doRequest(t *testing.T, method, path, token string, body []byte, out interface{}) int {
	return doRequestOn(t, app, method, path, token, body, out)
}

func doRequestOn(t *testing.T, srv *Server, method, path, token string, body []byte, out interface{}) int {
	req, rec := newAuthRequest(method, path, token, body)
	srv.ServeHTTP(rec, req)
	if out != nil && rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("json.Unmarshal(%s): %v", rec.Body.String(), err)
		}
	}
	return rec.Code
}

func msg(text string) detail { return detail{Detail: text} }
