package dig_container

import (
	"fmt"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/lms/apps/api/echo"
	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/category"
	"github.com/trezcool/lms/core/content"
	"github.com/trezcool/lms/core/course"
	"github.com/trezcool/lms/core/enrollment"
	"github.com/trezcool/lms/core/qa"
	"github.com/trezcool/lms/core/stats"
	"github.com/trezcool/lms/core/user"
	emailsvc "github.com/trezcool/lms/services/email"
	logsvc "github.com/trezcool/lms/services/logger"
	"github.com/trezcool/lms/storage/database"
	dummydb "github.com/trezcool/lms/storage/database/dummy"
	"github.com/trezcool/lms/storage/database/gormdb"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

// DBCloser releases the storage backing the repositories.
type DBCloser func() error

// Repositories are provided together since they share one storage engine.
type Repositories struct {
	dig.Out

	Users       user.Repository
	Categories  category.Repository
	Courses     course.Repository
	Contents    content.Repository
	Enrollments enrollment.Repository
	Questions   qa.Repository
	Stats       stats.Repository
	Close       DBCloser
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

func newRepositories(conf *core.Config, loggerParam DBLoggerParam) Repositories {
	if conf.Database.Engine == database.EngineDummy {
		db, _ := dummydb.Open()
		return Repositories{
			Users:       dummydb.NewUserRepository(db),
			Categories:  dummydb.NewCategoryRepository(db),
			Courses:     dummydb.NewCourseRepository(db),
			Contents:    dummydb.NewContentRepository(db),
			Enrollments: dummydb.NewEnrollmentRepository(db),
			Questions:   dummydb.NewQuestionRepository(db),
			Stats:       dummydb.NewStatsRepository(db),
			Close:       func() error { return nil },
		}
	}

	setUp := func() (Repositories, error) {
		db, err := database.Open(conf)
		if err != nil {
			return Repositories{}, err
		}
		if conf.Database.AutoMigrate {
			if err = gormdb.Migrate(db); err != nil {
				return Repositories{}, err
			}
		}
		statsRepo, err := gormdb.NewStatsRepository(db)
		if err != nil {
			return Repositories{}, err
		}
		return Repositories{
			Users:       gormdb.NewUserRepository(db),
			Categories:  gormdb.NewCategoryRepository(db),
			Courses:     gormdb.NewCourseRepository(db),
			Contents:    gormdb.NewContentRepository(db),
			Enrollments: gormdb.NewEnrollmentRepository(db),
			Questions:   gormdb.NewQuestionRepository(db),
			Stats:       statsRepo,
			Close:       func() error { return database.Close(db) },
		}, nil
	}

	repos, err := setUp()
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	return repos
}

func newEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.Debug {
		return emailsvc.NewConsoleService(conf, logger)
	}
	return emailsvc.NewSendgridService(conf, logger)
}

func newValidate(translator ut.Translator) *validator.Validate {
	validate := core.NewValidate(translator)
	user.InitValidators(validate, translator)
	return validate
}

type serverParams struct {
	dig.In

	Conf          *core.Config
	Logger        core.Logger
	Translator    ut.Translator
	UserSvc       *user.Service
	CategorySvc   *category.Service
	CourseSvc     *course.Service
	ContentSvc    *content.Service
	EnrollmentSvc *enrollment.Service
	QASvc         *qa.Service
	StatsSvc      *stats.Service
}

func newServer(p serverParams) *echoapi.Server {
	return echoapi.NewServer(p.Conf, nil, &echoapi.Deps{
		Logger:        p.Logger,
		Translator:    p.Translator,
		UserSvc:       p.UserSvc,
		CategorySvc:   p.CategorySvc,
		CourseSvc:     p.CourseSvc,
		ContentSvc:    p.ContentSvc,
		EnrollmentSvc: p.EnrollmentSvc,
		QASvc:         p.QASvc,
		StatsSvc:      p.StatsSvc,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newRepositories))
	must(c.Provide(newEmailService))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newValidate))

	must(c.Provide(user.NewService))
	must(c.Provide(category.NewService))
	must(c.Provide(course.NewService))
	must(c.Provide(content.NewService))
	must(c.Provide(enrollment.NewService))
	must(c.Provide(qa.NewService))
	must(c.Provide(stats.NewService))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
