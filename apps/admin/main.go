package main

import (
	"log"
	"os"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/user"
	"github.com/trezcool/lms/storage/database"
	"github.com/trezcool/lms/storage/database/dummy"
	"github.com/trezcool/lms/storage/database/gormdb"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	conf := core.NewConfig()

	translator := core.NewTranslator()
	validate := core.NewValidate(translator)
	user.InitValidators(validate, translator)

	cli := commandLine{conf: conf}

	// set up DB
	if conf.Database.Engine == database.EngineDummy {
		db, _ := dummydb.Open()
		cli.usrSvc = user.NewService(dummydb.NewUserRepository(db), validate)
	} else {
		db, err := database.Open(conf)
		errAndDie(err)
		defer func() {
			if err := database.Close(db); err != nil {
				logger.Printf("closing database: %v", err)
			}
		}()
		cli.usrSvc = user.NewService(gormdb.NewUserRepository(db), validate)
		cli.migrate = func() error { return gormdb.Migrate(db) }
	}

	// start CLI
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
