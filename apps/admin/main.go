package main

import (
	"log"
	"os"

	"github.com/trezcool/letscatchup/core"
	"github.com/trezcool/letscatchup/core/pin"
	"github.com/trezcool/letscatchup/core/school"
	appfs "github.com/trezcool/letscatchup/fs"
	emailsvc "github.com/trezcool/letscatchup/services/email"
	geosvc "github.com/trezcool/letscatchup/services/geocoder"
	"github.com/trezcool/letscatchup/storage/database"
	sqlxrepos "github.com/trezcool/letscatchup/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	// set up DB
	errAndDie(database.CreateIfNotExist(core.Conf))
	db, err := database.Open(core.Conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(db.Ping())

	bundled, err := appfs.SchoolNames()
	errAndDie(err)

	// start CLI
	cli := commandLine{
		db:        db,
		pinSvc:    pin.NewService(sqlxrepos.NewPinRepository(db, core.Conf.Database.Engine)),
		schoolSvc: school.NewService(sqlxrepos.NewSchoolRepository(db, core.Conf.Database.Engine), emailsvc.NewConsoleService(), bundled),
		resolver:  geosvc.NewNominatimClient(core.Conf),
	}
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
