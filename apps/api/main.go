package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	echoapi "github.com/trezcool/letscatchup/apps/api/echo"
	"github.com/trezcool/letscatchup/core"
	"github.com/trezcool/letscatchup/core/pin"
	"github.com/trezcool/letscatchup/core/school"
	appfs "github.com/trezcool/letscatchup/fs"
	emailsvc "github.com/trezcool/letscatchup/services/email"
	"github.com/trezcool/letscatchup/services/filestore"
	geosvc "github.com/trezcool/letscatchup/services/geocoder"
	logsvc "github.com/trezcool/letscatchup/services/logger"
	"github.com/trezcool/letscatchup/storage/database"
	sqlxrepos "github.com/trezcool/letscatchup/storage/database/sqlx"
)

const shutdownTimeout = 20 * time.Second

func main() {
	std := log.New(os.Stdout, core.Conf.AppName+" : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(std, core.Conf)
	logger.Enable(!(core.Conf.Debug || core.Conf.TestMode))

	// set up DB
	db, err := database.Open(core.Conf)
	errAndDie(logger, err)
	defer db.Close()

	// migrate automatically in DEV so a fresh checkout runs out of the box;
	// deployed environments migrate via the admin CLI
	if core.Conf.Debug {
		errAndDie(logger, database.Migrate(db))
	}

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}

	bundled, err := appfs.SchoolNames()
	errAndDie(logger, err)

	pinSvc := pin.NewService(sqlxrepos.NewPinRepository(db, core.Conf.Database.Engine))
	schoolSvc := school.NewService(sqlxrepos.NewSchoolRepository(db, core.Conf.Database.Engine), mailSvc, bundled)

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Addr:      core.Conf.Server.Addr(),
			PinSvc:    pinSvc,
			SchoolSvc: schoolSvc,
			Geocoder:  geosvc.NewNominatimClient(core.Conf),
			Files:     filestore.NewDiskStorage(core.Conf),
			Logger:    logger,
		},
	)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-shutdown
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			logger.Error("stopping server", err)
		}
	}()

	app.Start()
}

func errAndDie(logger core.Logger, err error) {
	if err != nil {
		logger.Fatal(err.Error())
	}
}
