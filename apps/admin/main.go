package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/kingsolomonjunior/admissions/core"
	"github.com/kingsolomonjunior/admissions/core/enrollment"
	"github.com/kingsolomonjunior/admissions/core/notification"
	exportsvc "github.com/kingsolomonjunior/admissions/services/export"
	logsvc "github.com/kingsolomonjunior/admissions/services/logger"
	inmemdb "github.com/kingsolomonjunior/admissions/storage/database/inmem"
	sqlxrepos "github.com/kingsolomonjunior/admissions/storage/database/sqlx"
	redisdb "github.com/kingsolomonjunior/admissions/storage/redis"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	appRepo, notifLog, closeStorage, err := setUpStorage()
	errAndDie(err)
	defer closeStorage()

	rollbarLogger := logsvc.NewRollbarLogger(logger, core.Conf)
	rollbarLogger.Enable(false) // a CLI run never reports upstream

	// start CLI
	cli := commandLine{
		appRepo:   appRepo,
		notifLog:  notifLog,
		exportSvc: exportsvc.NewService(rollbarLogger),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func setUpStorage() (enrollment.Repository, notification.Log, func(), error) {
	noop := func() {}

	if dsn := core.Conf.Database.DSN; dsn != "" {
		db, err := sqlxrepos.Open(dsn)
		if err != nil {
			return nil, nil, noop, err
		}
		closeDB := func() { _ = db.Close() }

		if addr := core.Conf.Redis.Addr; addr != "" {
			client, err := redisdb.Open(addr)
			if err != nil {
				closeDB()
				return nil, nil, noop, err
			}
			return sqlxrepos.NewApplicationRepository(db), redisdb.NewNotificationLog(client), func() {
				_ = client.Close()
				closeDB()
			}, nil
		}
		return sqlxrepos.NewApplicationRepository(db), sqlxrepos.NewNotificationLog(db), closeDB, nil
	}

	db, err := inmemdb.Open(filepath.Join(core.Conf.WorkDir, "admissions.json"))
	if err != nil {
		return nil, nil, noop, err
	}
	return inmemdb.NewApplicationRepository(db), inmemdb.NewNotificationLog(db), noop, nil
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
