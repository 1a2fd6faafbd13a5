package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	echoapi "github.com/kingsolomonjunior/admissions/apps/api/echo"
	"github.com/kingsolomonjunior/admissions/core"
	"github.com/kingsolomonjunior/admissions/core/enrollment"
	"github.com/kingsolomonjunior/admissions/core/notification"
	emailsvc "github.com/kingsolomonjunior/admissions/services/email"
	exportsvc "github.com/kingsolomonjunior/admissions/services/export"
	logsvc "github.com/kingsolomonjunior/admissions/services/logger"
	smssvc "github.com/kingsolomonjunior/admissions/services/sms"
	inmemdb "github.com/kingsolomonjunior/admissions/storage/database/inmem"
	sqlxrepos "github.com/kingsolomonjunior/admissions/storage/database/sqlx"
	redisdb "github.com/kingsolomonjunior/admissions/storage/redis"
)

const shutdownTimeout = 20 * time.Second

func main() {
	// =========================================================================
	// Set up Dependencies

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		core.Conf,
	)
	logger.Enable(!core.Conf.Debug)

	// set up storage
	appRepo, notifLog, closeStorage, err := setUpStorage()
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up storage: %v", err), err)
	}
	defer closeStorage()

	// set up transports
	var mailSvc core.EmailService
	var smsSvc core.SMSService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
		smsSvc = smssvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
		smsSvc, err = smssvc.NewSNSService(context.Background(), logger)
		if err != nil {
			logger.Fatal(fmt.Sprintf("setting up sns: %v", err), err)
		}
	}

	notifSvc := notification.NewService(notifLog, mailSvc, smsSvc)
	enrollSvc := enrollment.NewService(appRepo, notifSvc, logger)
	expSvc := exportsvc.NewService(logger)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", core.Conf.Build))
	defer logger.Info("Application stopped")

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(&echoapi.Options{
		Addr:      core.Conf.Server.Addr,
		Logger:    logger,
		EnrollSvc: enrollSvc,
		NotifSvc:  notifSvc,
		ExportSvc: expSvc,
	})

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

// setUpStorage picks the backing stores from configuration: postgres when a
// DSN is set, otherwise the JSON snapshot store; the notification logs move
// to Redis when an address is configured.
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

	if addr := core.Conf.Redis.Addr; addr != "" {
		client, err := redisdb.Open(addr)
		if err != nil {
			return nil, nil, noop, err
		}
		return inmemdb.NewApplicationRepository(db), redisdb.NewNotificationLog(client), func() { _ = client.Close() }, nil
	}
	return inmemdb.NewApplicationRepository(db), inmemdb.NewNotificationLog(db), noop, nil
}
