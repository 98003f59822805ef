package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	echoapi "github.com/bizdesk/backoffice/apps/api/echo"
	"github.com/bizdesk/backoffice/core"
	"github.com/bizdesk/backoffice/core/billing"
	"github.com/bizdesk/backoffice/core/catalog"
	emailsvc "github.com/bizdesk/backoffice/services/email"
	exportsvc "github.com/bizdesk/backoffice/services/export"
	logsvc "github.com/bizdesk/backoffice/services/logger"
	"github.com/bizdesk/backoffice/storage/database"
	inmemdb "github.com/bizdesk/backoffice/storage/database/inmem"
	sqlxrepos "github.com/bizdesk/backoffice/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	var logger core.Logger
	if conf.RollbarToken != "" {
		logger = logsvc.NewRollbarLogger(std, conf)
	} else {
		logger = logsvc.NewStdLogger(std)
	}

	// set up repositories
	catRepo, invRepo, dbClose, err := setUpRepos(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer dbClose()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	export := exportsvc.NewAdapter(conf)
	catSvc := catalog.NewService(catRepo)
	billSvc, err := billing.NewService(conf, invRepo, catSvc, mailSvc, export)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up billing service: %v", err), err)
	}

	// =========================================================================
	// Start API Service

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:       conf,
			Logger:     logger,
			CatalogSvc: catSvc,
			BillingSvc: billSvc,
			Export:     export,
		},
	)

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
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
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

func setUpRepos(conf *core.Config) (catalog.Repository, billing.Repository, func(), error) {
	if conf.Database.Engine == core.DBEngineInmem {
		db, err := inmemdb.Open()
		if err != nil {
			return nil, nil, nil, err
		}
		return inmemdb.NewCatalogRepository(db), inmemdb.NewInvoiceRepository(db), func() {}, nil
	}

	db, err := setUpDB(conf)
	if err != nil {
		return nil, nil, nil, err
	}
	sdb := sqlxrepos.Wrap(db)
	closeFn := func() { _ = db.Close() }
	return sqlxrepos.NewCatalogRepository(sdb), sqlxrepos.NewInvoiceRepository(sdb), closeFn, nil
}

func setUpDB(conf *core.Config) (*sql.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
