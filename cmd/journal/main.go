package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/dailyjournal/internal/client/cli"
	"github.com/dmitrijs2005/dailyjournal/internal/client/client"
	"github.com/dmitrijs2005/dailyjournal/internal/client/config"
	"github.com/dmitrijs2005/dailyjournal/internal/client/services"
	"github.com/dmitrijs2005/dailyjournal/internal/client/viewstate"
	"github.com/dmitrijs2005/dailyjournal/internal/flagx"
	"github.com/dmitrijs2005/dailyjournal/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		stop()
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, args []string) error {
	cfg, err := config.LoadConfig(args)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogFormat, cfg.LogLevel, os.Stderr)
	if err != nil {
		return err
	}

	repos, err := client.InitDatabase(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer repos.Close()

	store, err := client.NewStore(ctx, client.StoreOptions{
		Backend:                 cfg.RemoteBackend,
		Root:                    cfg.RemoteRoot,
		FirebaseCredentialsFile: cfg.FirebaseCredentialsFile,
		FirebaseProjectID:       cfg.FirebaseProjectID,
		FirebaseDatabaseURL:     cfg.FirebaseDatabaseURL,
		CouchURL:                cfg.CouchDBURL,
		CouchDB:                 cfg.CouchDBName,
		RedisAddr:               cfg.RedisAddr,
		RedisPassword:           cfg.RedisPassword,
		RedisDB:                 cfg.RedisDB,
	})
	if err != nil {
		// The journal stays usable offline; only mirroring is disabled.
		logger.Warn(ctx, "remote mirror disabled", "backend", cfg.RemoteBackend, "error", err)
	}

	deps := cli.Deps{
		PushLog:        repos.PushLog,
		Logger:         logger,
		SyncSchedule:   cfg.SyncSchedule,
		CommandTimeout: cfg.CommandTimeout,
		Exporter: services.NewExportService(repos.Entry, services.S3Options{
			Endpoint:  cfg.ExportEndpoint,
			Region:    cfg.ExportRegion,
			Bucket:    cfg.ExportBucket,
			AccessKey: cfg.ExportAccessKey,
			SecretKey: cfg.ExportSecretKey,
		}, logger),
	}

	holderOpts := []viewstate.Option{viewstate.WithLogger(logger), viewstate.WithPushLog(repos.PushLog)}
	if store != nil {
		mirror := client.NewMirror(store, client.WithMirrorLogger(logger))
		deps.Mirror = mirror
		deps.Syncer = services.NewSyncService(mirror, repos.Entry, repos.PushLog, logger)
		holderOpts = append(holderOpts, viewstate.WithMirror(mirror))
	}
	deps.Holder = viewstate.NewHolder(repos.Entry, holderOpts...)

	app := cli.NewApp(deps, os.Stdin, os.Stdout)
	defer app.Close()

	root := cli.NewRootCommand(app)
	root.SetArgs(flagx.ExcludeArgs(args, config.OwnedFlags))
	return root.ExecuteContext(ctx)
}
