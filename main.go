package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"storefront/pkg/config"
	"storefront/pkg/domain/service"
	"storefront/pkg/infra/email"
	"storefront/pkg/infra/event"
	"storefront/pkg/infra/mysql"
	"storefront/pkg/transport"
)

const appID = "storefront"

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	app := &cli.App{
		Name:  appID,
		Usage: "digital products storefront backend",
		Commands: []*cli.Command{
			{
				Name:   "server",
				Usage:  "run the HTTP API",
				Action: runServer,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("terminated")
	}
}

func runServer(_ *cli.Context) error {
	cfg, err := config.Parse(appID)
	if err != nil {
		return err
	}

	db, err := mysql.Connect(cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := mysql.Migrate(db); err != nil {
		return err
	}

	dispatcher := event.NewLogDispatcher()
	products := mysql.NewProductRepository(db)
	orders := mysql.NewOrderRepository(db)

	handler := transport.NewHandler(
		service.NewCheckoutService(products, orders, email.NewConsoleSender(), dispatcher, nil),
		service.NewDownloadService(orders, products),
		service.NewCatalogService(products, dispatcher),
		mysql.Schema,
		db.Ping,
		cfg.AdminEmail,
		cfg.AdminPassword,
	)
	throttle := transport.NewThrottle(cfg.RateLimitWindow, cfg.RateLimitMaxRequests)

	srv := &http.Server{
		Addr:    cfg.ServeRESTAddress,
		Handler: transport.Router(handler, throttle),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("address", cfg.ServeRESTAddress).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
