package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"pizzastore/internal/account"
	"pizzastore/internal/auth"
	"pizzastore/internal/catalog"
	"pizzastore/internal/cli"
	"pizzastore/internal/config"
	"pizzastore/internal/db"
	"pizzastore/internal/events"
	"pizzastore/internal/logging"
	"pizzastore/internal/order"
	"pizzastore/repository"
)

func main() {
	strict := flag.Bool("strict", false, "require SESSION_SECRET instead of using the development default")
	rollback := flag.Bool("rollback-last", false, "revert the most recent schema migration and exit")
	flag.Parse()

	// Load configuration
	load := config.LoadWithDefaults
	if *strict {
		load = config.Load
	}
	cfg, err := load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	log.Debugf("Configuration loaded: %v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Open DB
	d, err := db.Open(ctx, cfg.Database.Driver, cfg.Database.DSN, cfg.Database.Migrate)
	if err != nil {
		log.WithError(err).Fatal("open db")
	}
	defer func() {
		fmt.Print("Disconnecting from database...")
		if err := d.Close(); err != nil {
			log.WithError(err).Warn("close db")
		}
		fmt.Println("Done\n\nBye !")
	}()
	log.WithFields(logrus.Fields{"dialect": d.Dialect.String(), "sqlite_build": db.BuildMode}).Info("connected")

	if *rollback {
		if err := db.RollbackLast(d); err != nil {
			log.WithError(err).Error("rollback migration")
		}
		return
	}
	if cfg.Database.Seed {
		if err := db.Seed(ctx, d); err != nil {
			log.WithError(err).Error("seed")
			return
		}
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.Events.AMQPURL != "" {
		p, err := events.DialAMQP(cfg.Events.AMQPURL, cfg.Events.Exchange, log)
		if err != nil {
			log.WithError(err).Warn("order events disabled")
		} else {
			defer p.Close()
			publisher = p
		}
	}

	exec := repository.NewExecutor(d, cfg.Database.Timeout)
	users := repository.NewUserRepository(exec)
	items := repository.NewItemRepository(exec)
	stores := repository.NewStoreRepository(exec)
	orders := repository.NewOrderRepository(exec)

	app := &cli.App{
		P:        cli.NewPrompter(os.Stdin, os.Stdout),
		Auth:     &auth.Authenticator{Users: users, Secret: cfg.Session.Secret, TTL: cfg.Session.TTL},
		Accounts: &account.Service{Users: users, HashPasswords: cfg.Session.HashPasswords, Log: log},
		Catalog:  &catalog.Service{Items: items, Stores: stores},
		Orders: &order.Service{
			Items:  items,
			Stores: stores,
			Orders: orders,
			Users:  users,
			Events: publisher,
			Log:    log,
		},
		Log: log,
	}
	// Run in the background so a signal ends the process even while the
	// session is blocked reading stdin.
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()
	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.WithError(err).Error("session ended")
		}
	case <-ctx.Done():
		fmt.Println()
	}
}
