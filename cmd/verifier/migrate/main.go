package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/chainsafe/usdt-payout-verifier/pkg/config"
	"github.com/chainsafe/usdt-payout-verifier/pkg/migrations/transferdb"
	"github.com/chainsafe/usdt-payout-verifier/pkg/pgutil"
	mghelper "github.com/chainsafe/usdt-payout-verifier/pkg/pgutil/migrations"

	"github.com/uptrace/bun/migrate"
)

func main() {
	cfgPath := flag.String("config", "config.example.yaml", "Path to configuration file")
	flag.Usage = mghelper.Usage
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("error reading configuration file: %s", err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.DialTimeout+10*time.Second)
	defer cancel()

	db, err := pgutil.ConnectDB(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("error connecting to database: %s", err.Error())
	}
	defer db.Close()

	log.Printf("Running migrations for transfer database (%s)...\n", cfg.Database.Database)

	migrator := migrate.NewMigrator(db, transferdb.Migrations)

	// Run migrations with args
	err = mghelper.RunMigrations(migrator, flag.Args()...)
	if err != nil {
		mghelper.Exitf(err.Error())
	}
}
