package transferdb

import (
	"context"
	"log"

	mghelper "github.com/chainsafe/usdt-payout-verifier/pkg/pgutil/migrations"
	"github.com/chainsafe/usdt-payout-verifier/pkg/transferstore"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating transfers network index...")
		return mghelper.CreateModelIndexes(ctx, db, &transferstore.TransferDao{}, "network")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping transfers network index...")
		return mghelper.DropModelIndexes(ctx, db, &transferstore.TransferDao{}, "network")
	})
}
