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
		log.Println("creating transfers table...")
		if err := mghelper.CreateSchema(ctx, db, &transferstore.TransferDao{}); err != nil {
			return err
		}
		if err := mghelper.CreateModelIndexes(ctx, db, &transferstore.TransferDao{}, "user_id", "status", "created_at"); err != nil {
			return err
		}
		// One transfer per on-chain payment
		return mghelper.CreateModelUniqueIndexes(ctx, db, &transferstore.TransferDao{}, "tx_hash")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping transfers table...")
		return mghelper.DropTables(ctx, db, &transferstore.TransferDao{})
	})
}
