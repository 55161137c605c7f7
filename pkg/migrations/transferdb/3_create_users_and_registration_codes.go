package transferdb

import (
	"context"
	"log"

	mghelper "github.com/chainsafe/usdt-payout-verifier/pkg/pgutil/migrations"
	"github.com/chainsafe/usdt-payout-verifier/pkg/userstore"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating users and registration_codes tables...")
		if err := mghelper.CreateSchema(ctx, db, &userstore.UserDao{}, &userstore.RegistrationCodeDao{}); err != nil {
			return err
		}
		if err := mghelper.CreateModelIndexes(ctx, db, &userstore.UserDao{}, "registration_code"); err != nil {
			return err
		}
		// Codes are stored normalized, so this also makes them case-insensitive
		return mghelper.CreateModelUniqueIndexes(ctx, db, &userstore.RegistrationCodeDao{}, "code")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping users and registration_codes tables...")
		return mghelper.DropTables(ctx, db, &userstore.UserDao{}, &userstore.RegistrationCodeDao{})
	})
}
