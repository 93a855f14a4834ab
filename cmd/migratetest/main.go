package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/myrjola/jurassictravel/internal/errors"
	"github.com/myrjola/jurassictravel/internal/sqlite"
	"github.com/myrjola/jurassictravel/internal/testhelpers"
)

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	var (
		err       error
		start     = time.Now()
		ctx       context.Context
		sqliteURL string
		ok        bool
		cancel    context.CancelFunc
	)
	ctx = context.Background()
	ctx, cancel = context.WithTimeout(ctx, 5*time.Second) //nolint:mnd // 5 seconds

	if sqliteURL, ok = os.LookupEnv("JURASSIC_SQLITE_URL"); !ok {
		logger.LogAttrs(ctx, slog.LevelError, "JURASSIC_SQLITE_URL not set")
		os.Exit(1)
	}

	var db *sqlite.Database
	if db, err = sqlite.NewDatabase(ctx, sqliteURL, logger); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating database",
			slog.String("url", sqliteURL), errors.SlogError(err))
		os.Exit(1)
	}

	// The ledger may legitimately be empty, so only check that the migrated table is queryable.
	var count int
	if err = db.ReadWrite.GetContext(ctx, &count, `SELECT COUNT(*) FROM bookings`); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error fetching booking count", errors.SlogError(err))
		os.Exit(1)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "booking count", slog.Int("count", count))

	if err = db.Close(); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error closing database", errors.SlogError(err))
		os.Exit(1)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "Migration test successful 🙌", slog.Duration("duration", time.Since(start)))
	cancel()
	os.Exit(0)
}
