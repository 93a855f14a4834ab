package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/myrjola/jurassictravel/internal/errors"
	"github.com/myrjola/jurassictravel/internal/logging"
	"github.com/myrjola/jurassictravel/internal/repositories"
	"github.com/myrjola/jurassictravel/internal/sqlite"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "ledger",
	Title: "Booking ledger",
}

// openRepository connects to the database named by the --sqlite-url flag. Call the returned function to close it.
func openRepository(cmd *cobra.Command) (*repositories.BookingRepository, func(), error) {
	url, err := cmd.Flags().GetString("sqlite-url")
	if err != nil {
		return nil, nil, errors.Wrap(err, "read sqlite-url flag")
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, nil, errors.Wrap(err, "read verbose flag")
	}
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		AddSource:   false,
		Level:       level,
		ReplaceAttr: nil,
	})))

	ctx, cancel := context.WithCancel(cmd.Context())
	db, err := sqlite.NewDatabase(ctx, url, logger)
	if err != nil {
		cancel()
		return nil, nil, errors.Wrap(err, "open database", slog.String("url", url))
	}
	closeDB := func() {
		cancel()
		if closeErr := db.Close(); closeErr != nil {
			logger.LogAttrs(ctx, slog.LevelError, "failed to close database", errors.SlogError(closeErr))
		}
	}
	return repositories.NewBookingRepository(db, logger), closeDB, nil
}

func defaultSqliteURL() string {
	if url, ok := os.LookupEnv("JURASSIC_SQLITE_URL"); ok {
		return url
	}
	return "./jurassictravel.sqlite3"
}

// NewBookings returns the bookings command with its list and cancel subcommands.
func NewBookings() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bookings",
		GroupID: Group.ID,
		Short:   "Inspect and edit the booking ledger",
	}
	cmd.PersistentFlags().String("sqlite-url", defaultSqliteURL(), "SQLite URL")
	cmd.PersistentFlags().Bool("verbose", false, "log database activity")
	cmd.AddCommand(newList(), newCancel())
	return cmd
}

func newList() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List bookings in creation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, closeDB, err := openRepository(cmd)
			if err != nil {
				return err
			}
			defer closeDB()
			bookings, err := repo.List(cmd.Context())
			if err != nil {
				return errors.Wrap(err, "list bookings")
			}
			return printBookings(cmd.OutOrStdout(), bookings)
		},
	}
}

func newCancel() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel [booking id]",
		Short: "Cancel a booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return errors.Wrap(err, "parse booking id", slog.String("id", args[0]))
			}
			repo, closeDB, err := openRepository(cmd)
			if err != nil {
				return err
			}
			defer closeDB()
			b, err := repo.Get(cmd.Context(), id)
			if errors.Is(err, sql.ErrNoRows) {
				return errors.New("booking not found", slog.Int64("booking_id", id))
			}
			if err != nil {
				return errors.Wrap(err, "look up booking")
			}
			if err = repo.Delete(cmd.Context(), id); err != nil {
				return errors.Wrap(err, "cancel booking")
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "booking %d cancelled: %s %s\n", id, b.Reference(), b.Tour)
			return err
		},
	}
}
