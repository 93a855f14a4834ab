package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/myrjola/jurassictravel/internal/models"
	"github.com/myrjola/jurassictravel/internal/repositories"
	"github.com/myrjola/jurassictravel/internal/sqlite"
	"github.com/myrjola/jurassictravel/internal/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCLI(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains []string
	}{
		{
			name:     "catalog check",
			args:     []string{"check"},
			contains: []string{"catalog ok: 7 tours, 8 specimens"},
		},
		{
			name:     "tours",
			args:     []string{"tours"},
			contains: []string{"apex-predator", "$1999", "18+", "cretaceous-safari", "all"},
		},
		{
			name:     "ask booking",
			args:     []string{"ask", "book", "the", "apex", "tour"},
			contains: []string{"[booking]", "focus sector: tyrannosaurus", "open tour: apex-predator"},
		},
		{
			name:     "ask fallback",
			args:     []string{"ask", "--seed", "1", "xyzzy"},
			contains: []string{"[fallback]", "suggestions:"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestCLI_checkRejectsInvalidCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tours:\n  - id: orphan\n    anchorDinoId: nobody\n"), 0o600))
	_, err := execute(t, "check", "--file", path)
	require.Error(t, err)
}

// seedBooking writes a booking straight to the ledger database at url.
func seedBooking(t *testing.T, url string, id int64) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	logger := testhelpers.NewLogger(io.Discard)
	db, err := sqlite.NewDatabase(ctx, url, logger)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, db.Close())
	}()
	require.NoError(t, repositories.NewBookingRepository(db, logger).Insert(ctx, models.NewBooking(id, models.BookingDraft{
		TourID: "cretaceous-safari",
		Tour:   "Cretaceous Safari",
		Name:   "Alan Grant",
		Phone:  "555-0100",
		Date:   time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC),
		Status: models.BookingStatusConfirmed,
		Price:  299,
	})))
}

func TestCLI_bookings(t *testing.T) {
	url := filepath.Join(t.TempDir(), "ledger.sqlite3")

	out, err := execute(t, "bookings", "list", "--sqlite-url", url)
	require.NoError(t, err)
	assert.Equal(t, "no bookings\n", out)

	_, err = execute(t, "bookings", "cancel", "not-a-number", "--sqlite-url", url)
	require.Error(t, err)

	_, err = execute(t, "bookings", "cancel", "42", "--sqlite-url", url)
	require.Error(t, err, "unknown bookings cannot be cancelled")

	seedBooking(t, url, 1718000123456)
	out, err = execute(t, "bookings", "list", "--sqlite-url", url)
	require.NoError(t, err)
	assert.Contains(t, out, "JW-123456")

	out, err = execute(t, "bookings", "cancel", "1718000123456", "--sqlite-url", url)
	require.NoError(t, err)
	assert.Equal(t, "booking 1718000123456 cancelled: JW-123456 Cretaceous Safari\n", out)

	out, err = execute(t, "bookings", "list", "--sqlite-url", url)
	require.NoError(t, err)
	assert.Equal(t, "no bookings\n", out)
}
