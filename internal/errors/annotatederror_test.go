package errors_test

import (
	"log/slog"
	"slices"
	"testing"

	"github.com/myrjola/jurassictravel/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	sentinel := errors.NewSentinel("ledger unavailable")
	err := errors.Wrap(sentinel, "insert booking", slog.Int64("booking_id", 42))

	require.ErrorIs(t, err, sentinel)
	require.Equal(t, "insert booking: ledger unavailable", err.Error())
	require.NoError(t, errors.Wrap(nil, "nothing to wrap"))

	attr := errors.SlogError(err)
	require.Equal(t, "error", attr.Key)
	group := attr.Value.LogValuer().LogValue().Group()
	require.Contains(t, group, slog.Int64("booking_id", 42))

	// Assert there's a valid source.
	sourceIdx := slices.IndexFunc(group, func(attr slog.Attr) bool {
		return attr.Key == "source"
	})
	require.NotEqual(t, -1, sourceIdx)
	require.Contains(t, group[sourceIdx].Value.String(), "annotatederror_test.go")
}

func TestNew(t *testing.T) {
	err := errors.New("tour missing", slog.String("tour_id", "apex-predator"))
	require.Equal(t, "tour missing", err.Error())
	require.NotErrorIs(t, err, errors.NewSentinel("tour missing"))

	plain := errors.SlogError(errors.NewSentinel("plain"))
	require.Equal(t, "plain", plain.Value.String())
}
