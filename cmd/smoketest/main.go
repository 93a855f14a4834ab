package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/myrjola/jurassictravel/internal/e2etest"
	"github.com/myrjola/jurassictravel/internal/errors"
	"github.com/myrjola/jurassictravel/internal/logging"
)

// TestTerminal checks that the terminal renders and that the map reacts to a sector selection.
func TestTerminal(ctx context.Context, client *e2etest.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()

	doc, err := client.GetDoc(ctx, "/")
	if err != nil {
		return errors.Wrap(err, "get terminal")
	}
	if doc.Find(".tour-card").Length() == 0 {
		return errors.New("no tours rendered")
	}
	if doc, err = client.SubmitDocForm(ctx, doc, "/zones/triceratops", nil); err != nil {
		return errors.Wrap(err, "select sector")
	}
	if zone := doc.Find(".zone-panel").AttrOr("data-zone", ""); zone != "triceratops" {
		return errors.New("sector not selected", slog.String("zone", zone))
	}
	if _, err = client.SubmitDocForm(ctx, doc, "/zones/clear", nil); err != nil {
		return errors.Wrap(err, "clear sector")
	}
	return nil
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		url      = "https://" + hostname
		client   *e2etest.Client
		err      error
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", url))

	if client, err = e2etest.NewClient(url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready", errors.SlogError(err))
		os.Exit(1)
	}
	if err = TestTerminal(ctx, client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing terminal", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌")
	os.Exit(0)
}
