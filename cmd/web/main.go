package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/donseba/go-htmx"
	"github.com/joho/godotenv"
	"github.com/myrjola/jurassictravel/internal/broker"
	"github.com/myrjola/jurassictravel/internal/catalog"
	"github.com/myrjola/jurassictravel/internal/dialogue"
	"github.com/myrjola/jurassictravel/internal/envstruct"
	"github.com/myrjola/jurassictravel/internal/errors"
	"github.com/myrjola/jurassictravel/internal/intent"
	"github.com/myrjola/jurassictravel/internal/logging"
	"github.com/myrjola/jurassictravel/internal/pprofserver"
	"github.com/myrjola/jurassictravel/internal/random"
	"github.com/myrjola/jurassictravel/internal/repositories"
	"github.com/myrjola/jurassictravel/internal/selection"
	"github.com/myrjola/jurassictravel/internal/sqlite"
)

type application struct {
	logger         *slog.Logger
	catalog        *catalog.Catalog
	store          *selection.Store
	engine         *intent.Engine
	chats          *dialogue.Registry
	events         *broker.ChannelBroker[string]
	sessionManager *scs.SessionManager
	htmx           *htmx.HTMX
	limiters       *visitorLimiters
	rng            random.Source
	now            func() time.Time
}

type config struct {
	// Addr is the address the HTTP server listens on. Use port 0 for a random port.
	Addr string `env:"JURASSIC_ADDR" envDefault:"localhost:4000"`
	// SqliteURL is the path to the SQLite database. Use ":memory:" for an in-memory database.
	SqliteURL string `env:"JURASSIC_SQLITE_URL" envDefault:"./jurassictravel.sqlite3"`
	// PprofAddr enables the pprof server when set. Keep it on loopback, e.g. localhost:6060.
	PprofAddr string `env:"JURASSIC_PPROF_ADDR" envDefault:""`
	// SessionTTL is the lifetime of visitor sessions.
	SessionTTL time.Duration `env:"JURASSIC_SESSION_TTL" envDefault:"12h"`
	// ChatIdleTTL closes assistant conversations that have been idle for longer.
	ChatIdleTTL time.Duration `env:"JURASSIC_CHAT_IDLE_TTL" envDefault:"30m"`
	// ChatRate is the sustained number of assistant messages a visitor may send per second.
	ChatRate float64 `env:"JURASSIC_CHAT_RATE" envDefault:"1"`
	// ChatBurst is the number of assistant messages a visitor may send in a quick burst.
	ChatBurst int `env:"JURASSIC_CHAT_BURST" envDefault:"5"`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		err error
		cfg config
	)
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.PprofAddr != "" {
		pprofserver.Launch(ctx, cfg.PprofAddr, logger)
	}

	var db *sqlite.Database
	if db, err = sqlite.NewDatabase(ctx, cfg.SqliteURL, logger); err != nil {
		return errors.Wrap(err, "open database", slog.String("url", cfg.SqliteURL))
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.LogAttrs(ctx, slog.LevelError, "failed to close database",
				errors.SlogError(errors.Wrap(closeErr, "close database")))
		}
	}()

	var tours *catalog.Catalog
	if tours, err = catalog.Load(); err != nil {
		return errors.Wrap(err, "load catalog")
	}

	store := selection.NewStore(repositories.NewBookingRepository(db, logger), logger)
	if err = store.Load(ctx); err != nil {
		return errors.Wrap(err, "load bookings")
	}

	events := broker.NewChannelBroker[string]()
	go events.Start()
	defer events.Stop()
	unsubscribe := store.Subscribe(func(selection.State) {
		events.Publish(stateEvent)
	})
	defer unsubscribe()

	engine := intent.NewEngine(tours, random.NewSource())
	chats := dialogue.NewRegistry(func(id string) *dialogue.Session {
		return dialogue.NewSession(id, engine, store, logger, dialogue.WithOnChange(func(id string) {
			events.Publish(chatEvent(id))
		}))
	}, cfg.ChatIdleTTL, logger)
	go chats.Run(ctx)

	sessionStore := sqlite3store.New(db.ReadWrite.DB)
	defer sessionStore.StopCleanup()
	sessionManager := scs.New()
	sessionManager.Store = sessionStore
	sessionManager.Lifetime = cfg.SessionTTL
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.Secure = true

	app := application{
		logger:         logger,
		catalog:        tours,
		store:          store,
		engine:         engine,
		chats:          chats,
		events:         events,
		sessionManager: sessionManager,
		htmx:           htmx.New(),
		limiters:       newVisitorLimiters(cfg.ChatRate, cfg.ChatBurst, cfg.ChatIdleTTL),
		rng:            random.NewSource(),
		now:            time.Now,
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "catalog loaded",
		slog.Int("tours", len(tours.AllTours())),
		slog.Int("specimens", len(tours.AllSpecimens())),
		slog.Int("bookings", len(store.State().Bookings)))

	if err = app.configureAndStartServer(ctx, cfg.Addr); err != nil {
		return errors.Wrap(err, "start server")
	}

	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   true,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)

	// The .env file is optional, real environment variables are used in production.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.LogAttrs(ctx, slog.LevelError, "failure loading .env file", errors.SlogError(err))
		stop()
		os.Exit(1) //nolint:gocritic // stop is called above.
	}

	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		stop()
		os.Exit(1) //nolint:gocritic // stop is called above.
	}
}
