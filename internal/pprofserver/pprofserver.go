package pprofserver

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/myrjola/jurassictravel/internal/errors"
)

func Handle(mux *http.ServeMux) {
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
}

func newServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	Handle(mux)
	return mux
}

func newServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           newServeMux(),
		ReadHeaderTimeout: time.Second,
	}
}

// Launch a standard pprof server at addr until ctx is done. Keep addr on a loopback interface such as
// localhost:6060 so that it's not open to the world.
func Launch(ctx context.Context, addr string, logger *slog.Logger) {
	srv := newServer(addr)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.LogAttrs(ctx, slog.LevelError, "shutdown pprof server",
				errors.SlogError(errors.Wrap(err, "shutdown pprof server")))
		}
	}()
	go func() {
		logger.LogAttrs(ctx, slog.LevelInfo, "starting pprof server", slog.String("pprof_addr", addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.LogAttrs(ctx, slog.LevelError, "pprof server stopped",
				errors.SlogError(errors.Wrap(err, "listen and serve", slog.String("pprof_addr", addr))))
		}
	}()
}
