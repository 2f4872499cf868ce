package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"hearth.homes/internal/httpapi"
	"hearth.homes/internal/obs"
	"hearth.homes/internal/registry"
	"hearth.homes/internal/store/pg"
	"hearth.homes/internal/stream"
	"hearth.homes/internal/trends"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	obs.Init()
	obs.InitBuildInfo(version, commit)
	logger := obs.Logger()

	addr := os.Getenv("HEARTH_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	var (
		shares registry.ShareStore = registry.NewInMemoryShares()
		probe  httpapi.ReadyProbe
	)
	if dsn := os.Getenv("HEARTH_PG_DSN"); dsn != "" {
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			logger.Printf(`{"level":"fatal","msg":"open database","error":%q}`, err.Error())
			os.Exit(1)
		}
		defer db.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := db.PingContext(ctx); err != nil {
			cancel()
			logger.Printf(`{"level":"fatal","msg":"ping database","error":%q}`, err.Error())
			os.Exit(1)
		}
		cancel()
		shares = pg.NewShares(db)
		probe = httpapi.ReadyProbe{DB: db}
	}

	snapshots, matches := registry.SeedWishlists()
	api := httpapi.New(
		probe,
		version,
		registry.NewInMemoryHomes(registry.SeedHomes()),
		shares,
		registry.NewInMemoryWishlists(snapshots, matches),
		trends.NewResolver(trends.SeedSeries()),
		stream.New(),
	)

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Printf(`{"level":"info","msg":"listening","addr":%q,"version":%q}`, addr, version)
		obs.SetReady(true)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Printf(`{"level":"fatal","msg":"serve","error":%q}`, err.Error())
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	obs.SetReady(false)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf(`{"level":"error","msg":"shutdown","error":%q}`, err.Error())
	}
	logger.Println(`{"level":"info","msg":"stopped"}`)
}
