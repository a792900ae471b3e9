package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"menagerie/internal/game"
	"menagerie/internal/genetics"
	"menagerie/internal/store"
	"menagerie/internal/web"
)

func main() {
	cfg, err := ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	level, _ := cfg.Level()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, cfg); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config) error {
	tables, err := game.LoadTables(cfg.Tables)
	if err != nil {
		return err
	}
	src, err := newSource(cfg.Seed)
	if err != nil {
		return err
	}
	engine := game.NewEngine(tables, src, slog.Default())
	engine.EventActive = func(biome string) bool { return slices.Contains(cfg.EventBiomes, biome) }

	backend, err := store.OpenBackend(cfg.Store, cfg.SQLitePath)
	if err != nil {
		return err
	}
	defer backend.Close()
	animals, err := store.Open[*game.Animal](ctx, backend, "animals")
	if err != nil {
		return err
	}
	wallets, err := store.Open[*game.Wallet](ctx, backend, "wallets")
	if err != nil {
		return err
	}
	events, err := store.Open[*game.Event](ctx, backend, "events")
	if err != nil {
		return err
	}

	srv := &web.Server{
		Engine:        engine,
		Animals:       animals,
		Wallets:       wallets,
		Events:        events,
		Log:           slog.Default(),
		StartingCoins: cfg.StartingCoins,
		StartingGems:  cfg.StartingGems,
		PortraitDir:   cfg.PortraitDir,
		StaticDir:     cfg.StaticDir,
	}
	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", cfg.Addr, "store", backend.Kind())
		errc <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newSource returns a seeded source for reproducible runs, or a crypto
// seeded one. Both are safe for concurrent requests.
func newSource(seed int64) (genetics.Source, error) {
	if seed != 0 {
		slog.Info("using fixed seed", "seed", seed)
		return genetics.NewLockedSource(genetics.NewSource(seed)), nil
	}
	return genetics.NewSystemSource()
}
