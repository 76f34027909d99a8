package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"go-pipeline-builder/internal/api"
	"go-pipeline-builder/internal/config"
	"go-pipeline-builder/internal/logging"
	"go-pipeline-builder/internal/store"
)

// Development server: in-memory store, debug logging.
func main() {
	addr := flag.String("addr", ":8080", "Listen address")
	flag.Parse()

	logging.Init(slog.LevelDebug, "text")

	cfg := config.Default()
	cfg.Server.Address = *addr
	cfg.Store = store.Config{Driver: "memory"}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	st := store.NewMemoryStore()
	defer st.Close()

	if err := api.Serve(ctx, cfg, st); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
