package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/merchantdash/datagrid"
	"github.com/merchantdash/datagrid/internal/config"
	"github.com/merchantdash/datagrid/session"
	"github.com/merchantdash/datagrid/source"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cat, err := datagrid.LoadCatalog(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	src, err := openSource(cfg)
	if err != nil {
		log.Fatalf("Failed to open records source: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	records, err := src.Records(ctx)
	cancel()
	if err != nil {
		log.Fatalf("Failed to load records: %v", err)
	}

	name := cat.Objects[0].Name
	lang := cfg.Application.Language
	prefs := session.NewMemoryPreferences()

	pool := session.NewPool(func() *datagrid.Grid {
		g := cat.NewGrid(records, lang)
		datagrid.RestoreView(g, prefs, name)
		return g
	}, session.Options{
		MaxSessions: cfg.Sessions.Max,
		IdleTimeout: cfg.Sessions.IdleTimeout,
		AbsTimeout:  cfg.Sessions.AbsTimeout,
	})
	defer pool.Close()

	mux := http.NewServeMux()
	mux.Handle("/grid", datagrid.NewHandler(name, pool, prefs))
	mux.HandleFunc("/catalog", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(datagrid.CatalogSchema())
	})

	slog.Info("Grid server listening",
		"app", cfg.Application.Name,
		"port", cfg.Server.Port,
		"grid", name,
		"records", len(records))
	if err := http.ListenAndServe(":"+cfg.Server.Port, mux); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func openSource(cfg *config.Config) (source.Source, error) {
	if cfg.Records.Query == "" {
		return source.File{Path: cfg.Records.File}, nil
	}
	dbCfg, ok := cfg.DefaultDatabase()
	if !ok {
		return source.File{Path: cfg.Records.File}, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := source.OpenPostgres(ctx, dbCfg.ConnString(), 4)
	if err != nil {
		return nil, err
	}
	return source.Postgres{DB: db, Query: cfg.Records.Query}, nil
}
