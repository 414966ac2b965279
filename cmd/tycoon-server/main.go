// Package main is the entry point for the Space Tycoon game server.
// It only handles dependency injection and server initialization.
// NO business logic belongs here.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/spf13/pflag"

	"github.com/abstogo/SpaceTycoon/internal/autosave"
	"github.com/abstogo/SpaceTycoon/internal/catalog"
	"github.com/abstogo/SpaceTycoon/internal/engine"
	"github.com/abstogo/SpaceTycoon/internal/events"
	"github.com/abstogo/SpaceTycoon/internal/infra/cache"
	"github.com/abstogo/SpaceTycoon/internal/infra/storage"
	"github.com/abstogo/SpaceTycoon/internal/network"
	"github.com/abstogo/SpaceTycoon/internal/platform/config"
	"github.com/abstogo/SpaceTycoon/internal/platform/logger"
	"github.com/abstogo/SpaceTycoon/internal/platform/metrics"
	"github.com/abstogo/SpaceTycoon/internal/rng"
	"github.com/abstogo/SpaceTycoon/internal/savegame"
)

// countingPersister counts journal write failures before passing them on.
type countingPersister struct {
	inner   events.EventPersister
	metrics *metrics.Collector
}

func (p *countingPersister) Append(event events.GameEvent) error {
	err := p.inner.Append(event)
	if err != nil {
		p.metrics.RecordJournalError()
	}
	return err
}

func main() {
	fs := pflag.NewFlagSet("tycoon-server", pflag.ExitOnError)
	configDir := fs.String("config", ".", "directory containing "+config.FileName)
	resume := fs.Bool("resume", true, "continue the most recently saved game")
	if err := config.BindFlags(fs); err != nil {
		logger.NewLogger().Err(err, "flag setup failed")
		os.Exit(1)
	}
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(*configDir)
	if err != nil {
		logger.NewLogger().Err(err, "failed to load configuration")
		os.Exit(1)
	}
	appLogger := logger.NewConsole(os.Stdout, cfg.LogLevel)
	appLogger.Info("Initializing Space Tycoon server...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appLogger.Info("Initializing SQLite database '" + cfg.DBPath + "'...")
	db, err := storage.InitSQLite(cfg.DBPath)
	if err != nil {
		appLogger.Err(err, "Failed to initialize SQLite")
		os.Exit(1)
	}
	defer db.Close()

	eventRepo := storage.NewSQLiteEventRepository(db)
	snapCache, err := cache.NewSnapshotCache(cfg.CacheSize, 0)
	if err != nil {
		appLogger.Err(err, "Failed to create snapshot cache")
		os.Exit(1)
	}
	store := storage.NewGameStore(storage.NewSQLiteSaveRepository(db), snapCache, cfg.Game.MaxCrew)

	cat, err := catalog.Open(cfg.Game.CatalogPath)
	if err != nil {
		appLogger.Err(err, "Failed to load event catalog")
		os.Exit(1)
	}

	seed := cfg.Game.Seed
	if seed == 0 {
		if seed, err = rng.NewSeed(); err != nil {
			appLogger.Err(err, "Failed to seed random source")
			os.Exit(1)
		}
	}
	appLogger.Info("Random seed " + strconv.FormatUint(seed, 10))

	sessionID := uuid.NewString()
	var saved *savegame.Snapshot
	if *resume {
		sessionID, saved = latestSave(ctx, store, appLogger, sessionID)
	}

	collector := metrics.Get()

	appLogger.Info("Bootstrapping journal for session " + sessionID + "...")
	journal := events.NewEventLog(sessionID, &countingPersister{
		inner:   storage.NewJournalPersister(eventRepo),
		metrics: collector,
	})
	if history, err := storage.LoadJournal(ctx, eventRepo, sessionID); err != nil {
		appLogger.Err(err, "Failed to load journal history")
	} else {
		journal.Load(history)
	}
	journal.Subscribe(collector.ObserveJournal)

	appLogger.Info("Bootstrapping game session...")
	sessionLogger := appLogger.With("session", sessionID)
	var session *engine.GameSession
	if saved != nil {
		session = engine.RestoreGameSession(cfg.GameOptions(), cat, rng.New(seed), journal, sessionLogger, saved)
	} else {
		session = engine.NewGameSession(cfg.GameOptions(), cat, rng.New(seed), journal, sessionLogger)
	}
	runner := engine.NewRunner(session, sessionLogger, 0)
	runner.ObserveTicks(collector.RecordTick)
	runner.OnAdvance(func(_ *engine.GameSession, days int) { collector.RecordDays(days) })

	appLogger.Info("Bootstrapping WebSocket Hub...")
	hub := network.NewHub(runner, appLogger.With("component", "ws"), network.Options{
		SendBuffer:      cfg.WS.SendBuffer,
		BroadcastBuffer: cfg.WS.BroadcastBuffer,
		MaxClients:      cfg.WS.MaxClients,
	}, collector)
	hub.Attach(journal)
	go hub.Run(ctx)

	api := network.NewAPI(runner, store, storage.NewReconstructor(eventRepo), collector, appLogger)

	go runner.Start(ctx)

	// Automated save routine
	saver := autosave.NewWorker(api.Save, cfg.Game.AutosaveInterval, appLogger)
	saver.Watch(journal)
	go saver.Run(ctx)

	// Setup API Routes
	mux := http.NewServeMux()
	api.RegisterRoutes(mux)
	mux.HandleFunc("/metrics", collector.Handler())
	mux.HandleFunc("/metrics/prometheus", collector.PrometheusHandler())
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWs(hub, w, r, appLogger)
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("HTTP API & WS Server listening on " + cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Err(err, "Server failed")
			cancel()
		}
	}()

	appLogger.Info("Server running. Press Ctrl+C to exit.")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}

	appLogger.Info("Shutting down, " + strconv.Itoa(hub.ClientCount()) + " clients connected...")
	runner.Stop()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := api.Save(shutdownCtx); err != nil {
		appLogger.Err(err, "Final save failed")
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Err(err, "HTTP shutdown failed")
	}
	cancel()
}

// latestSave returns the most recently saved session. On any failure it
// falls back to fresh, the id of a new game.
func latestSave(ctx context.Context, store *storage.GameStore, log *logger.Logger, fresh string) (string, *savegame.Snapshot) {
	saves, err := store.List(ctx)
	if err != nil {
		log.Err(err, "Failed to list saves")
		return fresh, nil
	}
	if len(saves) == 0 {
		return fresh, nil
	}
	id := saves[0].SessionID
	snap, err := store.Load(ctx, id)
	if err != nil {
		log.Err(err, "Failed to restore saved game "+id+", starting fresh")
		return fresh, nil
	}
	log.Info("Resuming saved game " + id)
	return id, snap
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // the web client is served from another origin in development
	},
}

// serveWs handles websocket requests from the peer.
func serveWs(hub *network.Hub, w http.ResponseWriter, r *http.Request, log *logger.Logger) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Err(err, "Failed to upgrade websocket connection")
		return
	}

	client := network.NewClient(hub, conn)
	client.Register()

	// Allow collection of memory referenced by the caller by doing all work in
	// new goroutines.
	go client.WritePump()
	go client.ReadPump()
}
