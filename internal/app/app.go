package app

import (
	"context"
	"time"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"
	"go.uber.org/zap"

	"inventory/internal/config"
	"inventory/internal/importer"
	"inventory/internal/schema"
	"inventory/internal/service"
	"inventory/internal/storage"

	_ "inventory/internal/importer/sources"
)

// App is the main Wails application struct.
// All exported methods are available as Wails bindings.
type App struct {
	ctx context.Context
	log *zap.Logger

	cfg      *config.Config
	db       *storage.DB
	registry *schema.Registry

	inventory *service.InventoryService
	imports   *service.ImportService
}

// New creates a new App.
func New() *App {
	return &App{}
}

// Emit implements service.EventEmitter by delegating to the Wails
// runtime, so services never touch the runtime context directly.
func (a *App) Emit(ctx context.Context, event string, data any) {
	wailsRuntime.EventsEmit(ctx, event, data)
}

// Startup is called when the app starts.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx

	cfg, err := config.Load()
	if err != nil {
		wailsRuntime.LogFatalf(ctx, "Failed to load config: %v", err)
		return
	}
	a.cfg = cfg

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		wailsRuntime.LogFatalf(ctx, "Failed to build logger: %v", err)
		return
	}
	a.log = log

	db, err := storage.New(cfg.DBPath(), cfg.DataDir)
	if err != nil {
		wailsRuntime.LogFatalf(ctx, "Failed to open database: %v", err)
		return
	}
	a.db = db

	items := storage.NewItemStore(db)
	settings := storage.NewSettingsStore(db)
	runs := storage.NewImportRunStore(db)

	a.registry = schema.NewRegistry()

	a.inventory = service.NewInventoryService(a.registry, items, settings, a, log)
	a.imports = service.NewImportService(importer.New(a.registry), items, runs, a, log)

	// Persisted choice wins; the configured default only applies to a
	// fresh profile.
	persisted, err := settings.InventoryType()
	if err != nil {
		log.Warn("could not load persisted inventory type", zap.Error(err))
	}
	if persisted != "" {
		if err := a.inventory.RestoreActiveType(); err != nil {
			log.Warn("could not restore inventory type", zap.Error(err))
		}
	} else if cfg.DefaultType != "" {
		if err := a.registry.SetActiveType(cfg.DefaultType); err != nil {
			log.Warn("configured default type not registered",
				zap.String("type", cfg.DefaultType))
		}
	}

	a.imports.RestartTriggers(ctx, cfg.WatchDir, cfg.CronExpr)

	log.Info("app started",
		zap.String("dataDir", cfg.DataDir),
		zap.String("type", a.registry.ActiveType()))
}

// Shutdown is called when the app is closing.
func (a *App) Shutdown(ctx context.Context) {
	if a.imports != nil {
		a.imports.Stop()
		waitCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		a.imports.WaitRunning(waitCtx)
		cancel()
	}
	if a.db != nil {
		a.db.Close()
	}
	if a.log != nil {
		a.log.Sync()
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}
