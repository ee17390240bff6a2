package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/subosito/gotenv"

	"github.com/Spok95/herb-stock/internal/bot"
	"github.com/Spok95/herb-stock/internal/config"
	"github.com/Spok95/herb-stock/internal/dialog"
	"github.com/Spok95/herb-stock/internal/domain/alerts"
	"github.com/Spok95/herb-stock/internal/domain/bom"
	"github.com/Spok95/herb-stock/internal/domain/catalog"
	"github.com/Spok95/herb-stock/internal/domain/inventory"
	"github.com/Spok95/herb-stock/internal/domain/sales"
	"github.com/Spok95/herb-stock/internal/infra/db"
	httpx "github.com/Spok95/herb-stock/internal/infra/http"
	"github.com/Spok95/herb-stock/internal/infra/logger"
	"github.com/Spok95/herb-stock/internal/infra/metrics"
	"github.com/Spok95/herb-stock/internal/infra/sheets"
	"github.com/Spok95/herb-stock/internal/infra/store"
)

func main() {
	_ = gotenv.Load()

	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Рецептуры
	table := bom.DefaultRecipes()
	if cfg.Recipes.File != "" {
		if table, err = bom.LoadRecipes(cfg.Recipes.File); err != nil {
			log.Error("load recipes", "file", cfg.Recipes.File, "err", err)
			return
		}
	}
	cat := catalog.Default()
	registry := bom.NewRegistry(bom.NewCanonicalizer(cat, bom.DefaultAliases(), log), table, log)
	if err := registry.Build(); err != nil {
		log.Error("recipes unusable", "err", err)
		return
	}
	log.Info("recipes ready", "count", len(registry.Names()))

	// Хранилище
	st, states, closeStore, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Error("storage init failed", "driver", cfg.Storage.Driver, "err", err)
		return
	}
	defer closeStore()

	var mirror *sheets.Mirror
	if cfg.Sheets.Path != "" {
		mirror = sheets.NewMirror(cfg.Sheets.Path, log)
	}

	ledger := inventory.NewLedger(log)
	if err := loadLedger(ctx, cfg, ledger, cat, st, mirror, log); err != nil {
		log.Error("load stock", "err", err)
		return
	}

	// Telegram
	var api *tgbotapi.BotAPI
	if cfg.Telegram.Token != "" {
		if api, err = tgbotapi.NewBotAPI(cfg.Telegram.Token); err != nil {
			log.Error("telegram init failed", "err", err)
			return
		}
		log.Info("telegram authorized", "bot", api.Self.UserName)
	}
	var notifier alerts.Notifier
	if api != nil && cfg.Telegram.AdminChatID != 0 {
		notifier = bot.NewNotifier(api, cfg.Telegram.AdminChatID)
	}
	watcher := alerts.NewWatcher(cfg.Alerts.LowStockThreshold, notifier, log)

	// Хуки: сначала запись, потом зеркала и оповещения.
	var hooks []inventory.Hook
	if st != nil {
		hooks = append(hooks, store.Hook(st, log))
	}
	if mirror != nil {
		hooks = append(hooks, mirror.Hook())
	}
	hooks = append(hooks, watcher.Hook())

	engine := sales.NewEngine(registry, ledger, log)
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		m := metrics.New(prometheus.DefaultRegisterer)
		hooks = append(hooks, m.Hook())
		engine.Observe(m)
		metricsHandler = promhttp.Handler()
	}
	ledger.Use(hooks...)

	deps := httpx.Deps{Engine: engine, Stock: ledger, Metrics: metricsHandler, Log: log}
	if st != nil {
		engine.Journal(st)
		deps.Journal = st
	}

	srv := httpx.New(cfg.HTTP.Addr, deps)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	if api != nil {
		b := bot.New(api, log, states, cfg.Telegram.AdminChatID, engine, ledger, watcher.Threshold())
		go func() {
			if err := b.Run(ctx, cfg.Telegram.Timeout); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("bot stopped", "err", err)
			}
		}()
		log.Info("bot started")
	} else {
		log.Warn("telegram token is empty, bot disabled")
	}

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}

// openStorage returns a nil store for the memory driver; dialog state then
// lives in memory as well.
func openStorage(ctx context.Context, cfg config.Config, log *slog.Logger) (store.Store, dialog.Store, func(), error) {
	switch cfg.Storage.Driver {
	case "postgres":
		if err := db.Migrate(cfg.Storage.PostgresDSN, cfg.Storage.Migrations); err != nil {
			return nil, nil, nil, err
		}
		log.Info("migrations applied")
		pool, err := db.Connect(ctx, cfg.Storage.PostgresDSN)
		if err != nil {
			return nil, nil, nil, err
		}
		log.Info("db connected")
		return store.NewPostgres(pool), dialog.NewRepo(pool), pool.Close, nil
	case "sqlite":
		s, err := store.OpenSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		log.Info("sqlite opened", "path", cfg.Storage.SQLitePath)
		return s, dialog.NewMemory(), func() { _ = s.Close() }, nil
	default:
		return nil, dialog.NewMemory(), func() {}, nil
	}
}

// loadLedger fills the ledger from the first non-empty source: the sheet
// (when load_on_start is set), the store, then the built-in catalog. Sources
// that came up empty are brought in line with the result.
func loadLedger(ctx context.Context, cfg config.Config, l *inventory.Ledger, cat *catalog.Catalog,
	st store.Store, mirror *sheets.Mirror, log *slog.Logger) error {

	source := ""
	if mirror != nil && cfg.Sheets.LoadOnStart {
		recs, err := mirror.Load()
		if err != nil {
			return err
		}
		if n := l.Replace(recs); n > 0 {
			source = "sheet"
		}
	}
	if source == "" && st != nil {
		recs, err := st.LoadAll(ctx)
		if err != nil {
			return err
		}
		if n := l.Replace(recs); n > 0 {
			source = "store"
		}
	}
	if source == "" {
		l.Seed(cat.Entries())
		source = "catalog"
	}
	log.Info("stock loaded", "source", source, "records", l.Len())

	all := l.List()
	if st != nil && source != "store" {
		changes := make([]inventory.Change, 0, len(all))
		for _, r := range all {
			changes = append(changes, inventory.Change{After: r})
		}
		if err := st.SaveChanges(ctx, inventory.ReasonCreate, changes); err != nil {
			return err
		}
	}
	if mirror != nil && source != "sheet" {
		if err := mirror.Reset(all); err != nil {
			log.Error("sheet reset failed", "path", mirror.Path(), "err", err)
		}
	}
	return nil
}
