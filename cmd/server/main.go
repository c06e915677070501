package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/annel0/park-engine/internal/api"
	"github.com/annel0/park-engine/internal/config"
	"github.com/annel0/park-engine/internal/eventbus"
	"github.com/annel0/park-engine/internal/logging"
	"github.com/annel0/park-engine/internal/observability"
	"github.com/annel0/park-engine/internal/storage"
	"github.com/annel0/park-engine/internal/vec"
	"github.com/annel0/park-engine/internal/world"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	var configPath string
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка чтения конфигурации: %v", err)
	}

	// Инициализируем систему логирования
	if cfg.Log.Dir != "" {
		if err := logging.InitDefaultLogger("server", cfg.Log.Dir); err != nil {
			log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
		}
		defer logging.CloseDefaultLogger()
	}
	level := logging.ParseLevel(cfg.Log.Level)
	logging.SetDefaultLevel(level)
	for _, component := range []string{"tile", "map", "storage", "api", "eventbus"} {
		logging.GetComponentLogger(component).SetLevel(level)
	}

	logging.Info("🎢 Запуск сервера карты парка %q...", cfg.Map.Name)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// === ТРАССИРОВКА ===
	if cfg.Tracing.Enabled {
		shutdown, err := observability.InitTelemetry(ctx, "park-engine", cfg.Tracing.Endpoint)
		if err != nil {
			logging.Error("❌ Ошибка инициализации трассировки: %v", err)
		} else {
			defer func() {
				sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer scancel()
				_ = shutdown(sctx)
			}()
			logging.Info("🔭 Трассировка OTLP включена")
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// === ШИНА СОБЫТИЙ ===
	bus, err := newEventBus(cfg.EventBus)
	if err != nil {
		log.Fatalf("❌ Ошибка подключения к шине событий: %v", err)
	}
	eventbus.Init(bus)
	defer bus.Close()

	if _, err := eventbus.StartLoggingListener(bus); err != nil {
		logging.Warn("Логирующий подписчик шины не запущен: %v", err)
	}
	exporter := eventbus.NewMetricsExporter(bus, registry)
	exporter.Start()
	defer exporter.Stop()

	// === ХРАНИЛИЩЕ И КАРТА ===
	store, err := storage.NewMapStorage(cfg.Storage.Path, cfg.Storage.Compress)
	if err != nil {
		log.Fatalf("❌ Ошибка открытия хранилища: %v", err)
	}
	defer store.Close()

	objects := world.NewDefaultObjectTable()
	tileMap, banners, err := loadOrGenerate(store, cfg.Map, objects)
	if err != nil {
		log.Fatalf("❌ Ошибка подготовки карты: %v", err)
	}

	tileMap.SetMetrics(world.NewMetrics(registry))
	tileMap.SetListener(world.NewEventBusListener(bus, "map:"+cfg.Map.Name))

	park := &api.Park{
		Name:    cfg.Map.Name,
		Map:     tileMap,
		Objects: objects,
		Banners: banners,
		Storage: store,
	}

	// === REST API ===
	restPort := ":" + strconv.Itoa(cfg.Server.GetRESTPort())
	server := api.NewRestServer(api.Config{Port: restPort, Park: park, Registry: registry})
	go func() {
		if err := server.Start(); err != nil {
			logging.Error("❌ REST API остановлен с ошибкой: %v", err)
			cancel()
		}
	}()

	size := tileMap.Size()
	logging.Info("✅ Карта %dx%d готова, элементов: %d", size.X, size.Y, tileMap.ElementCount())
	logging.Info("   🌐 REST API: http://localhost%s", restPort)
	logging.Info("   ❤️  Health check: http://localhost%s/health", restPort)

	// Канал для получения сигналов ОС
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info("📡 Получен сигнал %v, завершение работы...", sig)
	case <-ctx.Done():
	}

	// === GRACEFUL SHUTDOWN ===
	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	if err := server.Stop(stopCtx); err != nil {
		logging.Error("❌ Ошибка остановки REST API: %v", err)
	}

	if err := park.Save(); err != nil {
		logging.Error("❌ Карта не сохранена: %v", err)
	} else {
		logging.Info("💾 Карта %q сохранена", cfg.Map.Name)
	}

	logging.Info("👋 Сервер успешно остановлен")
}

// newEventBus выбирает JetStream при заданном URL, иначе шину в памяти
func newEventBus(cfg config.EventBusConfig) (eventbus.EventBus, error) {
	if cfg.URL == "" {
		return eventbus.NewMemoryBus(cfg.Buffer), nil
	}
	return eventbus.NewJetStreamBus(cfg.URL, cfg.Stream, cfg.RetentionDuration())
}

// loadOrGenerate читает сохранённую карту или генерирует новую.
// Если размер сохранённой карты отличается от заданного, карта приводится к нему.
func loadOrGenerate(store *storage.MapStorage, cfg config.MapConfig, objs *world.ObjectTable) (*world.TileMap, *world.BannerTable, error) {
	m, banners, err := store.LoadMap(cfg.Name)
	if err == nil {
		logging.Info("📂 Карта %q загружена из хранилища", cfg.Name)
		target := vec.Vec2{X: cfg.Width, Y: cfg.Height}
		if m.Size() != target {
			if err := m.ChangeSize(target, objs, banners); err != nil {
				return nil, nil, err
			}
		}
		return m, banners, nil
	}
	if !errors.Is(err, storage.ErrMapNotFound) {
		return nil, nil, err
	}

	logging.Info("🌱 Генерация новой карты %q (seed=%d)", cfg.Name, cfg.Seed)
	m, err = world.NewTileMap(vec.Vec2{X: cfg.Width, Y: cfg.Height})
	if err != nil {
		return nil, nil, err
	}
	gen := world.NewSurfaceGenerator(cfg.Seed)
	gen.WaterLevel = cfg.WaterLevel
	gen.TreeDensity = cfg.TreeDensity
	gen.TreeEntry = world.DefaultTreeEntry
	if err := gen.Generate(m); err != nil {
		return nil, nil, err
	}
	return m, world.NewBannerTable(), nil
}
