package api

import (
	"context"
	"fmt"
	"time"

	"github.com/LordIdra/Netheopoiesis/internal/app"
	"github.com/LordIdra/Netheopoiesis/internal/config"
	"github.com/LordIdra/Netheopoiesis/internal/eventbus"
	"github.com/LordIdra/Netheopoiesis/internal/logging"
	"github.com/LordIdra/Netheopoiesis/internal/observability"
	"github.com/LordIdra/Netheopoiesis/internal/registry"
	"github.com/prometheus/client_golang/prometheus"
)

// ServerIntegration связывает реестр с шиной событий, метриками и REST API
type ServerIntegration struct {
	restServer *RestServer
	service    *app.BreedingService
	bus        eventbus.EventBus
	exporter   *eventbus.MetricsExporter
	logger     *logging.Logger
	ctx        context.Context
	cancel     context.CancelFunc
}

// IntegrationConfig содержит конфигурацию для интеграции
type IntegrationConfig struct {
	Config     *config.Config
	Registry   *registry.Registry
	Registerer prometheus.Registerer // nil: дефолтный регистр
	Logger     *logging.Logger       // nil: логгер компонента "api"
}

// NewServerIntegration создаёт шину событий (JetStream, если задан URL,
// иначе в памяти), сервис скрещивания и REST сервер.
func NewServerIntegration(ic IntegrationConfig) (*ServerIntegration, error) {
	if ic.Registry == nil {
		return nil, registry.ErrNilRegistry
	}
	if ic.Config == nil {
		ic.Config = config.Default()
	}
	if ic.Logger == nil {
		ic.Logger = logging.GetAPILogger()
	}
	cfg := ic.Config

	bus, err := newBus(cfg.EventBus, ic.Logger)
	if err != nil {
		return nil, err
	}
	if _, err := eventbus.StartLoggingListener(bus, ic.Logger); err != nil {
		_ = bus.Close()
		return nil, fmt.Errorf("подписка логгера событий: %w", err)
	}

	namespace := metricNamespace(cfg.Telemetry.ServiceName)
	breedMetrics := observability.NewBreedMetrics(namespace, ic.Registerer)
	exporter := eventbus.NewMetricsExporter(bus, ic.Registerer)

	service := app.NewBreedingService(ic.Registry, bus, breedMetrics, cfg.Telemetry.ServiceName)

	restServer := NewRestServer(Config{
		Port:        fmt.Sprintf(":%d", cfg.Server.GetRESTPort()),
		ServiceName: cfg.Telemetry.ServiceName,
		Service:     service,
		Bus:         bus,
		Registerer:  ic.Registerer,
		Logger:      ic.Logger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	return &ServerIntegration{
		restServer: restServer,
		service:    service,
		bus:        bus,
		exporter:   exporter,
		logger:     ic.Logger,
		ctx:        ctx,
		cancel:     cancel,
	}, nil
}

func newBus(cfg config.EventBusConfig, logger *logging.Logger) (eventbus.EventBus, error) {
	if cfg.URL == "" {
		logger.Info("⚠️  Используется in-memory шина событий (буфер %d)", cfg.BufferSize)
		return eventbus.NewMemoryBus(cfg.BufferSize), nil
	}

	bus, err := eventbus.NewJetStreamBus(cfg.URL, cfg.Stream, time.Duration(cfg.Retention)*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к NATS %s: %w", cfg.URL, err)
	}
	logger.Info("✅ NATS JetStream подключён: %s (стрим %s)", cfg.URL, cfg.Stream)
	return bus, nil
}

// Start запускает REST API сервер в отдельной горутине
func (si *ServerIntegration) Start() error {
	si.exporter.Start()

	go func() {
		if err := si.restServer.Start(); err != nil {
			si.logger.Error("❌ Ошибка REST API сервера: %v", err)
			si.cancel()
		}
	}()

	addr := si.restServer.httpSrv.Addr
	si.logger.Info("✅ REST API сервер запущен на http://localhost%s", addr)
	si.logger.Info("📋 Доступные эндпоинты:")
	si.logger.Info("   GET  /health              - Проверка состояния")
	si.logger.Info("   GET  /api/plants          - Зарегистрированные растения")
	si.logger.Info("   GET  /api/plants/:id      - Растение по идентификатору")
	si.logger.Info("   GET  /api/pairs           - Пары скрещивания")
	si.logger.Info("   GET  /api/breed           - Попытка скрещивания (?first=&second=)")
	si.logger.Info("   GET  /api/stats           - Статистика реестра и шины")
	si.logger.Info("   GET  /api/server          - Информация о сервере")
	si.logger.Info("   GET  /metrics             - Prometheus")
	return nil
}

// Stop останавливает REST API, экспортёр метрик и шину событий
func (si *ServerIntegration) Stop() error {
	si.logger.Info("🛑 Остановка REST API сервера...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var firstErr error
	if err := si.restServer.Stop(ctx); err != nil {
		si.logger.Error("❌ Ошибка при остановке HTTP сервера: %v", err)
		firstErr = err
	}

	si.exporter.Stop()

	if err := si.bus.Close(); err != nil && firstErr == nil {
		firstErr = err
	}

	si.cancel()
	si.logger.Info("✅ REST API сервер остановлен")
	return firstErr
}

// Service возвращает сервис скрещивания
func (si *ServerIntegration) Service() *app.BreedingService {
	return si.service
}

// GetRestServer возвращает REST сервер (для дополнительной настройки)
func (si *ServerIntegration) GetRestServer() *RestServer {
	return si.restServer
}

// Done закрывается, когда интеграция остановлена или сервер упал
func (si *ServerIntegration) Done() <-chan struct{} {
	return si.ctx.Done()
}

// IsHealthy проверяет состояние интеграции
func (si *ServerIntegration) IsHealthy() bool {
	select {
	case <-si.ctx.Done():
		return false
	default:
		return true
	}
}
