package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/LordIdra/Netheopoiesis/internal/api"
	"github.com/LordIdra/Netheopoiesis/internal/catalog"
	"github.com/LordIdra/Netheopoiesis/internal/config"
	"github.com/LordIdra/Netheopoiesis/internal/logging"
	"github.com/LordIdra/Netheopoiesis/internal/observability"
	"github.com/LordIdra/Netheopoiesis/internal/registry"
	"github.com/LordIdra/Netheopoiesis/internal/report"
	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "", "Путь к YAML конфигурации (по умолчанию $NETHEO_CONFIG)")
	flag.Parse()

	// === КОНФИГУРАЦИЯ ===
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	// Инициализируем систему логирования
	logging.SetLogDir(cfg.Logging.Dir)
	if err := logging.InitDefaultLogger("server"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()
	defer func() { _ = logging.GetLoggerManager().CloseAll() }()

	level, _ := logging.ParseLevel(cfg.Logging.Level) // уровень уже проверен в Validate
	logging.SetLevel(level)

	logging.Info("🌱 Запуск Netheopoiesis registry...")
	logging.Debug("Конфигурация: catalog=%q report=%v rest_port=%d nats=%q",
		cfg.Catalog.Path, cfg.Report.Enabled, cfg.Server.GetRESTPort(), cfg.EventBus.URL)

	ctx := context.Background()
	shutdownTelemetry, err := observability.InitTelemetry(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.Enabled)
	if err != nil {
		log.Fatalf("❌ Ошибка инициализации OpenTelemetry: %v", err)
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			logging.Error("❌ Ошибка остановки OpenTelemetry: %v", err)
		}
	}()

	// === РЕЕСТР ===
	cf, err := catalog.LoadOrDefault(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки каталога: %v", err)
	}
	reg, err := cf.Registry(nil)
	if err != nil {
		log.Fatalf("❌ Ошибка регистрации растений: %v", err)
	}
	registry.MustInstall(reg)
	logging.Info("✅ Реестр установлен: %d растений, %d пар", reg.Len(), reg.PairCount())

	if cfg.Report.Enabled {
		summary := report.NewExporter(cfg.Report.OutputDir, cfg.Report.TemplatePath, nil).Export(reg.Plants())
		logging.Info("📄 Документация: %d файлов в %s (ошибок: %d)", summary.Written, cfg.Report.OutputDir, summary.Failed)
	}

	// === REST API и шина событий ===
	gin.SetMode(gin.ReleaseMode)
	integration, err := api.NewServerIntegration(api.IntegrationConfig{
		Config:   cfg,
		Registry: reg,
	})
	if err != nil {
		log.Fatalf("❌ Ошибка создания REST API интеграции: %v", err)
	}
	if err := integration.Start(); err != nil {
		log.Fatalf("❌ Ошибка запуска REST API: %v", err)
	}

	logging.Info("💡 Пример: curl 'http://localhost:%d/api/breed?first=NPS_SPINDLE&second=NPS_BEADED'", cfg.Server.GetRESTPort())

	// Канал для получения сигналов ОС
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	logging.Debug("Ожидание сигналов завершения...")
	select {
	case sig := <-sigCh:
		logging.Info("📡 Получен сигнал %v, завершение работы...", sig)
	case <-integration.Done():
		logging.Error("❌ REST API остановился, завершение работы...")
	}

	// === GRACEFUL SHUTDOWN ===
	if err := integration.Stop(); err != nil {
		logging.Error("❌ Ошибка остановки REST API: %v", err)
	}

	logging.Info("👋 Сервер успешно остановлен")
}
