package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/LordIdra/Netheopoiesis/internal/app"
	"github.com/LordIdra/Netheopoiesis/internal/eventbus"
	"github.com/LordIdra/Netheopoiesis/internal/logging"
	"github.com/LordIdra/Netheopoiesis/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Version: версия API в /api/server
const Version = "v1.0.0"

// RestServer представляет REST API сервер
type RestServer struct {
	router  *gin.Engine
	httpSrv *http.Server
	service *app.BreedingService
	bus     eventbus.EventBus
	metrics *ServerMetrics
	logger  *logging.Logger
}

// Config содержит конфигурацию для REST сервера
type Config struct {
	Port        string                // адрес для запуска сервера (":8088")
	ServiceName string                // имя сервиса для метрик и трассировки
	Service     *app.BreedingService  // сервис скрещивания над установленным реестром
	Bus         eventbus.EventBus     // шина событий (для статистики), может быть nil
	Registerer  prometheus.Registerer // регистр метрик, nil: дефолтный
	Logger      *logging.Logger       // nil: логгер компонента "api"
}

// NewRestServer создает новый REST API сервер
func NewRestServer(config Config) *RestServer {
	if config.Port == "" {
		config.Port = ":8088"
	}
	if config.ServiceName == "" {
		config.ServiceName = "netheopoiesis"
	}
	if config.Logger == nil {
		config.Logger = logging.GetAPILogger()
	}

	router := gin.New()        // без стандартного logger/recovery
	router.Use(gin.Recovery()) // добавим только recovery

	// === Observability middleware ===
	loggerMw := middleware.NewRequestLogger(config.Logger)
	router.Use(loggerMw.Handler())

	router.Use(otelgin.Middleware(config.ServiceName))

	promMw := middleware.NewPrometheusMiddleware(metricNamespace(config.ServiceName), config.Registerer)
	router.Use(promMw.Handler())
	promMw.RegisterMetricsEndpoint(router)

	server := &RestServer{
		router:  router,
		service: config.Service,
		bus:     config.Bus,
		metrics: NewServerMetrics(),
		logger:  config.Logger,
	}
	server.httpSrv = &http.Server{
		Addr:              config.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	server.setupRoutes()
	return server
}

// metricNamespace приводит имя сервиса к допустимому пространству имён Prometheus
func metricNamespace(service string) string {
	return strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(service)
}

// setupRoutes настраивает маршруты REST API
func (rs *RestServer) setupRoutes() {
	// Middleware для CORS
	rs.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	api := rs.router.Group("/api")
	{
		api.GET("/plants", rs.handlePlants)
		api.GET("/plants/:id", rs.handlePlant)
		api.GET("/pairs", rs.handlePairs)
		api.GET("/breed", rs.handleBreed)
		api.GET("/stats", rs.handleStats)
		api.GET("/server", rs.handleServerInfo)
	}

	rs.router.GET("/health", rs.handleHealth)
}

// Handler возвращает http.Handler сервера (для тестов и встраивания)
func (rs *RestServer) Handler() http.Handler {
	return rs.router
}

// handlePlants возвращает все растения в порядке регистрации
func (rs *RestServer) handlePlants(c *gin.Context) {
	plants := rs.service.Registry().Plants()
	out := make([]PlantDTO, 0, len(plants))
	for _, def := range plants {
		out = append(out, newPlantDTO(def))
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: fmt.Sprintf("Растений: %d", len(out)),
		Data:    out,
	})
}

// handlePlant возвращает растение по идентификатору
func (rs *RestServer) handlePlant(c *gin.Context) {
	id := c.Param("id")
	def, ok := rs.service.Registry().Plant(id)
	if !ok {
		c.JSON(http.StatusNotFound, GenericResponse{
			Success: false,
			Message: fmt.Sprintf("Растение %s не найдено", id),
		})
		return
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Растение найдено",
		Data:    newPlantDTO(def),
	})
}

// handlePairs возвращает пары скрещивания в порядке проверки
func (rs *RestServer) handlePairs(c *gin.Context) {
	pairs := rs.service.Registry().Pairs()
	out := make([]PairDTO, 0, len(pairs))
	for i, p := range pairs {
		out = append(out, newPairDTO(i, p))
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: fmt.Sprintf("Пар: %d", len(out)),
		Data:    out,
	})
}

// handleBreed выполняет попытку скрещивания ?first=&second=
func (rs *RestServer) handleBreed(c *gin.Context) {
	first := strings.TrimSpace(c.Query("first"))
	second := strings.TrimSpace(c.Query("second"))
	if first == "" || second == "" {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Параметры first и second обязательны",
		})
		return
	}

	attempt := rs.service.Attempt(c.Request.Context(), first, second)
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Скрещивание выполнено",
		Data:    newBreedDTO(attempt),
	})
}

// handleStats возвращает статистику реестра, шины и памяти
func (rs *RestServer) handleStats(c *gin.Context) {
	reg := rs.service.Registry()
	stats := map[string]interface{}{
		"registry": map[string]int{
			"plants": reg.Len(),
			"pairs":  reg.PairCount(),
		},
		"memory_details": rs.metrics.GetDetailedMemoryStats(),
	}
	if rs.bus != nil {
		stats["eventbus"] = rs.bus.Metrics()
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Статистика получена",
		Data:    stats,
	})
}

// handleServerInfo возвращает информацию о сервере
func (rs *RestServer) handleServerInfo(c *gin.Context) {
	memoryMB, _ := rs.metrics.GetMemoryUsage()
	cpuPercent, _ := rs.metrics.GetCPUUsage()

	info := map[string]interface{}{
		"version":     Version,
		"name":        "Netheopoiesis Registry",
		"status":      "running",
		"uptime":      rs.metrics.GetUptime(),
		"memory_mb":   fmt.Sprintf("%.1f", memoryMB),
		"cpu_percent": fmt.Sprintf("%.1f", cpuPercent),
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Информация о сервере",
		Data:    info,
	})
}

// handleHealth проверка состояния сервера
func (rs *RestServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

// Start запускает REST сервер и блокируется до его остановки.
// После Stop возвращает nil.
func (rs *RestServer) Start() error {
	rs.logger.Info("🌐 REST API слушает %s", rs.httpSrv.Addr)
	if err := rs.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop корректно останавливает REST сервер
func (rs *RestServer) Stop(ctx context.Context) error {
	return rs.httpSrv.Shutdown(ctx)
}
