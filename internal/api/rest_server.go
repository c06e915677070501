package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/annel0/park-engine/internal/logging"
	"github.com/annel0/park-engine/internal/middleware"
	"github.com/annel0/park-engine/internal/tile"
	"github.com/annel0/park-engine/internal/vec"
	"github.com/annel0/park-engine/internal/world"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const serviceName = "park_api"

var tracer = otel.Tracer("github.com/annel0/park-engine/internal/api")

// RestServer - REST API инспектора карты
type RestServer struct {
	router  *gin.Engine
	server  *http.Server
	park    *Park
	port    string
	metrics *ServerMetrics
	log     *logging.Logger
}

// Config содержит конфигурацию для REST сервера
type Config struct {
	Port     string              // адрес для запуска сервера, например ":8088"
	Park     *Park               // карта и её таблицы
	Registry *prometheus.Registry // регистр метрик; nil - новый пустой
}

// GenericResponse представляет общий ответ API
type GenericResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// InsertRequest - запрос на вставку элемента
type InsertRequest struct {
	Type      string `json:"type" binding:"required"`
	Base      uint8  `json:"base_height"`
	Clearance uint8  `json:"clearance_height"`
	Quadrants uint8  `json:"quadrants"`
}

// ResizeRequest - запрос на изменение размера карты
type ResizeRequest struct {
	Width  int `json:"width" binding:"required"`
	Height int `json:"height" binding:"required"`
}

// GhostRequest - запрос на изменение флага ghost
type GhostRequest struct {
	Ghost *bool `json:"ghost" binding:"required"`
}

// NewRestServer создает новый REST API сервер
func NewRestServer(config Config) *RestServer {
	if config.Port == "" {
		config.Port = ":8088"
	}
	if config.Registry == nil {
		config.Registry = prometheus.NewRegistry()
	}

	gin.SetMode(gin.ReleaseMode)

	router := gin.New()        // без стандартного logger/recovery
	router.Use(gin.Recovery()) // добавим только recovery

	// === Observability middleware ===
	router.Use(otelgin.Middleware(serviceName))

	log := logging.GetAPILogger()
	router.Use(middleware.NewRequestLogger(log).Handler())

	promMw := middleware.NewPrometheusMiddleware(serviceName, config.Registry)
	router.Use(promMw.Handler())
	promMw.RegisterMetricsEndpoint(router)

	if config.Park != nil {
		config.Park.fillDefaults()
	}

	rs := &RestServer{
		router:  router,
		park:    config.Park,
		port:    config.Port,
		metrics: NewServerMetrics(),
		log:     log,
	}
	rs.server = &http.Server{
		Addr:              config.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	rs.setupRoutes()
	return rs
}

// Handler возвращает http.Handler сервера (для тестов и встраивания)
func (rs *RestServer) Handler() http.Handler { return rs.router }

// setupRoutes настраивает маршруты REST API
func (rs *RestServer) setupRoutes() {
	rs.router.GET("/health", rs.handleHealth)

	api := rs.router.Group("/api")
	{
		api.GET("/server", rs.handleServerInfo)

		api.GET("/map", rs.handleMap)
		api.GET("/map/integrity", rs.handleIntegrity)
		api.POST("/map/save", rs.handleSave)
		api.POST("/map/size", rs.handleResize)

		api.GET("/tiles/:x/:y", rs.handleGetTile)
		api.POST("/tiles/:x/:y", rs.handleInsertElement)
		api.POST("/tiles/:x/:y/:index/ghost", rs.handleSetGhost)
		api.DELETE("/tiles/:x/:y/:index", rs.handleRemoveElement)
	}
}

// handleHealth проверка работоспособности
func (rs *RestServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

// handleServerInfo возвращает показатели процесса
func (rs *RestServer) handleServerInfo(c *gin.Context) {
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Информация о сервере",
		Data:    rs.metrics.Snapshot(),
	})
}

func (rs *RestServer) handleMap(c *gin.Context) {
	var view MapView
	_ = rs.park.Read(func(p *Park) error {
		view = newMapView(p)
		return nil
	})
	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "Карта", Data: view})
}

func (rs *RestServer) handleIntegrity(c *gin.Context) {
	err := rs.park.Read(func(p *Park) error {
		return errors.Join(p.Map.CheckIntegrity(), p.Map.CheckBanners(p.Objects, p.Banners))
	})
	if err != nil {
		c.JSON(http.StatusConflict, GenericResponse{Success: false, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "Карта целостна"})
}

func (rs *RestServer) handleSave(c *gin.Context) {
	_, span := tracer.Start(c.Request.Context(), "SaveMap")
	defer span.End()

	if err := rs.park.Save(); err != nil {
		span.RecordError(err)
		status := http.StatusInternalServerError
		if errors.Is(err, ErrStorageDisabled) {
			status = http.StatusServiceUnavailable
		}
		rs.log.Error("Ошибка сохранения карты: %v", err)
		c.JSON(status, GenericResponse{Success: false, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "Карта сохранена"})
}

func (rs *RestServer) handleResize(c *gin.Context) {
	var req ResizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{Success: false, Message: "Неверный формат запроса"})
		return
	}
	target := vec.Vec2{X: req.Width, Y: req.Height}

	_, span := tracer.Start(c.Request.Context(), "ChangeSize", oteltrace.WithAttributes(
		attribute.Int("map.width", target.X), attribute.Int("map.height", target.Y)))
	defer span.End()

	var view MapView
	err := rs.park.Write(func(p *Park) error {
		if err := p.Map.ChangeSize(target, p.Objects, p.Banners); err != nil {
			return err
		}
		view = newMapView(p)
		return nil
	})
	if err != nil {
		span.RecordError(err)
		rs.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "Размер карты изменен", Data: view})
}

func (rs *RestServer) handleGetTile(c *gin.Context) {
	pos, ok := parseTile(c)
	if !ok {
		return
	}

	var view TileView
	err := rs.park.Read(func(p *Park) error {
		run := p.Map.Run(pos)
		if run == nil {
			return world.ErrOutOfBounds
		}
		view = newTileView(pos, run, p.Objects)
		return nil
	})
	if err != nil {
		rs.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "Тайл", Data: view})
}

func (rs *RestServer) handleInsertElement(c *gin.Context) {
	pos, ok := parseTile(c)
	if !ok {
		return
	}
	var req InsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{Success: false, Message: "Неверный формат запроса"})
		return
	}
	kind, ok := tile.ParseElementType(req.Type)
	if !ok {
		c.JSON(http.StatusBadRequest, GenericResponse{Success: false, Message: fmt.Sprintf("Неизвестный вид элемента %q", req.Type)})
		return
	}

	_, span := tracer.Start(c.Request.Context(), "InsertElement", oteltrace.WithAttributes(
		attribute.Int("tile.x", pos.X), attribute.Int("tile.y", pos.Y), attribute.String("element.type", req.Type)))
	defer span.End()

	var view TileView
	err := rs.park.Write(func(p *Park) error {
		if _, err := p.Map.InsertElement(pos, kind, req.Base, req.Clearance, req.Quadrants); err != nil {
			return err
		}
		view = newTileView(pos, p.Map.Run(pos), p.Objects)
		return nil
	})
	if err != nil {
		span.RecordError(err)
		rs.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, GenericResponse{Success: true, Message: "Элемент добавлен", Data: view})
}

func (rs *RestServer) handleSetGhost(c *gin.Context) {
	pos, ok := parseTile(c)
	if !ok {
		return
	}
	index, ok := parseIndex(c)
	if !ok {
		return
	}
	var req GhostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{Success: false, Message: "Неверный формат запроса"})
		return
	}

	err := rs.park.Write(func(p *Park) error {
		ref, err := p.Map.RefAt(pos, index)
		if err != nil {
			return err
		}
		p.Map.Element(ref).SetGhost(*req.Ghost)
		p.Map.MarkUpdated(ref)
		return nil
	})
	if err != nil {
		rs.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "Флаг обновлён"})
}

func (rs *RestServer) handleRemoveElement(c *gin.Context) {
	pos, ok := parseTile(c)
	if !ok {
		return
	}
	index, ok := parseIndex(c)
	if !ok {
		return
	}

	_, span := tracer.Start(c.Request.Context(), "RemoveElement", oteltrace.WithAttributes(
		attribute.Int("tile.x", pos.X), attribute.Int("tile.y", pos.Y), attribute.Int("element.index", index)))
	defer span.End()

	err := rs.park.Write(func(p *Park) error {
		ref, err := p.Map.RefAt(pos, index)
		if err != nil {
			return err
		}
		e := p.Map.Element(ref)
		if e.GetType() == tile.TypeSurface {
			return world.ErrLastSurface
		}
		// Запись баннера удаляется до самого элемента
		e.RemoveBannerEntry(p.Objects, p.Banners, nil)
		return p.Map.RemoveElement(ref)
	})
	if err != nil {
		span.RecordError(err)
		rs.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "Элемент удалён"})
}

// fail переводит ошибку карты в HTTP-статус
func (rs *RestServer) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, world.ErrOutOfBounds), errors.Is(err, world.ErrInvalidRef):
		status = http.StatusNotFound
	case errors.Is(err, world.ErrInvalidHeights), errors.Is(err, world.ErrSurfaceRequired), errors.Is(err, world.ErrMapSize):
		status = http.StatusBadRequest
	case errors.Is(err, world.ErrLastSurface):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, GenericResponse{Success: false, Message: err.Error()})
}

func parseTile(c *gin.Context) (vec.Vec2, bool) {
	x, errX := strconv.Atoi(c.Param("x"))
	y, errY := strconv.Atoi(c.Param("y"))
	if errX != nil || errY != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{Success: false, Message: "Неверные координаты тайла"})
		return vec.Vec2{}, false
	}
	return vec.Vec2{X: x, Y: y}, true
}

func parseIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{Success: false, Message: "Неверный индекс элемента"})
		return 0, false
	}
	return index, true
}

// Start запускает REST сервер; блокируется до Stop
func (rs *RestServer) Start() error {
	rs.log.Info("REST API слушает %s", rs.port)
	if err := rs.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop плавно останавливает REST сервер
func (rs *RestServer) Stop(ctx context.Context) error {
	return rs.server.Shutdown(ctx)
}
