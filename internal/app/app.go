package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"skill_roadmap_backend/internal/catalog"
	"skill_roadmap_backend/internal/config"
	"skill_roadmap_backend/internal/controller"
	"skill_roadmap_backend/internal/repository"
	"skill_roadmap_backend/internal/service"
	"skill_roadmap_backend/pkg/database"
	"skill_roadmap_backend/pkg/logger"
	"skill_roadmap_backend/pkg/monitoring"
	"skill_roadmap_backend/pkg/security"
	"skill_roadmap_backend/pkg/tracing"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user      *repository.UserRepository
	message   *repository.ChatMessageRepository
	roadmap   *repository.RoadmapRepository
	portfolio *repository.PortfolioRepository
}

type services struct {
	resource  *service.ResourceService
	ai        *service.AIService
	advisor   *service.AdvisorService
	storage   *service.StorageService
	portfolio *service.PortfolioService
}

type controllers struct {
	user      *controller.UserController
	message   *controller.ChatMessageController
	roadmap   *controller.RoadmapController
	portfolio *controller.PortfolioController
	resource  *controller.ResourceController
	advisor   *controller.AdvisorController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ReloadConfig 配置热更新入口，由configwatcher触发
func (a *App) ReloadConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("Config reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(db),
		message:   repository.NewChatMessageRepository(db),
		roadmap:   repository.NewRoadmapRepository(db),
		portfolio: repository.NewPortfolioRepository(db),
	}
}

func (a *App) initServices(cfg *config.Config) *services {
	s := &services{}

	s.resource = service.NewResourceService(catalog.Roadmaps(), cfg.Cache.TTL)
	s.ai = service.NewAIService(cfg.AI)
	s.advisor = service.NewAdvisorService(s.ai, s.resource)
	s.storage = service.NewStorageService(cfg)
	s.portfolio = service.NewPortfolioService(s.storage)

	return s
}

func (a *App) initControllers(repos *repositories, s *services, db *gorm.DB) *controllers {
	return &controllers{
		user:      controller.NewUserController(repos.user),
		message:   controller.NewChatMessageController(repos.message),
		roadmap:   controller.NewRoadmapController(repos.roadmap),
		portfolio: controller.NewPortfolioController(repos.portfolio, s.portfolio),
		resource:  controller.NewResourceController(s.resource),
		advisor:   controller.NewAdvisorController(s.advisor),
		health:    controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.RequestID())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 100000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}

	repos := app.initRepositories(db)
	services := app.initServices(cfg)
	app.services = services
	controllers := app.initControllers(repos, services, db)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("skill-roadmap-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers)

	if cfg.Storage.Type == "local" {
		router.Static("/artifacts", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// 停掉资源缓存的后台清扫
	if a.services != nil && a.services.resource != nil {
		a.services.resource.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
