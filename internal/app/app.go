package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"memoria_backend/internal/config"
	"memoria_backend/internal/controller"
	"memoria_backend/internal/repository"
	"memoria_backend/internal/safety"
	"memoria_backend/internal/service"
	"memoria_backend/pkg/database"
	"memoria_backend/pkg/logger"
	"memoria_backend/pkg/monitoring"
	"memoria_backend/pkg/security"
	"memoria_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user    *repository.UserRepository
	persona *repository.PersonaRepository
	answer  *repository.AnswerRepository
	chat    *repository.ChatRepository
	journal *repository.JournalRepository
}

type services struct {
	storage    *service.StorageService
	speech     *service.SpeechService
	ai         *service.AIService
	auth       *service.AuthService
	persona    *service.PersonaService
	onboarding *service.OnboardingService
	chat       *service.ChatService
	journal    *service.JournalService
}

type controllers struct {
	auth       *controller.AuthController
	persona    *controller.PersonaController
	onboarding *controller.OnboardingController
	chat       *controller.ChatController
	journal    *controller.JournalController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 配置热更新入口，由文件监听器触发
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
	logger.Log.Info("Configuration reloaded")
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:    repository.NewUserRepository(db),
		persona: repository.NewPersonaRepository(db),
		answer:  repository.NewAnswerRepository(db),
		chat:    repository.NewChatRepository(db, rdb),
		journal: repository.NewJournalRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	// 语音门禁：模式探测 + 会话级滑动窗口计数
	detector := safety.NewPatternDetector()
	tracker := safety.NewEscalationTracker(safety.EscalationWindow, safety.EscalationThreshold, nil)
	gate := safety.NewVoiceGate(detector, tracker)

	s.storage = service.NewStorageService(cfg)
	s.speech = service.NewSpeechService(cfg.Speech, s.storage)
	s.ai = service.NewAIService(cfg.AI)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.persona = service.NewPersonaService(repos.persona, repos.chat, gate)
	s.onboarding = service.NewOnboardingService(repos.answer, repos.persona, s.storage, s.speech)
	s.chat = service.NewChatService(repos.chat, repos.persona, repos.answer, s.ai, s.speech, gate)
	s.journal = service.NewJournalService(repos.journal)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		persona:    controller.NewPersonaController(s.persona),
		onboarding: controller.NewOnboardingController(s.onboarding, s.persona),
		chat:       controller.NewChatController(s.chat),
		journal:    controller.NewJournalController(s.journal),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

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
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("memoria-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Log.Sync()
	log.Println("Server exiting")
}
