package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"vidyasetu_backend/internal/config"
	"vidyasetu_backend/internal/controller"
	"vidyasetu_backend/internal/repository"
	"vidyasetu_backend/internal/service"
	"vidyasetu_backend/pkg/configwatcher"
	"vidyasetu_backend/pkg/database"
	"vidyasetu_backend/pkg/logger"
	"vidyasetu_backend/pkg/monitoring"
	"vidyasetu_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	mu              sync.RWMutex
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	content    *repository.ContentRepository
	quiz       *repository.QuizRepository
	quizResult *repository.QuizResultRepository
	progress   *repository.ProgressRepository
}

type services struct {
	storage  *service.StorageService
	auth     *service.AuthService
	content  *service.ContentService
	quiz     *service.QuizService
	progress *service.ProgressService
	user     *service.UserService
}

type controllers struct {
	auth     *controller.AuthController
	content  *controller.ContentController
	quiz     *controller.QuizController
	progress *controller.ProgressController
	user     *controller.UserController
	health   *controller.HealthController
}

func initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		content:    repository.NewContentRepository(db),
		quiz:       repository.NewQuizRepository(db),
		quizResult: repository.NewQuizResultRepository(db),
		progress:   repository.NewProgressRepository(db),
	}
}

func initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}
	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.content = service.NewContentService(repos.content, s.storage, cfg)
	s.quiz = service.NewQuizService(repos.quiz, repos.quizResult)
	s.progress = service.NewProgressService(repos.progress, repos.content, repos.quizResult, rdb)
	s.user = service.NewUserService(repos.user, repos.content, repos.quiz, repos.quizResult, rdb)
	return s
}

func initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth),
		content:  controller.NewContentController(s.content),
		quiz:     controller.NewQuizController(s.quiz),
		progress: controller.NewProgressController(s.progress),
		user:     controller.NewUserController(s.user),
		health:   controller.NewHealthController(db),
	}
}

// RegisterConfigCallback adds a hook invoked with the fresh config after a
// hot reload.
func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	a.mu.Lock()
	a.Config = cfg
	callbacks := make([]func(*config.Config), len(a.configCallbacks))
	copy(callbacks, a.configCallbacks)
	a.mu.Unlock()

	for _, cb := range callbacks {
		cb(cfg)
	}
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg.Server.Mode)
	logger.Log.Info("Logger initialized")

	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// The platform works without the cache, only slower.
		logger.Log.Warn("Redis unavailable, caching disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := initRepositories(db)
	svcs := initServices(repos, cfg, rdb)
	ctrls := initControllers(svcs, db)

	monitoring.Init()

	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("vidyasetu-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		} else {
			router.Use(tracing.GinMiddleware())
		}
	}

	app.registerRoutes(router, ctrls, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	go configwatcher.WatchConfig("configs/config.yaml", app.applyConfig)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.Redis != nil {
		a.Redis.Close()
	}

	log.Println("Server exiting")
}
