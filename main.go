package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"carematch/config"
	_ "carematch/docs"
	"carematch/internal/repository"
	"carematch/internal/service"
	"carematch/internal/storage"
	"carematch/internal/transport/rest"
	"carematch/pkg/cache"
	"carematch/pkg/database"
	"carematch/pkg/logger"
)

// @title CareMatch API
// @version 1.0
// @description API подбора специалистов по уходу с контролем конфликтов расписания

// @contact.name API Support

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	// .env опционален, в продакшене переменные приходят из окружения
	_ = godotenv.Load()

	log, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal("Не удалось загрузить конфигурацию", zap.Error(err))
	}

	db, err := database.NewPostgresDB(cfg.Postgres)
	if err != nil {
		log.Fatal("Не удалось подключиться к БД", zap.Error(err))
	}
	defer db.Close()

	log.Info("Запуск миграций базы данных")
	if err := database.RunMigrations(db, "./migrations", log); err != nil {
		log.Fatal("Ошибка при выполнении миграций", zap.Error(err))
	}
	log.Info("Миграции успешно выполнены")

	var fileStorage storage.FileStorage
	if cfg.S3.Endpoint != "" {
		s3Storage, err := storage.NewS3Storage(cfg.S3, log)
		if err != nil {
			log.Fatal("Не удалось инициализировать S3 хранилище", zap.Error(err))
		}
		fileStorage = s3Storage
		log.Info("S3 хранилище успешно инициализировано", zap.String("endpoint", cfg.S3.Endpoint))
	} else {
		log.Warn("S3 хранилище не настроено, загрузка фото будет недоступна")
	}

	var queryCache cache.Cache
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisCache(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Не удалось подключиться к Redis", zap.Error(err))
		}
		defer redisCache.Close()
		queryCache = redisCache
		log.Info("Кэш Redis успешно инициализирован", zap.String("addr", cfg.Redis.Addr))
	} else {
		log.Warn("Redis не настроен, результаты подбора кэшироваться не будут")
	}

	var recommender service.Recommender
	if cfg.Gemini.APIKey != "" {
		gemini, err := service.NewGeminiRecommender(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Fatal("Не удалось инициализировать клиента Gemini", zap.Error(err))
		}
		defer gemini.Close()
		recommender = gemini
		log.Info("Клиент Gemini успешно инициализирован", zap.String("model", cfg.Gemini.Model))
	} else {
		log.Warn("Gemini не настроен, рекомендации специалистов будут недоступны")
	}

	repos := repository.NewRepositories(db)

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go cleanupSessions(janitorCtx, repos.Auth, log)

	services := service.NewServices(service.Deps{
		Repos:       repos,
		Logger:      log,
		Config:      cfg,
		FileStorage: fileStorage,
		Cache:       queryCache,
		Recommender: recommender,
	})

	handler := rest.NewHandler(services, log, cfg)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	handler.InitRoutes(router)

	srv := &http.Server{
		Addr:           ":" + cfg.HTTP.Port,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderMB << 20,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	log.Info("Сервер запущен", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Выключение сервера...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Ошибка при остановке сервера", zap.Error(err))
	}

	log.Info("Сервер успешно остановлен")
}

// cleanupSessions раз в час удаляет истекшие refresh-сессии.
func cleanupSessions(ctx context.Context, repo repository.AuthRepository, log *zap.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			removed, err := repo.DeleteExpiredSessions(ctx, now)
			if err != nil {
				log.Warn("Ошибка очистки истекших сессий", zap.Error(err))
				continue
			}
			if removed > 0 {
				log.Info("Истекшие сессии удалены", zap.Int64("count", removed))
			}
		}
	}
}
