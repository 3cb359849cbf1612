package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mood-server/internal/ai"
	"mood-server/internal/config"
	"mood-server/internal/database"
	"mood-server/internal/handler"
	"mood-server/internal/messaging"
	"mood-server/internal/models"
	"mood-server/internal/questionnaire"
	"mood-server/internal/repository"
	"mood-server/internal/service"
	"mood-server/pkg/logger"
	"mood-server/pkg/middleware"

	rateli "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
)

const (
	connectMaxRetries = 50
	connectRetryDelay = 3 * time.Second
	janitorInterval   = 10 * time.Minute
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger ---
	log, err := logger.New(logger.Config{
		Level:    cfg.LogLevel,
		Encoding: cfg.LogEncoding,
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	zap.ReplaceGlobals(log)
	zap.L().Info("Logger initialized successfully", zap.String("logLevel", cfg.LogLevel))

	appCtx, stopApp := context.WithCancel(context.Background())
	defer stopApp()

	// --- External Connections ---
	pgPool, err := database.Connect(appCtx, cfg.PostgresDSN(), database.PoolOptions{
		MaxConns:    cfg.DBMaxConns,
		IdleTimeout: cfg.DBIdleTimeout,
		MaxRetries:  connectMaxRetries,
		RetryDelay:  connectRetryDelay,
	}, log)
	if err != nil {
		zap.L().Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pgPool.Close()

	if err := database.Migrate(pgPool, log); err != nil {
		zap.L().Fatal("Failed to apply database migrations", zap.Error(err))
	}

	redisClient, err := setupRedis(cfg)
	if err != nil {
		zap.L().Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	var (
		mailer messaging.MailDispatcher
		events messaging.EventPublisher
	)
	if cfg.RabbitMQURL != "" {
		mqConn, err := messaging.Connect(appCtx, cfg.RabbitMQURL, connectMaxRetries, connectRetryDelay, log)
		if err != nil {
			zap.L().Fatal("Failed to connect to RabbitMQ", zap.Error(err))
		}
		defer mqConn.Close()

		mailDispatcher, err := messaging.NewRabbitMQMailDispatcher(mqConn, cfg.MailExchangeName, log)
		if err != nil {
			zap.L().Fatal("Failed to create mail dispatcher", zap.Error(err))
		}
		defer mailDispatcher.Close()
		eventPublisher, err := messaging.NewRabbitMQEventPublisher(mqConn, cfg.EventsExchangeName, log)
		if err != nil {
			zap.L().Fatal("Failed to create event publisher", zap.Error(err))
		}
		defer eventPublisher.Close()
		mailer, events = mailDispatcher, eventPublisher
	} else {
		zap.L().Warn("RABBITMQ_URL not set, verification mails and questionnaire events are only logged")
		logPublisher := messaging.NewLogPublisher(log)
		mailer, events = logPublisher, logPublisher
	}

	// --- Text generator and questionnaire sessions ---
	generator, err := ai.NewGenerator(ai.Options{
		ClientType:     cfg.AIClientType,
		BaseURL:        cfg.AIBaseURL,
		Model:          cfg.AIModel,
		APIKey:         cfg.AIAPIKey,
		Temperature:    cfg.AITemperature,
		Timeout:        cfg.AITimeout,
		EstimateTokens: cfg.AIEstimateTokens,
	}, log)
	if err != nil {
		zap.L().Fatal("Failed to create text generator", zap.Error(err))
	}

	var sessionStore questionnaire.Store
	switch cfg.QuestionnaireStore {
	case "redis":
		sessionStore = questionnaire.NewRedisStore(redisClient, cfg.QuestionnaireSessionTTL, log)
	default:
		memoryStore := questionnaire.NewMemoryStore(cfg.QuestionnaireSessionTTL, log)
		go memoryStore.RunJanitor(appCtx, janitorInterval)
		sessionStore = memoryStore
	}
	zap.L().Info("Questionnaire session store selected",
		zap.String("store", cfg.QuestionnaireStore),
		zap.Duration("ttl", cfg.QuestionnaireSessionTTL),
	)

	agent := questionnaire.NewAgent(generator, log,
		questionnaire.WithSeedQuestions(questionnaire.DefaultSeedQuestions()),
	)
	registry := questionnaire.NewRegistry(sessionStore, agent, log)

	// --- Dependency Injection ---
	userRepo := repository.NewPgUserRepository(pgPool, log)
	profileRepo := repository.NewPgProfileRepository(pgPool, userRepo, log)
	moodLogRepo := repository.NewPgMoodLogRepository(pgPool, log)
	tokenRepo := repository.NewRedisTokenRepository(redisClient, log)

	authSvc := service.NewAuthService(userRepo, tokenRepo, mailer, cfg, log)
	userSvc := service.NewUserService(userRepo, profileRepo, moodLogRepo, log)
	adminSvc := service.NewAdminService(userRepo, moodLogRepo, tokenRepo, log)
	questionnaireSvc := service.NewQuestionnaireService(registry, events, log)

	h := handler.NewHandler(authSvc, userSvc, adminSvc, questionnaireSvc)

	// --- Rate limiting of credential endpoints ---
	rateLimitStore := rateli.RedisStore(&rateli.RedisOptions{
		RedisClient: redisClient,
		Rate:        cfg.AuthRateWindow,
		Limit:       cfg.AuthRateLimit,
	})
	rateLimitMiddleware := rateli.RateLimiter(rateLimitStore, &rateli.Options{
		ErrorHandler: func(c *gin.Context, info rateli.Info) {
			zap.L().Warn("Rate limit exceeded",
				zap.String("clientIP", c.ClientIP()),
				zap.Time("resetTime", info.ResetTime),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
				Code:    models.ErrCodeRateLimited,
				Message: "Too many requests. Try again in " + time.Until(info.ResetTime).Round(time.Second).String(),
			})
		},
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	})

	// --- HTTP Server Setup (Gin) ---
	gin.SetMode(gin.ReleaseMode)
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.RedirectTrailingSlash = true
	router.Use(middleware.GinZapLogger(log))
	router.Use(gin.Recovery())

	p := ginprometheus.NewPrometheus("gin")

	corsConfig := cors.DefaultConfig()
	allowedOrigins := cfg.GetAllowedOrigins()
	if len(allowedOrigins) > 0 {
		corsConfig.AllowOrigins = allowedOrigins
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
		zap.L().Info("CORSAllowedOrigins not set, allowing default", zap.String("origin", "http://localhost:3000"))
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.RequestIDHeader}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	h.RegisterRoutes(router, rateLimitMiddleware)

	// after routes, so /metrics is not counted as an application route
	p.Use(router)

	// --- Start HTTP Server ---
	srv := &http.Server{
		Addr:        ":" + cfg.ServerPort,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		// a questionnaire step may run every generation attempt back to back
		WriteTimeout: time.Duration(questionnaire.DefaultMaxAttempts)*cfg.AITimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	zap.L().Info("Starting HTTP server", zap.String("port", cfg.ServerPort))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("HTTP Server listen error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("HTTP Server forced to shutdown", zap.Error(err))
	}
	stopApp()

	zap.L().Info("Server exiting")
}

// setupRedis initializes the Redis client with retry logic.
func setupRedis(cfg *config.Config) (*redis.Client, error) {
	redisOpts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
	zap.L().Info("Attempting to connect and ping Redis",
		zap.String("address", redisOpts.Addr),
		zap.Int("db", redisOpts.DB),
		zap.Int("max_retries", connectMaxRetries),
	)

	var lastErr error
	for i := 0; i < connectMaxRetries; i++ {
		attempt := i + 1
		client := redis.NewClient(redisOpts)

		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, err := client.Ping(pingCtx).Result()
		pingCancel()

		if err == nil {
			zap.L().Info("Successfully connected and pinged Redis", zap.Int("attempt", attempt))
			return client, nil
		}

		client.Close()
		lastErr = fmt.Errorf("unable to ping redis (attempt %d/%d): %w", attempt, connectMaxRetries, err)
		zap.L().Warn("Redis ping failed, retrying...", zap.Int("attempt", attempt), zap.Error(err))
		if i < connectMaxRetries-1 {
			time.Sleep(connectRetryDelay)
		}
	}
	return nil, fmt.Errorf("failed to connect to redis after %d attempts: %w", connectMaxRetries, lastErr)
}
