package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beka-birhanu/mazebot/api"
	api_i "github.com/beka-birhanu/mazebot/api/i"
	"github.com/beka-birhanu/mazebot/api/identity"
	"github.com/beka-birhanu/mazebot/api/middleware"
	runapi "github.com/beka-birhanu/mazebot/api/run"
	"github.com/beka-birhanu/mazebot/config"
	"github.com/beka-birhanu/mazebot/infrastruture/leaderboard"
	logger "github.com/beka-birhanu/mazebot/infrastruture/log"
	"github.com/beka-birhanu/mazebot/infrastruture/repo"
	"github.com/beka-birhanu/mazebot/infrastruture/token"
	"github.com/beka-birhanu/mazebot/service"
	"github.com/beka-birhanu/mazebot/service/i"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const limiterSweepInterval = 10 * time.Minute

// Global variables for dependencies
var (
	mongoClient        *mongo.Client
	redisClient        *redis.Client
	runRepo            i.RunRepo
	boardRanking       i.Leaderboard
	jwtTokenizer       i.Tokenizer
	sandboxService     i.Sandbox
	sessionService     i.Authenticator
	identityController api_i.Controller
	runController      api_i.Controller
	rateLimiter        *middleware.RateLimiter
	router             *api.Router
	appLogger          *zap.Logger
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the sandbox REST API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func initMongo(ctx context.Context, cfg config.ServerConfig) error {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort)

	var err error
	mongoClient, err = mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return fmt.Errorf("connecting to MongoDB: %w", err)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		return fmt.Errorf("MongoDB ping failed: %w", err)
	}
	appLogger.Info("Connected to MongoDB")
	return nil
}

func initRunRepo(ctx context.Context, cfg config.ServerConfig) error {
	runs := repo.NewRunRepo(mongoClient, cfg.DBName, "runs")
	if err := runs.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("creating run indexes: %w", err)
	}
	runRepo = runs
	appLogger.Info("Run repository initialized")
	return nil
}

func initRedis(ctx context.Context, cfg config.ServerConfig) error {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	boardRanking = leaderboard.NewRedisLeaderboard(redisClient, 0)
	appLogger.Info("Connected to Redis")
	return nil
}

func initSandbox(cfg config.ServerConfig) error {
	level := logger.ParseLevel(cfg.LogLevel)
	sandboxLogger, err := logger.New("SANDBOX", config.ColorMagenta, os.Stdout, level)
	if err != nil {
		return fmt.Errorf("creating sandbox logger: %w", err)
	}
	// Engine entries below warn stay out of the server log.
	engineLogger, err := logger.New("ENGINE", config.ColorCyan, os.Stdout, max(level, zap.WarnLevel))
	if err != nil {
		return fmt.Errorf("creating engine logger: %w", err)
	}

	sandboxService = service.NewSandbox(runRepo, boardRanking, service.SandboxOptions{
		Rotation:      cfg.Rotation,
		StepBudget:    cfg.StepBudget,
		Logger:        sandboxLogger,
		SimulationLog: engineLogger,
	})
	appLogger.Info("Sandbox service initialized")
	return nil
}

func initJWTTokenizer(cfg config.ServerConfig) {
	jwtTokenizer = token.NewJwtService(cfg.JWTSecret, cfg.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initControllers() error {
	apiLogger, err := logger.New("API", config.ColorBlue, os.Stdout, zap.InfoLevel)
	if err != nil {
		return fmt.Errorf("creating api logger: %w", err)
	}
	sessionService = service.NewSession(jwtTokenizer)
	identityController = identity.NewIdentityServer(sessionService)
	runController = runapi.NewRunController(sandboxService, apiLogger)
	appLogger.Info("Controllers initialized")
	return nil
}

func initRouter(cfg config.ServerConfig) {
	gin.SetMode(cfg.GinMode)
	rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", cfg.HostIP, cfg.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{identityController, runController},
		AuthorizationMiddleware: identity.Authoriz(jwtTokenizer),
		Middlewares:             []gin.HandlerFunc{middleware.RateLimit(rateLimiter)},
		MetricsHandler:          promhttp.Handler(),
	})
	appLogger.Info("Router initialized")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadServer()
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	appLogger, err = logger.New("APP", config.ColorGreen, os.Stdout, logger.ParseLevel(cfg.LogLevel))
	if err != nil {
		return err
	}
	defer func() { _ = appLogger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	initCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := initMongo(initCtx, cfg); err != nil {
		appLogger.Error("Initializing storage", zap.Error(err))
		return err
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	if err := initRunRepo(initCtx, cfg); err != nil {
		appLogger.Error("Initializing storage", zap.Error(err))
		return err
	}
	if err := initRedis(initCtx, cfg); err != nil {
		appLogger.Error("Initializing leaderboard", zap.Error(err))
		return err
	}
	defer redisClient.Close()

	if err := initSandbox(cfg); err != nil {
		return err
	}
	initJWTTokenizer(cfg)
	if err := initControllers(); err != nil {
		return err
	}
	initRouter(cfg)

	done := make(chan struct{})
	defer close(done)
	go rateLimiter.Sweep(limiterSweepInterval, done)

	appLogger.Info("Serving", zap.String("addr", fmt.Sprintf("%s:%v", cfg.HostIP, cfg.RESTPort)))
	if err := router.Run(ctx); err != nil {
		appLogger.Error("Starting server", zap.Error(err))
		return err
	}
	appLogger.Info("Server stopped")
	return nil
}
