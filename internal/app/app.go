package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Chirandip-dev07/ujjivana/internal/config"
	"github.com/Chirandip-dev07/ujjivana/internal/controller"
	"github.com/Chirandip-dev07/ujjivana/internal/repository"
	"github.com/Chirandip-dev07/ujjivana/internal/service"
	"github.com/Chirandip-dev07/ujjivana/pkg/database"
	"github.com/Chirandip-dev07/ujjivana/pkg/logger"
	"github.com/Chirandip-dev07/ujjivana/pkg/monitoring"
	"github.com/Chirandip-dev07/ujjivana/pkg/security"
	"github.com/Chirandip-dev07/ujjivana/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *mongo.Database
	Redis    *redis.Client
	services *services
}

type repositories struct {
	user       *repository.UserRepository
	module     *repository.ModuleRepository
	progress   *repository.ProgressRepository
	quiz       *repository.QuizRepository
	attempt    *repository.QuizAttemptRepository
	challenge  *repository.ChallengeRepository
	reward     *repository.RewardRepository
	redemption *repository.RedemptionRepository
	survey     *repository.SurveyRepository
	event      *repository.EventRepository
	ecoPin     *repository.EcoPinRepository
	pinRequest *repository.PinRequestRepository
	otp        *repository.OTPStore
}

type services struct {
	points      *service.PointsService
	auth        *service.AuthService
	user        *service.UserService
	learning    *service.LearningService
	quiz        *service.QuizService
	challenge   *service.ChallengeService
	reward      *service.RewardService
	survey      *service.SurveyService
	event       *service.EventService
	ecoMap      *service.EcoMapService
	leaderboard *service.LeaderboardService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	module      *controller.ModuleController
	quiz        *controller.QuizController
	challenge   *controller.ChallengeController
	reward      *controller.RewardController
	survey      *controller.SurveyController
	event       *controller.EventController
	ecoMap      *controller.EcoMapController
	leaderboard *controller.LeaderboardController
	health      *controller.HealthController
}

func (a *App) initRepositories(db *mongo.Database, rdb *redis.Client) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		module:     repository.NewModuleRepository(db),
		progress:   repository.NewProgressRepository(db),
		quiz:       repository.NewQuizRepository(db),
		attempt:    repository.NewQuizAttemptRepository(db),
		challenge:  repository.NewChallengeRepository(db),
		reward:     repository.NewRewardRepository(db),
		redemption: repository.NewRedemptionRepository(db),
		survey:     repository.NewSurveyRepository(db),
		event:      repository.NewEventRepository(db),
		ecoPin:     repository.NewEcoPinRepository(db),
		pinRequest: repository.NewPinRequestRepository(db),
		otp:        repository.NewOTPStore(rdb),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.points = service.NewPointsService(repos.user)
	s.auth = service.NewAuthService(repos.user, repos.otp, cfg.JWT)
	s.user = service.NewUserService(repos.user)
	s.learning = service.NewLearningService(repos.module, repos.progress, s.points)
	s.quiz = service.NewQuizService(repos.quiz, repos.attempt, repos.progress, s.points)
	s.challenge = service.NewChallengeService(repos.challenge, s.points)
	s.reward = service.NewRewardService(repos.reward, repos.redemption, repos.user)
	s.survey = service.NewSurveyService(repos.survey, s.points)
	s.event = service.NewEventService(repos.event, s.points)
	s.ecoMap = service.NewEcoMapService(repos.ecoPin, repos.pinRequest)
	s.leaderboard = service.NewLeaderboardService(repos.user, rdb)

	return s
}

func (a *App) initControllers(s *services, db *mongo.Database) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		user:        controller.NewUserController(s.user),
		module:      controller.NewModuleController(s.learning),
		quiz:        controller.NewQuizController(s.quiz),
		challenge:   controller.NewChallengeController(s.challenge),
		reward:      controller.NewRewardController(s.reward),
		survey:      controller.NewSurveyController(s.survey),
		event:       controller.NewEventController(s.event),
		ecoMap:      controller.NewEcoMapController(s.ecoMap),
		leaderboard: controller.NewLeaderboardController(s.leaderboard),
		health:      controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 300
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// NewApp wires the whole application. EnsureAdmin runs when the binary was
// started with -provision-admin.
func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(ginMode(cfg.Server.Mode))

	db, err := database.InitMongo(&cfg.Mongo)
	if err != nil {
		logger.Log.Fatal("Failed to initialize MongoDB", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	if cfg.ProvisionAdmin {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := services.user.EnsureAdmin(ctx, cfg.Admin); err != nil {
			logger.Log.Fatal("Failed to provision admin account", zap.Error(err))
		}
	}

	monitoring.Init()

	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("ujjivana", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

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

	database.Disconnect(a.DB)
	log.Println("Server exiting")
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
