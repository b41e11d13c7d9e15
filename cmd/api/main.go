package main

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"freelancebid/internal/adapter/api"
	"freelancebid/internal/adapter/api/handler"
	apimiddleware "freelancebid/internal/adapter/api/middleware"
	"freelancebid/internal/adapter/api/router"
	"freelancebid/internal/adapter/repository"
	domainrepo "freelancebid/internal/domain/repository"
	"freelancebid/internal/infrastructure/cache"
	"freelancebid/internal/infrastructure/firebase"
	"freelancebid/internal/infrastructure/ratelimit"
	"freelancebid/internal/usecase"
	"freelancebid/pkg/config"
	"freelancebid/pkg/logger"
)

type stores struct {
	projects      domainrepo.ProjectRepository
	users         domainrepo.UserRepository
	notifications domainrepo.NotificationRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var (
		repos          stores
		firebaseVerify *firebase.FirebaseAuthClient
	)

	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Info("Using in-memory storage")
		store := repository.NewMemoryStore()
		if err := repository.SeedDemoData(ctx, store, cfg.DevAdminUID); err != nil {
			log.Fatalf("Failed to seed memory store: %v", err)
		}
		repos = stores{
			projects:      store.Projects(),
			users:         store.Users(),
			notifications: store.Notifications(),
		}

	case config.StorageFirestore:
		opt := credentialsOption(cfg)

		firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}

		authClient, err := firebaseApp.Auth(ctx)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase Auth: %v", err)
		}
		firebaseVerify = firebase.NewFirebaseAuthClient(authClient)

		firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
		if err != nil {
			log.Fatalf("Failed to create Firestore client: %v", err)
		}
		defer firestoreClient.Close()

		repos = stores{
			projects:      repository.NewFirestoreProjectRepository(firestoreClient),
			users:         repository.NewFirestoreUserRepository(firestoreClient),
			notifications: repository.NewFirestoreNotificationRepository(firestoreClient),
		}

	default:
		log.Fatalf("Unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	directory := repository.NewUserDirectory(repos.users)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			logger.Warn("Redis at %s is not reachable, lookups will fall through: %v", cfg.RedisAddr, err)
		}
		cancel()

		directory = cache.NewDirectoryCache(rdb, directory, cfg.DirectoryCacheTTL)
		logger.Info("Directory cache enabled at %s (ttl %s)", cfg.RedisAddr, cfg.DirectoryCacheTTL)
	}

	limiter := ratelimit.NewRateLimiter(ratelimit.Policy{
		Rate:  rate.Limit(cfg.AdminRateLimitRPS),
		Burst: cfg.AdminRateLimitBurst,
	})
	limiter.StartCleanupRoutine(ctx, 30*time.Minute)

	fraudReportUseCase := usecase.NewFraudReportUseCase(repos.projects, repos.users, repos.notifications, directory)
	complaintUseCase := usecase.NewComplaintUseCase(repos.projects, repos.users, repos.notifications)

	// COMPLAINTS_PER_HOUR=0 disables the filing limit
	if cfg.ComplaintsPerHour > 0 {
		limiter.SetPolicy(ratelimit.ActionFileComplaint, ratelimit.Policy{
			Rate:  rate.Every(time.Hour / time.Duration(cfg.ComplaintsPerHour)),
			Burst: cfg.ComplaintsPerHour,
		})
		complaintUseCase.WithLimiter(limiter)
	}

	handlers := handler.Handlers{
		FraudReport: handler.NewFraudReportHandler(fraudReportUseCase, cfg.DefaultPageLimit),
		Complaint:   handler.NewComplaintHandler(complaintUseCase),
		Health:      handler.NewHealthHandler(cfg.StorageDriver, firebaseVerify != nil),
	}

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(tokenVerifier(cfg, firebaseVerify))
	adminMiddleware := apimiddleware.NewAdminMiddleware(repos.users)

	router.Setup(e, handlers, authMiddleware, adminMiddleware, limiter)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}

func credentialsOption(cfg *config.Config) option.ClientOption {
	if cfg.ServiceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		return option.WithCredentialsJSON([]byte(cfg.ServiceAccountJSON))
	}
	if cfg.ServiceAccountPath == "" {
		log.Fatalf("FIREBASE_SERVICE_ACCOUNT_JSON or FIREBASE_SERVICE_ACCOUNT_PATH is required for firestore storage")
	}
	log.Printf("Using Firebase service account from file: %s", cfg.ServiceAccountPath)
	return option.WithCredentialsFile(cfg.ServiceAccountPath)
}

// tokenVerifier accepts the static dev token in development only.
func tokenVerifier(cfg *config.Config, firebaseVerify *firebase.FirebaseAuthClient) apimiddleware.TokenVerifier {
	devToken := ""
	if cfg.IsDevelopment() {
		devToken = cfg.DevAdminToken
	}

	if firebaseVerify == nil {
		return firebase.NewDevTokenVerifier(devToken, cfg.DevAdminUID, nil)
	}
	return firebase.NewDevTokenVerifier(devToken, cfg.DevAdminUID, firebaseVerify)
}
