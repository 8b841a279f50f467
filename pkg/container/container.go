package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"cms-backend/internal/config"
	infraCache "cms-backend/internal/infrastructure/cache"
	"cms-backend/internal/infrastructure/database"
	"cms-backend/internal/infrastructure/storage"
	"cms-backend/pkg/cache"
	"cms-backend/pkg/jwt"

	"cms-backend/internal/domains/blog"
	blogHandler "cms-backend/internal/domains/blog/handler"
	blogRepo "cms-backend/internal/domains/blog/repository"
	blogService "cms-backend/internal/domains/blog/service"
	"cms-backend/internal/domains/photography"
	photoHandler "cms-backend/internal/domains/photography/handler"
	photoRepo "cms-backend/internal/domains/photography/repository"
	photoService "cms-backend/internal/domains/photography/service"
	"cms-backend/internal/domains/user"
	userHandler "cms-backend/internal/domains/user/handler"
	userRepo "cms-backend/internal/domains/user/repository"
	userService "cms-backend/internal/domains/user/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton living for the whole process.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================

	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	Storage    *storage.MinIOStorage
	JWTManager *jwt.Manager

	// ========================================
	// REPOSITORY LAYER
	// ========================================

	UserRepo        user.Repository
	BlogRepo        blog.Repository
	PhotographyRepo photography.Repository

	// ========================================
	// SERVICE LAYER
	// ========================================

	UserService        user.Service
	BlogService        blog.Service
	PhotographyService photography.Service

	// ========================================
	// HANDLER LAYER
	// ========================================

	UserHandler        *userHandler.UserHandler
	BlogHandler        *blogHandler.BlogHandler
	PhotographyHandler *photoHandler.PhotographyHandler
}

// NewContainer builds the whole dependency graph. Initialization order
// matters: config, infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	// ========================================
	// STEP 1: CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("[CONTAINER] Config loaded (environment: %s)", cfg.App.Environment)

	// ========================================
	// STEP 2: DATABASE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Println("[CONTAINER] Database ready")

	// ========================================
	// STEP 3: CACHE
	// ========================================
	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)

	// redis failure is non-critical: the cache degrades to pass-through
	// misses, it never takes the API down
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			log.Printf("[CONTAINER] Redis connection failed (non-critical): %v", err)
		}
	}
	c.Cache = redisCache

	// ========================================
	// STEP 4: OBJECT STORAGE + JWT
	// ========================================
	objectStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Storage = objectStorage

	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Hour,
	)

	// ========================================
	// STEP 5: REPOSITORIES
	// ========================================
	c.UserRepo = userRepo.NewPostgresRepository(c.DB.Pool, c.Cache)
	c.BlogRepo = blogRepo.NewPostgresRepository(c.DB.Pool)
	c.PhotographyRepo = photoRepo.NewPostgresRepository(c.DB.Pool)

	// ========================================
	// STEP 6: SERVICES
	// ========================================
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)
	c.BlogService = blogService.NewBlogService(c.BlogRepo, c.UserRepo)
	c.PhotographyService = photoService.NewPhotographyService(c.PhotographyRepo)

	// ========================================
	// STEP 7: HANDLERS
	// ========================================
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.BlogHandler = blogHandler.NewBlogHandler(c.BlogService, c.Storage)
	c.PhotographyHandler = photoHandler.NewPhotographyHandler(c.PhotographyService, c.Storage)

	log.Println("[CONTAINER] Dependency graph initialized")
	return c, nil
}

// Cleanup releases resources on shutdown; called from the graceful
// shutdown path.
func (c *Container) Cleanup() {
	if c.DB != nil && c.DB.Pool != nil {
		c.DB.Pool.Close()
		log.Println("[CONTAINER] Database connections closed")
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				log.Printf("[CONTAINER] Failed to close redis: %v", err)
			} else {
				log.Println("[CONTAINER] Redis connections closed")
			}
		}
	}
}
