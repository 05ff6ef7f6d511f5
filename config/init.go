package config

import (
	"context"
	"fmt"

	"rento/constants"
	"rento/middleware"
	"rento/metrics"
	"rento/services/logger"
	"rento/storage"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

const ServiceName = "rento"

// InitApp builds the router with the shared middleware chain, the websocket hub and the scheduler
func InitApp(cfg *Config, log *logger.ZapLogger) (*gin.Engine, *melody.Melody, *cron.Cron) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization")
	configCors.AllowCredentials = true
	configCors.AllowAllOrigins = false
	configCors.AllowOriginFunc = func(origin string) bool {
		return true
	}
	router.Use(cors.New(configCors))
	router.SetTrustedProxies(nil)

	metrics.Register()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(log.Zap()),
		metrics.Middleware(ServiceName),
		middleware.ErrorHandler(log),
	)

	return router, melody.New(), cron.New()
}

// Backends holds the connections opened for the configured driver
type Backends struct {
	Store storage.Store
	Redis *redis.Client
}

// OpenStorage connects the blob store selected by STORAGE_DRIVER
func OpenStorage(ctx context.Context, cfg *Config) (*Backends, error) {
	switch cfg.Storage.Driver {
	case constants.StorageFile:
		return &Backends{Store: storage.NewFileStore(cfg.Storage.DataDir)}, nil
	case constants.StorageMemory:
		return &Backends{Store: storage.NewMemoryStore()}, nil
	case constants.StorageRedis:
		rdb, err := ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return &Backends{Store: storage.NewRedisStore(rdb, cfg.Redis.KeyPrefix), Redis: rdb}, nil
	case constants.StoragePostgres:
		db, err := ConnectDB(cfg.Database)
		if err != nil {
			return nil, err
		}
		store, err := storage.NewPostgresStore(db)
		if err != nil {
			return nil, err
		}
		return &Backends{Store: store}, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

// ConnectCloudinary returns nil when CLOUDINARY_URL is unset, which disables uploads
func ConnectCloudinary(cfg CloudinaryConfig) (*cloudinary.Cloudinary, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	cld, err := cloudinary.NewFromURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return cld, nil
}
