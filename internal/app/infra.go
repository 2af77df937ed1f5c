package app

import (
	"context"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dainouesuketarou/subsc-manager-sub001/internal/apperr"
	"github.com/dainouesuketarou/subsc-manager-sub001/internal/config"
	"github.com/dainouesuketarou/subsc-manager-sub001/internal/logger"
	"github.com/dainouesuketarou/subsc-manager-sub001/internal/redis"
	"github.com/dainouesuketarou/subsc-manager-sub001/internal/subscription"
)

type Infra struct {
	DB    *gorm.DB
	Redis *redis.Client // nil when redis is not configured or unreachable
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, apperr.Connection("open database", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, apperr.Init("database pool", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, apperr.Connection("ping database", err)
	}

	if err := db.WithContext(ctx).AutoMigrate(&subscription.Subscription{}); err != nil {
		return nil, apperr.Init("migrate schema", err)
	}

	logger.Info("database ready", nil)

	infra := &Infra{DB: db}

	// The identity cache is an optimization; the server runs without it.
	if cfg.RedisAddr != "" {
		redisClient, err := redis.New(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logger.Warn("redis unavailable, identity cache disabled", map[string]any{
				"error": err.Error(),
			})
		} else {
			infra.Redis = redisClient
			logger.Info("redis ready", nil)
		}
	}

	return infra, nil
}

func (i *Infra) Close() error {
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	sqlDB, err := i.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
