package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/cecomp/central-compras/pkg/config"
	"github.com/cecomp/central-compras/pkg/logger"
	"github.com/go-redis/redis/v8"
)

// Client cliente global (nil quando o Redis está desabilitado ou inacessível)
var Client *redis.Client

// Init conecta ao Redis. Falhas degradam para o modo só-banco sem impedir a subida.
func Init(cfg *config.RedisConfig) error {
	if !cfg.Enabled {
		logger.Info("Redis is disabled in config - using database mode")
		return nil
	}

	cfg.SetDefaults()

	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  time.Duration(cfg.ConnectTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ConnectTimeout)*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return fmt.Errorf("failed to connect to Redis at %s:%d: %w (will use database mode)", cfg.Host, cfg.Port, err)
	}

	Client = client
	logger.Infof("Connected to Redis at %s:%d (DB: %d, PoolSize: %d)", cfg.Host, cfg.Port, cfg.DB, cfg.PoolSize)
	return nil
}

func Close() error {
	if Client == nil {
		return nil
	}
	err := Client.Close()
	Client = nil
	return err
}

// IsEnabled Redis configurado e conectado
func IsEnabled() bool {
	return Client != nil
}
