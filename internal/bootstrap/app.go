package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"contentpilot/internal/config"
	"contentpilot/internal/model"
	mysqlClient "contentpilot/internal/platform/mysql"
	rabbitmqClient "contentpilot/internal/platform/rabbitmq"
	redisClient "contentpilot/internal/platform/redis"
	"contentpilot/internal/repository"
	"contentpilot/internal/vectorstore"
	"contentpilot/internal/worker"
)

type App struct {
	Config      *config.Config
	MySQL       *gorm.DB
	Redis       *redis.Client
	MQConn      *amqp.Connection
	EntryWorker *worker.EntryPersistWorker
	VectorStore vectorstore.Store

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN())
	if err != nil {
		return nil, err
	}
	if err := mysqlDB.AutoMigrate(&model.ConversationEntry{}); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.EntryPersistQueue)
	if err != nil {
		return nil, err
	}

	entryRepo := repository.NewEntryRepository(mysqlDB)
	entryWorker := worker.NewEntryPersistWorker(mqConn, entryRepo, cfg.RabbitMQ.EntryPersistQueue)
	if err := entryWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start entry worker failed: %w", err)
	}

	// Open never fails: it walks the fallback chain down to the
	// in-process store.
	store := vectorstore.Open(cfg.Storage.Path)

	return &App{
		Config:      cfg,
		MySQL:       mysqlDB,
		Redis:       redisCli,
		MQConn:      mqConn,
		EntryWorker: entryWorker,
		VectorStore: store,
		StartedAt:   time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.EntryWorker != nil {
		a.EntryWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.VectorStore != nil {
		if err := a.VectorStore.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
