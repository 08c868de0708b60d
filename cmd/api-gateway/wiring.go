package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/college-portal-api/internal/repository"
	"github.com/noah-isme/college-portal-api/internal/service"
	"github.com/noah-isme/college-portal-api/pkg/breaker"
	"github.com/noah-isme/college-portal-api/pkg/cache"
	"github.com/noah-isme/college-portal-api/pkg/config"
	"github.com/noah-isme/college-portal-api/pkg/database"
	"github.com/noah-isme/college-portal-api/pkg/docstore"
	"github.com/noah-isme/college-portal-api/pkg/jobs"
)

type stateStore interface {
	service.StateStore
	Ping(ctx context.Context) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

func newStateStore(ctx context.Context, cfg *config.Config, logr *zap.Logger) (stateStore, func(), error) {
	switch cfg.State.Backend {
	case config.StateBackendMemory:
		logr.Warn("navigation state kept in memory; it will not survive restarts")
		return repository.NewMemoryStateRepository(), func() {}, nil
	case config.StateBackendRedis, "":
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewRedisStateRepository(client, cfg.State.KeyPrefix, cfg.State.TTL, logr)
		return repo, func() { _ = repo.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown state backend %q", cfg.State.Backend)
	}
}

type visitorSync struct {
	queue  *jobs.Queue
	pinger pinger
	closer func()
}

func (v *visitorSync) close() {
	v.queue.Stop()
	if v.closer != nil {
		v.closer()
	}
}

// newVisitorSync returns nil when no external directory is configured.
func newVisitorSync(ctx context.Context, cfg *config.Config, metrics *service.MetricsService, logr *zap.Logger) (*visitorSync, error) {
	var (
		directory service.VisitorDirectory
		health    pinger
		closer    func()
		name      string
	)

	switch cfg.VisitorSync.Driver {
	case config.SyncDriverNone, "":
		return nil, nil
	case config.SyncDriverPostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		repo := repository.NewVisitorRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		directory, health, name = repo, repo, "PostgreSQL-Visitors"
		closer = func() { _ = db.Close() }
	case config.SyncDriverFirestore:
		client, err := docstore.NewFirestore(ctx, cfg.Firestore)
		if err != nil {
			return nil, err
		}
		repo := repository.NewFirestoreVisitorRepository(client, cfg.Firestore.Collection)
		directory, name = repo, "Firestore-Visitors"
		closer = func() { _ = repo.Close() }
	default:
		return nil, fmt.Errorf("unknown visitor sync driver %q", cfg.VisitorSync.Driver)
	}

	cb := breaker.New(breaker.Settings{Name: name}, logr)
	worker := service.NewVisitorSyncWorker(directory, cb, metrics, logr)
	queue := jobs.NewQueue("visitor-sync", worker.Handle, jobs.QueueConfig{
		Workers:    cfg.VisitorSync.Workers,
		BufferSize: cfg.VisitorSync.BufferSize,
		MaxRetries: cfg.VisitorSync.Retries,
		RetryDelay: cfg.VisitorSync.RetryDelay,
		Timeout:    cfg.VisitorSync.Timeout,
		Logger:     logr,
		OnDrop:     worker.Dropped,
	})

	return &visitorSync{queue: queue, pinger: health, closer: closer}, nil
}
