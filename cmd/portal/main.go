package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobportal/portal-client/internal/api"
	"github.com/jobportal/portal-client/internal/api/handler"
	"github.com/jobportal/portal-client/internal/api/metrics"
	"github.com/jobportal/portal-client/internal/core/guard"
	"github.com/jobportal/portal-client/internal/core/ports"
	"github.com/jobportal/portal-client/internal/core/service"
	"github.com/jobportal/portal-client/internal/core/state"
	"github.com/jobportal/portal-client/internal/infrastructure/apiclient"
	mongodb "github.com/jobportal/portal-client/internal/infrastructure/db/mongo"
	redisdb "github.com/jobportal/portal-client/internal/infrastructure/db/redis"
	"github.com/jobportal/portal-client/internal/infrastructure/navigation"
	"github.com/jobportal/portal-client/internal/infrastructure/notify"
	"github.com/jobportal/portal-client/internal/infrastructure/queue"
	"github.com/jobportal/portal-client/internal/pkg/config"
	"github.com/jobportal/portal-client/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "portal-shell",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("portal shell stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	client, err := apiclient.New(cfg.Portal.BaseURL, cfg.Portal.RequestTimeout, logger.Component("apiclient"))
	if err != nil {
		return err
	}

	readiness := map[string]handler.Pinger{"portal": client.Ping}
	repo, closeRepo, err := sessionRepository(ctx, cfg, readiness)
	if err != nil {
		return err
	}
	defer closeRepo()

	var recorder metrics.Recorder
	store := state.NewStore()
	g := guard.New()
	nav := navigation.New(g, store, "/", logger.Component("navigator"))
	nav.SetObserver(recorder)
	feed := notify.NewFeed(notify.DefaultCapacity, logger.Component("notify"))

	sessions := service.NewSessionService(client, store, nav, feed, client, repo, logger.Component("session"))
	if restored, err := sessions.Rehydrate(ctx); err != nil {
		log.Warn().Err(err).Msg("session rehydrate failed")
	} else if restored {
		log.Info().Str("location", nav.Navigate(nav.Location())).Msg("resuming restored session")
	}
	sessions.Watch(ctx)

	forms := service.NewForms(store)
	pipeline := service.NewPipeline(client, store, nav, feed, logger.Component("pipeline"),
		service.WithTimeout(cfg.Portal.RequestTimeout),
		service.WithObserver(recorder),
	)

	workers, cancelWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Portal.FetchWorkers, logger.Component("queue"))
	dispatcher.Start(workers)
	defer func() {
		cancelWorkers()
		dispatcher.Wait()
	}()

	fetcher := service.NewFetchService(client, store, logger.Component("fetch"),
		service.WithQueue(dispatcher),
		service.WithFetchObserver(recorder),
		service.WithFetchTimeout(cfg.Portal.RequestTimeout),
	)

	e := api.NewRouter(api.Deps{
		Guard:     g,
		State:     store,
		Navigator: nav,
		Fetcher:   fetcher,
		Drafts:    service.NewDrafts(forms),
		Forms:     forms,
		Submitter: pipeline,
		Session:   sessions,
		Notices:   feed,
		Redirects: recorder,
		Readiness: readiness,
		Logger:    logger.Component("shell"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("portal", cfg.Portal.BaseURL).Msg("portal shell listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	log.Info().Msg("shutting down")
	return e.Shutdown(shutdownCtx)
}

// sessionRepository connects the configured persistence backend and
// registers its readiness probe. The none backend yields a nil repository.
func sessionRepository(ctx context.Context, cfg *config.Config, readiness map[string]handler.Pinger) (ports.SessionRepository, func(), error) {
	switch cfg.Session.Backend {
	case config.BackendRedis:
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		readiness["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		return redisdb.NewSessionRepository(rdb, cfg.Session.Name), func() { _ = rdb.Close() }, nil

	case config.BackendMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, nil, err
		}
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, err
		}
		readiness["mongodb"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }
		return mongodb.NewSessionRepository(db, cfg.Session.Name), func() { _ = client.Disconnect(context.Background()) }, nil

	default:
		return nil, func() {}, nil
	}
}
