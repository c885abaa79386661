// Package app wires configuration, storage and services into one value the
// CLI commands share.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/api"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/ports"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/service"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/infrastructure/classifier"
	mongostore "github.com/CosimoLM/InteligenciaArtificialV3/internal/infrastructure/db/mongo"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/infrastructure/db/postgres"
	redisstore "github.com/CosimoLM/InteligenciaArtificialV3/internal/infrastructure/db/redis"
	httpserver "github.com/CosimoLM/InteligenciaArtificialV3/internal/infrastructure/http"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/infrastructure/queue"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/infrastructure/storage"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/pkg/config"
)

const retrainTimeout = 10 * time.Minute

type App struct {
	Config *config.Config
	Log    zerolog.Logger

	Pool       *pgxpool.Pool
	UnitOfWork *postgres.UnitOfWorkFactory

	// Optional backends, nil when not configured.
	MongoClient *mongo.Client
	MongoDB     *mongo.Database
	Redis       *goredis.Client

	Engine     *classifier.Engine
	Classifier ports.Classifier
	Retrainer  *queue.Retrainer

	Services api.Services
}

// New connects to Postgres and builds the CRUD services. Classification
// is set up separately by InitClassification, since only some commands
// need a model.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	a := &App{Config: cfg, Log: log}

	if err := a.initDatabase(ctx); err != nil {
		return nil, err
	}
	a.initCoreServices()
	return a, nil
}

func (a *App) initDatabase(ctx context.Context) error {
	pool, err := postgres.Connect(ctx, postgres.Config{
		DSN:      a.Config.Postgres.URL,
		MaxConns: a.Config.Postgres.MaxConns,
	}, a.Log)
	if err != nil {
		return fmt.Errorf("init postgres: %w", err)
	}
	a.Pool = pool
	a.UnitOfWork = postgres.NewUnitOfWorkFactory(pool, a.Log)
	return nil
}

func (a *App) initCoreServices() {
	a.Services.Users = service.NewUserService(a.UnitOfWork, a.Log)
	a.Services.Texts = service.NewTextService(a.UnitOfWork, a.Log)
	a.Services.Predictions = service.NewPredictionService(a.UnitOfWork, a.Log)
	a.Services.Security = service.NewSecurityService(a.UnitOfWork, a.Config.JWTSecret, a.Config.TokenTTL, a.Log)
}

// Migrate applies the pending database migrations.
func (a *App) Migrate(ctx context.Context) error {
	return postgres.Migrate(ctx, a.Pool, a.Log)
}

// InitModel opens the model store and builds the engine without loading a
// model.
func (a *App) InitModel(ctx context.Context) error {
	if a.Engine != nil {
		return nil
	}
	store, err := a.modelStore(ctx)
	if err != nil {
		return fmt.Errorf("init model store: %w", err)
	}
	a.Engine = classifier.NewEngine(store, a.UnitOfWork, a.Log)
	return nil
}

func (a *App) modelStore(ctx context.Context) (ports.ModelStore, error) {
	m := a.Config.Model
	switch m.Store {
	case config.ModelStoreS3:
		return storage.NewS3Store(ctx, storage.S3Config{
			Bucket:    m.S3Bucket,
			Key:       m.S3Key,
			Region:    m.S3Region,
			Endpoint:  m.S3Endpoint,
			AccessKey: m.S3AccessKey,
			SecretKey: m.S3SecretKey,
		})
	case config.ModelStoreFile:
		return storage.NewFileStore(m.Path), nil
	default:
		return nil, fmt.Errorf("unknown model store %q", m.Store)
	}
}

// InitClassification loads or trains the model, selects the classifier
// backend and connects the optional audit and idempotency stores. The
// retrain worker is created but not started.
func (a *App) InitClassification(ctx context.Context) error {
	if err := a.InitModel(ctx); err != nil {
		return err
	}
	if err := a.Engine.EnsureModel(ctx); err != nil {
		return fmt.Errorf("init model: %w", err)
	}
	if err := a.initClassifier(); err != nil {
		return err
	}
	a.Retrainer = queue.NewRetrainer(a.Engine, retrainTimeout, a.Log)

	deps := service.ClassificationDeps{
		UnitOfWork: a.UnitOfWork,
		Classifier: a.Classifier,
		Trainer:    a.Engine,
		Retrains:   a.Retrainer,
	}

	auditor, err := a.initAudit(ctx)
	if err != nil {
		return err
	}
	if auditor != nil {
		deps.Auditor = auditor
	}

	idem, err := a.initIdempotency(ctx)
	if err != nil {
		return err
	}
	if idem != nil {
		deps.Idempotency = idem
	}

	a.Services.Classification = service.NewClassificationService(deps, a.Log)
	return nil
}

func (a *App) initClassifier() error {
	switch a.Config.Classifier.Backend {
	case config.BackendOpenAI:
		llm, err := classifier.NewOpenAIClassifier(a.Config.Classifier.OpenAIAPIKey, a.Config.Classifier.OpenAIModel, a.Engine)
		if err != nil {
			return fmt.Errorf("init classifier: %w", err)
		}
		a.Classifier = llm
		a.Log.Info().Str("backend", config.BackendOpenAI).Msg("classifier backend selected")
	default:
		a.Classifier = a.Engine
		a.Log.Info().Str("backend", config.BackendLocal).Msg("classifier backend selected")
	}
	return nil
}

// initAudit returns nil when MONGO_URI is not set.
func (a *App) initAudit(ctx context.Context) (*mongostore.PredictionAuditRepository, error) {
	if a.Config.Mongo.URI == "" {
		a.Log.Info().Msg("prediction audit disabled")
		return nil, nil
	}
	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      a.Config.Mongo.URI,
		Database: a.Config.Mongo.Database,
	}, a.Log)
	if err != nil {
		return nil, fmt.Errorf("init mongo: %w", err)
	}
	a.MongoClient = client
	a.MongoDB = db

	repo := mongostore.NewPredictionAuditRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("init prediction audit: %w", err)
	}
	return repo, nil
}

// initIdempotency returns nil when REDIS_ADDR is not set.
func (a *App) initIdempotency(ctx context.Context) (*redisstore.IdempotencyStore, error) {
	if a.Config.Redis.Addr == "" {
		a.Log.Info().Msg("idempotency keys disabled")
		return nil, nil
	}
	client, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     a.Config.Redis.Addr,
		Password: a.Config.Redis.Password,
		DB:       a.Config.Redis.DB,
	}, a.Log)
	if err != nil {
		return nil, fmt.Errorf("init redis: %w", err)
	}
	a.Redis = client
	return redisstore.NewIdempotencyStore(client, a.Config.Redis.IdempotencyTTL), nil
}

// Router builds the HTTP server. InitClassification must have run.
func (a *App) Router() *echo.Echo {
	return httpserver.NewRouter(httpserver.Config{
		Log:         a.Log,
		Development: a.Config.IsDevelopment(),
		JWTSecret:   a.Config.JWTSecret,
		Postgres:    a.Pool,
		Mongo:       a.MongoDB,
		Redis:       a.Redis,
	}, a.Services)
}

// Close releases every open connection.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if a.MongoClient != nil {
		if err := a.MongoClient.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("close mongo: %w", err))
		}
	}
	if a.Pool != nil {
		a.Pool.Close()
	}
	return errors.Join(errs...)
}
