package bootstrap

import (
	"context"
	"database/sql"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"garden-backend/internal/llm"
	"garden-backend/internal/llm/doagent"
	"garden-backend/internal/recommendations"
	"garden-backend/internal/requestlog"
	"garden-backend/internal/shared/config"
	"garden-backend/internal/shared/server"
	"garden-backend/internal/shared/storage/db"
	"garden-backend/internal/shared/storage/object"
	s3store "garden-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies, constructed once at startup and injected into
// the router.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	LLM         llm.Client
	Store       object.ObjectStore
	LogRepo     requestlog.Repo
	LogService  *requestlog.Service
	RecoService *recommendations.Service
}

// Build prepares shared dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store := buildStore(ctx, cfg)

	var logRepo requestlog.Repo
	if sqlDB != nil {
		logRepo = &requestlog.PGRepo{DB: sqlDB}
	} else {
		logRepo = requestlog.NewMemoryRepo()
	}
	logSvc := &requestlog.Service{Repo: logRepo, Store: store}

	llmClient := doagent.New(
		cfg.LLMAPIKey,
		cfg.LLMEndpoint,
		cfg.LLMModel,
		time.Duration(cfg.LLMTimeoutSeconds)*time.Second,
		cfg.LLMMaxTokens,
	)
	if !llmClient.Configured() {
		log.Printf("bootstrap: LLM credentials missing; recommendation endpoint will return 503")
	}

	recoSvc := &recommendations.Service{LLM: llmClient, Logs: logSvc}

	app := &App{
		Config:      cfg,
		DB:          sqlDB,
		LLM:         llmClient,
		Store:       store,
		LogRepo:     logRepo,
		LogService:  logSvc,
		RecoService: recoSvc,
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:                cfg,
		RecommendationHandler: recommendations.NewHandler(recoSvc),
		LogHandler:            requestlog.NewHandler(logSvc),
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory request log")
			return nil, nil
		}
		return nil, errMissingDatabaseURL
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory request log: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}

// buildStore returns nil when Spaces is not configured; the log service treats
// a nil store as "mirror disabled".
func buildStore(ctx context.Context, cfg config.Config) object.ObjectStore {
	if !cfg.SpacesConfigured() {
		log.Printf("bootstrap: object storage not configured; log backup disabled")
		return nil
	}
	store, err := s3store.New(ctx, cfg.SpacesKey, cfg.SpacesSecret, cfg.SpacesEndpoint, cfg.SpacesRegion, cfg.SpacesBucket)
	if err != nil {
		log.Printf("bootstrap: object storage init failed; log backup disabled: %v", err)
		return nil
	}
	return store
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
