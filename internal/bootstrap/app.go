package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	googleauth "gatorguide-backend/internal/auth"
	"gatorguide-backend/internal/colleges"
	"gatorguide-backend/internal/llm"
	openai "gatorguide-backend/internal/llm/openai"
	"gatorguide-backend/internal/profiles"
	"gatorguide-backend/internal/recommend"
	"gatorguide-backend/internal/shared/config"
	"gatorguide-backend/internal/shared/server"
	"gatorguide-backend/internal/shared/storage/db"
	"gatorguide-backend/internal/shared/storage/object"
	localstore "gatorguide-backend/internal/shared/storage/object/local"
	s3store "gatorguide-backend/internal/shared/storage/object/s3"
	"gatorguide-backend/internal/transcripts"
)

// App holds shared dependencies.
type App struct {
	Config             config.Config
	Router             *gin.Engine
	DB                 *sql.DB
	Store              object.ObjectStore
	Provider           colleges.Provider
	LLM                llm.Client
	ProfilesRepo       profiles.Repo
	HistoryRepo        recommend.HistoryRepo
	TranscriptsRepo    transcripts.Repo
	ProfilesService    *profiles.Service
	Engine             *recommend.Engine
	RecommendService   *recommend.Service
	TranscriptsService *transcripts.Service
	ProfileHandler     *profiles.Handler
	CollegeHandler     *colleges.Handler
	RecommendHandler   *recommend.Handler
	TranscriptHandler  *transcripts.Handler
	GoogleAuth         *googleauth.GoogleService
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            app.Config,
		ProfileHandler:    app.ProfileHandler,
		CollegeHandler:    app.CollegeHandler,
		RecommendHandler:  app.RecommendHandler,
		TranscriptHandler: app.TranscriptHandler,
		GoogleAuth:        app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

// buildProvider picks the candidate source: the Scorecard API backed by
// the catalog, the catalog alone, or bundled fixtures. The engine records
// which source answered but never depends on it.
func buildProvider(cfg config.Config, sqlDB *sql.DB) colleges.Provider {
	fixtures := colleges.NewMemoryRepoWith(colleges.FixtureSet())

	var catalog colleges.Provider = fixtures
	if sqlDB != nil {
		catalog = &colleges.FallbackProvider{Primary: &colleges.PGRepo{DB: sqlDB}, Secondary: fixtures}
	}

	switch cfg.CollegeSource {
	case "scorecard":
		scorecard, err := colleges.NewScorecardClient(cfg.ScorecardAPIKey, "")
		if err != nil {
			log.Printf("bootstrap: scorecard client unavailable; using catalog: %v", err)
			return catalog
		}
		return &colleges.FallbackProvider{Primary: scorecard, Secondary: catalog}
	case "fixtures":
		return fixtures
	default:
		return catalog
	}
}

func buildServices(app *App) {
	if app.DB != nil {
		app.ProfilesRepo = &profiles.PGRepo{DB: app.DB}
		app.HistoryRepo = &recommend.PGHistoryRepo{DB: app.DB}
		app.TranscriptsRepo = &transcripts.PGRepo{DB: app.DB}
	} else {
		app.ProfilesRepo = profiles.NewMemoryRepo()
		app.HistoryRepo = recommend.NewMemoryHistoryRepo()
		app.TranscriptsRepo = transcripts.NewMemoryRepo()
	}

	app.ProfilesService = profiles.NewService(app.ProfilesRepo)
	app.Provider = buildProvider(app.Config, app.DB)

	if app.Config.LLMProvider == "openai" && app.Config.LLMModel != "" {
		client, err := openai.NewClient(app.Config.OpenAIAPIKey, app.Config.LLMModel)
		if err != nil {
			log.Printf("bootstrap: llm client unavailable; scoring without AI factors: %v", err)
		} else {
			app.LLM = client
		}
	}

	app.Engine = recommend.NewEngine(
		app.Provider,
		app.LLM,
		app.Config.FallbackState,
		time.Duration(app.Config.AITimeoutSeconds)*time.Second,
	)
	app.RecommendService = recommend.NewService(app.Engine, app.ProfilesService, app.HistoryRepo)
	app.TranscriptsService = &transcripts.Service{
		Store:    app.Store,
		Repo:     app.TranscriptsRepo,
		Profiles: app.ProfilesService,
	}

	app.ProfileHandler = profiles.NewHandler(app.ProfilesService)
	app.CollegeHandler = colleges.NewHandler(app.Provider)
	app.RecommendHandler = recommend.NewHandler(app.RecommendService)
	app.TranscriptHandler = transcripts.NewHandler(app.TranscriptsService)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.ProfilesService,
	)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
