package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chaudhari-piyush/talentlens/guide/render"
	googleauth "github.com/chaudhari-piyush/talentlens/internal/auth"
	"github.com/chaudhari-piyush/talentlens/internal/candidates"
	"github.com/chaudhari-piyush/talentlens/internal/jobs"
	"github.com/chaudhari-piyush/talentlens/internal/llm"
	"github.com/chaudhari-piyush/talentlens/internal/llm/gemini"
	"github.com/chaudhari-piyush/talentlens/internal/screening"
	"github.com/chaudhari-piyush/talentlens/internal/shared/config"
	"github.com/chaudhari-piyush/talentlens/internal/shared/server"
	"github.com/chaudhari-piyush/talentlens/internal/shared/storage/db"
	"github.com/chaudhari-piyush/talentlens/internal/shared/storage/object"
	localstore "github.com/chaudhari-piyush/talentlens/internal/shared/storage/object/local"
	s3store "github.com/chaudhari-piyush/talentlens/internal/shared/storage/object/s3"
	"github.com/chaudhari-piyush/talentlens/internal/users"
)

// App holds shared dependencies wired from configuration.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	UsersRepo      users.Repo
	JobsRepo       jobs.Repo
	CandidatesRepo candidates.Repo

	UsersService      *users.Service
	JobsService       *jobs.Service
	CandidatesService *candidates.Service
	ScanService       *screening.Service

	UsersHandler      *users.Handler
	JobsHandler       *jobs.Handler
	CandidatesHandler *candidates.Handler
	GoogleAuth        *googleauth.GoogleService
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

	if err := buildServices(ctx, app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		UserHandler:      app.UsersHandler,
		JobHandler:       app.JobsHandler,
		CandidateHandler: app.CandidatesHandler,
		GoogleAuth:       app.GoogleAuth,
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
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildLLM(ctx context.Context, cfg config.Config) llm.Client {
	client, err := gemini.New(ctx, gemini.Options{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		Timeout: cfg.GeminiTimeout,
	})
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			log.Printf("bootstrap: GEMINI_API_KEY empty; resume scans will fail until it is set")
		} else {
			log.Printf("bootstrap: gemini client unavailable: %v", err)
		}
		return nil
	}
	return client
}

func buildServices(ctx context.Context, app *App) error {
	var userRepo users.Repo
	var jobRepo jobs.Repo
	var candidateRepo candidates.Repo

	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
		jobRepo = &jobs.PGRepo{DB: app.DB}
		candidateRepo = &candidates.PGRepo{DB: app.DB}
	} else {
		userRepo = users.NewMemoryRepo()
		jobRepo = jobs.NewMemoryRepo()
		candidateRepo = candidates.NewMemoryRepo()
	}

	scanSvc := &screening.Service{
		Repo:     &candidates.ScanRepo{Candidates: candidateRepo, Jobs: jobRepo},
		Store:    app.Store,
		LLM:      buildLLM(ctx, app.Config),
		Renderer: render.NewPDFRenderer(),
	}

	userSvc := users.NewService(userRepo)
	jobSvc := jobs.NewService(jobRepo)
	candidateSvc := &candidates.Service{
		Repo:  candidateRepo,
		Jobs:  jobRepo,
		Store: app.Store,
		Scans: scanSvc,
	}

	googleAuthSvc := googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		userSvc,
	)

	app.UsersRepo = userRepo
	app.JobsRepo = jobRepo
	app.CandidatesRepo = candidateRepo
	app.UsersService = userSvc
	app.JobsService = jobSvc
	app.CandidatesService = candidateSvc
	app.ScanService = scanSvc
	app.UsersHandler = users.NewHandler(userSvc)
	app.JobsHandler = jobs.NewHandler(jobSvc)
	app.CandidatesHandler = candidates.NewHandler(candidateSvc)
	app.GoogleAuth = googleAuthSvc

	return nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
