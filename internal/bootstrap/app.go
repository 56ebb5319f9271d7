package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "compliance-backend/internal/auth"
	"compliance-backend/internal/catalog"
	"compliance-backend/internal/employeedocs"
	"compliance-backend/internal/employees"
	"compliance-backend/internal/queue"
	"compliance-backend/internal/resolution"
	"compliance-backend/internal/scans"
	"compliance-backend/internal/shared/config"
	"compliance-backend/internal/shared/server"
	"compliance-backend/internal/shared/storage/db"
	"compliance-backend/internal/users"
	"compliance-backend/internal/shared/storage/object"
	localstore "compliance-backend/internal/shared/storage/object/local"
	s3store "compliance-backend/internal/shared/storage/object/s3"
	"compliance-backend/internal/vision"
	visionopenai "compliance-backend/internal/vision/openai"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Queue  queue.Client

	CatalogRepo  catalog.Repo
	EmployeeRepo employees.Repo
	DocsRepo     employeedocs.Repo
	ScanRepo     scans.Repo
	UserRepo     users.Repo

	CatalogService  *catalog.Service
	EmployeeService *employees.Service
	DocsService     *employeedocs.Service
	ScanService     *scans.Service
	UserService     *users.Service
	ScanProcessor   ScanProcessor

	CatalogHandler  *catalog.Handler
	EmployeeHandler *employees.Handler
	DocsHandler     *employeedocs.Handler
	ScanHandler     *scans.Handler
	UserHandler     *users.Handler
	GoogleAuth      *googleauth.GoogleService
}

// ScanProcessor allows callers to override batch processing for tests.
type ScanProcessor interface {
	ProcessBatch(ctx context.Context, batchID string) error
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

	queueClient, err := buildQueue(ctx)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Queue:  queueClient,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		CatalogHandler:  app.CatalogHandler,
		EmployeeHandler: app.EmployeeHandler,
		DocsHandler:     app.DocsHandler,
		ScanHandler:     app.ScanHandler,
		UserHandler:     app.UserHandler,
		GoogleAuth:      app.GoogleAuth,
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

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		opts := db.OptionsFromEnv(db.DefaultLambdaOptions())
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
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

func buildQueue(ctx context.Context) (queue.Client, error) {
	if strings.TrimSpace(os.Getenv("CP_SQS_QUEUE_URL")) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	var catalogRepo catalog.Repo
	var employeeRepo employees.Repo
	var docsRepo employeedocs.Repo
	var scanRepo scans.Repo
	var userRepo users.Repo

	if app.DB != nil {
		catalogRepo = &catalog.PGRepo{DB: app.DB}
		employeeRepo = &employees.PGRepo{DB: app.DB}
		docsRepo = &employeedocs.PGRepo{DB: app.DB}
		scanRepo = &scans.PGRepo{DB: app.DB}
		userRepo = &users.PGRepo{DB: app.DB}
	} else {
		catalogRepo = catalog.NewMemoryRepo()
		employeeRepo = employees.NewMemoryRepo()
		docsRepo = employeedocs.NewMemoryRepo()
		scanRepo = scans.NewMemoryRepo()
		userRepo = users.NewMemoryRepo()
	}

	visionClient := vision.Client(vision.PlaceholderClient{})
	if app.Config.VisionProvider == "openai" {
		client, err := visionopenai.NewClient(os.Getenv("OPENAI_API_KEY"), app.Config.VisionModel)
		if err != nil {
			return err
		}
		visionClient = client
	}

	catalogSvc := catalog.NewService(catalogRepo)
	employeeSvc := employees.NewService(employeeRepo)
	docsSvc := employeedocs.NewService(docsRepo)
	userSvc := users.NewService(userRepo)

	scanSvc := &scans.Service{
		Repo:           scanRepo,
		Catalog:        catalogSvc,
		Docs:           docsSvc,
		Store:          app.Store,
		Vision:         visionClient,
		Engine:         resolution.NewEngine(),
		Queue:          app.Queue,
		InterCallDelay: app.Config.ScanInterCallDelay,
	}

	googleAuthSvc := googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
	)
	googleAuthSvc.Users = userSvc

	app.CatalogRepo = catalogRepo
	app.EmployeeRepo = employeeRepo
	app.DocsRepo = docsRepo
	app.ScanRepo = scanRepo
	app.UserRepo = userRepo
	app.CatalogService = catalogSvc
	app.EmployeeService = employeeSvc
	app.DocsService = docsSvc
	app.ScanService = scanSvc
	app.UserService = userSvc
	app.ScanProcessor = scanSvc
	app.CatalogHandler = catalog.NewHandler(catalogSvc)
	app.EmployeeHandler = employees.NewHandler(employeeSvc)
	app.DocsHandler = employeedocs.NewHandler(docsSvc)
	app.ScanHandler = scans.NewHandler(scanSvc)
	app.UserHandler = users.NewHandler(userSvc)
	app.GoogleAuth = googleAuthSvc

	return nil
}
