package main

import (
	"context"
	"database/sql"
	"html/template"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/golang-cz/devslog"
	_ "github.com/lib/pq"

	"bloghost/internal/auth"
	"bloghost/internal/config"
	"bloghost/internal/core"
	"bloghost/internal/dns"
	"bloghost/internal/tenant"
	"bloghost/internal/utils/databaseutils"
	"bloghost/models"
)

// contentStore is the slice of the repository consumed by the handlers.
type contentStore interface {
	GetBlogBySubdomain(ctx context.Context, subdomain string) (*models.Blog, error)
	GetBlogByUserID(ctx context.Context, userID int64) (*models.Blog, error)
	CreateBlog(ctx context.Context, blog *models.Blog) error
	UpdateBlog(ctx context.Context, blog *models.Blog) error

	GetPublishedPosts(ctx context.Context, blogID int64) ([]*models.Post, error)
	GetPosts(ctx context.Context, blogID int64) ([]*models.Post, error)
	GetPublishedPostBySlug(ctx context.Context, blogID int64, slug string) (*models.Post, error)
	GetPostByID(ctx context.Context, id int64) (*models.Post, error)
	CreatePost(ctx context.Context, post *models.Post) (*models.Post, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id int64) error

	CreateNewUser(ctx context.Context, user *auth.User) error
	GetUserByEmail(ctx context.Context, email string) (*auth.User, error)
}

// dnsProvisioner requests DNS record creation for tenant subdomains.
// Calls are fire-and-forget: nobody waits for propagation.
type dnsProvisioner interface {
	SetRecord(ctx context.Context, recordType, name string) error
}

type application struct {
	config    *config.Config
	logger    *slog.Logger
	store     contentStore
	auth      *auth.Auth
	resolver  *tenant.Resolver
	dns       dnsProvisioner
	templates map[string]*template.Template
	wg        sync.WaitGroup
}

func main() {
	logger := configLogger()
	logger.Info("Starting application...")

	cfg := config.Load()

	db, err := openDBConnection(cfg.DSN)
	if err != nil {
		logger.Error("Errors opening database connection", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Errors closing database connection", "error", err.Error())
			os.Exit(1)
		}
	}()

	logger.Info("Database connection established successfully")

	templates, err := newTemplateCache()
	if err != nil {
		logger.Error("Errors building template cache", "error", err.Error())
		os.Exit(1)
	}

	sqlTemplate := databaseutils.NewSQLTemplate(db, 3*time.Second)

	app := &application{
		config:    cfg,
		logger:    logger,
		store:     core.NewCore(db, logger, sqlTemplate),
		auth:      auth.New(cfg.JWTSecret),
		resolver:  tenant.NewResolver(cfg.RootLabel, cfg.Scheme),
		dns:       dns.NewClient(cfg.CloudflareAPIToken, cfg.CloudflareZoneID, cfg.CanonicalHost),
		templates: templates,
	}

	if err := app.serve(); err != nil {
		logger.Error("Errors starting server", "error", err.Error())
		os.Exit(1)
	}
}

func configLogger() *slog.Logger {
	handler := devslog.NewHandler(
		os.Stdout, &devslog.Options{
			HandlerOptions: &slog.HandlerOptions{
				AddSource: true,
				Level:     slog.LevelDebug,
			},
			NewLineAfterLog: false,
		})

	return slog.New(handler)
}

func openDBConnection(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxIdleConns(10)
	db.SetConnMaxIdleTime(10 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	return db, nil
}
