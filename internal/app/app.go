// Package app wires configuration into a ready-to-serve HTTP handler.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/maanvikp20/promosite/internal/auth"
	"github.com/maanvikp20/promosite/internal/config"
	"github.com/maanvikp20/promosite/internal/db"
	"github.com/maanvikp20/promosite/internal/handler"
	"github.com/maanvikp20/promosite/internal/repository"
	"github.com/maanvikp20/promosite/internal/router"
	"github.com/maanvikp20/promosite/internal/service"
	"github.com/maanvikp20/promosite/internal/session"
)

const sweepInterval = time.Minute

type App struct {
	Handler http.Handler

	log     *zap.Logger
	closers []func() error
}

// New builds every layer from cfg. The caller must Close the result.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	a := &App{log: log}

	var rdb *redis.Client
	if cfg.UsesRedis() {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		a.closers = append(a.closers, rdb.Close)
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Redis.Address, err)
		}
		log.Info("connected to redis", zap.String("address", cfg.Redis.Address))
	}

	// Stores
	backend := func(file string) db.Backend {
		if cfg.Storage.Backend == config.BackendRedis {
			return db.NewRedisBackend(rdb, cfg.Redis.KeyPrefix+strings.TrimSuffix(file, ".json"))
		}
		return db.NewFileBackend(cfg.Storage.Path(file))
	}
	students := db.NewCollection(repository.StudentsCollection, backend(cfg.Storage.StudentsFile), log)
	submissions := db.NewCollection(repository.SubmissionsCollection, backend(cfg.Storage.SubmissionsFile), log)
	approved := db.NewCollection(repository.ApprovedCollection, backend(cfg.Storage.ApprovedFile), log)

	var sessions session.Store
	switch cfg.Session.Backend {
	case config.BackendRedis:
		sessions = session.NewRedisStore(rdb, cfg.Redis.KeyPrefix, cfg.Session.TTL)
	default:
		mem := session.NewMemoryStore(cfg.Session.TTL)
		mem.StartSweeper(sweepInterval)
		a.closers = append(a.closers, mem.Close)
		sessions = mem
	}

	adminHash := cfg.Admin.PasswordHash
	if adminHash == "" {
		hash, err := auth.HashPassword(cfg.Admin.Password)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
		adminHash = hash
	}

	// Repositories
	studentRepo := repository.NewStudentRepo(students)
	subRepo := repository.NewSubmissionRepo(submissions, approved)
	productRepo := repository.NewProductRepo(cfg.Storage.Path(cfg.Storage.ProductsFile))

	// Services
	studentSvc := service.NewStudentService(studentRepo, log)
	subSvc := service.NewSubmissionService(subRepo, log)
	authSvc := service.NewAuthService(cfg.Admin.Email, adminHash, sessions, cfg.Session.Secret, cfg.Session.TTL, log)
	productSvc := service.NewProductService(productRepo)

	guard := auth.NewGuard(cfg.Session.Secret, cfg.Session.CookieName, sessions, cfg.Auth.LoginRedirect, log)

	// Handlers
	dashH := handler.NewDashboardHandler(studentSvc, subSvc, log)
	studentH := handler.NewStudentHandler(studentSvc, log)
	subH := handler.NewSubmissionHandler(subSvc, log)
	authH := handler.NewAuthHandler(authSvc, guard, cfg.Session.Secure, log)
	adminH := handler.NewAdminHandler(subSvc, cfg.Admin.Page, log)
	productH := handler.NewProductHandler(productSvc, log)

	var metricsPath string
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	a.Handler = router.New(log, router.Options{
		CORSOrigins: cfg.Server.CORSOrigins,
		MetricsPath: metricsPath,
	}, guard, dashH, studentH, subH, authH, adminH, productH)

	return a, nil
}

// Close releases the Redis client and stops the session sweeper.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
