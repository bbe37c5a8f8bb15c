package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ipmanager/config"
	"ipmanager/internal/auth"
	"ipmanager/internal/db"
	"ipmanager/internal/health"
	"ipmanager/internal/ipam"
	"ipmanager/internal/logs"
	"ipmanager/internal/middleware"
	"ipmanager/internal/repo"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type App struct {
	cfg        *config.Config
	Router     *mux.Router
	handler    http.Handler
	httpServer *http.Server

	db     *gorm.DB
	ctx    context.Context
	cancel context.CancelFunc
}

func (a *App) Initialize(cfg *config.Config) error {
	a.cfg = cfg

	// 1) Логи
	logs.Init(logs.Options{
		Level:  a.cfg.Logging.Level,
		Format: a.cfg.Logging.Format,
		File:   a.cfg.Logging.File,
	})

	// 2) БД + миграции (legacy rename, затем AutoMigrate)
	d, err := db.Open(a.cfg.Database.Driver, a.cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("db open: %w", err)
	}
	a.db = d
	if err := db.Migrate(a.db); err != nil {
		return fmt.Errorf("db migrate: %w", err)
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return fmt.Errorf("db handle: %w", err)
	}

	// 3) Сервисы
	users := repo.NewUserStore(a.db)
	authSvc, err := auth.NewService(
		users,
		auth.NewHasher(a.cfg.Auth.BcryptCost),
		auth.NewTokenManager(a.cfg.Auth.Secret, a.cfg.Auth.TokenTTL),
	)
	if err != nil {
		return err
	}
	ipSvc := ipam.NewService(ipam.NewRepo(a.db))

	// 4) Роутер + middleware
	a.Router = mux.NewRouter()
	a.Router.Use(middleware.RequestID)
	a.Router.Use(middleware.Recoverer)
	a.Router.Use(middleware.LoggerMW)
	a.Router.Use(auth.Middleware(authSvc))

	// 5) Маршруты
	health.RegisterRoutesWithDB(a.Router, sqlDB) // /healthz и /readyz
	auth.NewHTTP(authSvc).RegisterRoutes(a.Router)
	ipam.NewHTTP(ipSvc).RegisterRoutes(a.Router)

	// статика последней: PathPrefix("/") перехватывает всё остальное
	a.RegisterWebUI(a.cfg.Server.StaticDir)

	a.handler = middleware.CORS(a.cfg.Server.CORSOrigins)(a.Router)

	_ = a.Router.Walk(func(rt *mux.Route, r *mux.Router, ancestors []*mux.Route) error {
		path, err := rt.GetPathTemplate()
		if err != nil {
			return nil
		}
		methods, _ := rt.GetMethods()
		logs.Logger.Debugf("route: %-6v %s", methods, path)
		return nil
	})
	return nil
}

// Handler возвращает корневой http.Handler приложения (роутер под CORS).
func (a *App) Handler() http.Handler { return a.handler }

func (a *App) Run() error {
	if a.handler == nil || a.cfg == nil {
		return ErrNotInitialized
	}
	bind := net.JoinHostPort(a.cfg.Server.Address, a.cfg.Server.HTTPPort)

	a.ctx, a.cancel = context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case <-sigs:
			a.cancel()
		case <-a.ctx.Done():
		}
	}()

	a.httpServer = &http.Server{
		Addr:         bind,
		Handler:      a.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logs.Logger.Infof("HTTP listening on %s", bind)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-a.ctx.Done():
	case serveErr = <-errCh:
		a.cancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = a.httpServer.Shutdown(ctx)
	a.Close()
	if serveErr != nil {
		return fmt.Errorf("http server: %w", serveErr)
	}
	logs.Logger.Info("server stopped")
	return nil
}

// Stop инициирует graceful shutdown запущенного Run.
func (a *App) Stop() {
	if a.cancel != nil {
		a.cancel()
	}
}

// Close закрывает пул БД.
func (a *App) Close() {
	if a.db == nil {
		return
	}
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	a.db = nil
}

var ErrNotInitialized = &initError{"server not initialized (call Initialize(cfg) first)"}

type initError struct{ s string }

func (e *initError) Error() string { return e.s }
