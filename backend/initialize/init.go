package initialize

import (
	"fmt"
	"net/http"

	"territorios/backend/app/controllers"
	"territorios/backend/app/db"
	"territorios/backend/app/middleware"
	"territorios/backend/app/models"
	"territorios/backend/app/repo"
	"territorios/backend/app/services"
	"territorios/backend/app/session"
	"territorios/backend/config"
	"territorios/backend/global"
	"territorios/backend/router"

	"github.com/fsnotify/fsnotify"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	Cfg         *config.Config
	DB          *gorm.DB
	Router      http.Handler
	Guard       *services.AuthService
	Territories *services.TerritoryService
}

func Build(configPath string) (*App, error) {
	// Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	global.Config = *cfg

	// Log config file edits; address/DB changes only apply on restart.
	_ = config.Watch(configPath, func(_ *config.Config, e fsnotify.Event) {
		global.Logger.Info().Str("file", e.Name).Msg("config file changed, restart to apply")
	})

	// Connect DB
	gdb, err := db.Connect(db.Config{
		Driver:   cfg.DB.Driver,
		Path:     cfg.DB.Path,
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Pass,
		DBName:   cfg.DB.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	global.Mdb = gdb

	// Migrate
	if err := gdb.AutoMigrate(&models.Token{}, &models.Territory{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	// Token cache is optional; without Redis, lookups go straight to the DB.
	if cfg.Redis.Addr != "" {
		global.Rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	}
	cache := session.NewTokenCache(global.Rdb)

	// Services
	tokenRepo := repo.NewTokenRepository(gdb)
	terrRepo := repo.NewTerritoryRepository(gdb)
	guard := services.NewAuthService(tokenRepo, cache)
	terrSvc := services.NewTerritoryService(terrRepo)

	// Controllers
	httpCtrl := controllers.NewHTTPController()
	authCtrl := controllers.NewAuthController(guard)
	terrCtrl := controllers.NewTerritoryController(terrSvc)
	adminCtrl := controllers.NewAdminController(guard)
	mw := &middleware.Auth{Guard: guard}

	// Router
	h := router.NewRouter(httpCtrl, authCtrl, terrCtrl, adminCtrl, mw)
	// Wrap with logging middleware
	h = middleware.Logging(h)

	return &App{Cfg: cfg, DB: gdb, Router: h, Guard: guard, Territories: terrSvc}, nil
}
