package initialize

import (
	"fmt"
	"net/http"
	"time"

	"carmarket/app/cache"
	"carmarket/app/controllers"
	"carmarket/app/db"
	jwtutil "carmarket/app/jwt"
	"carmarket/app/middleware"
	"carmarket/app/models"
	"carmarket/app/repo"
	"carmarket/app/services"
	"carmarket/app/storage"
	"carmarket/config"
	"carmarket/global"
	"carmarket/router"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	Cfg       *config.Config
	DB        *gorm.DB
	Router    http.Handler
	Auth      *controllers.AuthController
	Cars      *controllers.CarController
	Favorites *controllers.FavoriteController
	Uploads   *controllers.UploadController
	Admin     *controllers.AdminController
	Users     *services.UserService
	CarSvc    *services.CarService
	Store     storage.Store
}

func Build(configPath string) (*App, error) {
	// Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	global.Config = cfg

	// Connect DB
	gdb, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	global.Mdb = gdb

	// Migrate
	if err := gdb.AutoMigrate(&models.User{}, &models.Car{}, &models.Favorite{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	// Redis (optional)
	var listingCache *cache.ListingCache
	if cfg.Redis.Enabled {
		global.Rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		listingCache = cache.NewListingCache(global.Rdb, time.Duration(cfg.Redis.TTLSec)*time.Second)
	}

	// Storage
	store, err := storage.NewDiskStore(cfg.Storage.Dir)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	presigner := &storage.Presigner{Secret: []byte(cfg.Storage.PresignSecret), TTL: time.Duration(cfg.Storage.PresignTTLSec) * time.Second}

	// Repositories and services
	userRepo := repo.NewUserRepository(gdb)
	carRepo := repo.NewCarRepository(gdb)
	favRepo := repo.NewFavoriteRepository(gdb)
	userSvc := services.NewUserService(userRepo)
	carSvc := services.NewCarService(carRepo, favRepo, store, listingCache)
	favSvc := services.NewFavoriteService(favRepo, carRepo)
	uploadSvc := services.NewUploadService(presigner, cfg.Storage.BaseURL)
	if err := userSvc.EnsureAdmin(cfg.Admin.Username, cfg.Admin.Password); err != nil {
		global.Logger.Warn().Err(err).Msg("ensure admin")
	}

	// Controllers
	signer := &jwtutil.Signer{Secret: []byte(cfg.JWT.Secret), Issuer: cfg.JWT.Issuer, ExpMin: cfg.JWT.ExpMin}
	authCtrl := controllers.NewAuthController(userSvc, signer)
	carCtrl := controllers.NewCarController(carSvc)
	favCtrl := controllers.NewFavoriteController(favSvc)
	uploadCtrl := controllers.NewUploadController(uploadSvc, store)
	adminCtrl := controllers.NewAdminController(userSvc, carSvc, favSvc)
	mw := &middleware.Auth{Signer: signer}

	// Router
	h := router.NewRouter(authCtrl, carCtrl, favCtrl, uploadCtrl, adminCtrl, mw)
	h = middleware.Logging(h)

	return &App{
		Cfg: cfg, DB: gdb, Router: h,
		Auth: authCtrl, Cars: carCtrl, Favorites: favCtrl, Uploads: uploadCtrl, Admin: adminCtrl,
		Users: userSvc, CarSvc: carSvc, Store: store,
	}, nil
}
