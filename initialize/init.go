package initialize

import (
	"fmt"
	"net/http"
	"time"

	"taskboard/app/controllers"
	"taskboard/app/db"
	"taskboard/app/middleware"
	"taskboard/app/models"
	"taskboard/app/repo"
	"taskboard/app/services"
	"taskboard/app/token"
	"taskboard/config"
	"taskboard/global"
	"taskboard/router"

	"gorm.io/gorm"
)

type App struct {
	Cfg    *config.Config
	DB     *gorm.DB
	Router http.Handler
	Signer *token.Signer
	Auth   *controllers.AuthController
	Tasks  *controllers.TaskController
	Users  *services.UserService
}

// Build loads config, connects the database and wires every layer up to
// the HTTP router.
func Build(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	gdb, err := db.Connect(db.Config{Host: cfg.DB.Host, Port: cfg.DB.Port, User: cfg.DB.User, Password: cfg.DB.Pass, DBName: cfg.DB.Name})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	app, err := BuildWithDB(cfg, gdb)
	if err != nil {
		return nil, err
	}

	cfg.Watch(func(file string) {
		global.Logger.Warn().Str("file", file).Msg("config file changed; restart to apply")
	})
	return app, nil
}

// BuildWithDB wires the application onto an already-open database.
// Tests use it with an in-memory sqlite handle.
func BuildWithDB(cfg *config.Config, gdb *gorm.DB) (*App, error) {
	global.Config = cfg
	global.Mdb = gdb

	if err := gdb.AutoMigrate(&models.User{}, &models.Task{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	userRepo := repo.NewUserRepository(gdb)
	taskRepo := repo.NewTaskRepository(gdb)
	userSvc := services.NewUserService(userRepo)
	taskSvc := services.NewTaskService(taskRepo)

	if cfg.Seed.Email != "" {
		if err := userSvc.EnsureAdmin(cfg.Seed.Name, cfg.Seed.Email, cfg.Seed.Password); err != nil {
			global.Logger.Warn().Err(err).Msg("seed admin failed")
		}
	}

	signer := &token.Signer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.ExpDays) * 24 * time.Hour,
	}
	authCtrl := controllers.NewAuthController(userSvc, signer)
	taskCtrl := controllers.NewTaskController(taskSvc)
	mw := &middleware.Auth{Signer: signer}

	h := router.NewRouter(authCtrl, taskCtrl, mw)
	h = middleware.Logging(h)

	return &App{Cfg: cfg, DB: gdb, Router: h, Signer: signer, Auth: authCtrl, Tasks: taskCtrl, Users: userSvc}, nil
}
