package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"krishi/config"
	"krishi/database"
	"krishi/pkg/logger"
	"krishi/pkg/middleware"

	backendCtrlImp "krishi/pkg/backend/controllerImp"
	backendRepoImp "krishi/pkg/backend/repositoryImp"
	backendSvcImp "krishi/pkg/backend/serviceImp"
)

func main() {
	// 1) Config
	cfg := config.Load()

	lg, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Sync()

	// 2) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	// 3) Repo -> service -> controller
	repo := backendRepoImp.New(db)
	svc := backendSvcImp.New(repo, nil)
	ctrl := backendCtrlImp.New(svc, lg)

	// 4) Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(middleware.RequestID(lg))
	ctrl.Register(e)

	// 5) Start
	lg.Info("backend listening", "port", cfg.BackendPort, "db", cfg.DBPath)
	if err := e.Start(":" + cfg.BackendPort); err != nil {
		lg.Fatal("backend stopped", "err", err)
	}
}
