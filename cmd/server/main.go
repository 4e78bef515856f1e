package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"krishi/config"
	"krishi/pkg/api"
	"krishi/pkg/faq"
	"krishi/pkg/i18n"
	"krishi/pkg/logger"
	"krishi/pkg/session"
	"krishi/pkg/view"
	"krishi/router"

	// Health
	healthCtrlImp "krishi/pkg/health/controllerImp"

	// Webapp
	webCtrlImp "krishi/pkg/webapp/controllerImp"
)

func main() {
	// 1) Config
	cfg := config.Load()

	// 2) Logger
	lg, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Sync()

	// 3) API client (mock when no backend is wanted)
	var client api.Client
	switch cfg.APIMode {
	case "mock":
		client = api.NewMock()
	default:
		hc, err := api.NewHTTP(api.Options{BaseURL: cfg.APIBaseURL, Timeout: cfg.APITimeout, Logger: lg})
		if err != nil {
			lg.Fatal("api client", "err", err)
		}
		client = hc
	}

	// 4) Translations, optionally overlaid from a workbook
	catalog := i18n.Default()
	if cfg.TranslationsXLSX != "" {
		n, err := catalog.LoadWorkbook(cfg.TranslationsXLSX)
		if err != nil {
			lg.Warn("translations workbook", "path", cfg.TranslationsXLSX, "err", err)
		} else {
			lg.Info("translations loaded", "path", cfg.TranslationsXLSX, "cells", n)
		}
	}

	// 5) Session
	inbox := session.NewInbox(0)
	sess, err := session.New(session.Options{
		API:             client,
		Notifier:        inbox,
		Logger:          lg,
		GuestUserID:     cfg.GuestUserID,
		WeatherLocation: cfg.WeatherLocation,
		Language:        i18n.English,
	})
	if err != nil {
		lg.Fatal("session", "err", err)
	}

	// 6) View
	renderer, err := view.New(catalog)
	if err != nil {
		lg.Fatal("view", "err", err)
	}

	// 7) Controllers
	wCtrl := webCtrlImp.New(sess, inbox, faq.NewAccordion(), renderer, lg)
	hCtrl := healthCtrlImp.NewHealthCtrl(client, sess)

	// 8) Echo + router
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	r := router.New(e, lg, wCtrl, hCtrl)

	// 9) Start
	lg.Info("listening", "port", cfg.Port, "api_mode", cfg.APIMode)
	if err := r.Start(":" + cfg.Port); err != nil {
		lg.Fatal("server stopped", "err", err)
	}
}
