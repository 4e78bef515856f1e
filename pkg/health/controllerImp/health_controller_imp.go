package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"krishi/pkg/api"
)

var appStart = time.Now()

// loader is the part of the session the health check reads.
type loader interface {
	Loading() bool
}

type HealthCtrl struct {
	client api.Client
	sess   loader
}

func NewHealthCtrl(client api.Client, sess loader) *HealthCtrl {
	return &HealthCtrl{client: client, sess: sess}
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	backendOK := true
	backendErr := ""
	if h.client != nil {
		if err := h.client.Health(ctx); err != nil {
			backendOK = false
			backendErr = err.Error()
		}
	} else {
		backendOK = false
		backendErr = "api client is nil"
	}

	status := http.StatusOK
	if !backendOK {
		status = http.StatusServiceUnavailable
	}

	type sub struct {
		OK  bool   `json:"ok"`
		Err string `json:"err,omitempty"`
	}

	loading := false
	if h.sess != nil {
		loading = h.sess.Loading()
	}

	resp := map[string]any{
		"status":     map[string]any{"ok": backendOK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"loading":    loading,
		"checks": map[string]any{
			"backend": sub{OK: backendOK, Err: backendErr},
		},
		"time": time.Now().Format(time.RFC3339),
	}

	return c.JSON(status, resp)
}
