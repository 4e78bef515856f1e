package controllerImp

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"krishi/entities"
	svc "krishi/pkg/backend/service"
	"krishi/pkg/logger"
)

type httpCtrl struct {
	s   svc.Service
	log *logger.Logger
	now func() time.Time
}

func New(s svc.Service, log *logger.Logger) *httpCtrl {
	if log == nil {
		log = logger.Nop()
	}
	return &httpCtrl{s: s, log: log.With("component", "backend"), now: time.Now}
}

func (h *httpCtrl) Register(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/health", h.health)

	g.POST("/users", h.createUser)

	g.POST("/soil/analyze", h.analyzeSoil)
	g.POST("/crops/recommend", h.recommendCrops)

	g.GET("/weather/current/:location", h.currentWeather)
	g.GET("/weather/forecast/:location", h.forecast)

	g.GET("/community/posts", h.listPosts)
	g.POST("/community/posts", h.createPost)
	g.POST("/community/posts/:id/like", h.likePost)

	g.POST("/disease/detect", h.detectDisease)
}

func ok(c echo.Context, status int, extra echo.Map) error {
	body := echo.Map{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	return c.JSON(status, body)
}

func (h *httpCtrl) fail(c echo.Context, err error) error {
	var ve *svc.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": ve.Msg})
	case errors.Is(err, svc.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "Post not found"})
	}
	h.log.Error("request failed", "path", c.Path(), "err", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": err.Error()})
}

func badJSON(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid json"})
}

func (h *httpCtrl) health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "healthy",
		"message": "Agriculture API is running",
		"version": "1.0.0",
	})
}

func (h *httpCtrl) createUser(c echo.Context) error {
	var in entities.NewUser
	if err := c.Bind(&in); err != nil {
		return badJSON(c)
	}
	u, err := h.s.CreateUser(in)
	if err != nil {
		return h.fail(c, err)
	}
	return ok(c, http.StatusCreated, echo.Map{"data": u})
}

type soilReq struct {
	UserID *int64 `json:"user_id"`
	entities.SoilSample
	SoilType string `json:"soil_type"`
}

func (h *httpCtrl) analyzeSoil(c echo.Context) error {
	var in soilReq
	if err := c.Bind(&in); err != nil {
		return badJSON(c)
	}
	if in.UserID == nil {
		return h.fail(c, svc.MissingField("user_id"))
	}
	res, err := h.s.AnalyzeSoil(svc.SoilRequest{UserID: *in.UserID, SoilSample: in.SoilSample, SoilType: in.SoilType})
	if err != nil {
		return h.fail(c, err)
	}
	return ok(c, http.StatusCreated, echo.Map{
		"data": echo.Map{
			"sample_id":    res.SampleID,
			"user_id":      *in.UserID,
			"location":     in.Location,
			"health_score": res.HealthScore,
			"soil_type":    res.SoilType,
		},
		"recommendations": res.Recommendations,
		"suitable_crops":  res.SuitableCrops,
	})
}

type userReq struct {
	UserID *int64 `json:"user_id"`
}

func (h *httpCtrl) recommendCrops(c echo.Context) error {
	var in userReq
	if err := c.Bind(&in); err != nil {
		return badJSON(c)
	}
	if in.UserID == nil {
		return h.fail(c, svc.MissingField("user_id"))
	}
	recs, err := h.s.RecommendCrops(*in.UserID)
	if err != nil {
		return h.fail(c, err)
	}
	return ok(c, http.StatusCreated, echo.Map{"data": recs})
}

func locationParam(c echo.Context) string {
	raw := c.Param("location")
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

func (h *httpCtrl) currentWeather(c echo.Context) error {
	w, err := h.s.CurrentWeather(locationParam(c), h.now())
	if err != nil {
		return h.fail(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"data": w})
}

func (h *httpCtrl) forecast(c echo.Context) error {
	days := entities.ForecastDays
	if v := c.QueryParam("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			days = n
		}
	}
	f, err := h.s.Forecast(locationParam(c), days, h.now())
	if err != nil {
		return h.fail(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"data": f})
}

func (h *httpCtrl) listPosts(c echo.Context) error {
	q := svc.PostQuery{Language: c.QueryParam("language")}
	q.Page, _ = strconv.Atoi(c.QueryParam("page"))
	q.PerPage, _ = strconv.Atoi(c.QueryParam("per_page"))
	posts, err := h.s.ListPosts(q)
	if err != nil {
		return h.fail(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"data": posts})
}

type postReq struct {
	UserID *int64 `json:"user_id"`
	entities.DraftPost
	Language string `json:"language"`
}

func (h *httpCtrl) createPost(c echo.Context) error {
	var in postReq
	if err := c.Bind(&in); err != nil {
		return badJSON(c)
	}
	if in.UserID == nil {
		return h.fail(c, svc.MissingField("user_id"))
	}
	p, err := h.s.CreatePost(svc.PostRequest{UserID: *in.UserID, DraftPost: in.DraftPost, Language: in.Language})
	if err != nil {
		return h.fail(c, err)
	}
	return ok(c, http.StatusCreated, echo.Map{"data": p})
}

func (h *httpCtrl) likePost(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid id"})
	}
	n, err := h.s.LikePost(id)
	if err != nil {
		return h.fail(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"likes_count": n})
}

type diseaseReq struct {
	UserID   *int64 `json:"user_id"`
	CropType string `json:"crop_type"`
}

func (h *httpCtrl) detectDisease(c echo.Context) error {
	var in diseaseReq
	if err := c.Bind(&in); err != nil {
		return badJSON(c)
	}
	if in.UserID == nil {
		return h.fail(c, svc.MissingField("user_id"))
	}
	res, err := h.s.DetectDisease(*in.UserID, in.CropType)
	if err != nil {
		return h.fail(c, err)
	}
	return ok(c, http.StatusCreated, echo.Map{
		"data":             echo.Map{"user_id": *in.UserID, "crop_type": in.CropType, "disease_name": res.DiseaseName},
		"detection_result": res,
	})
}
