package router

import (
	"github.com/labstack/echo/v4"

	healthCtrl "krishi/pkg/health/controller"
	"krishi/pkg/logger"
	"krishi/pkg/middleware"
	webCtrl "krishi/pkg/webapp/controller"
)

func New(
	e *echo.Echo,
	log *logger.Logger,
	web webCtrl.WebappController,
	health healthCtrl.HealthController,
) *echo.Echo {
	e.Use(middleware.RequestID(log))

	e.GET("/health", health.Health)

	e.GET("/", web.Page)
	e.GET("/state", web.State)
	e.GET("/notices", web.Notices)

	e.POST("/navigate/:view", web.Navigate)
	e.POST("/language/:lang", web.SetLanguage)
	e.POST("/logout", web.Logout)
	e.PUT("/search", web.Search)

	e.PUT("/register/form", web.EditRegistration)
	e.POST("/register", web.Register)

	e.PUT("/soil/sample", web.EditSoil)
	e.POST("/soil/analyze", web.AnalyzeSoil)
	e.POST("/crops/recommend", web.RecommendCrops)

	e.POST("/weather", web.FetchWeather)

	g := e.Group("/community")
	g.POST("/posts/load", web.LoadPosts)
	g.PUT("/draft", web.EditDraft)
	g.POST("/posts", web.SubmitPost)
	g.POST("/posts/:id/like", web.LikePost)

	e.PUT("/disease/crop", web.SetDiseaseCrop)
	e.POST("/disease/detect", web.DetectDisease)

	e.GET("/faq", web.FAQ)
	e.POST("/faq/:index/toggle", web.ToggleFAQ)
	return e
}
