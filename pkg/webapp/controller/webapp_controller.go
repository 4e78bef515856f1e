package controller

import "github.com/labstack/echo/v4"

type WebappController interface {
	Page(c echo.Context) error
	State(c echo.Context) error
	Notices(c echo.Context) error

	Navigate(c echo.Context) error
	SetLanguage(c echo.Context) error
	Logout(c echo.Context) error
	Search(c echo.Context) error

	EditRegistration(c echo.Context) error
	Register(c echo.Context) error

	EditSoil(c echo.Context) error
	AnalyzeSoil(c echo.Context) error
	RecommendCrops(c echo.Context) error

	FetchWeather(c echo.Context) error

	LoadPosts(c echo.Context) error
	EditDraft(c echo.Context) error
	SubmitPost(c echo.Context) error
	LikePost(c echo.Context) error

	SetDiseaseCrop(c echo.Context) error
	DetectDisease(c echo.Context) error

	FAQ(c echo.Context) error
	ToggleFAQ(c echo.Context) error
}
