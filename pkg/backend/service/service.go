package service

import (
	"errors"
	"fmt"
	"time"

	"krishi/entities"
)

// Service is the backend's domain layer. Weather and disease results are
// simulated; everything else is persisted.
type Service interface {
	CreateUser(in entities.NewUser) (*entities.User, error)

	AnalyzeSoil(in SoilRequest) (*entities.SoilResult, error)
	RecommendCrops(userID int64) ([]entities.CropRecommendation, error)

	CurrentWeather(location string, now time.Time) (*entities.WeatherSnapshot, error)
	Forecast(location string, days int, now time.Time) ([]entities.ForecastDay, error)

	ListPosts(q PostQuery) ([]entities.CommunityPost, error)
	CreatePost(in PostRequest) (*entities.CommunityPost, error)
	LikePost(id int64) (int, error)

	DetectDisease(userID int64, cropType string) (*entities.DiseaseResult, error)
}

type SoilRequest struct {
	UserID int64
	entities.SoilSample
	// SoilType is optional; a random one is assigned when empty.
	SoilType string
}

type PostQuery struct {
	Language string
	Page     int
	PerPage  int
}

type PostRequest struct {
	UserID int64
	entities.DraftPost
	Language string
}

// ValidationError maps to 400.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

func MissingField(name string) error {
	return &ValidationError{Msg: fmt.Sprintf("Missing required field: %s", name)}
}

var (
	ErrNotFound      = errors.New("not found")
	ErrUsernameTaken = &ValidationError{Msg: "Username or email already exists"}
)
