// Package api talks to the KrishiAi backend.
package api

import (
	"context"

	"krishi/entities"
)

// Client is the fixed backend contract. Every method either returns the
// decoded payload or a *TransportError / *ApplicationError.
type Client interface {
	CreateUser(ctx context.Context, in entities.NewUser) (*entities.User, error)
	AnalyzeSoil(ctx context.Context, userID int64, sample entities.SoilSample) (*entities.SoilResult, error)
	RecommendCrops(ctx context.Context, userID int64) ([]entities.CropRecommendation, error)

	CurrentWeather(ctx context.Context, location string) (*entities.WeatherSnapshot, error)
	WeatherForecast(ctx context.Context, location string, days int) ([]entities.ForecastDay, error)

	ListPosts(ctx context.Context, language string) ([]entities.CommunityPost, error)
	CreatePost(ctx context.Context, userID int64, draft entities.DraftPost, language string) error
	LikePost(ctx context.Context, postID int64) error

	DetectDisease(ctx context.Context, userID int64, cropType string) (*entities.DiseaseResult, error)

	Health(ctx context.Context) error
}
