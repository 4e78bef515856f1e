package repository

import (
	"errors"

	"krishi/pkg/backend"
)

var ErrNotFound = errors.New("record not found")

type Repo interface {
	CreateUser(u *backend.User) error
	UserTaken(username, email string) (bool, error)

	CreateSoilAnalysis(a *backend.SoilAnalysis) error
	LatestSoilAnalysis(userID int64) (*backend.SoilAnalysis, error)
	CreateCropRecommendations(recs []backend.CropRecommendation) error
	CreateDiseaseDetection(d *backend.DiseaseDetection) error

	CreatePost(p *backend.Post) error
	ListPosts(language string, limit, offset int) ([]backend.Post, error)
	LikePost(id int64) (int, error)
}
