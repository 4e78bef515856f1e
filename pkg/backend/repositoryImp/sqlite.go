package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"krishi/pkg/backend"
	"krishi/pkg/backend/repository"
)

type sqliteRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.Repo { return &sqliteRepo{db: db} }

func (r *sqliteRepo) CreateUser(u *backend.User) error { return r.db.Create(u).Error }

func (r *sqliteRepo) UserTaken(username, email string) (bool, error) {
	var n int64
	err := r.db.Model(&backend.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&n).Error
	return n > 0, err
}

func (r *sqliteRepo) CreateSoilAnalysis(a *backend.SoilAnalysis) error { return r.db.Create(a).Error }

func (r *sqliteRepo) LatestSoilAnalysis(userID int64) (*backend.SoilAnalysis, error) {
	var out backend.SoilAnalysis
	err := r.db.Where("user_id = ?", userID).Order("created_at desc, id desc").First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *sqliteRepo) CreateCropRecommendations(recs []backend.CropRecommendation) error {
	if len(recs) == 0 {
		return nil
	}
	return r.db.Create(&recs).Error
}

func (r *sqliteRepo) CreateDiseaseDetection(d *backend.DiseaseDetection) error {
	return r.db.Create(d).Error
}

func (r *sqliteRepo) CreatePost(p *backend.Post) error { return r.db.Create(p).Error }

func (r *sqliteRepo) ListPosts(language string, limit, offset int) ([]backend.Post, error) {
	q := r.db.Model(&backend.Post{})
	if language != "" {
		q = q.Where("language = ?", language)
	}
	var list []backend.Post
	err := q.Order("created_at desc, id desc").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

// LikePost increments likes_count and returns the new count.
func (r *sqliteRepo) LikePost(id int64) (int, error) {
	var likes int
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&backend.Post{}).Where("id = ?", id).
			UpdateColumn("likes_count", gorm.Expr("likes_count + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		var p backend.Post
		if err := tx.Select("likes_count").First(&p, id).Error; err != nil {
			return err
		}
		likes = p.LikesCount
		return nil
	})
	return likes, err
}
