package backend

import (
	"time"

	"krishi/entities"
)

type User struct {
	ID                 int64     `gorm:"primaryKey"`
	Username           string    `gorm:"uniqueIndex;not null"`
	Email              string    `gorm:"uniqueIndex;not null"`
	FullName           string
	Phone              string
	Location           string
	FarmSize           float64
	PrimaryCrops       string
	LanguagePreference string
	CreatedAt          time.Time
}

func (u User) Entity() entities.User {
	return entities.User{
		ID:                 u.ID,
		Username:           u.Username,
		Email:              u.Email,
		FullName:           u.FullName,
		Phone:              u.Phone,
		Location:           u.Location,
		FarmSize:           u.FarmSize,
		PrimaryCrops:       u.PrimaryCrops,
		LanguagePreference: u.LanguagePreference,
		CreatedAt:          u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type SoilAnalysis struct {
	ID              int64  `gorm:"primaryKey"`
	SampleID        string `gorm:"uniqueIndex"`
	UserID          int64  `gorm:"index"`
	Location        string
	PHLevel         float64
	Nitrogen        float64
	Phosphorus      float64
	Potassium       float64
	OrganicMatter   float64
	MoistureContent float64
	SoilType        string
	HealthScore     float64
	Recommendations []entities.SoilRecommendation `gorm:"serializer:json"`
	SuitableCrops   []entities.SuitableCrop       `gorm:"serializer:json"`
	CreatedAt       time.Time
}

func (a SoilAnalysis) Entity() entities.SoilResult {
	return entities.SoilResult{
		SampleID:        a.SampleID,
		HealthScore:     a.HealthScore,
		SoilType:        a.SoilType,
		Recommendations: a.Recommendations,
		SuitableCrops:   a.SuitableCrops,
	}
}

type CropRecommendation struct {
	ID                       int64 `gorm:"primaryKey"`
	UserID                   int64 `gorm:"index"`
	SoilAnalysisID           *int64
	CropName                 string
	Variety                  string
	ConfidenceScore          float64
	ExpectedYield            float64
	PlantingSeason           string
	HarvestTime              int
	WaterRequirement         string
	FertilizerRecommendation string
	PestManagement           string
	CreatedAt                time.Time
}

type DiseaseDetection struct {
	ID                     int64 `gorm:"primaryKey"`
	UserID                 int64 `gorm:"index"`
	CropType               string
	DiseaseName            string
	ConfidenceScore        float64
	SeverityLevel          string
	AffectedAreaPercentage float64
	Treatments             []string `gorm:"serializer:json"`
	Prevention             []string `gorm:"serializer:json"`
	CreatedAt              time.Time
}

type Post struct {
	ID            int64  `gorm:"primaryKey"`
	UserID        int64  `gorm:"index"`
	Title         string `gorm:"not null"`
	Content       string `gorm:"not null"`
	Category      string `gorm:"index"`
	Language      string `gorm:"index"`
	LikesCount    int
	CommentsCount int
	CreatedAt     time.Time `gorm:"index"`
}

func (p Post) Entity() entities.CommunityPost {
	return entities.CommunityPost{
		ID:            p.ID,
		UserID:        p.UserID,
		Title:         p.Title,
		Content:       p.Content,
		Category:      p.Category,
		Language:      p.Language,
		LikesCount:    p.LikesCount,
		CommentsCount: p.CommentsCount,
		CreatedAt:     p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Models lists every table the backend migrates.
func Models() []any {
	return []any{&User{}, &SoilAnalysis{}, &CropRecommendation{}, &DiseaseDetection{}, &Post{}}
}
