package api

import (
	"context"
	"strings"
	"sync"
	"time"

	"krishi/entities"
)

// mockClient answers every call locally. It is used when the gateway runs
// without a backend (API_MODE=mock).
type mockClient struct {
	mu     sync.Mutex
	nextID int64
	posts  []entities.CommunityPost
}

func NewMock() Client { return &mockClient{nextID: 1} }

func (m *mockClient) CreateUser(_ context.Context, in entities.NewUser) (*entities.User, error) {
	if strings.TrimSpace(in.Username) == "" || strings.TrimSpace(in.Email) == "" {
		return nil, &ApplicationError{Op: "create user", Status: 400, Message: "Missing required field: username"}
	}
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.mu.Unlock()
	return &entities.User{
		ID:                 id,
		Username:           in.Username,
		Email:              in.Email,
		FullName:           in.FullName,
		Phone:              in.Phone,
		Location:           in.Location,
		FarmSize:           in.FarmSize,
		PrimaryCrops:       in.PrimaryCrops,
		LanguagePreference: in.LanguagePreference,
		CreatedAt:          time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (m *mockClient) AnalyzeSoil(_ context.Context, _ int64, s entities.SoilSample) (*entities.SoilResult, error) {
	out := &entities.SoilResult{SampleID: "SOIL_MOCK", HealthScore: 75, SoilType: "Loamy"}
	if s.PHLevel > 7.5 {
		out.Recommendations = append(out.Recommendations, entities.SoilRecommendation{
			Type: "pH_adjustment", Issue: "Soil is too alkaline",
			Recommendation: "Apply sulfur or organic matter to decrease pH.", Priority: "high",
		})
	} else if s.PHLevel > 0 && s.PHLevel < 6.0 {
		out.Recommendations = append(out.Recommendations, entities.SoilRecommendation{
			Type: "pH_adjustment", Issue: "Soil is too acidic",
			Recommendation: "Apply lime to increase pH.", Priority: "high",
		})
	}
	out.SuitableCrops = []entities.SuitableCrop{
		{CropName: "Wheat", SuitabilityScore: 90, WaterRequirement: "medium", RecommendedSeason: "Rabi (November-December)"},
		{CropName: "Maize", SuitabilityScore: 80, WaterRequirement: "medium", RecommendedSeason: "Kharif (June-July)"},
	}
	return out, nil
}

func (m *mockClient) RecommendCrops(context.Context, int64) ([]entities.CropRecommendation, error) {
	return []entities.CropRecommendation{
		{CropName: "Wheat", Variety: "HD 2967", ConfidenceScore: 0.78, PlantingSeason: "Rabi", HarvestTime: 110},
		{CropName: "Maize", Variety: "Pioneer 30V92", ConfidenceScore: 0.82, PlantingSeason: "Kharif", HarvestTime: 95},
	}, nil
}

func (m *mockClient) CurrentWeather(_ context.Context, location string) (*entities.WeatherSnapshot, error) {
	return &entities.WeatherSnapshot{
		Location: location, Temperature: 22, Condition: "Partly Cloudy",
		Humidity: 65, WindSpeed: 12, Pressure: 1012, Rainfall: 0, UVIndex: 5,
	}, nil
}

func (m *mockClient) WeatherForecast(_ context.Context, _ string, days int) ([]entities.ForecastDay, error) {
	if days <= 0 {
		days = entities.ForecastDays
	}
	out := make([]entities.ForecastDay, 0, days)
	start := time.Now().UTC()
	for i := 0; i < days; i++ {
		out = append(out, entities.ForecastDay{
			Date:        start.AddDate(0, 0, i).Format("2006-01-02"),
			Temperature: 22 + float64(i%3),
			Condition:   "Sunny",
			MaxTemp:     25 + float64(i%3),
			MinTemp:     19 + float64(i%3),
		})
	}
	return out, nil
}

func (m *mockClient) ListPosts(_ context.Context, language string) ([]entities.CommunityPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []entities.CommunityPost{}
	for i := len(m.posts) - 1; i >= 0; i-- {
		if m.posts[i].Language == language {
			out = append(out, m.posts[i])
		}
	}
	return out, nil
}

func (m *mockClient) CreatePost(_ context.Context, userID int64, d entities.DraftPost, language string) error {
	if strings.TrimSpace(d.Title) == "" || strings.TrimSpace(d.Content) == "" {
		return &ApplicationError{Op: "create post", Status: 400, Message: "Missing required field: title"}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.posts = append(m.posts, entities.CommunityPost{
		ID: int64(len(m.posts) + 1), UserID: userID, Title: d.Title, Content: d.Content,
		Category: d.Category, Language: language, CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	return nil
}

func (m *mockClient) LikePost(_ context.Context, postID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.posts {
		if m.posts[i].ID == postID {
			m.posts[i].LikesCount++
			return nil
		}
	}
	return &ApplicationError{Op: "like post", Status: 404, Message: "Post not found"}
}

func (m *mockClient) DetectDisease(_ context.Context, _ int64, cropType string) (*entities.DiseaseResult, error) {
	if cropType == "" {
		cropType = entities.DefaultDiseaseCrop
	}
	return &entities.DiseaseResult{
		DiseaseName:              "Early Blight",
		ConfidenceScore:          0.87,
		SeverityLevel:            "Moderate",
		AffectedAreaPercentage:   18.5,
		Symptoms:                 "Concentric rings on older leaves (" + cropType + ")",
		TreatmentRecommendations: []string{"Apply Chlorothalonil", "Remove lower leaves", "Mulching"},
		PreventiveMeasures:       []string{"Proper spacing", "Avoid water stress", "Balanced nutrition"},
	}, nil
}

func (m *mockClient) Health(context.Context) error { return nil }
