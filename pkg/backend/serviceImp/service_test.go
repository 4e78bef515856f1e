package serviceImp

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"krishi/database"
	"krishi/entities"
	"krishi/pkg/backend/repositoryImp"
	svc "krishi/pkg/backend/service"
)

func newTestService(t *testing.T) svc.Service {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("database.Open: %v", err)
	}
	return New(repositoryImp.New(db), rand.New(rand.NewSource(1)))
}

func TestHealthScoreBands(t *testing.T) {
	cases := []struct {
		name string
		in   entities.SoilSample
		want float64
	}{
		{"nothing measured", entities.SoilSample{}, 50},
		{"alkaline ph only", entities.SoilSample{PHLevel: 7.8}, 80},
		{"ideal", entities.SoilSample{PHLevel: 6.5, OrganicMatter: 3.5, Nitrogen: 45, Phosphorus: 30, Potassium: 200, MoistureContent: 25}, 100},
		{"poor", entities.SoilSample{PHLevel: 4.5, OrganicMatter: 1, Nitrogen: 10, Phosphorus: 5, Potassium: 50, MoistureContent: 50}, 30},
		{"npk needs all three", entities.SoilSample{Nitrogen: 45, Phosphorus: 30}, 50},
	}
	for _, tc := range cases {
		if got := HealthScore(tc.in); got != tc.want {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}

func TestSoilRecommendations(t *testing.T) {
	recs := SoilRecommendations(entities.SoilSample{PHLevel: 7.8, OrganicMatter: 1.5, Nitrogen: 20, Phosphorus: 25, Potassium: 100})
	want := []string{"pH_adjustment", "organic_matter", "nitrogen", "potassium"}
	if len(recs) != len(want) {
		t.Fatalf("recs=%+v", recs)
	}
	for i, w := range want {
		if recs[i].Type != w {
			t.Fatalf("rec %d type=%s want %s", i, recs[i].Type, w)
		}
	}
	if recs[0].Issue != "Soil is too alkaline" || recs[0].Priority != "high" {
		t.Fatalf("ph rec=%+v", recs[0])
	}
	if got := SoilRecommendations(entities.SoilSample{}); len(got) != 0 {
		t.Fatalf("unmeasured sample produced %+v", got)
	}
}

func TestSuitableCropsTopFiveSorted(t *testing.T) {
	crops := SuitableCrops(entities.SoilSample{PHLevel: 6.5, Nitrogen: 40, Phosphorus: 25, Potassium: 150}, "Loamy")
	if len(crops) != 5 {
		t.Fatalf("len=%d", len(crops))
	}
	for i := 1; i < len(crops); i++ {
		if crops[i].SuitabilityScore > crops[i-1].SuitabilityScore {
			t.Fatalf("not sorted: %+v", crops)
		}
	}
	if crops[0].CropName != "Rice" || crops[0].SuitabilityScore != 100 {
		t.Fatalf("top=%+v", crops[0])
	}
	if crops[0].RecommendedSeason != "Kharif (June-July)" || crops[0].WaterRequirement != "high" {
		t.Fatalf("season/water=%+v", crops[0])
	}

	alkaline := SuitableCrops(entities.SoilSample{PHLevel: 7.8}, "Loamy")
	for _, c := range alkaline {
		if c.SuitabilityScore < 50 {
			t.Fatalf("score below threshold kept: %+v", c)
		}
	}
}

func TestAnalyzeSoilPersistsAndValidates(t *testing.T) {
	s := newTestService(t)
	if _, err := s.AnalyzeSoil(svc.SoilRequest{UserID: 1}); err == nil {
		t.Fatalf("missing location accepted")
	}
	res, err := s.AnalyzeSoil(svc.SoilRequest{UserID: 1, SoilSample: entities.SoilSample{Location: "Delhi", PHLevel: 7.8}, SoilType: "Loamy"})
	if err != nil {
		t.Fatalf("AnalyzeSoil: %v", err)
	}
	if res.SoilType != "Loamy" || res.HealthScore != 80 || res.SampleID == "" {
		t.Fatalf("res=%+v", res)
	}

	random, err := s.AnalyzeSoil(svc.SoilRequest{UserID: 1, SoilSample: entities.SoilSample{Location: "Delhi"}})
	if err != nil {
		t.Fatalf("AnalyzeSoil: %v", err)
	}
	found := false
	for _, st := range soilTypes {
		if st == random.SoilType {
			found = true
		}
	}
	if !found {
		t.Fatalf("soil type %q not from table", random.SoilType)
	}

	recs, err := s.RecommendCrops(1)
	if err != nil || len(recs) != 3 || recs[0].Variety != "Basmati 370" {
		t.Fatalf("recs=%+v err=%v", recs, err)
	}
}

func TestUsersUnique(t *testing.T) {
	s := newTestService(t)
	u, err := s.CreateUser(entities.NewUser{RegistrationForm: entities.RegistrationForm{Username: "alice", Email: "a@x.com"}})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID == 0 || u.LanguagePreference != "english" {
		t.Fatalf("user=%+v", u)
	}
	_, err = s.CreateUser(entities.NewUser{RegistrationForm: entities.RegistrationForm{Username: "alice", Email: "other@x.com"}})
	var ve *svc.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("duplicate err=%v", err)
	}
	_, err = s.CreateUser(entities.NewUser{RegistrationForm: entities.RegistrationForm{Username: "bob"}})
	if !errors.As(err, &ve) || ve.Msg != "Missing required field: email" {
		t.Fatalf("missing email err=%v", err)
	}
}

func TestPostsLanguageOrderAndLikes(t *testing.T) {
	s := newTestService(t)
	for _, p := range []svc.PostRequest{
		{UserID: 1, DraftPost: entities.DraftPost{Title: "first", Content: "c"}},
		{UserID: 1, DraftPost: entities.DraftPost{Title: "दूसरा", Content: "c"}, Language: "hindi"},
		{UserID: 1, DraftPost: entities.DraftPost{Title: "third", Content: "c"}, Language: "english"},
	} {
		if _, err := s.CreatePost(p); err != nil {
			t.Fatalf("CreatePost: %v", err)
		}
	}
	if _, err := s.CreatePost(svc.PostRequest{UserID: 1, DraftPost: entities.DraftPost{Title: "no body"}}); err == nil {
		t.Fatalf("post without content accepted")
	}

	posts, err := s.ListPosts(svc.PostQuery{Language: "english"})
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(posts) != 2 || posts[0].Title != "third" || posts[1].Title != "first" {
		t.Fatalf("posts=%+v", posts)
	}

	n, err := s.LikePost(posts[0].ID)
	if err != nil || n != 1 {
		t.Fatalf("like n=%d err=%v", n, err)
	}
	if _, err := s.LikePost(999); !errors.Is(err, svc.ErrNotFound) {
		t.Fatalf("missing post err=%v", err)
	}
}

func TestWeatherSeasonalBase(t *testing.T) {
	jan := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	apr := time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC)
	if got := BaseTemperature("Delhi", jan); got != 20 {
		t.Fatalf("delhi jan=%v", got)
	}
	if got := BaseTemperature("Chennai", apr); got != 38 {
		t.Fatalf("chennai apr=%v", got)
	}
	if got := BaseTemperature("Nowhere", time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)); got != 27 {
		t.Fatalf("default oct=%v", got)
	}

	s := newTestService(t)
	w, err := s.CurrentWeather("Delhi", jan)
	if err != nil {
		t.Fatalf("CurrentWeather: %v", err)
	}
	if w.Temperature < 17 || w.Temperature > 23 || w.UVIndex < 1 || w.UVIndex > 10 {
		t.Fatalf("weather out of range: %+v", w)
	}
	days, err := s.Forecast("Delhi", 0, jan)
	if err != nil || len(days) != entities.ForecastDays {
		t.Fatalf("forecast len=%d err=%v", len(days), err)
	}
	if days[0].Date != "2025-01-10" || days[6].Date != "2025-01-16" {
		t.Fatalf("dates %s..%s", days[0].Date, days[6].Date)
	}
	for _, d := range days {
		if d.MaxTemp-d.MinTemp < 5.8 || d.Humidity < 20 || d.Humidity > 95 {
			t.Fatalf("day out of range: %+v", d)
		}
	}
}

func TestDetectDiseaseFallsBackToTomato(t *testing.T) {
	s := newTestService(t)
	res, err := s.DetectDisease(1, "Mango")
	if err != nil {
		t.Fatalf("DetectDisease: %v", err)
	}
	known := map[string]bool{}
	for _, n := range DiseasesFor("Tomato") {
		known[n] = true
	}
	if !known[res.DiseaseName] {
		t.Fatalf("disease %q not a tomato disease", res.DiseaseName)
	}
	if res.ConfidenceScore < 0.75 || res.ConfidenceScore > 0.95 {
		t.Fatalf("confidence=%v", res.ConfidenceScore)
	}
	if res.AffectedAreaPercentage < 5 || res.AffectedAreaPercentage > 40 || len(res.TreatmentRecommendations) != 3 {
		t.Fatalf("res=%+v", res)
	}
	if _, err := s.DetectDisease(0, "Rice"); err == nil {
		t.Fatalf("missing user accepted")
	}
}
