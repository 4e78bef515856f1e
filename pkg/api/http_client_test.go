package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"krishi/entities"
)

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
	}
}

func testClient(t *testing.T, rt roundTripperFunc) *HTTPClient {
	t.Helper()
	c, err := NewHTTP(Options{BaseURL: "http://backend/api/", HTTPClient: &http.Client{Transport: rt}})
	if err != nil {
		t.Fatalf("NewHTTP: %v", err)
	}
	return c
}

func TestNewHTTPRequiresBaseURL(t *testing.T) {
	if _, err := NewHTTP(Options{BaseURL: "  "}); err == nil {
		t.Fatalf("expected error for empty base url")
	}
}

func TestCreateUserSendsLanguagePreference(t *testing.T) {
	c := testClient(t, func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodPost || req.URL.Path != "/api/users" {
			t.Fatalf("unexpected %s %s", req.Method, req.URL.Path)
		}
		if req.Header.Get("X-Request-ID") == "" {
			t.Fatalf("missing request id header")
		}
		var in map[string]any
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			t.Fatalf("decode req: %v", err)
		}
		if in["username"] != "alice" || in["language_preference"] != "hindi" {
			t.Fatalf("unexpected body: %v", in)
		}
		return jsonResponse(http.StatusCreated, `{"success":true,"data":{"id":1,"username":"alice","email":"a@x.com"}}`), nil
	})

	u, err := c.CreateUser(context.Background(), entities.NewUser{
		RegistrationForm:   entities.RegistrationForm{Username: "alice", Email: "a@x.com"},
		LanguagePreference: "hindi",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID != 1 || u.Username != "alice" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestAnalyzeSoilFlattensEnvelope(t *testing.T) {
	c := testClient(t, func(req *http.Request) (*http.Response, error) {
		var in map[string]any
		_ = json.NewDecoder(req.Body).Decode(&in)
		if in["user_id"] != float64(7) || in["ph_level"] != 7.8 {
			t.Fatalf("unexpected body: %v", in)
		}
		return jsonResponse(http.StatusCreated, `{
			"success": true,
			"data": {"sample_id":"S1","health_score":82,"soil_type":"Loamy","recommendations":"[]"},
			"recommendations": [{"type":"pH_adjustment","recommendation":"Apply sulfur","priority":"high"}],
			"suitable_crops": [{"crop_name":"Wheat","suitability_score":90}]
		}`), nil
	})

	res, err := c.AnalyzeSoil(context.Background(), 7, entities.SoilSample{Location: "Delhi", PHLevel: 7.8})
	if err != nil {
		t.Fatalf("AnalyzeSoil: %v", err)
	}
	if res.HealthScore != 82 || res.SoilType != "Loamy" || res.SampleID != "S1" {
		t.Fatalf("unexpected core: %+v", res)
	}
	if len(res.Recommendations) != 1 || res.Recommendations[0].Type != "pH_adjustment" {
		t.Fatalf("recommendations: %+v", res.Recommendations)
	}
	if len(res.SuitableCrops) != 1 || res.SuitableCrops[0].CropName != "Wheat" || res.SuitableCrops[0].SuitabilityScore != 90 {
		t.Fatalf("crops: %+v", res.SuitableCrops)
	}
}

func TestApplicationErrorFromEnvelope(t *testing.T) {
	c := testClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadRequest, `{"error":"Missing required field: location"}`), nil
	})

	_, err := c.AnalyzeSoil(context.Background(), 1, entities.SoilSample{})
	var appErr *ApplicationError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected ApplicationError, got %T %v", err, err)
	}
	if appErr.Status != http.StatusBadRequest || appErr.Msg() != "Missing required field: location" {
		t.Fatalf("unexpected: %+v", appErr)
	}
}

func TestApplicationErrorFallsBackToStatusText(t *testing.T) {
	c := testClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"success":false}`), nil
	})
	err := c.CreatePost(context.Background(), 1, entities.DraftPost{Title: "t"}, "english")
	var appErr *ApplicationError
	if !errors.As(err, &appErr) || appErr.Msg() != "OK" {
		t.Fatalf("unexpected: %v", err)
	}
}

func TestTransportErrors(t *testing.T) {
	boom := errors.New("connection refused")
	c := testClient(t, func(req *http.Request) (*http.Response, error) { return nil, boom })
	_, err := c.CurrentWeather(context.Background(), "Delhi")
	var tErr *TransportError
	if !errors.As(err, &tErr) || !errors.Is(err, boom) {
		t.Fatalf("expected transport error wrapping cause, got %v", err)
	}

	c = testClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadGateway, `<html>bad gateway</html>`), nil
	})
	_, err = c.ListPosts(context.Background(), "english")
	if !errors.As(err, &tErr) {
		t.Fatalf("non-json body should be a transport error, got %T %v", err, err)
	}
}

func TestWeatherPathsAndQuery(t *testing.T) {
	var seen []string
	c := testClient(t, func(req *http.Request) (*http.Response, error) {
		seen = append(seen, req.URL.EscapedPath()+"?"+req.URL.RawQuery)
		if strings.Contains(req.URL.Path, "forecast") {
			return jsonResponse(http.StatusOK, `{"success":true,"data":[{"date":"2025-01-01","temperature":20,"condition":"Sunny","rainfall":0}]}`), nil
		}
		return jsonResponse(http.StatusOK, `{"success":true,"data":{"location":"New Delhi","temperature":21.5,"uv_index":4}}`), nil
	})

	w, err := c.CurrentWeather(context.Background(), "New Delhi")
	if err != nil || w.Temperature != 21.5 || w.UVIndex != 4 {
		t.Fatalf("current: %+v %v", w, err)
	}
	days, err := c.WeatherForecast(context.Background(), "New Delhi", 0)
	if err != nil || len(days) != 1 {
		t.Fatalf("forecast: %+v %v", days, err)
	}
	if seen[0] != "/api/weather/current/New%20Delhi?" {
		t.Fatalf("current path: %s", seen[0])
	}
	if seen[1] != "/api/weather/forecast/New%20Delhi?days=7" {
		t.Fatalf("forecast path: %s", seen[1])
	}
}

func TestListPostsLanguageQueryAndEmptyData(t *testing.T) {
	c := testClient(t, func(req *http.Request) (*http.Response, error) {
		if req.URL.Query().Get("language") != "hindi" {
			t.Fatalf("language=%q", req.URL.Query().Get("language"))
		}
		return jsonResponse(http.StatusOK, `{"success":true,"data":null}`), nil
	})
	posts, err := c.ListPosts(context.Background(), "hindi")
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if posts == nil || len(posts) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", posts)
	}
}

func TestDetectDiseaseReadsDetectionResult(t *testing.T) {
	c := testClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusCreated, `{"success":true,"data":{"id":3},"detection_result":{
			"disease_name":"Late Blight","confidence_score":0.91,"severity_level":"Severe",
			"treatment_recommendations":["Apply Metalaxyl fungicide"],"preventive_measures":["Crop rotation"]}}`), nil
	})
	res, err := c.DetectDisease(context.Background(), 1, "Tomato")
	if err != nil {
		t.Fatalf("DetectDisease: %v", err)
	}
	if res.DiseaseName != "Late Blight" || res.ConfidenceScore != 0.91 || len(res.TreatmentRecommendations) != 1 {
		t.Fatalf("unexpected: %+v", res)
	}

	c = testClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusCreated, `{"success":true,"data":{"id":3}}`), nil
	})
	var tErr *TransportError
	if _, err := c.DetectDisease(context.Background(), 1, "Tomato"); !errors.As(err, &tErr) {
		t.Fatalf("missing detection_result should be a transport error, got %v", err)
	}
}

func TestHealthIgnoresEnvelope(t *testing.T) {
	c := testClient(t, func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/api/health" {
			t.Fatalf("path=%s", req.URL.Path)
		}
		return jsonResponse(http.StatusOK, `{"status":"healthy"}`), nil
	})
	if err := c.Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}
}

func TestMockPostsRoundTrip(t *testing.T) {
	m := NewMock()
	ctx := context.Background()
	if err := m.CreatePost(ctx, 1, entities.DraftPost{Title: "Rain", Content: "When?"}, "english"); err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if err := m.CreatePost(ctx, 1, entities.DraftPost{Title: "बारिश", Content: "कब?"}, "hindi"); err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if err := m.LikePost(ctx, 1); err != nil {
		t.Fatalf("LikePost: %v", err)
	}
	posts, _ := m.ListPosts(ctx, "english")
	if len(posts) != 1 || posts[0].Title != "Rain" || posts[0].LikesCount != 1 {
		t.Fatalf("unexpected posts: %+v", posts)
	}
}
