package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"krishi/entities"
	"krishi/pkg/logger"
)

const maxBodyBytes = 1 << 20

type Options struct {
	BaseURL    string // e.g. http://127.0.0.1:5001/api
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *logger.Logger
}

type HTTPClient struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	log        *logger.Logger
}

func NewHTTP(opts Options) (*HTTPClient, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("api: base url required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("api: bad base url: %w", err)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &HTTPClient{baseURL: baseURL, timeout: timeout, httpClient: hc, log: log.With("component", "api")}, nil
}

func (c *HTTPClient) BaseURL() string { return c.baseURL }

// envelope is the backend's response wrapper. Only the fields a given
// endpoint fills are non-empty.
type envelope struct {
	Success         bool            `json:"success"`
	Error           string          `json:"error"`
	Data            json.RawMessage `json:"data"`
	Recommendations json.RawMessage `json:"recommendations"`
	SuitableCrops   json.RawMessage `json:"suitable_crops"`
	DetectionResult json.RawMessage `json:"detection_result"`
}

func (c *HTTPClient) CreateUser(ctx context.Context, in entities.NewUser) (*entities.User, error) {
	const op = "create user"
	var env envelope
	if err := c.doJSON(ctx, op, http.MethodPost, "/users", in, &env); err != nil {
		return nil, err
	}
	var u entities.User
	if err := decodeField(op, "data", env.Data, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) AnalyzeSoil(ctx context.Context, userID int64, sample entities.SoilSample) (*entities.SoilResult, error) {
	const op = "analyze soil"
	body := struct {
		UserID int64 `json:"user_id"`
		entities.SoilSample
	}{UserID: userID, SoilSample: sample}

	var env envelope
	if err := c.doJSON(ctx, op, http.MethodPost, "/soil/analyze", body, &env); err != nil {
		return nil, err
	}
	var core struct {
		SampleID    string  `json:"sample_id"`
		HealthScore float64 `json:"health_score"`
		SoilType    string  `json:"soil_type"`
	}
	if err := decodeField(op, "data", env.Data, &core); err != nil {
		return nil, err
	}
	out := &entities.SoilResult{SampleID: core.SampleID, HealthScore: core.HealthScore, SoilType: core.SoilType}
	if err := decodeField(op, "recommendations", env.Recommendations, &out.Recommendations); err != nil {
		return nil, err
	}
	if err := decodeField(op, "suitable_crops", env.SuitableCrops, &out.SuitableCrops); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) RecommendCrops(ctx context.Context, userID int64) ([]entities.CropRecommendation, error) {
	const op = "recommend crops"
	var env envelope
	if err := c.doJSON(ctx, op, http.MethodPost, "/crops/recommend", map[string]int64{"user_id": userID}, &env); err != nil {
		return nil, err
	}
	var out []entities.CropRecommendation
	if err := decodeField(op, "data", env.Data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CurrentWeather(ctx context.Context, location string) (*entities.WeatherSnapshot, error) {
	const op = "current weather"
	var env envelope
	if err := c.doJSON(ctx, op, http.MethodGet, "/weather/current/"+url.PathEscape(location), nil, &env); err != nil {
		return nil, err
	}
	var w entities.WeatherSnapshot
	if err := decodeField(op, "data", env.Data, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *HTTPClient) WeatherForecast(ctx context.Context, location string, days int) ([]entities.ForecastDay, error) {
	const op = "weather forecast"
	if days <= 0 {
		days = entities.ForecastDays
	}
	path := "/weather/forecast/" + url.PathEscape(location) + "?days=" + strconv.Itoa(days)
	var env envelope
	if err := c.doJSON(ctx, op, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	var out []entities.ForecastDay
	if err := decodeField(op, "data", env.Data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) ListPosts(ctx context.Context, language string) ([]entities.CommunityPost, error) {
	const op = "list posts"
	q := url.Values{}
	q.Set("language", language)
	var env envelope
	if err := c.doJSON(ctx, op, http.MethodGet, "/community/posts?"+q.Encode(), nil, &env); err != nil {
		return nil, err
	}
	out := []entities.CommunityPost{}
	if err := decodeField(op, "data", env.Data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreatePost(ctx context.Context, userID int64, draft entities.DraftPost, language string) error {
	body := struct {
		UserID int64 `json:"user_id"`
		entities.DraftPost
		Language string `json:"language"`
	}{UserID: userID, DraftPost: draft, Language: language}
	var env envelope
	return c.doJSON(ctx, "create post", http.MethodPost, "/community/posts", body, &env)
}

func (c *HTTPClient) LikePost(ctx context.Context, postID int64) error {
	var env envelope
	path := "/community/posts/" + strconv.FormatInt(postID, 10) + "/like"
	return c.doJSON(ctx, "like post", http.MethodPost, path, struct{}{}, &env)
}

func (c *HTTPClient) DetectDisease(ctx context.Context, userID int64, cropType string) (*entities.DiseaseResult, error) {
	const op = "detect disease"
	body := map[string]any{"user_id": userID, "crop_type": cropType}
	var env envelope
	if err := c.doJSON(ctx, op, http.MethodPost, "/disease/detect", body, &env); err != nil {
		return nil, err
	}
	if isEmptyJSON(env.DetectionResult) {
		return nil, &TransportError{Op: op, Err: errors.New("response has no detection_result")}
	}
	var out entities.DiseaseResult
	if err := decodeField(op, "detection_result", env.DetectionResult, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health checks GET /health. The health endpoint answers a bare status
// object, not an envelope, so only the HTTP status is inspected.
func (c *HTTPClient) Health(ctx context.Context) error {
	const op = "health"
	ctx2, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx2, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ApplicationError{Op: op, Status: resp.StatusCode}
	}
	return nil
}

// ---------------- HTTP helpers ----------------

func (c *HTTPClient) doJSON(ctx context.Context, op, method, path string, body any, env *envelope) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return &TransportError{Op: op, Err: err}
		}
	}

	ctx2, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var rdr io.Reader
	if body != nil {
		rdr = &buf
	}
	req, err := http.NewRequestWithContext(ctx2, method, c.baseURL+path, rdr)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	reqID := uuid.NewString()
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("request failed", "op", op, "request_id", reqID, "err", err)
		return &TransportError{Op: op, Err: err}
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	_ = resp.Body.Close()
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	c.log.Debug("request done", "op", op, "request_id", reqID, "status", resp.StatusCode, "took", time.Since(start))

	if err := json.Unmarshal(raw, env); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("status %d: decode envelope: %w", resp.StatusCode, err)}
	}
	if !env.Success {
		return &ApplicationError{Op: op, Status: resp.StatusCode, Message: env.Error}
	}
	return nil
}

func decodeField(op, name string, raw json.RawMessage, out any) error {
	if isEmptyJSON(raw) {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("decode %s: %w", name, err)}
	}
	return nil
}

func isEmptyJSON(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null"
}
