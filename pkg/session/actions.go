package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"krishi/entities"
	"krishi/pkg/api"
)

type action struct {
	name    string
	success string
	failed  string // prefix for application errors
	errored string // prefix for transport errors
	guard   string // shown when the action needs a registered user
}

var (
	actRegister = action{name: "register", success: "User registered successfully!",
		failed: "Registration failed: ", errored: "Registration error: "}

	actSoil = action{name: "analyze soil", success: "Soil analysis completed successfully!",
		failed: "Soil analysis failed: ", errored: "Soil analysis error: "}

	actCrops = action{name: "recommend crops", success: "Crop recommendations generated successfully!",
		failed: "Failed to get crop recommendations: ", errored: "Crop recommendation error: ",
		guard: "Please register first to get crop recommendations"}

	actWeather = action{name: "fetch weather", failed: "Weather data failed: ", errored: "Weather data error: "}

	actPosts = action{name: "load posts"}

	actCreate = action{name: "create post", success: "Post created successfully!",
		failed: "Failed to create post: ", errored: "Post creation error: ",
		guard: "Please register first to create posts"}

	actLike = action{name: "like post", failed: "Failed to like post: ", errored: "Like error: "}

	actDisease = action{name: "detect disease", success: "Disease detection completed successfully!",
		failed: "Disease detection failed: ", errored: "Disease detection error: ",
		guard: "Please register first to use disease detection"}
)

func (a action) message(err error) string {
	var appErr *api.ApplicationError
	if errors.As(err, &appErr) {
		return a.failed + appErr.Msg()
	}
	var tErr *api.TransportError
	if errors.As(err, &tErr) && tErr.Err != nil {
		return a.errored + tErr.Err.Error()
	}
	return a.errored + err.Error()
}

// fail surfaces err once, unless t went stale in the meantime.
func (c *Controller) fail(t ticket, a action, err error) error {
	c.mu.Lock()
	stale := !c.currentLocked(t)
	c.mu.Unlock()
	if stale {
		c.log.Debug("dropping stale failure", "action", a.name, "err", err)
		return fmt.Errorf("%w: %w", ErrStale, err)
	}
	c.log.Warn("action failed", "action", a.name, "err", err)
	c.emit(LevelError, a, a.message(err))
	return err
}

func (c *Controller) stale(a action) error {
	c.log.Debug("dropping stale response", "action", a.name)
	return ErrStale
}

// requireUserLocked redirects to the register view when nobody is
// registered. It reports whether the caller may proceed.
func (c *Controller) requireUserLocked() bool {
	if c.st.User != nil {
		return true
	}
	c.st.View = ViewRegister
	c.advanceLocked()
	return false
}

func (c *Controller) SubmitRegistration(ctx context.Context, form entities.RegistrationForm) error {
	c.mu.Lock()
	c.st.Registration = form
	if strings.TrimSpace(form.Username) == "" || strings.TrimSpace(form.Email) == "" {
		c.mu.Unlock()
		return &PreconditionError{Action: actRegister.name, Condition: "username and email are required"}
	}
	in := entities.NewUser{RegistrationForm: form, LanguagePreference: string(c.st.Language)}
	t := c.issueLocked()
	c.mu.Unlock()
	defer t.done()

	u, err := c.api.CreateUser(ctx, in)
	if err != nil {
		return c.fail(t, actRegister, err)
	}

	// The backend has created the user either way. A moved epoch only
	// suppresses the redirect home.
	c.mu.Lock()
	current := c.currentLocked(t)
	if c.st.User == nil {
		c.st.User = u
	}
	if current {
		c.st.View = ViewHome
		c.advanceLocked()
	}
	c.mu.Unlock()

	c.log.Info("user registered", "user_id", u.ID, "username", u.Username, "redirected", current)
	c.emit(LevelInfo, actRegister, actRegister.success)
	return nil
}

func (c *Controller) AnalyzeSoil(ctx context.Context) error {
	c.mu.Lock()
	sample := c.st.Soil
	uid := c.userIDLocked()
	t := c.issueLocked()
	c.mu.Unlock()
	defer t.done()

	res, err := c.api.AnalyzeSoil(ctx, uid, sample)
	if err != nil {
		return c.fail(t, actSoil, err)
	}

	c.mu.Lock()
	if !c.currentLocked(t) {
		c.mu.Unlock()
		return c.stale(actSoil)
	}
	c.st.SoilResult = res
	c.mu.Unlock()

	c.log.Info("soil analyzed", "user_id", uid, "health_score", res.HealthScore, "soil_type", res.SoilType)
	c.emit(LevelInfo, actSoil, actSoil.success)
	return nil
}

// GetCropRecommendations asks the backend for crop advice. The result is
// logged and returned, never stored. Unlike the post and disease actions a
// missing user is a *PreconditionError and the view does not change.
func (c *Controller) GetCropRecommendations(ctx context.Context) ([]entities.CropRecommendation, error) {
	c.mu.Lock()
	if c.st.User == nil {
		c.mu.Unlock()
		err := &PreconditionError{Action: actCrops.name, Condition: "no registered user"}
		c.log.Warn("action rejected", "action", actCrops.name, "err", err)
		c.emit(LevelWarning, actCrops, actCrops.guard)
		return nil, err
	}
	uid := c.st.User.ID
	t := c.issueLocked()
	c.mu.Unlock()
	defer t.done()

	recs, err := c.api.RecommendCrops(ctx, uid)
	if err != nil {
		return nil, c.fail(t, actCrops, err)
	}

	c.mu.Lock()
	current := c.currentLocked(t)
	c.mu.Unlock()
	if !current {
		return nil, c.stale(actCrops)
	}

	names := make([]string, 0, len(recs))
	for _, r := range recs {
		names = append(names, r.CropName)
	}
	c.log.Info("crop recommendations", "user_id", uid, "crops", names)
	c.emit(LevelInfo, actCrops, actCrops.success)
	return recs, nil
}

// FetchWeather loads current conditions and the forecast for location
// (or the current location when empty) concurrently. Each half is applied
// independently of the other.
func (c *Controller) FetchWeather(ctx context.Context, location string) error {
	c.mu.Lock()
	if loc := strings.TrimSpace(location); loc != "" {
		c.st.WeatherLocation = loc
	}
	t := c.issueLocked()
	c.mu.Unlock()
	return c.fetchWeather(ctx, t)
}

func (c *Controller) fetchWeather(ctx context.Context, t ticket) error {
	defer t.done()

	var (
		current       *entities.WeatherSnapshot
		forecast      []entities.ForecastDay
		curErr, fcErr error
	)
	var g errgroup.Group
	g.Go(func() error {
		current, curErr = c.api.CurrentWeather(ctx, t.location)
		return nil
	})
	g.Go(func() error {
		forecast, fcErr = c.api.WeatherForecast(ctx, t.location, entities.ForecastDays)
		return nil
	})
	_ = g.Wait()
	err := errors.Join(curErr, fcErr)

	c.mu.Lock()
	if !c.currentLocked(t) || c.st.WeatherLocation != t.location {
		c.mu.Unlock()
		c.log.Debug("dropping stale weather", "location", t.location, "err", err)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrStale, err)
		}
		return ErrStale
	}
	if curErr == nil {
		c.st.Weather = current
	}
	if fcErr == nil {
		c.st.Forecast = forecast
	}
	c.mu.Unlock()

	if err == nil {
		c.log.Debug("weather loaded", "location", t.location, "days", len(forecast))
		return nil
	}
	var msgs []string
	for _, e := range []error{curErr, fcErr} {
		if e != nil {
			msgs = append(msgs, actWeather.message(e))
		}
	}
	c.log.Warn("action failed", "action", actWeather.name, "location", t.location, "err", err)
	c.emit(LevelError, actWeather, strings.Join(msgs, "; "))
	return err
}

// LoadCommunityPosts replaces the post list with the backend's list for the
// session language. Failures are logged only.
func (c *Controller) LoadCommunityPosts(ctx context.Context) error {
	c.mu.Lock()
	t := c.issueLocked()
	c.mu.Unlock()
	return c.loadPosts(ctx, t)
}

func (c *Controller) loadPosts(ctx context.Context, t ticket) error {
	defer t.done()

	posts, err := c.api.ListPosts(ctx, string(t.language))
	if err != nil {
		c.log.Warn("failed to load community posts", "language", t.language, "err", err)
		return err
	}

	c.mu.Lock()
	if !c.currentLocked(t) || c.st.Language != t.language {
		c.mu.Unlock()
		return c.stale(actPosts)
	}
	c.st.Posts = posts
	c.mu.Unlock()
	c.log.Debug("posts loaded", "language", t.language, "count", len(posts))
	return nil
}

func (c *Controller) SubmitPost(ctx context.Context) error {
	c.mu.Lock()
	if !c.requireUserLocked() {
		c.mu.Unlock()
		c.emit(LevelWarning, actCreate, actCreate.guard)
		return ErrRegistrationRequired
	}
	draft := c.st.Draft
	uid := c.st.User.ID
	lang := c.st.Language
	t := c.issueLocked()
	c.mu.Unlock()
	defer t.done()

	if err := c.api.CreatePost(ctx, uid, draft, string(lang)); err != nil {
		return c.fail(t, actCreate, err)
	}

	// The post exists now, so the submitted draft is cleared even if the
	// session moved on. Edits made since the submit are kept.
	c.mu.Lock()
	if c.st.Draft == draft {
		c.st.Draft = entities.DraftPost{}
	}
	reload := c.issueLocked()
	c.mu.Unlock()

	c.emit(LevelInfo, actCreate, actCreate.success)
	_ = c.loadPosts(ctx, reload)
	return nil
}

// LikePost bumps a post's like count and reloads the list.
func (c *Controller) LikePost(ctx context.Context, postID int64) error {
	c.mu.Lock()
	t := c.issueLocked()
	c.mu.Unlock()
	defer t.done()

	if err := c.api.LikePost(ctx, postID); err != nil {
		return c.fail(t, actLike, err)
	}

	c.mu.Lock()
	reload := c.issueLocked()
	c.mu.Unlock()
	_ = c.loadPosts(ctx, reload)
	return nil
}

func (c *Controller) DetectDisease(ctx context.Context) error {
	c.mu.Lock()
	if !c.requireUserLocked() {
		c.mu.Unlock()
		c.emit(LevelWarning, actDisease, actDisease.guard)
		return ErrRegistrationRequired
	}
	uid := c.st.User.ID
	crop := c.st.DiseaseCropType
	if crop == "" {
		crop = entities.DefaultDiseaseCrop
	}
	t := c.issueLocked()
	c.mu.Unlock()
	defer t.done()

	res, err := c.api.DetectDisease(ctx, uid, crop)
	if err != nil {
		return c.fail(t, actDisease, err)
	}

	c.mu.Lock()
	if !c.currentLocked(t) {
		c.mu.Unlock()
		return c.stale(actDisease)
	}
	c.st.DiseaseResult = res
	c.mu.Unlock()

	c.log.Info("disease detected", "user_id", uid, "crop", crop, "disease", res.DiseaseName)
	c.emit(LevelInfo, actDisease, actDisease.success)
	return nil
}
