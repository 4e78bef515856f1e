package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"krishi/entities"
	"krishi/pkg/api"
	"krishi/pkg/i18n"
	"krishi/pkg/logger"
)

type Options struct {
	API      api.Client
	Notifier Notifier
	Logger   *logger.Logger

	// GuestUserID is sent as user_id for soil analysis when nobody has
	// registered yet.
	GuestUserID     int64
	WeatherLocation string
	Language        i18n.Language
}

// Controller owns one session. Every exported method is safe for concurrent
// use; continuations apply under mu and run to completion.
type Controller struct {
	api     api.Client
	notify  Notifier
	log     *logger.Logger
	guestID int64

	mu    sync.Mutex
	st    State
	epoch uint64

	inflight inflight
	bg       sync.WaitGroup
}

func New(opts Options) (*Controller, error) {
	if opts.API == nil {
		return nil, errors.New("session: api client required")
	}
	n := opts.Notifier
	if n == nil {
		n = NotifierFunc(func(Notice) {})
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	guest := opts.GuestUserID
	if guest <= 0 {
		guest = 1
	}
	return &Controller{
		api:     opts.API,
		notify:  n,
		log:     log.With("component", "session"),
		guestID: guest,
		st:      initialState(opts.Language, strings.TrimSpace(opts.WeatherLocation)),
	}, nil
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	s := Snapshot{State: c.st.clone(), Epoch: c.epoch}
	c.mu.Unlock()
	s.Loading = c.inflight.active()
	return s
}

// Loading reports whether at least one request is outstanding.
func (c *Controller) Loading() bool { return c.inflight.active() }

// Wait blocks until fetches started by Navigate and SetLanguage have settled.
func (c *Controller) Wait() { c.bg.Wait() }

// spawnLocked runs job in the background. Callers hold mu and have issued
// the job's ticket, so Loading is true and bg is counted on return.
func (c *Controller) spawnLocked(job func()) {
	c.bg.Add(1)
	go func() {
		defer c.bg.Done()
		job()
	}()
}

func (c *Controller) Navigate(ctx context.Context, v View) error {
	if _, err := ParseView(string(v)); err != nil {
		return err
	}
	bg := context.WithoutCancel(ctx)

	c.mu.Lock()
	from := c.st.View
	c.st.View = v
	c.advanceLocked()
	switch v {
	case ViewCommunity:
		t := c.issueLocked()
		c.spawnLocked(func() { _ = c.loadPosts(bg, t) })
	case ViewWeather:
		t := c.issueLocked()
		c.spawnLocked(func() { _ = c.fetchWeather(bg, t) })
	}
	c.mu.Unlock()

	c.log.Debug("navigate", "from", from, "to", v)
	return nil
}

func (c *Controller) SetLanguage(ctx context.Context, lang i18n.Language) error {
	if _, err := i18n.ParseLanguage(string(lang)); err != nil {
		return err
	}
	bg := context.WithoutCancel(ctx)

	c.mu.Lock()
	c.st.Language = lang
	if c.st.View == ViewCommunity {
		t := c.issueLocked()
		c.spawnLocked(func() { _ = c.loadPosts(bg, t) })
	}
	c.mu.Unlock()
	return nil
}

// Logout drops the user. It is a no-op when nobody is registered.
func (c *Controller) Logout() {
	c.mu.Lock()
	if c.st.User == nil {
		c.mu.Unlock()
		return
	}
	name := c.st.User.Username
	c.st.User = nil
	c.advanceLocked()
	c.mu.Unlock()
	c.log.Info("logout", "username", name)
}

func (c *Controller) EditRegistration(fn func(*entities.RegistrationForm)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.st.Registration)
}

func (c *Controller) EditSoilSample(fn func(*entities.SoilSample)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.st.Soil)
}

func (c *Controller) EditDraft(fn func(*entities.DraftPost)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.st.Draft)
}

func (c *Controller) SetSearchQuery(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.st.SearchQuery = q
}

func (c *Controller) SetDiseaseCropType(crop string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.st.DiseaseCropType = strings.TrimSpace(crop)
}

func (c *Controller) emit(level Level, a action, msg string) {
	c.notify.Notify(Notice{Level: level, Action: a.name, Message: msg, At: time.Now()})
}

// userIDLocked returns the registered user's id, or the guest id.
func (c *Controller) userIDLocked() int64 {
	if c.st.User != nil {
		return c.st.User.ID
	}
	return c.guestID
}
