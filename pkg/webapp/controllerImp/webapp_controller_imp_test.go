package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/labstack/echo/v4"

	"krishi/pkg/api"
	"krishi/pkg/faq"
	healthCtrlImp "krishi/pkg/health/controllerImp"
	"krishi/pkg/i18n"
	"krishi/pkg/session"
	"krishi/pkg/view"
	"krishi/router"
)

type gateway struct {
	e     *echo.Echo
	sess  *session.Controller
	inbox *session.Inbox
}

func newGateway(t *testing.T) *gateway {
	t.Helper()
	client := api.NewMock()
	inbox := session.NewInbox(0)
	sess, err := session.New(session.Options{API: client, Notifier: inbox})
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	r, err := view.New(i18n.Default())
	if err != nil {
		t.Fatalf("view.New: %v", err)
	}
	e := router.New(echo.New(), nil,
		New(sess, inbox, faq.NewAccordion(), r, nil),
		healthCtrlImp.NewHealthCtrl(client, sess),
	)
	return &gateway{e: e, sess: sess, inbox: inbox}
}

func (g *gateway) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	g.e.ServeHTTP(rec, req)
	return rec
}

func (g *gateway) state(t *testing.T) session.Snapshot {
	t.Helper()
	rec := g.do(t, http.MethodGet, "/state", "")
	var s session.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	return s
}

func TestPageRendersActiveView(t *testing.T) {
	g := newGateway(t)
	rec := g.do(t, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("code=%d", rec.Code)
	}
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	if v, _ := doc.Find("body").Attr("data-view"); v != "home" {
		t.Fatalf("data-view=%q", v)
	}
	if n := doc.Find("#faq .faq-item").Length(); n != len(faq.Entries) {
		t.Fatalf("faq items=%d", n)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing request id")
	}
}

func TestGuardedActionRedirectsToRegister(t *testing.T) {
	g := newGateway(t)
	rec := g.do(t, http.MethodPost, "/community/posts", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("code=%d body=%s", rec.Code, rec.Body.String())
	}
	if s := g.state(t); s.View != session.ViewRegister {
		t.Fatalf("view=%s", s.View)
	}

	var notices []session.Notice
	_ = json.Unmarshal(g.do(t, http.MethodGet, "/notices", "").Body.Bytes(), &notices)
	if len(notices) != 1 || notices[0].Level != session.LevelWarning {
		t.Fatalf("notices=%+v", notices)
	}
	_ = json.Unmarshal(g.do(t, http.MethodGet, "/notices", "").Body.Bytes(), &notices)
	if len(notices) != 0 {
		t.Fatalf("notices not drained: %+v", notices)
	}
}

func TestRegisterThenPost(t *testing.T) {
	g := newGateway(t)

	if rec := g.do(t, http.MethodPut, "/register/form", `{"username":"asha","location":"Nashik"}`); rec.Code != http.StatusOK {
		t.Fatalf("edit code=%d", rec.Code)
	}
	if rec := g.do(t, http.MethodPut, "/register/form", `{"username":`); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad json code=%d", rec.Code)
	}
	s := g.state(t)
	if s.Registration.Username != "asha" || s.Registration.Location != "Nashik" {
		t.Fatalf("registration=%+v", s.Registration)
	}

	if rec := g.do(t, http.MethodPost, "/register", ""); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("register without email code=%d", rec.Code)
	}
	rec := g.do(t, http.MethodPost, "/register", `{"email":"asha@x.in"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("register code=%d body=%s", rec.Code, rec.Body.String())
	}
	s = g.state(t)
	if s.User == nil || s.User.Username != "asha" || s.View != session.ViewHome {
		t.Fatalf("after register: user=%+v view=%s", s.User, s.View)
	}

	g.do(t, http.MethodPut, "/community/draft", `{"title":"Onion rates","content":"Lasalgaon today?","category":"Market Prices"}`)
	if rec := g.do(t, http.MethodPost, "/community/posts", ""); rec.Code != http.StatusOK {
		t.Fatalf("post code=%d body=%s", rec.Code, rec.Body.String())
	}
	s = g.state(t)
	if len(s.Posts) != 1 || s.Posts[0].Title != "Onion rates" || s.Draft.Title != "" {
		t.Fatalf("posts=%+v draft=%+v", s.Posts, s.Draft)
	}

	if rec := g.do(t, http.MethodPost, "/community/posts/1/like", ""); rec.Code != http.StatusOK {
		t.Fatalf("like code=%d", rec.Code)
	}
	if rec := g.do(t, http.MethodPost, "/community/posts/9/like", ""); rec.Code != http.StatusBadGateway {
		t.Fatalf("missing like code=%d", rec.Code)
	}
	if s = g.state(t); s.Posts[0].LikesCount != 1 {
		t.Fatalf("likes=%d", s.Posts[0].LikesCount)
	}

	g.do(t, http.MethodPost, "/logout", "")
	if s = g.state(t); s.User != nil {
		t.Fatalf("still logged in")
	}
}

func TestNavigateWeatherLoadsInBackground(t *testing.T) {
	g := newGateway(t)
	if rec := g.do(t, http.MethodPost, "/navigate/nowhere", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown view code=%d", rec.Code)
	}
	if rec := g.do(t, http.MethodPost, "/navigate/weather", ""); rec.Code != http.StatusOK {
		t.Fatalf("navigate code=%d", rec.Code)
	}
	g.sess.Wait()
	s := g.state(t)
	if s.Weather == nil || s.Weather.Location != "Delhi" || len(s.Forecast) != 7 || s.Loading {
		t.Fatalf("weather=%+v forecast=%d loading=%v", s.Weather, len(s.Forecast), s.Loading)
	}

	if rec := g.do(t, http.MethodPost, "/weather", `{"location":"Pune"}`); rec.Code != http.StatusOK {
		t.Fatalf("weather code=%d", rec.Code)
	}
	if s = g.state(t); s.WeatherLocation != "Pune" || s.Weather.Location != "Pune" {
		t.Fatalf("location=%s weather=%+v", s.WeatherLocation, s.Weather)
	}
}

func TestSoilAndCrops(t *testing.T) {
	g := newGateway(t)
	if rec := g.do(t, http.MethodPost, "/crops/recommend", ""); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("crops without user code=%d", rec.Code)
	}
	if s := g.state(t); s.View != session.ViewHome {
		t.Fatalf("crop guard changed view to %s", s.View)
	}
	g.do(t, http.MethodPut, "/soil/sample", `{"location":"Delhi","ph_level":7.8}`)
	if rec := g.do(t, http.MethodPost, "/soil/analyze", ""); rec.Code != http.StatusOK {
		t.Fatalf("analyze code=%d", rec.Code)
	}
	s := g.state(t)
	if s.SoilResult == nil || len(s.SoilResult.Recommendations) != 1 {
		t.Fatalf("soil=%+v", s.SoilResult)
	}

	g.do(t, http.MethodPost, "/register", `{"username":"kiran","email":"k@x.in"}`)
	rec := g.do(t, http.MethodPost, "/crops/recommend", "")
	var out struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil || rec.Code != http.StatusOK || len(out.Data) != 2 {
		t.Fatalf("code=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestFAQToggleAndLanguage(t *testing.T) {
	g := newGateway(t)
	var items []faq.Item
	_ = json.Unmarshal(g.do(t, http.MethodPost, "/faq/1/toggle", "").Body.Bytes(), &items)
	if !items[1].Open || items[0].Open {
		t.Fatalf("items=%+v", items)
	}
	_ = json.Unmarshal(g.do(t, http.MethodPost, "/faq/1/toggle", "").Body.Bytes(), &items)
	if items[1].Open {
		t.Fatalf("second toggle should close")
	}
	if rec := g.do(t, http.MethodPost, "/faq/99/toggle", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("range code=%d", rec.Code)
	}

	if rec := g.do(t, http.MethodPost, "/language/klingon", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad language code=%d", rec.Code)
	}
	g.do(t, http.MethodPost, "/language/hindi", "")
	g.do(t, http.MethodPut, "/disease/crop", `{"crop_type":"Rice"}`)
	if rec := g.do(t, http.MethodPost, "/disease/detect", ""); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("detect without user code=%d", rec.Code)
	}
	s := g.state(t)
	if s.Language != i18n.Hindi || s.DiseaseCropType != "Rice" {
		t.Fatalf("language=%s crop=%s", s.Language, s.DiseaseCropType)
	}
}

func TestHealthReportsBackend(t *testing.T) {
	g := newGateway(t)
	rec := g.do(t, http.MethodGet, "/health", "")
	var out map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	if rec.Code != http.StatusOK || out["loading"] != false {
		t.Fatalf("code=%d out=%v", rec.Code, out)
	}
}

func TestPartialEditsMergeIntoSessionState(t *testing.T) {
	g := newGateway(t)
	g.do(t, http.MethodPut, "/soil/sample", `{"location":"Hisar"}`)
	g.do(t, http.MethodPut, "/soil/sample", `{"ph_level":6.5,"nitrogen":42}`)
	if rec := g.do(t, http.MethodPut, "/soil/sample", `{"ph_level":"acidic"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad json code=%d", rec.Code)
	}
	s := g.state(t)
	if s.Soil.Location != "Hisar" || s.Soil.PHLevel != 6.5 || s.Soil.Nitrogen != 42 {
		t.Fatalf("soil=%+v", s.Soil)
	}

	g.do(t, http.MethodPut, "/community/draft", `{"title":"Drip kits"}`)
	g.do(t, http.MethodPut, "/community/draft", `{"category":"Technology"}`)
	if d := g.state(t).Draft; d.Title != "Drip kits" || d.Category != "Technology" {
		t.Fatalf("draft=%+v", d)
	}
}
