package session

import (
	"fmt"
	"strings"

	"krishi/entities"
	"krishi/pkg/i18n"
)

type View string

const (
	ViewHome      View = "home"
	ViewRegister  View = "register"
	ViewSoil      View = "soil"
	ViewWeather   View = "weather"
	ViewCommunity View = "community"
	ViewDisease   View = "disease"
)

var Views = []View{ViewHome, ViewRegister, ViewSoil, ViewWeather, ViewCommunity, ViewDisease}

func ParseView(s string) (View, error) {
	v := View(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Views {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown view %q", s)
}

// State is everything one session owns. Results persist across navigation;
// only logout clears the user.
type State struct {
	View        View           `json:"view"`
	Language    i18n.Language  `json:"language"`
	User        *entities.User `json:"user"`
	SearchQuery string         `json:"search_query"`

	Registration entities.RegistrationForm `json:"registration"`

	Soil       entities.SoilSample  `json:"soil"`
	SoilResult *entities.SoilResult `json:"soil_result"`

	WeatherLocation string                    `json:"weather_location"`
	Weather         *entities.WeatherSnapshot `json:"weather"`
	Forecast        []entities.ForecastDay    `json:"forecast"`

	Posts []entities.CommunityPost `json:"posts"`
	Draft entities.DraftPost       `json:"draft"`

	DiseaseCropType string                  `json:"disease_crop_type"`
	DiseaseResult   *entities.DiseaseResult `json:"disease_result"`
}

func initialState(lang i18n.Language, location string) State {
	if lang == "" {
		lang = i18n.English
	}
	if location == "" {
		location = "Delhi"
	}
	return State{
		View:            ViewHome,
		Language:        lang,
		WeatherLocation: location,
		Posts:           []entities.CommunityPost{},
		DiseaseCropType: entities.DefaultDiseaseCrop,
	}
}

// Snapshot is a detached copy of State plus the request flag.
type Snapshot struct {
	State
	Loading bool   `json:"loading"`
	Epoch   uint64 `json:"epoch"`
}

// LoggedIn reports whether a registered user is held.
func (s Snapshot) LoggedIn() bool { return s.User != nil }

// VisiblePosts filters Posts by the search box, case-insensitively on title,
// content and category. An empty query shows everything.
func (s Snapshot) VisiblePosts() []entities.CommunityPost {
	q := strings.ToLower(strings.TrimSpace(s.SearchQuery))
	if q == "" {
		return s.Posts
	}
	out := make([]entities.CommunityPost, 0, len(s.Posts))
	for _, p := range s.Posts {
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Content), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, p)
		}
	}
	return out
}

func (s State) clone() State {
	out := s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	if s.SoilResult != nil {
		r := *s.SoilResult
		r.Recommendations = append([]entities.SoilRecommendation(nil), s.SoilResult.Recommendations...)
		r.SuitableCrops = append([]entities.SuitableCrop(nil), s.SoilResult.SuitableCrops...)
		out.SoilResult = &r
	}
	if s.Weather != nil {
		w := *s.Weather
		out.Weather = &w
	}
	if s.Forecast != nil {
		out.Forecast = append([]entities.ForecastDay(nil), s.Forecast...)
	}
	out.Posts = append([]entities.CommunityPost{}, s.Posts...)
	if s.DiseaseResult != nil {
		d := *s.DiseaseResult
		d.TreatmentRecommendations = append([]string(nil), s.DiseaseResult.TreatmentRecommendations...)
		d.PreventiveMeasures = append([]string(nil), s.DiseaseResult.PreventiveMeasures...)
		out.DiseaseResult = &d
	}
	return out
}
