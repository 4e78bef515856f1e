package serviceImp

import (
	"math"
	"strings"
	"time"

	"krishi/entities"
	svc "krishi/pkg/backend/service"
)

var baseTemps = map[string]float64{
	"Delhi": 25, "Mumbai": 28, "Bangalore": 22, "Chennai": 30,
	"Kolkata": 27, "Hyderabad": 26, "Pune": 24, "Ahmedabad": 29,
}

var (
	currentConditions  = []string{"Clear", "Partly Cloudy", "Cloudy", "Rainy", "Sunny"}
	forecastConditions = []string{"Clear", "Partly Cloudy", "Cloudy", "Rainy", "Sunny", "Thunderstorm"}
)

// seasonalAdjustment shifts the base temperature by Indian season: winter
// (Dec-Feb), summer (Mar-May), monsoon (Jun-Sep) and post-monsoon.
func seasonalAdjustment(m time.Month) float64 {
	switch m {
	case time.December, time.January, time.February:
		return -5
	case time.March, time.April, time.May:
		return 8
	case time.June, time.July, time.August, time.September:
		return -2
	}
	return 2
}

// BaseTemperature is the seasonal mean used before random variation.
func BaseTemperature(location string, now time.Time) float64 {
	base, ok := baseTemps[location]
	if !ok {
		base = 25
	}
	return base + seasonalAdjustment(now.Month())
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func (s *service) pick(opts []string) string { return opts[s.intn(len(opts))] }

func (s *service) CurrentWeather(location string, now time.Time) (*entities.WeatherSnapshot, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, svc.MissingField("location")
	}
	return &entities.WeatherSnapshot{
		Location:    location,
		Temperature: round1(BaseTemperature(location, now) + s.float(-3, 3)),
		Condition:   s.pick(currentConditions),
		Humidity:    round1(s.float(40, 85)),
		WindSpeed:   round1(s.float(5, 25)),
		Pressure:    round1(s.float(1000, 1020)),
		Rainfall:    round1(s.float(0, 15)),
		UVIndex:     1 + s.intn(10),
		Visibility:  round1(s.float(5, 15)),
		Timestamp:   now.UTC().Format(time.RFC3339),
	}, nil
}

func (s *service) Forecast(location string, days int, now time.Time) ([]entities.ForecastDay, error) {
	base, err := s.CurrentWeather(location, now)
	if err != nil {
		return nil, err
	}
	if days <= 0 {
		days = entities.ForecastDays
	}
	if days > 16 {
		days = 16
	}
	out := make([]entities.ForecastDay, 0, days)
	for i := 0; i < days; i++ {
		dt := s.float(-4, 4)
		humidity := math.Max(20, math.Min(95, round1(base.Humidity+s.float(-10, 10))))
		out = append(out, entities.ForecastDay{
			Date:        now.AddDate(0, 0, i).Format("2006-01-02"),
			Temperature: round1(base.Temperature + dt),
			Condition:   s.pick(forecastConditions),
			Rainfall:    round1(s.float(0, 20)),
			Humidity:    humidity,
			WindSpeed:   round1(s.float(5, 30)),
			MaxTemp:     round1(base.Temperature + dt + 3),
			MinTemp:     round1(base.Temperature + dt - 3),
		})
	}
	return out, nil
}
