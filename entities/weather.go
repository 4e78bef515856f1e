package entities

type WeatherSnapshot struct {
	Location    string  `json:"location"`
	Temperature float64 `json:"temperature"` // °C
	Condition   string  `json:"condition"`
	Humidity    float64 `json:"humidity"`   // %
	WindSpeed   float64 `json:"wind_speed"` // km/h
	Pressure    float64 `json:"pressure"`   // hPa
	Rainfall    float64 `json:"rainfall"`   // mm
	UVIndex     int     `json:"uv_index"`
	Visibility  float64 `json:"visibility,omitempty"` // km
	Timestamp   string  `json:"timestamp,omitempty"`
}

type ForecastDay struct {
	Date        string  `json:"date"` // YYYY-MM-DD
	Temperature float64 `json:"temperature"`
	Condition   string  `json:"condition"`
	Rainfall    float64 `json:"rainfall"`
	Humidity    float64 `json:"humidity,omitempty"`
	WindSpeed   float64 `json:"wind_speed,omitempty"`
	MaxTemp     float64 `json:"max_temp,omitempty"`
	MinTemp     float64 `json:"min_temp,omitempty"`
}

// ForecastDays is how many days the weather view asks for.
const ForecastDays = 7
