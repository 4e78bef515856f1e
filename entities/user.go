package entities

type User struct {
	ID                 int64   `json:"id"`
	Username           string  `json:"username"`
	Email              string  `json:"email"`
	FullName           string  `json:"full_name"`
	Phone              string  `json:"phone"`
	Location           string  `json:"location"`
	FarmSize           float64 `json:"farm_size"` // acres
	PrimaryCrops       string  `json:"primary_crops"`
	LanguagePreference string  `json:"language_preference"`
	CreatedAt          string  `json:"created_at,omitempty"`
}

// RegistrationForm is what the register view collects.
type RegistrationForm struct {
	Username     string  `json:"username"`
	Email        string  `json:"email"`
	FullName     string  `json:"full_name"`
	Phone        string  `json:"phone"`
	Location     string  `json:"location"`
	FarmSize     float64 `json:"farm_size"`
	PrimaryCrops string  `json:"primary_crops"`
}

// NewUser is the create-user request body.
type NewUser struct {
	RegistrationForm
	LanguagePreference string `json:"language_preference"`
}
