package entities

type DiseaseResult struct {
	DiseaseName              string   `json:"disease_name"`
	ConfidenceScore          float64  `json:"confidence_score"` // 0..1
	SeverityLevel            string   `json:"severity_level"`   // Mild|Moderate|Severe
	AffectedAreaPercentage   float64  `json:"affected_area_percentage,omitempty"`
	Symptoms                 string   `json:"symptoms,omitempty"`
	TreatmentRecommendations []string `json:"treatment_recommendations"`
	PreventiveMeasures       []string `json:"preventive_measures"`
}

// DefaultDiseaseCrop is the crop sent when the user has not picked one.
const DefaultDiseaseCrop = "Tomato"
