package entities

// SoilSample holds the soil form. A zero value means "not measured".
type SoilSample struct {
	Location        string  `json:"location"`
	PHLevel         float64 `json:"ph_level"`
	Nitrogen        float64 `json:"nitrogen"`
	Phosphorus      float64 `json:"phosphorus"`
	Potassium       float64 `json:"potassium"`
	OrganicMatter   float64 `json:"organic_matter"`
	MoistureContent float64 `json:"moisture_content"`
}

type SoilRecommendation struct {
	Type           string `json:"type"` // pH_adjustment|organic_matter|nitrogen|phosphorus|potassium
	Issue          string `json:"issue,omitempty"`
	Recommendation string `json:"recommendation"`
	Priority       string `json:"priority,omitempty"` // high|medium|low
}

type SuitableCrop struct {
	CropName          string  `json:"crop_name"`
	SuitabilityScore  float64 `json:"suitability_score"`
	WaterRequirement  string  `json:"water_requirement,omitempty"`
	RecommendedSeason string  `json:"recommended_season,omitempty"`
}

type SoilResult struct {
	SampleID        string               `json:"sample_id,omitempty"`
	HealthScore     float64              `json:"health_score"`
	SoilType        string               `json:"soil_type"`
	Recommendations []SoilRecommendation `json:"recommendations"`
	SuitableCrops   []SuitableCrop       `json:"suitable_crops"`
}

type CropRecommendation struct {
	CropName                 string  `json:"crop_name"`
	Variety                  string  `json:"variety,omitempty"`
	ConfidenceScore          float64 `json:"confidence_score"`
	ExpectedYield            float64 `json:"expected_yield,omitempty"` // t/ha
	PlantingSeason           string  `json:"planting_season,omitempty"`
	HarvestTime              int     `json:"harvest_time,omitempty"` // days
	WaterRequirement         string  `json:"water_requirement,omitempty"`
	FertilizerRecommendation string  `json:"fertilizer_recommendation,omitempty"`
	PestManagement           string  `json:"pest_management,omitempty"`
}
