package serviceImp

import (
	"math"
	"strings"

	"krishi/entities"
	"krishi/pkg/backend"
	svc "krishi/pkg/backend/service"
)

type disease struct {
	name       string
	symptoms   string
	treatments []string
	prevention []string
}

var diseaseTable = map[string][]disease{
	"Rice": {
		{"Blast Disease", "Diamond-shaped lesions on leaves",
			[]string{"Apply Tricyclazole fungicide", "Improve field drainage", "Use resistant varieties"},
			[]string{"Balanced fertilization", "Avoid excessive nitrogen", "Proper spacing"}},
		{"Brown Spot", "Brown spots with yellow halos",
			[]string{"Apply Mancozeb fungicide", "Remove infected debris", "Improve nutrition"},
			[]string{"Seed treatment", "Balanced NPK", "Avoid water stress"}},
	},
	"Wheat": {
		{"Rust Disease", "Orange-red pustules on leaves",
			[]string{"Apply Propiconazole", "Remove infected plants", "Use fungicide spray"},
			[]string{"Use resistant varieties", "Proper sowing time", "Avoid dense planting"}},
		{"Powdery Mildew", "White powdery growth on leaves",
			[]string{"Apply sulfur-based fungicide", "Improve air circulation", "Remove infected parts"},
			[]string{"Avoid overhead irrigation", "Proper spacing", "Resistant varieties"}},
	},
	"Tomato": {
		{"Late Blight", "Dark lesions on leaves and fruits",
			[]string{"Apply Metalaxyl fungicide", "Remove infected plants", "Improve drainage"},
			[]string{"Avoid overhead watering", "Good air circulation", "Crop rotation"}},
		{"Early Blight", "Concentric rings on older leaves",
			[]string{"Apply Chlorothalonil", "Remove lower leaves", "Mulching"},
			[]string{"Proper spacing", "Avoid water stress", "Balanced nutrition"}},
	},
}

var severities = []string{"Mild", "Moderate", "Severe"}

// DiseasesFor returns the known diseases for crop, falling back to Tomato.
func DiseasesFor(crop string) []string {
	list, ok := diseaseTable[strings.TrimSpace(crop)]
	if !ok {
		list = diseaseTable[entities.DefaultDiseaseCrop]
	}
	out := make([]string, 0, len(list))
	for _, d := range list {
		out = append(out, d.name)
	}
	return out
}

func (s *service) DetectDisease(userID int64, cropType string) (*entities.DiseaseResult, error) {
	if userID <= 0 {
		return nil, svc.MissingField("user_id")
	}
	list, ok := diseaseTable[strings.TrimSpace(cropType)]
	if !ok {
		list = diseaseTable[entities.DefaultDiseaseCrop]
	}
	d := list[s.intn(len(list))]

	res := &entities.DiseaseResult{
		DiseaseName:              d.name,
		ConfidenceScore:          round2(s.float(0.75, 0.95)),
		SeverityLevel:            s.pick(severities),
		AffectedAreaPercentage:   round1(s.float(5, 40)),
		Symptoms:                 d.symptoms,
		TreatmentRecommendations: append([]string(nil), d.treatments...),
		PreventiveMeasures:       append([]string(nil), d.prevention...),
	}
	rec := &backend.DiseaseDetection{
		UserID:                 userID,
		CropType:               cropType,
		DiseaseName:            res.DiseaseName,
		ConfidenceScore:        res.ConfidenceScore,
		SeverityLevel:          res.SeverityLevel,
		AffectedAreaPercentage: res.AffectedAreaPercentage,
		Treatments:             res.TreatmentRecommendations,
		Prevention:             res.PreventiveMeasures,
	}
	if err := s.repo.CreateDiseaseDetection(rec); err != nil {
		return nil, err
	}
	return res, nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
