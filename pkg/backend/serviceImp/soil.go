package serviceImp

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"krishi/entities"
	"krishi/pkg/backend"
	"krishi/pkg/backend/repository"
	svc "krishi/pkg/backend/service"
)

var soilTypes = []string{"Loamy", "Clay", "Sandy", "Silty"}

type cropNeeds struct {
	name   string
	phMin  float64
	phMax  float64
	soils  []string
	water  string
	season string
}

// cropTable is ordered so that ties in suitability keep a stable order.
var cropTable = []cropNeeds{
	{"Rice", 5.5, 7.0, []string{"Clay", "Loamy"}, "high", "Kharif (June-July)"},
	{"Wheat", 6.0, 7.5, []string{"Loamy", "Clay"}, "medium", "Rabi (November-December)"},
	{"Maize", 5.8, 7.8, []string{"Loamy", "Sandy"}, "medium", "Kharif (June-July)"},
	{"Cotton", 5.8, 8.0, []string{"Loamy", "Clay"}, "medium", "Kharif (April-May)"},
	{"Sugarcane", 6.0, 7.5, []string{"Loamy", "Clay"}, "high", "Spring (February-March)"},
	{"Soybean", 6.0, 7.0, []string{"Loamy", "Sandy"}, "medium", "Kharif (June-July)"},
	{"Groundnut", 6.0, 7.0, []string{"Sandy", "Loamy"}, "low", "Kharif (June-July)"},
	{"Tomato", 6.0, 7.0, []string{"Loamy", "Sandy"}, "medium", "Winter (October-November)"},
	{"Potato", 5.0, 6.5, []string{"Loamy", "Sandy"}, "medium", "Rabi (October-November)"},
	{"Onion", 6.0, 7.5, []string{"Loamy", "Sandy"}, "medium", "Rabi (November-December)"},
}

func (s *service) AnalyzeSoil(in svc.SoilRequest) (*entities.SoilResult, error) {
	if in.UserID <= 0 {
		return nil, svc.MissingField("user_id")
	}
	if strings.TrimSpace(in.Location) == "" {
		return nil, svc.MissingField("location")
	}
	soilType := in.SoilType
	if soilType == "" {
		soilType = soilTypes[s.intn(len(soilTypes))]
	}

	a := &backend.SoilAnalysis{
		SampleID:        fmt.Sprintf("SOIL_%s_%s", time.Now().UTC().Format("20060102_150405"), uuid.NewString()[:8]),
		UserID:          in.UserID,
		Location:        in.Location,
		PHLevel:         in.PHLevel,
		Nitrogen:        in.Nitrogen,
		Phosphorus:      in.Phosphorus,
		Potassium:       in.Potassium,
		OrganicMatter:   in.OrganicMatter,
		MoistureContent: in.MoistureContent,
		SoilType:        soilType,
	}
	a.HealthScore = HealthScore(in.SoilSample)
	a.Recommendations = SoilRecommendations(in.SoilSample)
	a.SuitableCrops = SuitableCrops(in.SoilSample, soilType)

	if err := s.repo.CreateSoilAnalysis(a); err != nil {
		return nil, err
	}
	out := a.Entity()
	return &out, nil
}

// HealthScore rates pH, organic matter, NPK and moisture in bands worth up
// to 25 each and scales the measured factors to 0..100. A sample with no
// measured factor scores 50.
func HealthScore(s entities.SoilSample) float64 {
	score, factors := 0.0, 0

	if s.PHLevel != 0 {
		switch {
		case s.PHLevel >= 6.0 && s.PHLevel <= 7.5:
			score += 25
		case s.PHLevel >= 5.5 && s.PHLevel <= 8.0:
			score += 20
		default:
			score += 10
		}
		factors++
	}
	if s.OrganicMatter != 0 {
		switch {
		case s.OrganicMatter >= 3.0:
			score += 25
		case s.OrganicMatter >= 2.0:
			score += 20
		default:
			score += 10
		}
		factors++
	}
	if s.Nitrogen != 0 && s.Phosphorus != 0 && s.Potassium != 0 {
		if s.Nitrogen >= 40 {
			score += 8
		}
		if s.Phosphorus >= 25 {
			score += 8
		}
		if s.Potassium >= 150 {
			score += 9
		}
		factors++
	}
	if s.MoistureContent != 0 {
		switch {
		case s.MoistureContent >= 20 && s.MoistureContent <= 30:
			score += 25
		case s.MoistureContent >= 15 && s.MoistureContent <= 35:
			score += 20
		default:
			score += 10
		}
		factors++
	}

	if factors == 0 {
		return 50
	}
	return math.Round(score*4/float64(factors)*10) / 10
}

func SoilRecommendations(s entities.SoilSample) []entities.SoilRecommendation {
	out := []entities.SoilRecommendation{}
	if s.PHLevel != 0 {
		if s.PHLevel < 6.0 {
			out = append(out, entities.SoilRecommendation{
				Type: "pH_adjustment", Issue: "Soil is too acidic", Priority: "high",
				Recommendation: "Apply lime to increase pH. Add 2-3 tons of agricultural lime per hectare.",
			})
		} else if s.PHLevel > 7.5 {
			out = append(out, entities.SoilRecommendation{
				Type: "pH_adjustment", Issue: "Soil is too alkaline", Priority: "high",
				Recommendation: "Apply sulfur or organic matter to decrease pH. Add 500-1000 kg sulfur per hectare.",
			})
		}
	}
	if s.OrganicMatter != 0 && s.OrganicMatter < 2.0 {
		out = append(out, entities.SoilRecommendation{
			Type: "organic_matter", Issue: "Low organic matter content", Priority: "medium",
			Recommendation: "Add compost, farmyard manure, or green manure. Apply 10-15 tons per hectare.",
		})
	}
	if s.Nitrogen != 0 && s.Nitrogen < 30 {
		out = append(out, entities.SoilRecommendation{
			Type: "nitrogen", Issue: "Nitrogen deficiency", Priority: "high",
			Recommendation: "Apply nitrogen-rich fertilizers like urea or ammonium sulfate. Consider legume cover crops.",
		})
	}
	if s.Phosphorus != 0 && s.Phosphorus < 20 {
		out = append(out, entities.SoilRecommendation{
			Type: "phosphorus", Issue: "Phosphorus deficiency", Priority: "medium",
			Recommendation: "Apply phosphate fertilizers like DAP or rock phosphate.",
		})
	}
	if s.Potassium != 0 && s.Potassium < 120 {
		out = append(out, entities.SoilRecommendation{
			Type: "potassium", Issue: "Potassium deficiency", Priority: "medium",
			Recommendation: "Apply potash fertilizers like muriate of potash or sulfate of potash.",
		})
	}
	return out
}

// SuitableCrops scores every crop in the table against the sample and
// returns the top five scoring at least 50, best first.
func SuitableCrops(s entities.SoilSample, soilType string) []entities.SuitableCrop {
	out := []entities.SuitableCrop{}
	for _, c := range cropTable {
		score := 0.0
		if s.PHLevel != 0 {
			switch {
			case s.PHLevel >= c.phMin && s.PHLevel <= c.phMax:
				score += 40
			case s.PHLevel >= c.phMin-0.5 && s.PHLevel <= c.phMax+0.5:
				score += 25
			default:
				score += 10
			}
		}
		for _, st := range c.soils {
			if st == soilType {
				score += 30
				break
			}
		}
		if s.Nitrogen >= 30 {
			score += 10
		}
		if s.Phosphorus >= 20 {
			score += 10
		}
		if s.Potassium >= 120 {
			score += 10
		}
		if score >= 50 {
			out = append(out, entities.SuitableCrop{
				CropName:          c.name,
				SuitabilityScore:  score,
				WaterRequirement:  c.water,
				RecommendedSeason: c.season,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SuitabilityScore > out[j].SuitabilityScore })
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

var sampleCrops = []entities.CropRecommendation{
	{
		CropName: "Rice", Variety: "Basmati 370", ConfidenceScore: 0.85, ExpectedYield: 4.5,
		PlantingSeason: "Kharif", HarvestTime: 120, WaterRequirement: "High (1500-2000mm)",
		FertilizerRecommendation: "NPK 120:60:40 kg/ha",
		PestManagement:           "Monitor for stem borer, leaf folder. Use IPM practices.",
	},
	{
		CropName: "Wheat", Variety: "HD 2967", ConfidenceScore: 0.78, ExpectedYield: 3.8,
		PlantingSeason: "Rabi", HarvestTime: 110, WaterRequirement: "Medium (450-650mm)",
		FertilizerRecommendation: "NPK 150:75:50 kg/ha",
		PestManagement:           "Watch for aphids, rust diseases. Apply fungicides as needed.",
	},
	{
		CropName: "Maize", Variety: "Pioneer 30V92", ConfidenceScore: 0.82, ExpectedYield: 5.2,
		PlantingSeason: "Kharif", HarvestTime: 95, WaterRequirement: "Medium (500-800mm)",
		FertilizerRecommendation: "NPK 180:60:40 kg/ha",
		PestManagement:           "Control fall armyworm, stem borer. Use pheromone traps.",
	},
}

// RecommendCrops returns the detailed recommendations and stores them
// against the user's latest soil analysis, if any.
func (s *service) RecommendCrops(userID int64) ([]entities.CropRecommendation, error) {
	if userID <= 0 {
		return nil, svc.MissingField("user_id")
	}
	var analysisID *int64
	latest, err := s.repo.LatestSoilAnalysis(userID)
	switch {
	case err == nil:
		analysisID = &latest.ID
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	rows := make([]backend.CropRecommendation, 0, len(sampleCrops))
	for _, c := range sampleCrops {
		rows = append(rows, backend.CropRecommendation{
			UserID:                   userID,
			SoilAnalysisID:           analysisID,
			CropName:                 c.CropName,
			Variety:                  c.Variety,
			ConfidenceScore:          c.ConfidenceScore,
			ExpectedYield:            c.ExpectedYield,
			PlantingSeason:           c.PlantingSeason,
			HarvestTime:              c.HarvestTime,
			WaterRequirement:         c.WaterRequirement,
			FertilizerRecommendation: c.FertilizerRecommendation,
			PestManagement:           c.PestManagement,
		})
	}
	if err := s.repo.CreateCropRecommendations(rows); err != nil {
		return nil, err
	}
	return append([]entities.CropRecommendation(nil), sampleCrops...), nil
}
