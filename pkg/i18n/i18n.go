package i18n

import (
	"fmt"
	"strings"
	"sync"
)

type Language string

const (
	English Language = "english"
	Hindi   Language = "hindi"
)

// Languages lists every language the UI can switch to.
var Languages = []Language{English, Hindi}

func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case English:
		return English, nil
	case Hindi:
		return Hindi, nil
	}
	return "", fmt.Errorf("unknown language %q", s)
}

// Catalog maps language -> key -> text. The zero value is not usable; start
// from Default().
type Catalog struct {
	mu    sync.RWMutex
	texts map[Language]map[string]string
}

func Default() *Catalog {
	c := &Catalog{texts: map[Language]map[string]string{}}
	for lang, m := range builtin {
		cp := make(map[string]string, len(m))
		for k, v := range m {
			cp[k] = v
		}
		c.texts[lang] = cp
	}
	return c
}

// T looks key up in lang, then in English, then returns the key itself.
func (c *Catalog) T(lang Language, key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if v, ok := c.texts[lang][key]; ok && v != "" {
		return v
	}
	if v, ok := c.texts[English][key]; ok && v != "" {
		return v
	}
	return key
}

// Set overrides a single entry.
func (c *Catalog) Set(lang Language, key, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m := c.texts[lang]
	if m == nil {
		m = map[string]string{}
		c.texts[lang] = m
	}
	m[key] = text
}

// Keys returns the number of English keys, used for logging after a load.
func (c *Catalog) Keys() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.texts[English])
}

var builtin = map[Language]map[string]string{
	English: {
		"home":                "Home",
		"register":            "Register",
		"soilAnalysis":        "Soil Analysis",
		"cropAdvisory":        "Crop Advisory",
		"weather":             "Weather",
		"community":           "Community",
		"diseaseDetection":    "Disease Detection",
		"search":              "Search...",
		"login":               "Login",
		"logout":              "Logout",
		"getStarted":          "Get Started",
		"learnMore":           "Learn More",
		"uploadSample":        "Upload Sample",
		"getAdvice":           "Get Advice",
		"viewForecast":        "View Forecast",
		"joinCommunity":       "Join Community",
		"modernAgriculture":   "Modern Agriculture",
		"empoweringFarmers":   "Empowering farmers with data-driven insights and community support",
		"farmerDashboard":     "Farmer Dashboard",
		"realTimeInsights":    "Real-time insights",
		"soilAnalysisDesc":    "Comprehensive soil health assessment with AI-powered recommendations",
		"cropAdvisoryDesc":    "Expert guidance and personalized crop recommendations",
		"weatherForecastDesc": "Accurate weather predictions for better farming decisions",
		"communityForumDesc":  "Connect with fellow farmers and share experiences",
		"trustedByFarmers":    "Trusted by Farmers Nationwide",
		"joinThousands":       "Join thousands of farmers who are already benefiting from our platform",
		"activeFarmers":       "Active Farmers",
		"soilAnalyses":        "Soil Analyses",
		"predictionAccuracy":  "Prediction Accuracy",
		"support247":          "24/7 Support",
		"website":             "Website",
		"services":            "Services",
		"support":             "Support",
		"contactUs":           "Contact Us",
		"privacyPolicy":       "Privacy Policy",
		"termsOfService":      "Terms of Service",
		"loading":             "Loading...",
		"healthScore":         "Health Score",
		"soilType":            "Soil Type",
		"recommendations":     "Recommendations",
		"suitableCrops":       "Suitable Crops",
		"forecast":            "7-Day Forecast",
		"faq":                 "Frequently Asked Questions",
	},
	Hindi: {
		"home":                "होम",
		"register":            "पंजीकरण",
		"soilAnalysis":        "मिट्टी विश्लेषण",
		"cropAdvisory":        "फसल सलाह",
		"weather":             "मौसम",
		"community":           "समुदाय",
		"diseaseDetection":    "रोग पहचान",
		"search":              "खोजें...",
		"login":               "लॉगिन",
		"logout":              "लॉगआउट",
		"getStarted":          "शुरू करें",
		"learnMore":           "और जानें",
		"uploadSample":        "नमूना अपलोड करें",
		"getAdvice":           "सलाह लें",
		"viewForecast":        "पूर्वानुमान देखें",
		"joinCommunity":       "समुदाय में शामिल हों",
		"modernAgriculture":   "आधुनिक कृषि",
		"empoweringFarmers":   "डेटा-संचालित अंतर्दृष्टि और सामुदायिक सहायता के साथ किसानों को सशक्त बनाना",
		"soilAnalysisDesc":    "AI-संचालित सिफारिशों के साथ व्यापक मिट्टी स्वास्थ्य मूल्यांकन",
		"cropAdvisoryDesc":    "विशेषज्ञ मार्गदर्शन और व्यक्तिगत फसल सिफारिशें",
		"weatherForecastDesc": "बेहतर कृषि निर्णयों के लिए सटीक मौसम पूर्वानुमान",
		"communityForumDesc":  "साथी किसानों से जुड़ें और अनुभव साझा करें",
		"trustedByFarmers":    "देशभर के किसानों द्वारा भरोसेमंद",
		"joinThousands":       "हजारों किसानों से जुड़ें जो पहले से ही हमारे प्लेटफॉर्म से लाभ उठा रहे हैं",
		"activeFarmers":       "सक्रिय किसान",
		"soilAnalyses":        "मिट्टी विश्लेषण",
		"predictionAccuracy":  "भविष्यवाणी सटीकता",
		"support247":          "24/7 सहायता",
		"website":             "वेबसाइट",
		"services":            "सेवाएं",
		"support":             "सहायता",
		"contactUs":           "संपर्क करें",
		"privacyPolicy":       "गोपनीयता नीति",
		"termsOfService":      "सेवा की शर्तें",
	},
}
