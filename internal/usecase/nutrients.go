package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/nutrilens/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	nutrientValueRegex = regexp.MustCompile(`(\d+\.?\d*)`)
	nutrientUnitRegex  = regexp.MustCompile(`(mg|g|kcal|cal)`)
)

// DailyValues holds FDA daily values and WHO intake recommendations, used for
// percent-daily-value display. The scoring rules do not read this table.
var DailyValues = map[string]float64{
	"calories":      2000,
	"total_fat":     65,   // grams
	"saturated_fat": 20,   // grams
	"trans_fat":     0,    // grams (no safe level)
	"cholesterol":   300,  // mg
	"sodium":        2300, // mg
	"total_carbs":   300,  // grams
	"dietary_fiber": 25,   // grams
	"total_sugars":  50,   // grams (WHO recommendation)
	"added_sugars":  25,   // grams (WHO recommendation)
	"protein":       50,   // grams
}

// NormalizeNutrients parses raw per-serving nutrient strings ("300mg", "8g",
// "150") into NutrientInfo values rescaled to a 100g basis. Entries with no
// extractable number are skipped and logged, never fatal. A non-positive
// serving size degrades the rescale to a pass-through.
//
// Units: mg values are converted to grams except for sodium and cholesterol,
// which FDA labels keep in mg. A missing unit token defaults to grams.
func NormalizeNutrients(raw map[string]string, servingSizeG float64) map[string]domain.NutrientInfo {
	normalized := map[string]domain.NutrientInfo{}

	for key, valueStr := range raw {
		valueMatch := nutrientValueRegex.FindString(valueStr)
		if valueMatch == "" {
			log.Warn("skipping nutrient with no parseable value",
				zap.String("nutrient", key),
				zap.String("raw", valueStr))
			continue
		}

		value, err := strconv.ParseFloat(valueMatch, 64)
		if err != nil {
			log.Warn("skipping nutrient with unparseable value",
				zap.String("nutrient", key),
				zap.String("raw", valueStr),
				zap.Error(err))
			continue
		}

		unit := nutrientUnitRegex.FindString(strings.ToLower(valueStr))
		if unit == "" {
			unit = "g"
		}

		per100g := value
		if servingSizeG > 0 {
			per100g = value / servingSizeG * 100
		}

		normKey := strings.ReplaceAll(strings.ToLower(key), " ", "_")

		// FDA labels use mg only for sodium, cholesterol and trace
		// minerals; mg amounts of anything else compare in grams.
		if unit == "mg" && normKey != "sodium" && normKey != "cholesterol" {
			per100g = per100g / 1000
			unit = "g"
		}

		normalized[normKey] = domain.NutrientInfo{
			Name:    key,
			Value:   value,
			Unit:    unit,
			Per100g: per100g,
		}
	}

	return normalized
}

// PercentDailyValue returns what fraction of the published daily value a
// per-100g amount represents, for display only. The second return reports
// whether a daily value exists for the key.
func PercentDailyValue(key string, per100g float64) (float64, bool) {
	dv, ok := DailyValues[key]
	if !ok || dv == 0 {
		return 0, ok
	}
	return per100g / dv * 100, true
}
