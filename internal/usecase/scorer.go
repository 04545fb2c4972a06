package usecase

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/nutrilens/backend/internal/domain"
)

// evidenceSources is the static ordered citation list attached to every
// HealthScore, regardless of which rules fired.
var evidenceSources = []string{
	"FDA Nutrition Facts Label Guidelines (2016)",
	"WHO Global Strategy on Diet, Physical Activity and Health (2004)",
	"Dietary Guidelines for Americans 2020-2025",
	"European Food Safety Authority (EFSA) Scientific Opinions",
	"American Heart Association Dietary Guidelines",
	"Harvard T.H. Chan School of Public Health Nutrition Source",
}

// EvidenceSources returns a copy of the citation list backing all scores.
func EvidenceSources() []string {
	out := make([]string, len(evidenceSources))
	copy(out, evidenceSources)
	return out
}

// ScoreProduct computes the evidence-based health score for a product.
//
// The score starts at a neutral 50; nutrient rules then ingredient rules add
// signed deltas, each rule firing at most once and skipping silently when its
// data is absent. The sum is rounded and clamped to [0,100] and mapped to a
// letter band. Pure function: reads only static configuration and the product
// passed in, allocates all outputs fresh, safe for concurrent callers.
func ScoreProduct(product domain.ProductData) domain.HealthScore {
	baseScore := 50.0
	drivers := []domain.ScoreDriver{}
	warnings := []string{}
	nutrientsUsed := false
	ingredientsUsed := false

	if len(product.Nutrients) > 0 {
		delta, nutrientDrivers, nutrientWarnings := scoreNutrients(product.Nutrients)
		baseScore += delta
		drivers = append(drivers, nutrientDrivers...)
		warnings = append(warnings, nutrientWarnings...)
		nutrientsUsed = true
	}

	if len(product.Ingredients) > 0 {
		delta, ingredientDrivers, ingredientWarnings := scoreIngredients(product.Ingredients)
		baseScore += delta
		drivers = append(drivers, ingredientDrivers...)
		warnings = append(warnings, ingredientWarnings...)
		ingredientsUsed = true
	}

	finalScore := int(math.Round(baseScore))
	if finalScore < 0 {
		finalScore = 0
	}
	if finalScore > 100 {
		finalScore = 100
	}

	band := domain.BandForScore(finalScore)

	log.Info("scored product",
		zap.String("product", product.Name),
		zap.Int("score", finalScore),
		zap.String("band", band))

	return domain.HealthScore{
		OverallScore:    finalScore,
		Band:            band,
		Drivers:         drivers,
		EvidenceSources: EvidenceSources(),
		Confidence:      calculateConfidence(product, nutrientsUsed, ingredientsUsed),
		Warnings:        warnings,
	}
}

// scoreNutrients applies the nutrient rules in fixed order: fiber, protein,
// sodium, saturated fat, sugars. All thresholds are on per-100g values.
func scoreNutrients(nutrients map[string]domain.NutrientInfo) (float64, []domain.ScoreDriver, []string) {
	scoreDelta := 0.0
	var drivers []domain.ScoreDriver
	var warnings []string

	if fiber, ok := nutrients["dietary_fiber"]; ok && fiber.Per100g >= 6 {
		delta := math.Min(10, fiber.Per100g*1.5)
		scoreDelta += delta
		drivers = append(drivers, domain.ScoreDriver{
			Factor:     "High Fiber Content",
			Impact:     domain.ImpactPositive,
			ScoreDelta: delta,
			Explanation: fmt.Sprintf("Contains %.1fg fiber per 100g. High fiber supports digestive health and may reduce chronic disease risk.",
				fiber.Per100g),
			Source: "Dietary Guidelines for Americans 2020-2025",
		})
	}

	if protein, ok := nutrients["protein"]; ok && protein.Per100g >= 12 {
		delta := math.Min(8, protein.Per100g*0.3)
		scoreDelta += delta
		drivers = append(drivers, domain.ScoreDriver{
			Factor:     "Good Protein Source",
			Impact:     domain.ImpactPositive,
			ScoreDelta: delta,
			Explanation: fmt.Sprintf("Contains %.1fg protein per 100g. Adequate protein supports muscle health and satiety.",
				protein.Per100g),
			Source: "FDA Nutrition Facts Label Guidelines",
		})
	}

	if sodium, ok := nutrients["sodium"]; ok {
		// the sodium rule evaluates per_100g x 10, in mg
		sodiumMg := sodium.Per100g * 10
		if sodiumMg > 600 {
			delta := -math.Min(15, (sodiumMg-600)*0.01)
			scoreDelta += delta
			drivers = append(drivers, domain.ScoreDriver{
				Factor:     "High Sodium Content",
				Impact:     domain.ImpactNegative,
				ScoreDelta: delta,
				Explanation: fmt.Sprintf("Contains %.0fmg sodium per 100g. High sodium intake linked to hypertension and cardiovascular disease.",
					sodiumMg),
				Source: "American Heart Association Dietary Guidelines",
			})
			warnings = append(warnings, "High sodium content may contribute to elevated blood pressure")
		}
	}

	if satFat, ok := nutrients["saturated_fat"]; ok && satFat.Per100g > 5 {
		delta := -math.Min(12, satFat.Per100g*1.5)
		scoreDelta += delta
		drivers = append(drivers, domain.ScoreDriver{
			Factor:     "High Saturated Fat",
			Impact:     domain.ImpactNegative,
			ScoreDelta: delta,
			Explanation: fmt.Sprintf("Contains %.1fg saturated fat per 100g. High saturated fat intake may increase cardiovascular risk.",
				satFat.Per100g),
			Source: "WHO Global Strategy on Diet, Physical Activity and Health",
		})
	}

	if sugars, ok := nutrients["total_sugars"]; ok && sugars.Per100g > 15 {
		delta := -math.Min(10, sugars.Per100g*0.5)
		scoreDelta += delta
		drivers = append(drivers, domain.ScoreDriver{
			Factor:     "High Sugar Content",
			Impact:     domain.ImpactNegative,
			ScoreDelta: delta,
			Explanation: fmt.Sprintf("Contains %.1fg sugars per 100g. High sugar intake linked to obesity, diabetes, and dental problems.",
				sugars.Per100g),
			Source: "WHO Global Strategy on Diet, Physical Activity and Health",
		})
	}

	return scoreDelta, drivers, warnings
}

// scoreIngredients applies the ingredient rules from the classified
// categories: harmful additives, ultra-processed markers, beneficial
// ingredients, in that order.
func scoreIngredients(ingredients []string) (float64, []domain.ScoreDriver, []string) {
	scoreDelta := 0.0
	var drivers []domain.ScoreDriver
	var warnings []string

	classification := ClassifyIngredients(ingredients)

	harmful := classification[CategoryHarmfulAdditives]
	if len(harmful) > 0 {
		delta := -math.Min(15, float64(len(harmful))*5)
		scoreDelta += delta
		drivers = append(drivers, domain.ScoreDriver{
			Factor:     "Harmful Additives Present",
			Impact:     domain.ImpactNegative,
			ScoreDelta: delta,
			Explanation: fmt.Sprintf("Contains %d potentially harmful additive(s): %s. Some additives linked to health concerns in studies.",
				len(harmful), strings.Join(firstN(harmful, 3), ", ")),
			Source: "EFSA Scientific Opinions on Food Additives",
		})
		warnings = append(warnings, "Contains additives that some studies suggest may have negative health effects")
	}

	processed := classification[CategoryUltraProcessedMarkers]
	if len(processed) > 3 {
		delta := -math.Min(8, float64(len(processed))*2)
		scoreDelta += delta
		drivers = append(drivers, domain.ScoreDriver{
			Factor:     "Highly Processed Food",
			Impact:     domain.ImpactNegative,
			ScoreDelta: delta,
			Explanation: fmt.Sprintf("Contains %d ultra-processing markers. Ultra-processed foods associated with increased chronic disease risk.",
				len(processed)),
			Source: "Harvard T.H. Chan School of Public Health",
		})
	}

	beneficial := classification[CategoryBeneficialIngredients]
	if len(beneficial) > 0 {
		delta := math.Min(10, float64(len(beneficial))*3)
		scoreDelta += delta
		drivers = append(drivers, domain.ScoreDriver{
			Factor:     "Beneficial Ingredients",
			Impact:     domain.ImpactPositive,
			ScoreDelta: delta,
			Explanation: fmt.Sprintf("Contains %d beneficial ingredient(s): %s. These support nutritional quality.",
				len(beneficial), strings.Join(firstN(beneficial, 3), ", ")),
			Source: "Dietary Guidelines for Americans 2020-2025",
		})
	}

	return scoreDelta, drivers, warnings
}

// calculateConfidence scores data completeness: nutrients 50, ingredients 30,
// barcode 10, brand 10; high at 80+, medium at 60+, low below.
func calculateConfidence(product domain.ProductData, nutrientsUsed, ingredientsUsed bool) domain.Confidence {
	score := 0
	if nutrientsUsed {
		score += 50
	}
	if ingredientsUsed {
		score += 30
	}
	if product.Barcode != "" {
		score += 10
	}
	if product.Brand != "" {
		score += 10
	}

	switch {
	case score >= 80:
		return domain.ConfidenceHigh
	case score >= 60:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
