package usecase

import (
	"regexp"
	"strings"
)

// Ingredient categories produced by ClassifyIngredients.
const (
	CategoryHarmfulAdditives      = "harmful_additives"
	CategoryUltraProcessedMarkers = "ultra_processed_markers"
	CategoryBeneficialIngredients = "beneficial_ingredients"
	CategoryOther                 = "other"
)

// Package-level compiled regex patterns for performance
var (
	ingredientSplitRegex = regexp.MustCompile(`[,;]`)
	parentheticalRegex   = regexp.MustCompile(`\([^)]*\)`)
	whitespaceRegex      = regexp.MustCompile(`\s+`)
)

// harmfulAdditiveTerms flags additives with documented health concerns
// (FDA/EFSA classification systems): nitrites/nitrates, synthetic
// antioxidants, synthetic dyes, and refined corn sweeteners.
var harmfulAdditiveTerms = []string{
	"sodium nitrite", "sodium nitrate", "potassium nitrite", "potassium nitrate",
	"bha", "bht", "tbhq", "propyl gallate",
	"artificial colors", "red dye 40", "yellow 6", "blue 1",
	"high fructose corn syrup", "corn syrup solids",
}

// ultraProcessedMarkerTerms are NOVA-style indicators of industrial
// formulation rather than whole-food ingredients.
var ultraProcessedMarkerTerms = []string{
	"modified starch", "hydrolyzed protein", "isolated protein",
	"artificial flavors", "natural flavors", "flavor enhancer",
	"emulsifier", "stabilizer", "thickener",
}

// beneficialIngredientTerms mark whole grains and nutrient-dense components.
var beneficialIngredientTerms = []string{
	"whole grain", "whole wheat", "oats", "quinoa", "brown rice",
	"fiber", "protein", "vitamins", "minerals",
}

// ingredientCategories fixes the classification priority: an ingredient is
// assigned to the first category whose term set matches, so an ingredient that
// could textually match two sets always lands in the earlier one.
var ingredientCategories = []struct {
	name  string
	terms []string
}{
	{CategoryHarmfulAdditives, harmfulAdditiveTerms},
	{CategoryUltraProcessedMarkers, ultraProcessedMarkerTerms},
	{CategoryBeneficialIngredients, beneficialIngredientTerms},
}

// NormalizeIngredientList converts a raw label ingredient string into a
// cleaned, lowercased list. Splits on commas and semicolons, strips
// parenthetical asides, collapses whitespace, and drops empty or
// single-character tokens. An empty input yields an empty list.
func NormalizeIngredientList(raw string) []string {
	normalized := []string{}
	if raw == "" {
		return normalized
	}

	for _, part := range ingredientSplitRegex.Split(strings.ToLower(raw), -1) {
		part = parentheticalRegex.ReplaceAllString(part, "")
		part = whitespaceRegex.ReplaceAllString(part, " ")
		part = strings.TrimSpace(part)
		if len(part) > 1 {
			normalized = append(normalized, part)
		}
	}

	return normalized
}

// ClassifyIngredients buckets each ingredient into exactly one category using
// case-insensitive substring containment against the curated term sets.
// First matching category wins; unmatched ingredients land in "other".
func ClassifyIngredients(ingredients []string) map[string][]string {
	classification := map[string][]string{
		CategoryHarmfulAdditives:      {},
		CategoryUltraProcessedMarkers: {},
		CategoryBeneficialIngredients: {},
		CategoryOther:                 {},
	}

	for _, ingredient := range ingredients {
		lower := strings.ToLower(ingredient)
		category := CategoryOther

	match:
		for _, c := range ingredientCategories {
			for _, term := range c.terms {
				if strings.Contains(lower, term) {
					category = c.name
					break match
				}
			}
		}

		classification[category] = append(classification[category], ingredient)
	}

	return classification
}
