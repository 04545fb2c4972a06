package openfoodfacts

import (
	"regexp"
	"strconv"

	"github.com/nutrilens/backend/internal/domain"
)

// offNutrientMappings translates Open Food Facts per-100g nutriment keys into
// the raw nutrient-key vocabulary used by manual entry. OFF reports per-100g
// amounts, so the mapped request uses a 100g serving unless the record
// carries its own serving size.
var offNutrientMappings = []struct {
	offKey string
	rawKey string
	unit   string
}{
	{"energy-kcal_100g", "calories", "kcal"},
	{"fat_100g", "total_fat", "g"},
	{"saturated-fat_100g", "saturated_fat", "g"},
	{"sodium_100g", "sodium", "mg"},
	{"carbohydrates_100g", "total_carbohydrates", "g"},
	{"fiber_100g", "dietary_fiber", "g"},
	{"sugars_100g", "total_sugars", "g"},
	{"proteins_100g", "protein", "g"},
}

var servingSizeRegex = regexp.MustCompile(`(\d+\.?\d*)\s*g`)

// MapToAnalyzeRequest converts an Open Food Facts record into the raw-field
// input contract shared with manual entry and label parsing.
func MapToAnalyzeRequest(product *offProduct, barcode string) *domain.AnalyzeRequest {
	req := &domain.AnalyzeRequest{
		Name:         product.ProductName,
		Brand:        product.Brands,
		Barcode:      barcode,
		ServingSizeG: 100,
		Ingredients:  product.IngredientsText,
		Nutrients:    map[string]string{},
	}

	if m := servingSizeRegex.FindStringSubmatch(product.ServingSize); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			req.ServingSizeG = v
		}
	}

	for _, mapping := range offNutrientMappings {
		if v, ok := extractFloat(product.Nutriments, mapping.offKey); ok {
			req.Nutrients[mapping.rawKey] = strconv.FormatFloat(v, 'f', -1, 64) + mapping.unit
		}
	}

	return req
}

// extractFloat reads a nutriment value that may be encoded as a number or a
// numeric string.
func extractFloat(nutriments map[string]interface{}, key string) (float64, bool) {
	raw, ok := nutriments[key]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
