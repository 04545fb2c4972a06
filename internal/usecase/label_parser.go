package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/nutrilens/backend/internal/domain"
)

// Label text extraction patterns. Input is free text from a label transcript
// (OCR output or pasted packaging text); extraction is line-oriented.
var (
	labelIngredientsRegex = regexp.MustCompile(`(?i)ingredients:?(.+)`)
	labelNutritionRegex   = regexp.MustCompile(`([A-Za-z ]+):?\s*(\d+\.?\d*)\s*(g|mg|kcal|cal)?`)
	labelServingRegex     = regexp.MustCompile(`(?i)serving size:?\s*(\d+\.?\d*)\s*g`)
	labelNameRegex        = regexp.MustCompile(`(?i)product name:?\s*([A-Za-z0-9 \-]+)`)
	labelBrandRegex       = regexp.MustCompile(`(?i)brand:?\s*([A-Za-z0-9 \-]+)`)
	labelBarcodeRegex     = regexp.MustCompile(`(?i)barcode:?\s*(\d{8,14})`)
)

// ParseLabelText extracts raw product fields from free label text, producing
// the same input contract as manual entry. Fields that cannot be found are
// simply left empty; the result is always usable for analysis.
func ParseLabelText(text string) domain.AnalyzeRequest {
	req := domain.AnalyzeRequest{
		ServingSizeG: 100,
		Nutrients:    map[string]string{},
	}
	if text == "" {
		return req
	}

	if m := labelIngredientsRegex.FindStringSubmatch(text); m != nil {
		ingredients := m[1]
		// the ingredient statement typically runs up to the
		// nutrition facts panel
		if idx := strings.Index(ingredients, "Nutrition"); idx >= 0 {
			ingredients = ingredients[:idx]
		}
		req.Ingredients = strings.TrimSpace(ingredients)
	}

	for _, m := range labelNutritionRegex.FindAllStringSubmatch(text, -1) {
		key := strings.TrimSpace(m[1])
		if key == "" {
			continue
		}
		unit := m[3]
		if unit == "" {
			unit = "g"
		}
		req.Nutrients[key] = m[2] + unit
	}

	if m := labelServingRegex.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			req.ServingSizeG = v
		}
	}
	if m := labelNameRegex.FindStringSubmatch(text); m != nil {
		req.Name = strings.TrimSpace(m[1])
	}
	if m := labelBrandRegex.FindStringSubmatch(text); m != nil {
		req.Brand = strings.TrimSpace(m[1])
	}
	if m := labelBarcodeRegex.FindStringSubmatch(text); m != nil {
		req.Barcode = m[1]
	}

	return req
}
