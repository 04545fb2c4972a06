package openfoodfacts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapToAnalyzeRequest(t *testing.T) {
	product := &offProduct{
		ProductName:     "Instant Oatmeal",
		Brands:          "Quick Oats Co",
		IngredientsText: "whole grain oats, sugar, salt",
		ServingSize:     "40 g (1 packet)",
		Nutriments: map[string]interface{}{
			"energy-kcal_100g":   float64(380),
			"fat_100g":           float64(6.5),
			"saturated-fat_100g": float64(1.2),
			"sodium_100g":        float64(255),
			"carbohydrates_100g": float64(67),
			"fiber_100g":         float64(9.8),
			"sugars_100g":        float64(17),
			"proteins_100g":      float64(13),
		},
	}

	req := MapToAnalyzeRequest(product, "5000000000001")

	assert.Equal(t, "Instant Oatmeal", req.Name)
	assert.Equal(t, "Quick Oats Co", req.Brand)
	assert.Equal(t, "5000000000001", req.Barcode)
	assert.Equal(t, float64(40), req.ServingSizeG)
	assert.Equal(t, "whole grain oats, sugar, salt", req.Ingredients)

	assert.Equal(t, "380kcal", req.Nutrients["calories"])
	assert.Equal(t, "6.5g", req.Nutrients["total_fat"])
	assert.Equal(t, "1.2g", req.Nutrients["saturated_fat"])
	assert.Equal(t, "255mg", req.Nutrients["sodium"])
	assert.Equal(t, "67g", req.Nutrients["total_carbohydrates"])
	assert.Equal(t, "9.8g", req.Nutrients["dietary_fiber"])
	assert.Equal(t, "17g", req.Nutrients["total_sugars"])
	assert.Equal(t, "13g", req.Nutrients["protein"])
}

func TestMapToAnalyzeRequest_Defaults(t *testing.T) {
	req := MapToAnalyzeRequest(&offProduct{ProductName: "Bare"}, "123")

	assert.Equal(t, float64(100), req.ServingSizeG)
	assert.Empty(t, req.Nutrients)
	assert.NotNil(t, req.Nutrients)
}

func TestMapToAnalyzeRequest_StringNutriments(t *testing.T) {
	product := &offProduct{
		ProductName: "Stringly",
		Nutriments: map[string]interface{}{
			"proteins_100g": "12.5",
			"fiber_100g":    "not a number",
			"sugars_100g":   true,
		},
	}

	req := MapToAnalyzeRequest(product, "456")

	assert.Equal(t, "12.5g", req.Nutrients["protein"])
	assert.NotContains(t, req.Nutrients, "dietary_fiber")
	assert.NotContains(t, req.Nutrients, "total_sugars")
}

func TestMapToAnalyzeRequest_ServingSizeWithoutGrams(t *testing.T) {
	product := &offProduct{
		ProductName: "Bottled Drink",
		ServingSize: "1 bottle",
	}

	req := MapToAnalyzeRequest(product, "789")
	assert.Equal(t, float64(100), req.ServingSizeG)
}

func TestExtractFloat(t *testing.T) {
	nutriments := map[string]interface{}{
		"number": float64(4.2),
		"string": "8.8",
		"bogus":  []int{1},
	}

	v, ok := extractFloat(nutriments, "number")
	assert.True(t, ok)
	assert.Equal(t, 4.2, v)

	v, ok = extractFloat(nutriments, "string")
	assert.True(t, ok)
	assert.Equal(t, 8.8, v)

	_, ok = extractFloat(nutriments, "bogus")
	assert.False(t, ok)

	_, ok = extractFloat(nutriments, "absent")
	assert.False(t, ok)
}
