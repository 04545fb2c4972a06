package usecase

import "testing"

func TestParseLabelText(t *testing.T) {
	t.Run("extracts all fields from a full transcript", func(t *testing.T) {
		text := `Product Name: Honey Oat Granola
Brand: Morning Mills
Barcode: 123456789012
Serving Size: 45g
Ingredients: whole grain oats, honey, almonds (roasted), salt
Sodium: 120mg
Protein: 6g
Dietary Fiber: 4g`

		req := ParseLabelText(text)

		if req.Name != "Honey Oat Granola" {
			t.Errorf("name = %q", req.Name)
		}
		if req.Brand != "Morning Mills" {
			t.Errorf("brand = %q", req.Brand)
		}
		if req.Barcode != "123456789012" {
			t.Errorf("barcode = %q", req.Barcode)
		}
		if req.ServingSizeG != 45 {
			t.Errorf("serving = %v, want 45", req.ServingSizeG)
		}
		if req.Ingredients == "" {
			t.Error("ingredients not extracted")
		}
		if req.Nutrients["Sodium"] != "120mg" {
			t.Errorf("sodium = %q, want 120mg", req.Nutrients["Sodium"])
		}
		if req.Nutrients["Protein"] != "6g" {
			t.Errorf("protein = %q, want 6g", req.Nutrients["Protein"])
		}
	})

	t.Run("ingredient statement stops at nutrition panel", func(t *testing.T) {
		req := ParseLabelText("Ingredients: oats, salt Nutrition Facts Sodium: 100mg")
		if req.Ingredients != "oats, salt" {
			t.Errorf("ingredients = %q, want %q", req.Ingredients, "oats, salt")
		}
	})

	t.Run("missing fields stay empty with defaults", func(t *testing.T) {
		req := ParseLabelText("some unrelated text")
		if req.Name != "" || req.Brand != "" || req.Barcode != "" {
			t.Errorf("expected empty identity fields, got %+v", req)
		}
		if req.ServingSizeG != 100 {
			t.Errorf("serving = %v, want default 100", req.ServingSizeG)
		}
	})

	t.Run("empty text yields usable request", func(t *testing.T) {
		req := ParseLabelText("")
		if req.Nutrients == nil {
			t.Error("nutrients map not materialized")
		}
		if req.ServingSizeG != 100 {
			t.Errorf("serving = %v, want 100", req.ServingSizeG)
		}
	})

	t.Run("parsed output feeds analysis directly", func(t *testing.T) {
		req := ParseLabelText("Ingredients: sodium nitrite, whole wheat flour\nSodium: 300mg")
		ingredients := NormalizeIngredientList(req.Ingredients)
		classification := ClassifyIngredients(ingredients)
		if len(classification[CategoryHarmfulAdditives]) != 1 {
			t.Errorf("harmful = %v", classification[CategoryHarmfulAdditives])
		}
	})
}
