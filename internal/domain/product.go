package domain

// NutrientInfo is one normalized nutrient measurement. Value is the amount as
// printed on the label (per serving); Per100g is the same quantity rescaled to
// a 100g basis. Per100g is always expressed in Unit's canonical form: sodium
// and cholesterol stay in mg, everything else is in g or kcal.
type NutrientInfo struct {
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Unit    string  `json:"unit"` // "g", "mg" or "kcal"
	Per100g float64 `json:"per_100g"`
}

// ProductData is a fully normalized product ready for scoring. Instances are
// treated as immutable: the scorer reads them and never writes back.
type ProductData struct {
	Barcode      string                  `json:"barcode,omitempty"`
	Name         string                  `json:"name"`
	Brand        string                  `json:"brand,omitempty"`
	Ingredients  []string                `json:"ingredients"`
	Nutrients    map[string]NutrientInfo `json:"nutrients"`
	ServingSizeG float64                 `json:"servingSizeG,omitempty"`
	Categories   []string                `json:"categories"`
}

// NewProductData returns a ProductData with all containers materialized, so
// callers never have to distinguish nil from empty.
func NewProductData(name, brand, barcode string) ProductData {
	return ProductData{
		Barcode:     barcode,
		Name:        name,
		Brand:       brand,
		Ingredients: []string{},
		Nutrients:   map[string]NutrientInfo{},
		Categories:  []string{},
	}
}

// AnalyzeRequest carries the raw product fields exactly as entered or
// extracted: an unstructured ingredient string and per-serving nutrient
// strings like "300mg" or "8g", keyed by the label vocabulary
// ("sodium", "dietary_fiber", ...).
type AnalyzeRequest struct {
	Name         string            `json:"name" binding:"required"`
	Brand        string            `json:"brand,omitempty"`
	Barcode      string            `json:"barcode,omitempty"`
	ServingSizeG float64           `json:"servingSizeG,omitempty"`
	Ingredients  string            `json:"ingredients,omitempty"`
	Nutrients    map[string]string `json:"nutrients,omitempty"`
	Categories   []string          `json:"categories,omitempty"`
}
