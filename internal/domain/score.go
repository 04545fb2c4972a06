package domain

import "time"

// Impact classifies the direction of a score driver.
type Impact string

const (
	ImpactPositive Impact = "positive"
	ImpactNegative Impact = "negative"
	ImpactNeutral  Impact = "neutral"
)

// Confidence indicates how much of the scoring relied on complete input data.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ScoreDriver is one explained contribution to the overall score: exactly one
// per triggered scoring rule.
type ScoreDriver struct {
	Factor      string  `json:"factor"`
	Impact      Impact  `json:"impact"`
	ScoreDelta  float64 `json:"scoreDelta"`
	Explanation string  `json:"explanation"`
	Source      string  `json:"source"`
}

// HealthScore is the complete assessment for one product. Drivers are ordered
// nutrient rules first, then ingredient rules, in rule evaluation order.
type HealthScore struct {
	OverallScore    int           `json:"overallScore"` // clamped to [0,100]
	Band            string        `json:"band"`         // A (best) through E
	Drivers         []ScoreDriver `json:"drivers"`
	EvidenceSources []string      `json:"evidenceSources"`
	Confidence      Confidence    `json:"confidence"`
	Warnings        []string      `json:"warnings"`
}

// BandForScore maps an overall score to its letter band. Thresholds are
// inclusive lower bounds, Nutri-Score style.
func BandForScore(score int) string {
	switch {
	case score >= 80:
		return "A"
	case score >= 65:
		return "B"
	case score >= 50:
		return "C"
	case score >= 35:
		return "D"
	default:
		return "E"
	}
}

// ProductRecord pairs a product with its score for persistence. DataHash is a
// deterministic content hash of the canonical JSON encoding of the product;
// re-saving the same hash overwrites with most-recent-update-wins semantics.
type ProductRecord struct {
	DataHash  string      `json:"dataHash"`
	Product   ProductData `json:"product"`
	Score     HealthScore `json:"score"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// ProductSummary is the lightweight row returned by history search/recent.
type ProductSummary struct {
	Name      string    `json:"name"`
	Brand     string    `json:"brand,omitempty"`
	Barcode   string    `json:"barcode,omitempty"`
	Score     int       `json:"score"`
	Band      string    `json:"band"`
	UpdatedAt time.Time `json:"updatedAt"`
}
