package domain

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// recommendedMarker is the substring that marks a favorable recommendation
const recommendedMarker = "Recommended"

// Sentinel values carried by products synthesized for unknown queries
const (
	UnknownCategory       = "Unknown Product"
	UnknownImage          = "❓"
	UnknownRecommendation = "Data Not Found"
	UnknownTip            = "This product was not found in our database. Please check the spelling or try another search."
)

// Product is a single catalog entry as shown on the eco score card
type Product struct {
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Image          string  `json:"image"`
	EcoScore       int     `json:"ecoScore"` // 0-100, higher is better
	Recommendation string  `json:"recommendation"`
	Details        Details `json:"details"`
	Tip            string  `json:"tip"`

	// Synthetic marks a placeholder built for a query that matched nothing
	Synthetic bool `json:"-"`
}

// IsRecommended reports whether the recommendation text is favorable
func (p Product) IsRecommended() bool {
	return strings.Contains(p.Recommendation, recommendedMarker)
}

// NewSyntheticProduct builds the "not found" placeholder for a query
func NewSyntheticProduct(name string) Product {
	return Product{
		Name:           name,
		Category:       UnknownCategory,
		Image:          UnknownImage,
		EcoScore:       0,
		Recommendation: UnknownRecommendation,
		Tip:            UnknownTip,
		Details: Details{
			{Label: "Status", Value: "No data available"},
			{Label: "Suggestion", Value: "Use sample products or search eco-certified alternatives."},
		},
		Synthetic: true,
	}
}

// Detail is one labelled line of a product's details
type Detail struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Details is an ordered label/value list. It is encoded as a JSON object
// whose key order is preserved in both directions.
type Details []Detail

// Get returns the value for a label
func (d Details) Get(label string) (string, bool) {
	for _, detail := range d {
		if detail.Label == label {
			return detail.Value, true
		}
	}
	return "", false
}

// UnmarshalJSON decodes a JSON object keeping its key order
func (d *Details) UnmarshalJSON(data []byte) error {
	if isJSONNull(data) {
		*d = nil
		return nil
	}

	var details Details
	err := decodeOrderedObject(data, func(key string, raw json.RawMessage) error {
		value := detailValue(raw)
		for i := range details {
			if details[i].Label == key {
				details[i].Value = value
				return nil
			}
		}
		details = append(details, Detail{Label: key, Value: value})
		return nil
	})
	if err != nil {
		return err
	}

	*d = details
	return nil
}

// MarshalJSON encodes the details as a JSON object in insertion order
func (d Details) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, detail := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, detail.Label, detail.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// detailValue renders a detail value as text; non-string values keep their JSON form
func detailValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}

// SearchRequest represents a product search request
type SearchRequest struct {
	Query string `json:"query" binding:"required"`
}

// Analysis is the outcome of looking a query up in the catalog
type Analysis struct {
	Query        string    `json:"query"`
	Product      Product   `json:"product"`
	Alternatives []Product `json:"alternatives"`
	Found        bool      `json:"found"`
	Source       string    `json:"source"` // "Catalog" or "Cache"
	CachedAt     time.Time `json:"cachedAt,omitempty"`
}
