// Package presenter turns catalog products into display-ready view models
// shared by the terminal and HTTP renderers.
package presenter

import (
	"fmt"

	"github.com/ecomate/backend/internal/domain"
)

// ScoreTier is the colour bucket for an eco score
type ScoreTier string

const (
	TierHigh ScoreTier = "high" // favorable, score >= 85
	TierMid  ScoreTier = "mid"  // favorable, 70-84
	TierLow  ScoreTier = "low"  // unfavorable, below 70
)

// Tier boundaries
const (
	highTierMin = 85
	midTierMin  = 70
)

// Badge is the recommendation pill on a card
type Badge struct {
	Label     string `json:"label"`
	Favorable bool   `json:"favorable"`
}

// Card is the eco score card for one product
type Card struct {
	Name       string         `json:"name"`
	Category   string         `json:"category"`
	Image      string         `json:"image"`
	EcoScore   int            `json:"ecoScore"`
	ScoreLabel string         `json:"scoreLabel"`
	BarWidth   int            `json:"barWidth"` // percent
	Tier       ScoreTier      `json:"tier"`
	Badge      Badge          `json:"badge"`
	Details    domain.Details `json:"details"`
	Tip        string         `json:"tip"`
	Found      bool           `json:"found"`
}

// SuggestionRow is one line of the alternatives list
type SuggestionRow struct {
	Name       string    `json:"name"`
	EcoScore   int       `json:"ecoScore"`
	ScoreLabel string    `json:"scoreLabel"`
	Tier       ScoreTier `json:"tier"`
}

// SampleRow is one entry of the sample products list
type SampleRow struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Image    string `json:"image"`
	EcoScore int    `json:"ecoScore"`
}

// TierFor buckets a score into high, mid or low
func TierFor(score int) ScoreTier {
	switch {
	case score >= highTierMin:
		return TierHigh
	case score >= midTierMin:
		return TierMid
	default:
		return TierLow
	}
}

// BuildCard renders a product into its card view model
func BuildCard(p domain.Product) Card {
	return Card{
		Name:       p.Name,
		Category:   p.Category,
		Image:      p.Image,
		EcoScore:   p.EcoScore,
		ScoreLabel: scoreLabel(p.EcoScore),
		BarWidth:   clampPercent(p.EcoScore),
		Tier:       TierFor(p.EcoScore),
		Badge: Badge{
			Label:     p.Recommendation,
			Favorable: p.IsRecommended(),
		},
		Details: p.Details,
		Tip:     p.Tip,
		Found:   !p.Synthetic,
	}
}

// BuildSuggestions renders alternatives. Suggestion rows only use two
// colours: high for scores >= 85 and mid for everything else.
func BuildSuggestions(products []domain.Product) []SuggestionRow {
	rows := make([]SuggestionRow, 0, len(products))
	for _, p := range products {
		tier := TierMid
		if p.EcoScore >= highTierMin {
			tier = TierHigh
		}
		rows = append(rows, SuggestionRow{
			Name:       p.Name,
			EcoScore:   p.EcoScore,
			ScoreLabel: scoreLabel(p.EcoScore),
			Tier:       tier,
		})
	}
	return rows
}

// BuildSamples renders the sample product list
func BuildSamples(entries []domain.CatalogEntry) []SampleRow {
	rows := make([]SampleRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, SampleRow{
			Key:      e.Key,
			Name:     e.Product.Name,
			Image:    e.Product.Image,
			EcoScore: e.Product.EcoScore,
		})
	}
	return rows
}

func scoreLabel(score int) string {
	return fmt.Sprintf("%d/100", score)
}

func clampPercent(score int) int {
	return max(0, min(score, 100))
}
