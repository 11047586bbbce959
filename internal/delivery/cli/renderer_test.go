package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ecomate/backend/internal/domain"
	"github.com/ecomate/backend/internal/presenter"
	"github.com/stretchr/testify/assert"
)

func TestFormatCard(t *testing.T) {
	card := presenter.BuildCard(domain.Product{
		Name:           "Plastic Bottle",
		Category:       "Beverages",
		Image:          "🧴",
		EcoScore:       25,
		Recommendation: "Not Eco-Friendly",
		Details:        domain.Details{{Label: "Material", Value: "PET"}, {Label: "Lifespan", Value: "Single use"}},
		Tip:            "Refill a steel bottle.",
	})

	out := FormatCard(card, false)

	assert.Contains(t, out, "🧴 Plastic Bottle  (Beverages)")
	assert.Contains(t, out, strings.Repeat("█", 5)+strings.Repeat("░", 15)+"  25/100")
	assert.Contains(t, out, "✖ Not Eco-Friendly")
	assert.Contains(t, out, "💡 Refill a steel bottle.")
	assert.Less(t, strings.Index(out, "Material: PET"), strings.Index(out, "Lifespan: Single use"), "details keep their order")
	assert.NotContains(t, out, "\033[")
}

func TestFormatCard_Color(t *testing.T) {
	card := presenter.BuildCard(domain.Product{Name: "Bamboo Cup", EcoScore: 90, Recommendation: "Highly Recommended"})

	out := FormatCard(card, true)

	assert.Contains(t, out, colorGreen+"✔ Highly Recommended"+colorReset)
	assert.Contains(t, out, colorBold+"Bamboo Cup"+colorReset)
}

func TestFormatCard_NotFound(t *testing.T) {
	out := FormatCard(presenter.BuildCard(domain.NewSyntheticProduct("Steel Straw")), false)

	assert.Contains(t, out, "❓ Steel Straw  (Unknown Product)")
	assert.Contains(t, out, strings.Repeat("░", barCells)+"  0/100")
	assert.Contains(t, out, "✖ Data Not Found")
	assert.Contains(t, out, "Status: No data available")
}

func TestFormatSuggestions(t *testing.T) {
	rows := presenter.BuildSuggestions([]domain.Product{
		{Name: "Steel Bottle", EcoScore: 92},
		{Name: "Tote Bag", EcoScore: 78},
	})

	out := FormatSuggestions("bottle", rows, false)

	assert.Contains(t, out, `alternatives for "bottle"`)
	assert.Contains(t, out, "1. Steel Bottle  92/100")
	assert.Contains(t, out, "2. Tote Bag  78/100")

	assert.Empty(t, FormatSuggestions("bottle", nil, false))
}

func TestFormatSamples(t *testing.T) {
	out := FormatSamples([]presenter.SampleRow{
		{Key: "led-bulb", Name: "LED Light Bulb", Image: "💡", EcoScore: 85},
		{Key: "cotton-bag", Name: "Organic Cotton Tote Bag", Image: "👜", EcoScore: 78},
	})

	assert.Equal(t, "led-bulb    💡 LED Light Bulb (85/100)\ncotton-bag  👜 Organic Cotton Tote Bag (78/100)\n", out)
	assert.Equal(t, "No sample products available.\n", FormatSamples(nil))
}

func TestTerminalRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := NewTerminalRenderer(&buf, false)

	r.ShowLoading("bamboo")
	r.ShowSuggestions("bamboo", []domain.Product{{Name: "Bamboo Cup", EcoScore: 90}})
	assert.Len(t, r.Suggestions(), 1)

	r.HideSuggestions()
	assert.Empty(t, r.Suggestions())

	r.Render(domain.Product{Name: "Bamboo Cup", EcoScore: 90})
	r.Clear()

	out := buf.String()
	assert.Contains(t, out, `🔍 Analyzing "bamboo"...`)
	assert.Contains(t, out, "1. Bamboo Cup  90/100")
	assert.Contains(t, out, "Bamboo Cup  ()")
	assert.Contains(t, out, "── cleared ──")
}

func TestResolveColor(t *testing.T) {
	var buf bytes.Buffer

	assert.True(t, ResolveColor(ColorAlways, &buf))
	assert.False(t, ResolveColor(ColorNever, &buf))
	assert.False(t, ResolveColor(ColorAuto, &buf), "non-file writers are never terminals")
}
