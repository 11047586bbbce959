// Package cli renders search sessions to a terminal and runs the
// line-oriented interactive loop.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/ecomate/backend/internal/domain"
	"github.com/ecomate/backend/internal/presenter"
	"github.com/mattn/go-isatty"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorGray   = "\033[90m"
)

const barCells = 20

// ColorMode selects when ANSI colors are emitted
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ResolveColor decides whether to color output written to out
func ResolveColor(mode ColorMode, out io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		f, ok := out.(*os.File)
		return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
	}
}

// TerminalRenderer writes session output as plain text. It is safe for
// concurrent use; the session calls it from timer goroutines.
type TerminalRenderer struct {
	mu    sync.Mutex
	out   io.Writer
	color bool

	suggestions []presenter.SuggestionRow
}

// NewTerminalRenderer creates a renderer writing to out
func NewTerminalRenderer(out io.Writer, color bool) *TerminalRenderer {
	return &TerminalRenderer{out: out, color: color}
}

// ShowLoading prints the loading indicator
func (r *TerminalRenderer) ShowLoading(query string) {
	r.write(r.paint(colorGray, fmt.Sprintf("🔍 Analyzing %q...", query)) + "\n")
}

// Render prints the score card
func (r *TerminalRenderer) Render(product domain.Product) {
	r.write(FormatCard(presenter.BuildCard(product), r.color))
}

// ShowSuggestions prints the numbered alternatives
func (r *TerminalRenderer) ShowSuggestions(query string, alternatives []domain.Product) {
	rows := presenter.BuildSuggestions(alternatives)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.suggestions = rows
	fmt.Fprint(r.out, FormatSuggestions(query, rows, r.color))
}

// HideSuggestions forgets the shown alternatives
func (r *TerminalRenderer) HideSuggestions() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suggestions = nil
}

// Clear prints a separator and resets the renderer
func (r *TerminalRenderer) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suggestions = nil
	fmt.Fprintln(r.out, r.paint(colorGray, "── cleared ──"))
}

// Suggestions returns the rows currently shown
func (r *TerminalRenderer) Suggestions() []presenter.SuggestionRow {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]presenter.SuggestionRow(nil), r.suggestions...)
}

func (r *TerminalRenderer) write(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprint(r.out, s)
}

func (r *TerminalRenderer) paint(code, s string) string {
	return paint(r.color, code, s)
}

// FormatCard renders a score card for terminal display.
//
//	🧴 Plastic Water Bottle  (Beverages)
//	   Eco score  ████░░░░░░░░░░░░░░░░  25/100
//	   ✖ Not Eco-Friendly
//	   Material: PET plastic
//	   💡 Switch to a stainless steel bottle.
func FormatCard(card presenter.Card, color bool) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s %s  (%s)\n", card.Image, paint(color, colorBold, card.Name), card.Category)

	filled := card.BarWidth * barCells / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barCells-filled)
	fmt.Fprintf(&sb, "   Eco score  %s  %s\n", paint(color, tierColor(card.Tier), bar), card.ScoreLabel)

	mark, code := "✖", colorRed
	if card.Badge.Favorable {
		mark, code = "✔", colorGreen
	}
	fmt.Fprintf(&sb, "   %s\n", paint(color, code, mark+" "+card.Badge.Label))

	for _, d := range card.Details {
		fmt.Fprintf(&sb, "   %s: %s\n", d.Label, d.Value)
	}
	if card.Tip != "" {
		fmt.Fprintf(&sb, "   💡 %s\n", card.Tip)
	}
	return sb.String()
}

// FormatSuggestions renders numbered alternatives, starting at 1
func FormatSuggestions(query string, rows []presenter.SuggestionRow, color bool) string {
	if len(rows) == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🌱 Eco-friendly alternatives for %q:\n", query)
	for i, row := range rows {
		fmt.Fprintf(&sb, "   %d. %s  %s\n", i+1, row.Name, paint(color, tierColor(row.Tier), row.ScoreLabel))
	}
	return sb.String()
}

// FormatSamples renders the sample product list
func FormatSamples(rows []presenter.SampleRow) string {
	if len(rows) == 0 {
		return "No sample products available.\n"
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row.Key))
	}

	var sb strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&sb, "%-*s  %s %s (%d/100)\n", width, row.Key, row.Image, row.Name, row.EcoScore)
	}
	return sb.String()
}

func tierColor(tier presenter.ScoreTier) string {
	switch tier {
	case presenter.TierHigh:
		return colorGreen
	case presenter.TierMid:
		return colorYellow
	default:
		return colorRed
	}
}

func paint(enabled bool, code, s string) string {
	if !enabled {
		return s
	}
	return code + s + colorReset
}
