package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/bastiangx/wordhint/internal/utils"
	"github.com/bastiangx/wordhint/pkg/hint"
	"github.com/bastiangx/wordhint/pkg/rank"
	"github.com/charmbracelet/lipgloss"
)

// Styles used by the Renderer.
type Styles struct {
	Title  lipgloss.Style
	Word   lipgloss.Style
	Freq   lipgloss.Style
	Letter lipgloss.Style
	Muted  lipgloss.Style
	Toggle lipgloss.Style
	Error  lipgloss.Style
}

// DefaultStyles returns the styles for r, picking colors the terminal supports.
func DefaultStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title: r.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}),
		Word: r.NewStyle().Foreground(lipgloss.Color("75")),
		Freq: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#797593", Dark: "#908caa"}),
		Letter: r.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		Muted:  r.NewStyle().Italic(true).Faint(true),
		Toggle: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"}),
		Error:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	}
}

// Renderer prints reports as styled text.
type Renderer struct {
	out    io.Writer
	styles Styles
}

// NewRenderer styles output for w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{out: w, styles: DefaultStyles(lipgloss.NewRenderer(w))}
}

// Render prints the words of report and, when the mode ranks them, its letters.
// Each list shows its visible head; a collapsed overflow is summarised in one line.
func (r *Renderer) Render(report *hint.Report) {
	r.printf("%s\n", r.styles.Title.Render(fmt.Sprintf("Words for %s", report.Query)))
	r.renderWords(report.Words)

	if !report.RanksLetters {
		return
	}
	r.printf("\n%s\n", r.styles.Title.Render("Best letters to guess"))
	if report.TotalFrequency == 0 {
		r.printf("%s\n", r.styles.Muted.Render("matches carry no frequency, scores only"))
	}
	r.renderLetters(report.Letters)
}

func (r *Renderer) renderWords(words rank.Disclosure[rank.MatchResult]) {
	shown := words.Shown()
	for i, n := range utils.CreateRankList(len(shown)) {
		m := shown[i]
		r.printf("%2d. %s %s\n", n,
			r.styles.Word.Render(fmt.Sprintf("%-20s", m.Word)),
			r.styles.Freq.Render(fmt.Sprintf("%12s", utils.FormatWithCommas(m.Frequency))))
	}
	r.renderToggle(words.HasOverflow(), words.Open, len(words.Overflow), "word", "words")
}

func (r *Renderer) renderLetters(letters rank.Disclosure[rank.LetterScore]) {
	shown := letters.Shown()
	for i, n := range utils.CreateRankList(len(shown)) {
		l := shown[i]
		value := utils.FormatWithCommas(l.Score)
		if pct, ok := l.Percentage(); ok {
			value = fmt.Sprintf("%.2f%%", pct)
		}
		r.printf("%2d. %s %s\n", n, r.styles.Letter.Render(l.String()), r.styles.Freq.Render(value))
	}
	r.renderToggle(letters.HasOverflow(), letters.Open, len(letters.Overflow), "letter", "letters")
}

func (r *Renderer) renderToggle(hasOverflow, open bool, n int, singular, plural string) {
	if !hasOverflow {
		return
	}
	if open {
		r.printf("%s\n", r.styles.Toggle.Render("▾ Fewer "+plural))
		return
	}
	r.printf("%s\n", r.styles.Toggle.Render(fmt.Sprintf("▸ More %s (%d)", utils.Plural(n, singular, plural), n)))
}

// RenderError prints why a query produced no report.
func (r *Renderer) RenderError(err error) {
	if errors.Is(err, hint.ErrEmptyResult) {
		r.printf("%s\n", r.styles.Muted.Render("No words found"))
		return
	}
	r.printf("%s\n", r.styles.Error.Render("Error: "+err.Error()))
}

// Println prints a plain line.
func (r *Renderer) Println(s string) {
	r.printf("%s\n", s)
}

func (r *Renderer) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}
