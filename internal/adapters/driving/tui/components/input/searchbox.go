// Package input provides the search box with its autocomplete dropdown.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/shopsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/shopsearch/internal/core/domain"
)

// SearchBox is a text input with a list of autocomplete suggestions below it.
// The highlighted suggestion is -1 when none is chosen.
type SearchBox struct {
	textinput   textinput.Model
	styles      *styles.Styles
	width       int
	suggestions []domain.SearchSuggestion
	highlighted int
}

// NewSearchBox creates a focused search box.
func NewSearchBox(s *styles.Styles) *SearchBox {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Search products, brands, categories..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	return &SearchBox{
		textinput:   ti,
		styles:      s,
		width:       50,
		highlighted: -1,
	}
}

// Init starts the cursor blinking.
func (b *SearchBox) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards messages to the text input. Editing the text drops the
// highlighted suggestion.
func (b *SearchBox) Update(msg tea.Msg) (*SearchBox, tea.Cmd) {
	before := b.textinput.Value()
	var cmd tea.Cmd
	b.textinput, cmd = b.textinput.Update(msg)
	if b.textinput.Value() != before {
		b.highlighted = -1
	}
	return b, cmd
}

// View renders the box and, when present, the suggestions.
func (b *SearchBox) View() string {
	label := b.styles.Title.Render("Search: ")
	field := b.styles.InputField.Render(b.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	line := lipgloss.JoinHorizontal(lipgloss.Center, label, field)
	if len(b.suggestions) == 0 || !b.textinput.Focused() {
		return line
	}

	rows := make([]string, 0, len(b.suggestions)+1)
	rows = append(rows, line)
	for i, s := range b.suggestions {
		text := s.Text + " " + b.styles.Muted.Render(suggestionKind(s.Type))
		if i == b.highlighted {
			rows = append(rows, b.styles.Selected.Render("> "+text))
			continue
		}
		rows = append(rows, b.styles.Suggestion.Render(text))
	}
	return strings.Join(rows, "\n")
}

func suggestionKind(t domain.SuggestionType) string {
	switch t {
	case domain.SuggestionProduct:
		return "product"
	case domain.SuggestionCategory:
		return "in categories"
	case domain.SuggestionBrand:
		return "brand"
	case domain.SuggestionQuery:
		return "popular"
	default:
		return ""
	}
}

// SetSuggestions replaces the dropdown entries.
func (b *SearchBox) SetSuggestions(suggestions []domain.SearchSuggestion) {
	b.suggestions = suggestions
	b.highlighted = -1
}

// Suggestions returns the dropdown entries.
func (b *SearchBox) Suggestions() []domain.SearchSuggestion {
	return b.suggestions
}

// ClearSuggestions hides the dropdown.
func (b *SearchBox) ClearSuggestions() {
	b.SetSuggestions(nil)
}

// HighlightNext moves the highlight down, wrapping to the first entry.
func (b *SearchBox) HighlightNext() {
	if len(b.suggestions) == 0 {
		return
	}
	b.highlighted = (b.highlighted + 1) % len(b.suggestions)
}

// HighlightPrev moves the highlight up. Moving up from the first entry
// returns to the text.
func (b *SearchBox) HighlightPrev() {
	if len(b.suggestions) == 0 {
		return
	}
	b.highlighted--
	if b.highlighted < -1 {
		b.highlighted = len(b.suggestions) - 1
	}
}

// Highlighted returns the highlighted suggestion.
func (b *SearchBox) Highlighted() (domain.SearchSuggestion, bool) {
	if b.highlighted < 0 || b.highlighted >= len(b.suggestions) {
		return domain.SearchSuggestion{}, false
	}
	return b.suggestions[b.highlighted], true
}

// AcceptHighlighted copies the highlighted suggestion into the box and
// hides the dropdown. It reports whether anything was accepted.
func (b *SearchBox) AcceptHighlighted() bool {
	s, ok := b.Highlighted()
	if !ok {
		return false
	}
	b.textinput.SetValue(s.Text)
	b.textinput.CursorEnd()
	b.ClearSuggestions()
	return true
}

// Value returns the current text.
func (b *SearchBox) Value() string {
	return b.textinput.Value()
}

// SetValue sets the text.
func (b *SearchBox) SetValue(value string) {
	b.textinput.SetValue(value)
}

// Focus sets focus on the box.
func (b *SearchBox) Focus() tea.Cmd {
	return b.textinput.Focus()
}

// Blur removes focus from the box.
func (b *SearchBox) Blur() {
	b.textinput.Blur()
}

// Focused returns whether the box is focused.
func (b *SearchBox) Focused() bool {
	return b.textinput.Focused()
}

// SetWidth sets the width of the box.
func (b *SearchBox) SetWidth(width int) {
	b.width = width
	// Account for label and padding
	inputWidth := width - 10
	if inputWidth < 20 {
		inputWidth = 20
	}
	b.textinput.Width = inputWidth
}

// Width returns the current width.
func (b *SearchBox) Width() int {
	return b.width
}

// Reset clears the text and the dropdown.
func (b *SearchBox) Reset() {
	b.textinput.Reset()
	b.ClearSuggestions()
}
