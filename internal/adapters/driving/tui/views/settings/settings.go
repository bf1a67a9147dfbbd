// Package settings provides the preferences and settings view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/shopsearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/shopsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/shopsearch/internal/core/domain"
	"github.com/custodia-labs/shopsearch/internal/core/ports/driving"
)

// Section tracks which settings section is active.
type Section int

const (
	SectionOverview Section = iota
	SectionFavorites
	SectionBackend
)

// Overview rows.
const (
	rowPersonalization = iota
	rowAdaptiveSorting
	rowFavorites
	rowBackend
	overviewRows
)

// Key constants for key handling.
const (
	keyDown  = "down"
	keyEnter = "enter"
	keyTab   = "tab"
)

var (
	errNoSettingsService        = errors.New("settings service not available")
	errNoPersonalizationService = errors.New("personalization not available")
)

// View shows the shopper's preferences and the application settings.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService
	personalization driving.PersonalizationService
	userID          string

	settings    *domain.AppSettings
	preferences *domain.UserPreferences
	err         error
	notice      string

	section  Section
	selected int
	// focusedField is 0 for categories and 1 for brands.
	focusedField int

	categoriesInput textinput.Model
	brandsInput     textinput.Model

	width  int
	height int
	ready  bool
}

// NewView creates a settings view. Either service may be nil; the
// matching rows then show an error when used.
func NewView(
	s *styles.Styles,
	settingsService driving.SettingsService,
	personalization driving.PersonalizationService,
	userID string,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	categories := textinput.New()
	categories.Placeholder = "women, accessories"
	categories.CharLimit = 256

	brands := textinput.New()
	brands.Placeholder = "Luxury Brand"
	brands.CharLimit = 256

	return &View{
		styles:          s,
		settingsService: settingsService,
		personalization: personalization,
		userID:          userID,
		section:         SectionOverview,
		categoriesInput: categories,
		brandsInput:     brands,
	}
}

// Init loads settings and preferences.
func (v *View) Init() tea.Cmd {
	return v.load()
}

func (v *View) load() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: errNoSettingsService}
		}
		settings, err := v.settingsService.Get()
		if err != nil {
			return messages.SettingsLoaded{Err: err}
		}
		msg := messages.SettingsLoaded{Settings: settings}
		if v.personalization != nil {
			prefs := v.personalization.Preferences(v.userID)
			msg.Preferences = &prefs
		}
		return msg
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.settings = msg.Settings
		v.preferences = msg.Preferences
		v.err = nil
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		return v, v.load()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() == "esc" {
		if v.section == SectionOverview {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
		v.leaveSection()
		return v, nil
	}

	switch v.section {
	case SectionOverview:
		return v.handleOverviewKeys(msg)
	case SectionFavorites:
		return v.handleFavoritesKeys(msg)
	case SectionBackend:
		return v.handleBackendKeys(msg)
	}
	return v, nil
}

func (v *View) handleOverviewKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < overviewRows-1 {
			v.selected++
		}
	case keyEnter, " ":
		v.notice = ""
		switch v.selected {
		case rowPersonalization:
			return v, v.updatePreferences(func(p *domain.UserPreferences) {
				p.PersonalizationEnabled = !p.PersonalizationEnabled
			})
		case rowAdaptiveSorting:
			return v, v.updatePreferences(func(p *domain.UserPreferences) {
				p.AdaptiveSorting = !p.AdaptiveSorting
			})
		case rowFavorites:
			return v, v.enterFavorites()
		case rowBackend:
			v.section = SectionBackend
			v.selected = v.backendIndex()
		}
	}
	return v, nil
}

func (v *View) enterFavorites() tea.Cmd {
	if v.preferences == nil {
		v.err = errNoPersonalizationService
		return nil
	}
	v.section = SectionFavorites
	v.focusedField = 0
	v.categoriesInput.SetValue(strings.Join(v.preferences.FavoriteCategories, ", "))
	v.brandsInput.SetValue(strings.Join(v.preferences.FavoriteBrands, ", "))
	v.brandsInput.Blur()
	return v.categoriesInput.Focus()
}

func (v *View) handleFavoritesKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyTab, "shift+tab", "up", keyDown:
		if v.focusedField == 0 {
			v.focusedField = 1
			v.categoriesInput.Blur()
			return v, v.brandsInput.Focus()
		}
		v.focusedField = 0
		v.brandsInput.Blur()
		return v, v.categoriesInput.Focus()
	case keyEnter:
		categories := splitList(v.categoriesInput.Value())
		brands := splitList(v.brandsInput.Value())
		v.leaveSection()
		v.notice = "Favourites saved"
		return v, v.updatePreferences(func(p *domain.UserPreferences) {
			p.FavoriteCategories = categories
			p.FavoriteBrands = brands
		})
	}

	var cmd tea.Cmd
	if v.focusedField == 0 {
		v.categoriesInput, cmd = v.categoriesInput.Update(msg)
	} else {
		v.brandsInput, cmd = v.brandsInput.Update(msg)
	}
	return v, cmd
}

func (v *View) handleBackendKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	backends := domain.AllStorageBackends()

	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(backends)-1 {
			v.selected++
		}
	case keyEnter:
		if v.selected >= 0 && v.selected < len(backends) {
			backend := backends[v.selected]
			v.leaveSection()
			v.selected = rowBackend
			v.notice = "Storage backend applies on the next start"
			return v, v.setBackend(backend)
		}
	}
	return v, nil
}

func (v *View) leaveSection() {
	v.section = SectionOverview
	v.selected = 0
	v.focusedField = 0
	v.categoriesInput.Blur()
	v.brandsInput.Blur()
}

// Commands to update settings.

func (v *View) updatePreferences(change func(*domain.UserPreferences)) tea.Cmd {
	if v.preferences == nil {
		return func() tea.Msg { return messages.SettingsSaved{Err: errNoPersonalizationService} }
	}
	prefs := *v.preferences
	change(&prefs)
	prefs.UserID = v.userID
	return func() tea.Msg {
		if v.personalization == nil {
			return messages.SettingsSaved{Err: errNoPersonalizationService}
		}
		v.personalization.UpdatePreferences(prefs)
		return messages.SettingsSaved{}
	}
}

func (v *View) setBackend(backend domain.StorageBackend) tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Err: errNoSettingsService}
		}
		return messages.SettingsSaved{Err: v.settingsService.SetStorageBackend(backend)}
	}
}

func (v *View) backendIndex() int {
	if v.settings == nil {
		return 0
	}
	for i, b := range domain.AllStorageBackends() {
		if b == v.settings.Storage.Backend {
			return i
		}
	}
	return 0
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		return b.String()
	}

	switch v.section {
	case SectionOverview:
		b.WriteString(v.renderOverview())
	case SectionFavorites:
		b.WriteString(v.renderFavorites())
	case SectionBackend:
		b.WriteString(v.renderBackendSelect())
	}

	if v.notice != "" && v.err == nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func (v *View) renderOverview() string {
	var b strings.Builder

	personalization, adaptive, favorites := "unavailable", "unavailable", "unavailable"
	if p := v.preferences; p != nil {
		personalization = onOff(p.PersonalizationEnabled)
		adaptive = onOff(p.AdaptiveSorting)
		favorites = fmt.Sprintf("%s / %s", listOrNone(p.FavoriteCategories), listOrNone(p.FavoriteBrands))
	}

	items := []struct {
		label string
		value string
	}{
		{"Personalization", personalization},
		{"Adaptive sorting", adaptive},
		{"Favourite categories / brands", favorites},
		{"Storage backend", v.settings.Storage.Backend.Description()},
	}

	for i, item := range items {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}
		line := fmt.Sprintf("%s%s: %s", indicator, item.label, item.value)
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	catalog := "built-in"
	if v.settings.Catalog.Path != "" {
		catalog = v.settings.Catalog.Path
	}
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Shopper: %s", v.userID)))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Catalog: %s", catalog)))
	b.WriteString("\n")

	return b.String()
}

func (v *View) renderFavorites() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Favourites"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Normal.Render("Categories:"))
	b.WriteString("\n")
	b.WriteString(v.categoriesInput.View())
	b.WriteString("\n\n")
	b.WriteString(v.styles.Normal.Render("Brands:"))
	b.WriteString("\n")
	b.WriteString(v.brandsInput.View())
	b.WriteString("\n")

	return b.String()
}

func (v *View) renderBackendSelect() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Select Storage Backend"))
	b.WriteString("\n\n")

	for i, backend := range domain.AllStorageBackends() {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}

		current := ""
		if backend == v.settings.Storage.Backend {
			current = v.styles.Success.Render(" (current)")
		}

		line := fmt.Sprintf("%s%s%s", indicator, backend.Description(), current)
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (v *View) renderHelp() string {
	switch v.section {
	case SectionOverview:
		return v.styles.Help.Render("[j/k] navigate  [enter] toggle/edit  [esc] back")
	case SectionFavorites:
		return v.styles.Help.Render("[tab] switch field  [enter] save  [esc] cancel")
	case SectionBackend:
		return v.styles.Help.Render("[j/k] navigate  [enter] select  [esc] back")
	default:
		return ""
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Section returns the active section.
func (v *View) Section() Section {
	return v.section
}

// Preferences returns the loaded preferences, or nil.
func (v *View) Preferences() *domain.UserPreferences {
	return v.preferences
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset resets the view to initial state.
func (v *View) Reset() {
	v.leaveSection()
	v.err = nil
	v.notice = ""
	v.categoriesInput.SetValue("")
	v.brandsInput.SetValue("")
}
