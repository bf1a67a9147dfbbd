package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/shopsearch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/shopsearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/shopsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/shopsearch/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/shopsearch/internal/adapters/driving/tui/views/product"
	"github.com/custodia-labs/shopsearch/internal/adapters/driving/tui/views/recommendations"
	"github.com/custodia-labs/shopsearch/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/shopsearch/internal/adapters/driving/tui/views/settings"
)

// Limits bounds the lists the views show. Zero keeps a view's default.
type Limits struct {
	Suggestions     int
	Recommendations int
	Similar         int
}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	menuView            *menu.View
	searchView          *search.View
	recommendationsView *recommendations.View
	productView         *product.View
	settingsView        *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool

	mu      sync.Mutex
	program *tea.Program
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, fmt.Errorf("creating app: %w", ErrInvalidPorts)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w: %w", ErrInvalidPorts, err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		help:        help.New(),
		currentView: messages.ViewMenu,
	}
	a.menuView = menu.NewView(s, ports.UserID)
	a.searchView = search.NewView(s, km, ports.Search, ports.Catalog, ports.Personalization, ports.UserID)
	a.recommendationsView = recommendations.NewView(s, km, ports.Catalog, ports.Personalization, ports.UserID)
	a.productView = product.NewView(s, km, ports.Catalog, ports.Personalization, ports.UserID)
	a.settingsView = settings.NewView(s, ports.Settings, ports.Personalization, ports.UserID)
	return a, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	a.recommendationsView.WithContext(ctx)
	a.productView.WithContext(ctx)
	return a
}

// WithLimits sets list sizes across the views.
func (a *App) WithLimits(l Limits) *App {
	a.searchView.WithSuggestionLimit(l.Suggestions)
	a.recommendationsView.WithLimit(l.Recommendations)
	a.productView.WithSimilarLimit(l.Similar)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.SetWindowTitle("shopsearch")
}

// Update implements tea.Model.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.updateCurrent(msg)

	// Search traffic belongs to the search view whichever view is showing,
	// so results that land after navigating away are not lost.
	case messages.SearchDue, messages.AutocompleteDue,
		messages.SearchCompleted, messages.SuggestionsLoaded:
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
		return a, cmd

	case messages.RecommendationsLoaded:
		a.recommendationsView, cmd = a.recommendationsView.Update(msg)
		return a, cmd

	case messages.SimilarLoaded:
		a.productView, cmd = a.productView.Update(msg)
		return a, cmd

	case messages.ProductSelected:
		from := a.currentView
		a.currentView = messages.ViewProduct
		return a, a.productView.Open(msg.Product, from)

	case messages.CatalogChanged:
		var searchCmd, recCmd tea.Cmd
		a.searchView, searchCmd = a.searchView.Update(msg)
		if a.currentView == messages.ViewRecommendations {
			a.recommendationsView, recCmd = a.recommendationsView.Update(msg)
		}
		return a, tea.Batch(searchCmd, recCmd)

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.updateCurrent(msg)
}

// switchTo activates a view. Views entered from the menu start fresh;
// returning from a product keeps their state.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	from := a.currentView
	a.currentView = view

	switch view {
	case messages.ViewSearch:
		if from == messages.ViewProduct {
			return nil
		}
		a.searchView.Reset()
		return a.searchView.Init()
	case messages.ViewRecommendations:
		if from == messages.ViewProduct {
			return nil
		}
		return a.recommendationsView.Init()
	case messages.ViewSettings:
		a.settingsView.Reset()
		return a.settingsView.Init()
	case messages.ViewMenu, messages.ViewProduct, messages.ViewHelp:
		// No initialisation needed
	}
	return nil
}

// updateCurrent forwards msg to the active view.
func (a *App) updateCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
	case messages.ViewRecommendations:
		a.recommendationsView, cmd = a.recommendationsView.Update(msg)
	case messages.ViewProduct:
		a.productView, cmd = a.productView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		if key, ok := msg.(tea.KeyMsg); ok && keymap.Matches(key.String(), a.keymap.Back) {
			a.currentView = messages.ViewMenu
		}
	}
	return cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewRecommendations:
		return a.recommendationsView.View()
	case messages.ViewProduct:
		return a.productView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	b.WriteString(a.help.FullHelpView(a.keymap.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Muted.Render("In search, tab moves between the query, the results and the filters."))
	b.WriteString("\n")
	b.WriteString(a.styles.Muted.Render("In the query, ↑/↓ pick a suggestion and enter searches."))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Help.Render("[esc] back to menu"))
	return b.String()
}

// Run starts the TUI and blocks until it exits.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	a.mu.Lock()
	a.program = p
	a.mu.Unlock()

	_, err := p.Run()

	a.mu.Lock()
	a.program = nil
	a.mu.Unlock()
	return err
}

// Send delivers a message from outside the program, such as a catalog
// reload. It is a no-op when the app is not running.
func (a *App) Send(msg tea.Msg) {
	a.mu.Lock()
	p := a.program
	a.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width
	a.menuView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
	a.recommendationsView.SetDimensions(width, height)
	a.productView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
